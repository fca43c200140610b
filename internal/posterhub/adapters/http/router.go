// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"posterhub/internal/posterhub/adapters/http/middleware"
	"posterhub/internal/posterhub/adapters/http/posters"
	"posterhub/internal/posterhub/adapters/http/users"
	"posterhub/internal/posterhub/app"
	"posterhub/internal/posterhub/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, posterUseCase *app.PosterUseCase, userUseCase *app.UserUseCase, media services.MediaService, ocr services.OCRService) {
	posterHandler := posters.NewHandler(posterUseCase, media, ocr)
	userHandler := users.NewHandler(userUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Маршруты афиш. Специализированные маршруты регистрируются раньше
	// параметрического /:poster_id.
	posterRoutes := apiV1.Group("/posters")
	posterRoutes.Post("/", posterHandler.CreatePoster)
	posterRoutes.Get("/", posterHandler.ListPosters)
	posterRoutes.Get("/search", posterHandler.PostersByTerm)
	posterRoutes.Get("/distinct", posterHandler.DistinctValues)
	posterRoutes.Get("/tag/:tag", posterHandler.PostersByTag)
	posterRoutes.Get("/organization/:org", posterHandler.PostersByOrganization)
	posterRoutes.Post("/ocr", posterHandler.ExtractText)
	posterRoutes.Get("/:poster_id", posterHandler.GetPoster)
	posterRoutes.Put("/:poster_id", posterHandler.UpdatePoster)
	posterRoutes.Delete("/:poster_id", posterHandler.DeletePoster)

	// Маршруты пользователей.
	userRoutes := apiV1.Group("/users")
	userRoutes.Post("/", userHandler.CreateUser)
	userRoutes.Get("/", userHandler.ListUsers)
	userRoutes.Get("/:user_id", userHandler.GetUser)
	userRoutes.Put("/:user_id", userHandler.UpdateUser)
	userRoutes.Delete("/:user_id", userHandler.DeleteUser)
	userRoutes.Post("/:user_id/posters", userHandler.AssociatePoster)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"data":    nil,
			"message": "route not found",
		})
	})
}
