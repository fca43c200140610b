// Package users содержит HTTP-обработчики для управления пользователями.
package users

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"posterhub/internal/posterhub/adapters/http/middleware"
	"posterhub/internal/posterhub/adapters/http/respond"
	"posterhub/internal/posterhub/app"
	"posterhub/internal/posterhub/app/dto"
	"posterhub/internal/posterhub/domain/entities"
	"posterhub/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateUser = "handling create user request"
	LogHandlerGetUser    = "handling get user request"
	LogHandlerListUsers  = "handling list users request"
	LogHandlerUpdateUser = "handling update user request"
	LogHandlerDeleteUser = "handling delete user request"
	LogHandlerAssociate  = "handling associate poster request"

	ErrMsgInvalidUserID      = "invalid user id"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с пользователями.
type Handler struct {
	userUseCase *app.UserUseCase
}

// NewHandler создает новый экземпляр обработчика пользователей.
func NewHandler(userUseCase *app.UserUseCase) *Handler {
	return &Handler{userUseCase: userUseCase}
}

// CreateUser обрабатывает запрос на регистрацию пользователя.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(requestCtx, LogHandlerCreateUser)

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	env := h.userUseCase.CreateUser(requestCtx, req.ToEntity())
	return respond.Envelope(ctx, env, fiber.StatusCreated)
}

// GetUser обрабатывает запрос на получение пользователя по ID.
func (h *Handler) GetUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetUser"))
	log.Debug(requestCtx, LogHandlerGetUser)

	userID := ctx.Params("user_id")
	if userID == "" {
		log.Error(requestCtx, ErrMsgInvalidUserID)
		return respond.BadRequest(ctx, ErrMsgInvalidUserID)
	}

	env := h.userUseCase.GetUserByID(requestCtx, userID)
	return respond.Envelope(ctx, env, 0)
}

// ListUsers возвращает всех пользователей вместе с их афишами.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(requestCtx, LogHandlerListUsers)

	env := h.userUseCase.GetAllUsers(requestCtx)
	return respond.Envelope(ctx, env, 0)
}

// UpdateUser обрабатывает запрос на обновление профиля пользователя.
func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateUser"))
	log.Debug(requestCtx, LogHandlerUpdateUser)

	userID := ctx.Params("user_id")
	if userID == "" {
		log.Error(requestCtx, ErrMsgInvalidUserID)
		return respond.BadRequest(ctx, ErrMsgInvalidUserID)
	}

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	env := h.userUseCase.UpdateUser(requestCtx, userID, req.ToEntity())
	return respond.Envelope(ctx, env, 0)
}

// DeleteUser обрабатывает запрос на удаление пользователя.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteUser"))
	log.Debug(requestCtx, LogHandlerDeleteUser)

	userID := ctx.Params("user_id")
	if userID == "" {
		log.Error(requestCtx, ErrMsgInvalidUserID)
		return respond.BadRequest(ctx, ErrMsgInvalidUserID)
	}

	env := h.userUseCase.DeleteUserByID(requestCtx, userID)
	return respond.Envelope(ctx, env, 0)
}

// AssociatePoster привязывает афишу из тела запроса к пользователю.
// Повторная привязка той же афиши заменяет существующую запись.
func (h *Handler) AssociatePoster(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.AssociatePoster"))
	log.Debug(requestCtx, LogHandlerAssociate)

	userID := ctx.Params("user_id")
	if userID == "" {
		log.Error(requestCtx, ErrMsgInvalidUserID)
		return respond.BadRequest(ctx, ErrMsgInvalidUserID)
	}

	var poster entities.Poster
	if err := ctx.Bind().Body(&poster); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	env := h.userUseCase.AssociatePosterWithUser(requestCtx, userID, &poster)
	return respond.Envelope(ctx, env, 0)
}
