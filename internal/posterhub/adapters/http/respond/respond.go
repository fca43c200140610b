// Package respond отображает конверты оркестрирующего слоя в HTTP-ответы.
package respond

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"posterhub/internal/posterhub/domain/responses"
)

// StatusForKind возвращает HTTP-статус для вида исхода. Конверт на проводе
// сохраняет форму {data, message}; вид исхода виден только в статусе.
func StatusForKind(kind responses.Kind) int {
	switch kind {
	case responses.KindOK:
		return fiber.StatusOK
	case responses.KindValidation:
		return fiber.StatusBadRequest
	case responses.KindNotFound:
		return fiber.StatusNotFound
	case responses.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Envelope сериализует конверт с соответствующим исходу статусом.
// successStatus используется вместо 200 для успешного исхода.
func Envelope[T any](ctx fiber.Ctx, env responses.Envelope[T], successStatus int) error {
	status := StatusForKind(env.Kind)
	if env.Success() && successStatus != 0 {
		status = successStatus
	}

	if err := ctx.Status(status).JSON(env); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// BadRequest отправляет ответ о некорректном запросе в форме конверта.
func BadRequest(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"data":    nil,
		"message": message,
	}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}
