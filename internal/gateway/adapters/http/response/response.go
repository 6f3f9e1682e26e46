// Package response переводит ошибки сервисов в HTTP-ответы.
package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	accountEntities "gotodo/internal/account/domain/entities"
	accountServices "gotodo/internal/account/domain/services"
	todoEntities "gotodo/internal/todos/domain/entities"
	"gotodo/pkg/validation"
)

// Тексты ошибок в теле ответа.
const (
	MsgValidationFailed  = "validation failed"
	MsgInvalidCredential = accountServices.MsgInvalidCredentials
	MsgUnauthenticated   = "Authentication credentials were not provided or are invalid"
	MsgNotFound          = "Not found"
	MsgMalformedJSON     = "Malformed JSON"
	MsgRouteNotFound     = "Route not found"
	MsgInternal          = "Internal server error"
	MsgMustBe            = "Must be a valid %s."
)

// ErrorBody - тело ответа с ошибкой.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields validation.Errors `json:"fields,omitempty"`
}

// Classify возвращает HTTP-статус и тело ответа для ошибки сервиса.
func Classify(err error) (int, ErrorBody) {
	var verrs validation.Errors
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &verrs):
		return fiber.StatusBadRequest, ErrorBody{Error: MsgValidationFailed, Fields: verrs}
	case errors.Is(err, accountServices.ErrInvalidCredentials):
		return fiber.StatusBadRequest, ErrorBody{Error: MsgInvalidCredential}
	case errors.Is(err, accountServices.ErrUnauthenticated):
		return fiber.StatusUnauthorized, ErrorBody{Error: MsgUnauthenticated}
	case errors.Is(err, todoEntities.ErrTodoNotFound),
		errors.Is(err, accountEntities.ErrUserNotFound):
		return fiber.StatusNotFound, ErrorBody{Error: MsgNotFound}
	case errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError:
		return fiberErr.Code, ErrorBody{Error: fiberErr.Message}
	default:
		return fiber.StatusInternalServerError, ErrorBody{Error: MsgInternal}
	}
}

// Error пишет ответ с ошибкой, соответствующий err.
func Error(ctx fiber.Ctx, err error) error {
	status, body := Classify(err)
	return JSON(ctx, status, body)
}

// Message пишет ответ вида {"error": message}.
func Message(ctx fiber.Ctx, status int, message string) error {
	return JSON(ctx, status, ErrorBody{Error: message})
}

// JSON пишет тело ответа с указанным статусом.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// NoContent отвечает статусом 204 без тела.
func NoContent(ctx fiber.Ctx) error {
	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DecodeBody разбирает JSON-тело запроса в out через JSON-декодер приложения fiber.
// Пустое тело считается объектом без полей. Поле неверного типа дает ошибку
// валидации этого поля, синтаксическая ошибка дает ErrMalformedJSON.
func DecodeBody(ctx fiber.Ctx, out any) error {
	if len(bytes.TrimSpace(ctx.Body())) == 0 {
		return nil
	}

	err := ctx.Bind().WithoutAutoHandling().JSON(out)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Errorf("decode body: %w",
			validation.Field(typeErr.Field, fmt.Sprintf(MsgMustBe, typeErr.Type.String())))
	}

	var fieldErr fieldError
	if errors.As(err, &fieldErr) {
		return fmt.Errorf("decode body: %w", validation.Field(fieldErr.Field(), fieldErr.Message()))
	}

	return fmt.Errorf("%w: %w", ErrMalformedJSON, err)
}

// ErrMalformedJSON возвращается DecodeBody для синтаксически неверного тела.
var ErrMalformedJSON = fiber.NewError(fiber.StatusBadRequest, MsgMalformedJSON)

// fieldError - ошибка разбора конкретного поля, которую DTO возвращает из UnmarshalJSON.
type fieldError interface {
	error
	Field() string
	Message() string
}
