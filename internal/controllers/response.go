package controllers

import (
	"errors"

	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Envelope is the shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

// validationFailed carries the field list alongside the message.
func validationFailed(c *fiber.Ctx, verr *forms.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Data:    fiber.Map{"fields": verr.Fields},
		Message: verr.Error(),
	})
}

// ErrorHandler turns anything a handler returns into the envelope.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			return validationFailed(c, verr)
		}
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return fail(c, ferr.Code, ferr.Message)
		}

		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			return fail(c, status, "internal server error")
		}
		return fail(c, status, err.Error())
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrLocked):
		return fiber.StatusLocked
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrPaymentRequired):
		return fiber.StatusPaymentRequired
	case errors.Is(err, services.ErrBadRequest):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
