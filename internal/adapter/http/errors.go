package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"resume-maker/internal/domain"
	"resume-maker/internal/usecase"
)

// statusFor maps session errors to HTTP statuses. Anything unclassified is
// an input the session refused.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSessionClosed), errors.Is(err, usecase.ErrNoRenderer):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, domain.ErrParse):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrConstraint):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError
	case errors.Is(err, domain.ErrExport):
		return fiber.StatusBadGateway
	}
	return fiber.StatusBadRequest
}
