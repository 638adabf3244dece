package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/chatop/chatop-api/internal/auth"
)

// ErrInvalidRequest is returned for bodies or parameters that cannot be parsed.
var ErrInvalidRequest = errors.New("invalid request")

// ValidationError carries the failed fields of a request body.
type ValidationError struct {
	Fields []ErrorResponse
}

func (e *ValidationError) Error() string {
	return "request validation failed"
}

// Unwrap makes ValidationError match ErrInvalidRequest.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// ErrorMessage is the JSON body of every error response.
type ErrorMessage struct {
	StatusCode  int             `json:"status_code"`
	Timestamp   time.Time       `json:"timestamp"`
	Message     string          `json:"message"`
	Description string          `json:"description"`
	Errors      []ErrorResponse `json:"errors,omitempty"`
}

// StatusOf maps an error to its HTTP status code.
func StatusOf(err error) int {
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, auth.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, auth.ErrBadCredentials),
		errors.Is(err, auth.ErrInvalidSignature),
		errors.Is(err, auth.ErrExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, auth.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, auth.ErrEmailExists):
		return fiber.StatusConflict
	case errors.Is(err, auth.ErrMalformedCredentials),
		errors.Is(err, ErrInvalidRequest):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the fiber error handler writing ErrorMessage bodies.
// Messages of server errors are not exposed to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := StatusOf(err)

	body := ErrorMessage{
		StatusCode:  status,
		Timestamp:   time.Now().UTC(),
		Message:     err.Error(),
		Description: "uri=" + c.Path(),
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		body.Errors = validationErr.Fields
	}

	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")

		body.Message = fiber.ErrInternalServerError.Message
	}

	return c.Status(status).JSON(body)
}
