package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	// ErrorResponse represents a validation error response.
	ErrorResponse struct {
		FailedField string      `json:"field"`
		Tag         string      `json:"tag"`
		Value       interface{} `json:"value,omitempty"`
	}

	// XValidator is a custom validator struct.
	XValidator struct {
		validator *validator.Validate
	}
)

// Validator is shared by all handlers.
var Validator = XValidator{validator: validator.New()} //nolint:gochecknoglobals

// Validate performs validation on the provided data and returns a slice of ErrorResponse.
func (v XValidator) Validate(data interface{}) []ErrorResponse {
	var validationErrors []ErrorResponse

	errs := v.validator.Struct(data)
	if errs == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(errs, &fieldErrs) {
		return []ErrorResponse{{FailedField: "body", Tag: "invalid"}}
	}

	for _, err := range fieldErrs {
		var elem ErrorResponse

		elem.FailedField = err.Field() // Export struct field name
		elem.Tag = err.Tag()           // Export struct tag

		// never echo secrets back
		if err.Field() != "Password" {
			elem.Value = err.Value()
		}

		validationErrors = append(validationErrors, elem)
	}

	return validationErrors
}

// Bind parses the request body into dst and validates it.
func Bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}

	if fields := Validator.Validate(dst); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// ParamID returns the numeric path parameter "id".
func ParamID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidRequest
	}

	return id, nil
}
