// Package response defines the JSON envelopes returned by the HTTP API for
// errors and plain status messages.
package response

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ValidationError describes a single request field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Value   any    `json:"value"`
	Message string `json:"message"`
}

// Response is the envelope for messages and errors.
type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// Predefined responses for common scenarios.
var (
	EmptyRequestBodyResponse = Response{
		Status:  StatusError,
		Message: "Request body is empty. Please provide necessary data.",
	}
	InvalidRequestBodyResponse = Response{
		Status:  StatusError,
		Message: "Request body is invalid. Please check the JSON syntax.",
	}
	ServerErrorResponse = Response{
		Status:  StatusError,
		Message: "An internal server error occurred. Please try again later.",
	}
	ServiceUnavailableResponse = Response{
		Status:  StatusError,
		Message: "The service is temporarily unable to handle the request. Please try again later.",
	}
)

func SuccessResponse(msg string) Response {
	return Response{
		Status:  StatusSuccess,
		Message: msg,
	}
}

func ErrorResponse(msg string) Response {
	return Response{
		Status:  StatusError,
		Message: msg,
	}
}

// ValidationErrorResponse builds an error response listing every failed
// field of err. Errors that are not validator.ValidationErrors produce a
// response without field details.
func ValidationErrorResponse(err error) Response {
	return Response{
		Status:  StatusError,
		Message: "Your provided URL is not valid",
		Errors:  getValidationErrors(err),
	}
}

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "url", "http_url":
		return "Invalid url."
	default:
		return "Invalid value."
	}
}

func getValidationErrors(err error) []ValidationError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	return lo.Map([]validator.FieldError(errs), func(e validator.FieldError, _ int) ValidationError {
		return ValidationError{
			Field:   e.Field(),
			Value:   e.Value(),
			Message: messageForTag(e.Tag()),
		}
	})
}
