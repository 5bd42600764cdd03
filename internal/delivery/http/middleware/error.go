package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"joblens/internal/analyze"
	"joblens/internal/pkg/response"
	"joblens/internal/textacquire"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct{}

func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		return response.Error(c, status, msg, data)
	}
}

// normalizeError maps domain failures to short actionable responses; raw
// internals never reach the client.
func normalizeError(err error) (int, string, interface{}) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode, appErr.Message, appErr.Data
	}

	switch {
	case errors.Is(err, analyze.ErrQuotaExceeded):
		return fiber.StatusTooManyRequests, err.Error(), fiber.Map{"rate_limited": true}

	case errors.Is(err, analyze.ErrInvalidBackendURL):
		return fiber.StatusBadRequest, err.Error(), nil

	case errors.Is(err, analyze.ErrNoResume),
		errors.Is(err, analyze.ErrNoJob):
		return fiber.StatusBadRequest, err.Error(), nil

	case errors.Is(err, analyze.ErrBackendUnreachable):
		return fiber.StatusBadGateway, err.Error(), nil

	case errors.Is(err, textacquire.ErrParserUnavailable):
		return fiber.StatusUnprocessableEntity,
			"could not read the document, paste the text manually instead",
			fiber.Map{"manual_paste": true}

	case errors.Is(err, textacquire.ErrUnsupportedFormat):
		return fiber.StatusBadRequest, "unsupported file type, upload a .txt, .pdf or .docx file", nil

	case errors.Is(err, textacquire.ErrTooShort):
		return fiber.StatusBadRequest, "the document looks empty, upload a complete resume", nil
	}

	var decodeErr *textacquire.DecodeError
	if errors.As(err, &decodeErr) {
		return fiber.StatusUnprocessableEntity, "could not decode the document, try re-saving or paste the text manually", nil
	}

	var backendErr *analyze.BackendError
	if errors.As(err, &backendErr) {
		if backendErr.DescriptionTooShort {
			return fiber.StatusUnprocessableEntity, backendErr.Message, fiber.Map{"retry": true}
		}
		return fiber.StatusBadGateway, backendErr.Message, nil
	}

	log.Printf("unhandled error: %v", err)
	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
