package middleware

import (
	"errors"
	"log"

	"resume-analyzer/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       any
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

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

// Middleware renders returned errors and recovered panics as the JSON
// envelope. Messages and data of 5xx errors are hidden, except for 503 which
// keeps its data so clients can tell a missing dependency from a crash.
func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("panic recovered method=%s path=%s err=%v", c.Method(), c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= 500 {
			m.logger.Printf("http_error method=%s path=%s status=%d err=%v", c.Method(), c.Path(), status, err)
		}
		return response.Error(c, status, msg, data)
	}
}

func normalizeError(err error) (int, string, any) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		switch {
		case status <= 0:
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		case status == fiber.StatusServiceUnavailable:
			return status, messageOrDefault(appErr.Message, status), appErr.Data
		case status >= 500:
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, messageOrDefault(appErr.Message, status), appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		switch {
		case status <= 0:
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		case status == fiber.StatusServiceUnavailable:
			return status, response.MessageServiceUnavailable, nil
		case status >= 500:
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, messageOrDefault(fiberErr.Message, status), nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}

func messageOrDefault(msg string, status int) string {
	if msg == "" {
		return response.DefaultMessage(status)
	}
	return msg
}
