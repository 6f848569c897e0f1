package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"vendorportal/internal/http/middleware"
	"vendorportal/internal/portal"
	"vendorportal/internal/report"
	"vendorportal/internal/service"
	"vendorportal/internal/upload"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "UPSTREAM_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service and upstream failures to the error envelope.
// Validation messages and upstream API messages are user-facing and passed through.
// Upstream 401/403 keep their status so the portal can send the vendor back to login.
func writeServiceError(c *fiber.Ctx, err error) error {
	var (
		ve     upload.ValidationError
		apiErr *portal.APIError
	)
	switch {
	case errors.As(err, &ve):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_VENDOR_ID", "vendor id is required")
	case errors.Is(err, report.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusBadRequest, "INVALID_FORMAT", "format must be csv, xlsx or pdf")
	case errors.Is(err, upload.ErrUploadInProgress):
		return writeError(c, fiber.StatusConflict, "UPLOAD_IN_PROGRESS", "an upload is already in progress")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "upload not found")
	case errors.Is(err, service.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "bearer token required")
	case errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusUnauthorized:
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", portal.Message(err))
	case errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusForbidden:
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", portal.Message(err))
	case errors.As(err, &apiErr):
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", portal.Message(err))
	}

	zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("request_failed")
	if errors.Is(err, service.ErrStorageUpload) {
		return writeError(c, fiber.StatusBadGateway, "STORAGE_ERROR", portal.FallbackMessage)
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
