package handler

import (
	"github.com/gofiber/fiber/v2"

	"datasetregistry/internal/http/middleware"
	"datasetregistry/internal/service"
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
// - code: machine-readable short error code (e.g., "INVALID_ID", "DATASET_NOT_FOUND", "INTERNAL_ERROR")
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

type errorMapping struct {
	status  int
	message string
}

// Validation errors are 400, state and limit errors 409, so a client can
// tell "fix your input" from "the records cannot take this change".
var serviceErrors = map[string]errorMapping{
	service.CodeFileNameTooLong:         {fiber.StatusBadRequest, "file name exceeds 100 bytes"},
	service.CodeInvalidQualityScore:     {fiber.StatusBadRequest, "quality score must be between 0 and 100"},
	service.CodeFileTooLarge:            {fiber.StatusBadRequest, "file size exceeds 100 MiB"},
	service.CodeDataURITooLong:          {fiber.StatusBadRequest, "data uri exceeds 128 bytes"},
	service.CodeInvalidIdentity:         {fiber.StatusBadRequest, "identity must be a base58 encoded 32-byte key"},
	service.CodeInvalidContentHash:      {fiber.StatusBadRequest, "content hash must be 64 hex characters"},
	service.CodeIDRequired:              {fiber.StatusBadRequest, "id is required"},
	service.CodeInvalidFile:             {fiber.StatusBadRequest, "cannot read uploaded file"},
	service.CodeSizeRequired:            {fiber.StatusBadRequest, "content length is required"},
	service.CodeNumericalOverflow:       {fiber.StatusConflict, "counter limit reached"},
	service.CodeDatasetInactive:         {fiber.StatusConflict, "dataset is inactive"},
	service.CodeInvalidReputationUpdate: {fiber.StatusConflict, "reputation does not belong to the contributor"},
	service.CodeAlreadyExists:           {fiber.StatusConflict, "record already exists"},
	service.CodeUnauthorizedUpdate:      {fiber.StatusForbidden, "only the contributor may update this dataset"},
	service.CodeUnauthorized:            {fiber.StatusForbidden, "caller is not authorized for this operation"},
	service.CodeRegistryNotFound:        {fiber.StatusNotFound, "registry not found"},
	service.CodeReputationNotFound:      {fiber.StatusNotFound, "reputation not found"},
	service.CodeDatasetNotFound:         {fiber.StatusNotFound, "dataset not found"},
	service.CodeStorageUnavailable:      {fiber.StatusServiceUnavailable, "object storage is not configured"},
}

// writeServiceError maps a service error onto its status, code and safe message.
func writeServiceError(c *fiber.Ctx, err error) error {
	code := service.ErrorCode(err)
	if m, ok := serviceErrors[code]; ok {
		return writeError(c, m.status, code, m.message)
	}
	return writeError(c, fiber.StatusInternalServerError, service.CodeInternal, "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
