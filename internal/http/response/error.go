package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/daily/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information. Details is always an array.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []ErrorField `json:"details"`
}

// ErrorField describes a field-specific error.
type ErrorField struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// Error codes.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeOutOfRange      = "OUT_OF_RANGE"
	CodeInternal        = "INTERNAL_ERROR"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// BadRequest sends a 400 for a request that could not be read at all,
// such as malformed JSON.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, CodeValidation, message, http.StatusBadRequest)
}

// ValidationError sends a 400 validation error with field details.
func ValidationError(w http.ResponseWriter, field, issue string) {
	write(w, http.StatusBadRequest, ErrorDetail{
		Code:    CodeValidation,
		Message: "validation failed",
		Details: []ErrorField{{Field: field, Issue: issue}},
	})
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, resource string) {
	Error(w, CodeNotFound, resource+" not found", http.StatusNotFound)
}

// OutOfRange sends a 400 for a positional argument outside its bounds.
func OutOfRange(w http.ResponseWriter, message string) {
	Error(w, CodeOutOfRange, message, http.StatusBadRequest)
}

// InternalError sends a 500 Internal Server Error.
// The error is logged server-side; the client only gets a generic message.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Internal server error", "error", err)
	}
	Error(w, CodeInternal, "an internal error occurred", http.StatusInternalServerError)
}

// Error sends a generic error response.
func Error(w http.ResponseWriter, code, message string, statusCode int) {
	write(w, statusCode, ErrorDetail{Code: code, Message: message, Details: []ErrorField{}})
}

func write(w http.ResponseWriter, statusCode int, detail ErrorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: detail})
}

// FromDomainError maps domain errors to HTTP responses.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Validation errors (400)
	case errors.Is(err, domain.ErrTitleRequired):
		ValidationError(w, "title", "required field missing")
	case errors.Is(err, domain.ErrCommentRequired):
		ValidationError(w, "text", "required field missing")
	case errors.Is(err, domain.ErrExpiredWithoutDueDate):
		ValidationError(w, "status", "expired requires a due date")
	case errors.Is(err, domain.ErrInvalidStatus):
		ValidationError(w, "status", "invalid status")
	case errors.Is(err, domain.ErrInvalidPriority):
		ValidationError(w, "priority", "must be one of Alta, Media, Baja")
	case errors.Is(err, domain.ErrInvalidCategory):
		ValidationError(w, "category", "must be one of Trabajo, Personal, Hogar, Estudios")
	case errors.Is(err, domain.ErrInvalidDueDate):
		ValidationError(w, "dueDate", "must be YYYY-MM-DD or an ISO 8601 date-time")
	case errors.Is(err, domain.ErrEmptyUpdateMask), errors.Is(err, domain.ErrUnknownField):
		ValidationError(w, "update_mask", err.Error())
	case errors.Is(err, domain.ErrInvalidBackup):
		ValidationError(w, "body", "backup must be a JSON array of tasks")
	case errors.Is(err, domain.ErrValidation):
		Error(w, CodeValidation, err.Error(), http.StatusBadRequest)

	// Not found errors (404)
	case errors.Is(err, domain.ErrTaskNotFound):
		NotFound(w, "task")
	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, "resource")

	// Positional errors (400)
	case errors.Is(err, domain.ErrOutOfRange):
		OutOfRange(w, err.Error())

	// Unknown errors (500) - Log server-side, return generic message to client
	default:
		InternalError(w, r, err)
	}
}
