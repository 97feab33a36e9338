package models

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error codes recognized by the API. Each maps to a fixed HTTP status.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimit    = "RATE_LIMIT_EXCEEDED"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
	CodeUnknown      = "UNKNOWN_ERROR"
)

// AppError is the application error type. Code and Status are stable parts
// of the API contract; Err carries the underlying cause and is logged but
// never returned to the caller for 5xx-class errors.
type AppError struct {
	Code    string
	Message string
	Status  int
	Details string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed or out-of-range input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Status: fiber.StatusBadRequest}
}

// NewValidationFieldError reports a validation failure with field-level detail.
func NewValidationFieldError(message, details string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Details: details, Status: fiber.StatusBadRequest}
}

// NewUnauthorizedError reports a missing or invalid caller identity.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Status: fiber.StatusUnauthorized}
}

// NewForbiddenError reports an authenticated caller lacking ownership or permission.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message, Status: fiber.StatusForbidden}
}

// NewNotFoundError reports an absent entity.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
		Status:  fiber.StatusNotFound,
	}
}

// NewConflictError reports a uniqueness violation surfaced from storage.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Status: fiber.StatusConflict}
}

// NewRateLimitError reports an exceeded rate-limit policy. retryAfter is the
// remaining window and is surfaced in the message so clients can back off.
func NewRateLimitError(retryAfter time.Duration) *AppError {
	return &AppError{
		Code:    CodeRateLimit,
		Message: fmt.Sprintf("Rate limit exceeded, retry in %s", retryAfter.Round(time.Second)),
		Status:  fiber.StatusTooManyRequests,
	}
}

// NewInternalError wraps an unexpected error. The cause is logged server-side
// and never leaked to the caller.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Status: fiber.StatusInternalServerError, Err: err}
}

// Classify normalizes any error into an AppError. Storage errors are mapped
// to the taxonomy: record-not-found becomes NOT_FOUND and unique-constraint
// violations become CONFLICT; everything unrecognized becomes UNKNOWN_ERROR.
func Classify(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &AppError{Code: CodeNotFound, Message: "Resource not found", Status: fiber.StatusNotFound, Err: err}
	}
	if isUniqueViolation(err) {
		return &AppError{Code: CodeConflict, Message: "Resource already exists", Status: fiber.StatusConflict, Err: err}
	}
	return &AppError{Code: CodeUnknown, Message: "An unexpected error occurred", Status: fiber.StatusInternalServerError, Err: err}
}

// isUniqueViolation reports whether err is a uniqueness violation, either as
// translated by GORM or as a raw PostgreSQL 23505 driver error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Envelope is the uniform response shape returned by every handler.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Code       string      `json:"code,omitempty"`
	StatusCode int         `json:"statusCode,omitempty"`
	Details    string      `json:"details,omitempty"`
}

// RespondWithData writes a success envelope with the given status.
func RespondWithData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: data})
}

// RespondWithError normalizes err into a failure envelope. The status comes
// from the classified error, 4xx failures are logged at warn and 5xx at
// error, and internal causes are never included in the response body.
func RespondWithError(c *fiber.Ctx, err error) error {
	appErr := Classify(err)

	attrs := []any{
		slog.String("code", appErr.Code),
		slog.Int("status", appErr.Status),
		slog.String("path", c.Path()),
	}
	if appErr.Err != nil {
		attrs = append(attrs, slog.String("cause", appErr.Err.Error()))
	}
	if appErr.Status >= fiber.StatusInternalServerError {
		slog.Default().ErrorContext(c.UserContext(), appErr.Message, attrs...)
	} else {
		slog.Default().WarnContext(c.UserContext(), appErr.Message, attrs...)
	}

	return c.Status(appErr.Status).JSON(Envelope{
		Success:    false,
		Error:      appErr.Message,
		Code:       appErr.Code,
		StatusCode: appErr.Status,
		Details:    appErr.Details,
	})
}
