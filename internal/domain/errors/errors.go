package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError carrying the same error code, so WithDetails copies
// still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	ErrInvalidCoordinates = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATES",
		"Latitude must be within [-90, 90] and longitude within [-180, 180]",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrInterestsRejected = NewBaseError(
		http.StatusBadRequest,
		"INTERESTS_REJECTED",
		"The interest description was rejected; please describe the events you would like to attend",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// upstreamFailure holds what both upstream error kinds report: which provider
// failed and the status text it returned.
type upstreamFailure struct {
	provider   string
	status     string
	statusCode int
	cause      error
}

// Status returns the provider's status description, verbatim
func (e *upstreamFailure) Status() string {
	return e.status
}

// StatusCode returns the provider's HTTP status code, or 0 for transport failures
func (e *upstreamFailure) StatusCode() int {
	return e.statusCode
}

// HTTPCode returns the HTTP status code
func (e *upstreamFailure) HTTPCode() int {
	return http.StatusBadGateway
}

// Message returns the user-friendly error message, including the provider status
func (e *upstreamFailure) Message() string {
	return e.provider + " request failed: " + e.status
}

// Details returns detailed error information
func (e *upstreamFailure) Details() string {
	return e.status
}

// Error implements the error interface
func (e *upstreamFailure) Error() string {
	if e.cause != nil {
		return errors.Wrap(e.cause, e.Message()).Error()
	}

	return e.Message()
}

// Unwrap exposes the transport error, if any
func (e *upstreamFailure) Unwrap() error {
	return e.cause
}

// UpstreamFetchError reports that the event feed did not answer successfully.
type UpstreamFetchError struct {
	upstreamFailure
}

// NewUpstreamFetchError creates a feed failure from a non-success status.
// statusCode is 0 and cause non-nil when the request never got a response.
func NewUpstreamFetchError(statusCode int, status string, cause error) *UpstreamFetchError {
	return &UpstreamFetchError{upstreamFailure{
		provider:   "event feed",
		status:     status,
		statusCode: statusCode,
		cause:      cause,
	}}
}

// ErrorCode returns the business error code
func (e *UpstreamFetchError) ErrorCode() string {
	return "UPSTREAM_FETCH_FAILED"
}

// UpstreamScoringError reports that the completion provider did not answer successfully.
type UpstreamScoringError struct {
	upstreamFailure
}

// NewUpstreamScoringError creates a completion failure from a non-success status.
func NewUpstreamScoringError(statusCode int, status string, cause error) *UpstreamScoringError {
	return &UpstreamScoringError{upstreamFailure{
		provider:   "completion provider",
		status:     status,
		statusCode: statusCode,
		cause:      cause,
	}}
}

// ErrorCode returns the business error code
func (e *UpstreamScoringError) ErrorCode() string {
	return "UPSTREAM_SCORING_FAILED"
}
