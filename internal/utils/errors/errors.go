package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel causes carried by AppError.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrBadRequest     = errors.New("bad request")
	ErrRejected       = errors.New("request rejected")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal error")
	ErrRateLimited    = errors.New("rate limited")
	ErrTimeout        = errors.New("timeout")
	ErrServiceUnavail = errors.New("service unavailable")
)

// AppError is an error with the HTTP status and the user-safe message the
// backend answers with.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
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

// Is matches another AppError by code, otherwise the wrapped cause.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Err, target)
}

// Envelope is the backend response body. Successful answers carry Data;
// rejections and faults carry only Message.
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// ToResponse converts an AppError to the response envelope.
func (e *AppError) ToResponse() Envelope {
	return Envelope{Message: e.Message}
}

type kind struct {
	code     string
	status   int
	cause    error
	fallback string
}

var (
	kindNotFound    = kind{"NOT_FOUND", http.StatusNotFound, ErrNotFound, "not found"}
	kindBadRequest  = kind{"BAD_REQUEST", http.StatusBadRequest, ErrBadRequest, "bad request"}
	kindRejected    = kind{"REJECTED", http.StatusUnprocessableEntity, ErrRejected, "request rejected"}
	kindConflict    = kind{"CONFLICT", http.StatusConflict, ErrConflict, "conflict"}
	kindRateLimited = kind{"RATE_LIMITED", http.StatusTooManyRequests, ErrRateLimited, "too many requests"}
	kindTimeout     = kind{"TIMEOUT", http.StatusGatewayTimeout, ErrTimeout, "request timeout"}
	kindUnavailable = kind{"SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, ErrServiceUnavail, "service temporarily unavailable"}
)

func (k kind) new(message string) *AppError {
	if message == "" {
		message = k.fallback
	}
	return &AppError{Code: k.code, Message: message, StatusCode: k.status, Err: k.cause}
}

// NotFound creates a not found error.
func NotFound(message string) *AppError { return kindNotFound.new(message) }

// BadRequest creates a bad request error.
func BadRequest(message string) *AppError { return kindBadRequest.new(message) }

// Rejected creates a business rejection. Clients show Message verbatim.
func Rejected(message string) *AppError { return kindRejected.new(message) }

// Conflict creates a conflict error for requests racing on the same key.
func Conflict(message string) *AppError { return kindConflict.new(message) }

// RateLimited creates a rate limited error.
func RateLimited(message string) *AppError { return kindRateLimited.new(message) }

// Timeout creates a timeout error.
func Timeout(message string) *AppError { return kindTimeout.new(message) }

// ServiceUnavailable creates a service unavailable error.
func ServiceUnavailable(message string) *AppError { return kindUnavailable.new(message) }

// Internal creates an internal error. Message must not carry err's detail.
func Internal(message string, err error) *AppError {
	if message == "" {
		message = "internal server error"
	}
	if err == nil {
		err = ErrInternal
	}
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// GetStatusCode returns the HTTP status for err.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	for _, k := range []kind{kindNotFound, kindBadRequest, kindRejected, kindConflict, kindRateLimited, kindTimeout, kindUnavailable} {
		if errors.Is(err, k.cause) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}

// IsRejection reports whether err is a business rejection.
func IsRejection(err error) bool {
	return errors.Is(err, ErrRejected)
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
