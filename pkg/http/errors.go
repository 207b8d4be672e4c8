package http

import (
	"fmt"
	"net/http"
)

// AppError is an API-level failure carrying the status it maps to. The
// wrapped cause stays out of the JSON body.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
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

// Wrap attaches the underlying cause.
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

// NotFoundErrorf builds a 404 error.
func NotFoundErrorf(format string, a ...interface{}) *AppError {
	return &AppError{
		Code:    "ERR_NOT_FOUND",
		Message: fmt.Sprintf(format, a...),
		Status:  http.StatusNotFound,
	}
}

// BadRequestErrorf builds a 400 error.
func BadRequestErrorf(format string, a ...interface{}) *AppError {
	return &AppError{
		Code:    "ERR_BAD_REQUEST",
		Message: fmt.Sprintf(format, a...),
		Status:  http.StatusBadRequest,
	}
}

// UpstreamErrorf builds a 502 error for failed backend calls.
func UpstreamErrorf(format string, a ...interface{}) *AppError {
	return &AppError{
		Code:    "ERR_UPSTREAM",
		Message: fmt.Sprintf(format, a...),
		Status:  http.StatusBadGateway,
	}
}
