package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response wrapper. The transport status is always
// 200; Status carries the application outcome so every consumer of the
// board surface reads one shape.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError describes one rejected request field.
type ValidationError struct {
	Code    string                 `json:"code,omitempty"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// writeEnvelope renders data under the uniform wrapper.
func writeEnvelope(c echo.Context, status int, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{
		Status:  status,
		Message: http.StatusText(status),
		Data:    data,
	})
}

// SuccessResponse writes a 200 envelope.
func SuccessResponse(c echo.Context, data interface{}) error {
	return writeEnvelope(c, http.StatusOK, data)
}

// BadRequestResponse writes a 400 envelope, typically carrying validation
// errors as data.
func BadRequestResponse(c echo.Context, data interface{}) error {
	return writeEnvelope(c, http.StatusBadRequest, data)
}

// NotFoundResponse writes a 404 envelope.
func NotFoundResponse(c echo.Context, data interface{}) error {
	return writeEnvelope(c, http.StatusNotFound, data)
}

// InternalServerErrorResponse writes a 500 envelope with no cause attached.
func InternalServerErrorResponse(c echo.Context) error {
	return writeEnvelope(c, http.StatusInternalServerError, nil)
}

// ErrorResponse renders any error through the envelope: AppErrors keep
// their status and code, echo errors keep their status, anything else
// becomes an opaque 500.
func ErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return writeEnvelope(c, appErr.Status, []*AppError{appErr})
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return writeEnvelope(c, httpErr.Code, httpErr.Message)
	}
	return InternalServerErrorResponse(c)
}
