package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "BitSense/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns handler panics into 500 responses. The panic value and
// stack go to the log; the response is rendered by the server's error
// handler like any other failure.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	if l == nil {
		l = applogger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					rerr, ok := r.(error)
					if !ok {
						rerr = fmt.Errorf("%v", r)
					}
					l.Error("panic recovered",
						applogger.Error(rerr),
						applogger.String("stack", string(debug.Stack())),
					)
					err = echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
				}
			}()
			return next(c)
		}
	}
}
