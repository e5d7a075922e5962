package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "RiskDesk/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover converts handler panics into 500 responses instead of taking
// down the listener.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					l.Error("panic in handler",
						applogger.Error(err),
						applogger.String("path", c.Request().URL.Path),
						applogger.String("stack", string(debug.Stack())),
					)
					_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"status":  http.StatusInternalServerError,
						"message": "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}
