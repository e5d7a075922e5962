package middleware

import (
	"time"

	applogger "RiskDesk/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging emits one structured log line per request. 5xx responses
// log at error level, everything else at debug.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			fields := []applogger.Field{
				applogger.String("method", c.Request().Method),
				applogger.String("path", c.Request().URL.Path),
				applogger.Int("status", c.Response().Status),
				applogger.Duration("duration", time.Since(start)),
			}
			if c.Response().Status >= 500 {
				l.Error("http request failed", fields...)
			} else {
				l.Debug("http request", fields...)
			}
			return err
		}
	}
}
