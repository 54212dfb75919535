package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// EchoMiddleware logs every request with method, path, status and latency.
func EchoMiddleware(al *AppLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			latency := time.Since(start)
			status := c.Response().Status

			entry := al.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     status,
				"latency_ms": latency.Milliseconds(),
				"client_ip":  c.RealIP(),
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			})

			switch {
			case status >= 500:
				if err != nil {
					entry = entry.WithError(err)
				}
				entry.Error("Server error")
			case status >= 400:
				entry.Warn("Client error")
			default:
				entry.Info("Request processed")
			}

			return nil
		}
	}
}
