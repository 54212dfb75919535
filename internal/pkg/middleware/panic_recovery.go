package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/rosterd/internal/pkg/logger"
	"github.com/fleetops/rosterd/internal/utils"
)

// PanicRecoveryMiddleware converts panics into 500 responses and logs the
// stack trace. Registered first so it wraps every other middleware.
func PanicRecoveryMiddleware(al *logger.AppLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					al.WithFields(logrus.Fields{
						"panic": fmt.Sprintf("%v", r),
						"path":  c.Request().URL.Path,
						"stack": string(debug.Stack()),
					}).Error("Recovered from panic")

					err = utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Internal server error")
				}
			}()
			return next(c)
		}
	}
}
