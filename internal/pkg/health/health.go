package health

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Checker verifies one dependency.
type Checker func(ctx context.Context) error

// Service aggregates dependency checks for the health endpoint.
type Service struct {
	checkers map[string]Checker
}

// NewService creates an empty health service.
func NewService() *Service {
	return &Service{checkers: make(map[string]Checker)}
}

// AddChecker registers a named dependency check.
func (s *Service) AddChecker(name string, c Checker) {
	s.checkers[name] = c
}

type status struct {
	Status string            `json:"status"`
	App    string            `json:"app"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Register mounts GET /health on the Echo instance.
func (s *Service) Register(e *echo.Echo, appName string) {
	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		resp := status{Status: "ok", App: appName, Checks: make(map[string]string, len(s.checkers))}
		code := http.StatusOK

		for name, check := range s.checkers {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
			} else {
				resp.Checks[name] = "ok"
			}
		}

		return c.JSON(code, resp)
	})
}
