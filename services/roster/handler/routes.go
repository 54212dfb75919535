package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fleetops/rosterd/internal/pkg/middleware"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/services/roster"
	rosterhttp "github.com/fleetops/rosterd/services/roster/handler/http"
)

// RosterHandler wires the roster HTTP endpoints.
type RosterHandler struct {
	http *rosterhttp.RosterHandler
	jwt  models.JWTConfig
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterUC roster.RosterUC, jwt models.JWTConfig) *RosterHandler {
	return &RosterHandler{
		http: rosterhttp.NewRosterHandler(rosterUC),
		jwt:  jwt,
	}
}

// RegisterRoutes registers the roster API routes. All roster management is
// admin-only.
func (h *RosterHandler) RegisterRoutes(e *echo.Echo) {
	admin := e.Group("/rosters")
	admin.Use(middleware.JWTAuthMiddleware(h.jwt), middleware.RequireRoles("admin"))

	admin.POST("", h.http.CreateAssignment)
	admin.GET("", h.http.ListAssignments)
	admin.GET("/suggestions", h.http.SuggestDrivers)
	admin.GET("/:id", h.http.GetAssignment)
	admin.PATCH("/:id", h.http.UpdateAssignment)
	admin.DELETE("/:id", h.http.DeleteAssignment)
}
