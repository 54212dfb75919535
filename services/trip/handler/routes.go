package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fleetops/rosterd/internal/pkg/middleware"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/services/trip"
	triphttp "github.com/fleetops/rosterd/services/trip/handler/http"
)

// TripHandler wires the trip HTTP endpoints: admin trip management, the
// fleet map and the driver app surface.
type TripHandler struct {
	admin  *triphttp.TripHandler
	driver *triphttp.DriverHandler
	jwt    models.JWTConfig
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripUC trip.TripUC, jwt models.JWTConfig) *TripHandler {
	return &TripHandler{
		admin:  triphttp.NewTripHandler(tripUC),
		driver: triphttp.NewDriverHandler(tripUC),
		jwt:    jwt,
	}
}

// RegisterRoutes registers the trip API routes.
func (h *TripHandler) RegisterRoutes(e *echo.Echo) {
	auth := middleware.JWTAuthMiddleware(h.jwt)

	// Admin trip management
	admin := e.Group("/trips", auth, middleware.RequireRoles("admin"))
	admin.POST("", h.admin.CreateTrip)
	admin.POST("/generate", h.admin.GenerateTrips)
	admin.GET("", h.admin.ListTrips)
	admin.GET("/:id", h.admin.GetTrip)
	admin.PATCH("/:id", h.admin.UpdateTrip)
	admin.DELETE("/:id", h.admin.DeleteTrip)
	admin.GET("/:id/locations", h.admin.ListTripLocations)
	admin.GET("/:id/boardings", h.admin.ListTripBoardings)

	// Fleet map
	fleet := e.Group("/fleet", auth, middleware.RequireRoles("admin"))
	fleet.GET("/vehicles/locations", h.admin.ListVehiclePositions)
	fleet.GET("/vehicles/:id/location", h.admin.GetVehiclePosition)

	// Driver app
	driver := e.Group("/driver", auth, middleware.RequireRoles("driver"))
	driver.GET("/trips", h.driver.ListMyTrips)
	driver.GET("/trips/:id", h.driver.GetMyTrip)
	driver.POST("/trips/:id/start", h.driver.StartTrip)
	driver.POST("/trips/:id/complete", h.driver.CompleteTrip)
	driver.POST("/trips/:id/cancel", h.driver.CancelTrip)
	driver.POST("/trips/:id/location", h.driver.RecordLocation)
	driver.POST("/trips/:id/boarding", h.driver.RecordBoarding)
	driver.GET("/trips/:id/boarding", h.driver.ListBoardings)
}
