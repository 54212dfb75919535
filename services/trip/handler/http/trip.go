package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/internal/utils"
	"github.com/fleetops/rosterd/services/trip"
)

const dateLayout = "2006-01-02"

// TripHandler handles HTTP requests for trip operations
type TripHandler struct {
	tripUC trip.TripUC
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripUC trip.TripUC) *TripHandler {
	return &TripHandler{tripUC: tripUC}
}

// CreateTrip handles manual trip creation requests
func (h *TripHandler) CreateTrip(c echo.Context) error {
	var req trip.CreateTripRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	t, err := h.tripUC.CreateTrip(c.Request().Context(), req)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Trip created successfully", t)
}

// GenerateTrips handles on-demand trip generation. An empty date generates
// for tomorrow, matching the nightly run.
func (h *TripHandler) GenerateTrips(c echo.Context) error {
	var body struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&body); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	date := time.Now().UTC().AddDate(0, 0, 1)
	if body.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, body.Date, time.UTC)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	report, err := h.tripUC.GenerateTrips(c.Request().Context(), date)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip generation finished", report)
}

// ListTrips handles trip listing requests. Supported query params:
// driver_id, status (comma separated), limit.
func (h *TripHandler) ListTrips(c echo.Context) error {
	var filter models.TripFilter

	if v := c.QueryParam("driver_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid driver_id")
		}
		filter.DriverID = &id
	}
	if v := c.QueryParam("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			status := models.TripStatus(strings.TrimSpace(s))
			if !models.ValidTripStatus(status) {
				return utils.BadRequestResponse(c, "Invalid status "+string(status))
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return utils.BadRequestResponse(c, "Invalid limit")
		}
		filter.Limit = limit
	}

	trips, err := h.tripUC.ListTrips(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trips retrieved successfully", trips)
}

// GetTrip handles trip retrieval requests
func (h *TripHandler) GetTrip(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	t, err := h.tripUC.GetTrip(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip retrieved successfully", t)
}

// UpdateTrip handles trip update requests
func (h *TripHandler) UpdateTrip(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	var req trip.UpdateTripRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	t, err := h.tripUC.UpdateTrip(c.Request().Context(), id, req)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip updated successfully", t)
}

// DeleteTrip handles trip deletion requests
func (h *TripHandler) DeleteTrip(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	if err := h.tripUC.DeleteTrip(c.Request().Context(), id); err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip deleted successfully", nil)
}

// ListTripLocations handles GPS trail retrieval requests
func (h *TripHandler) ListTripLocations(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	samples, err := h.tripUC.ListLocations(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "GPS trail retrieved successfully", samples)
}

// ListTripBoardings handles boarding log retrieval requests
func (h *TripHandler) ListTripBoardings(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid trip ID")
	}

	records, err := h.tripUC.ListBoardings(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Boarding records retrieved successfully", records)
}

// ListVehiclePositions handles fleet map requests: the last known position
// of every tracked vehicle.
func (h *TripHandler) ListVehiclePositions(c echo.Context) error {
	positions, err := h.tripUC.VehiclePositions(c.Request().Context())
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Vehicle positions retrieved successfully", positions)
}

// GetVehiclePosition handles single-vehicle position requests
func (h *TripHandler) GetVehiclePosition(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid vehicle ID")
	}

	pos, err := h.tripUC.VehiclePosition(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Vehicle position retrieved successfully", pos)
}
