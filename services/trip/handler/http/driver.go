package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/middleware"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/internal/utils"
	"github.com/fleetops/rosterd/services/trip"
)

// DriverHandler handles the driver app endpoints. Every trip operation is
// scoped to the authenticated driver's own trips.
type DriverHandler struct {
	tripUC trip.TripUC
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(tripUC trip.TripUC) *DriverHandler {
	return &DriverHandler{tripUC: tripUC}
}

// ownTrip parses the trip id and confirms it belongs to the authenticated
// driver.
func (h *DriverHandler) ownTrip(c echo.Context) (uuid.UUID, error) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errs.Validationf("invalid trip id")
	}

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return uuid.Nil, errs.Validationf("missing authenticated user")
	}

	if err := h.tripUC.VerifyTripDriver(c.Request().Context(), tripID, userID); err != nil {
		return uuid.Nil, err
	}
	return tripID, nil
}

// ListMyTrips handles the driver's own trip listing
func (h *DriverHandler) ListMyTrips(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	trips, err := h.tripUC.DriverTrips(c.Request().Context(), userID, models.TripFilter{})
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trips retrieved successfully", trips)
}

// GetMyTrip handles single trip retrieval for the driver
func (h *DriverHandler) GetMyTrip(c echo.Context) error {
	tripID, err := h.ownTrip(c)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	t, err := h.tripUC.GetTrip(c.Request().Context(), tripID)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip retrieved successfully", t)
}

// StartTrip handles the driver starting a scheduled trip
func (h *DriverHandler) StartTrip(c echo.Context) error {
	tripID, err := h.ownTrip(c)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	t, err := h.tripUC.StartTrip(c.Request().Context(), tripID)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip started", t)
}

// CompleteTrip handles the driver completing an ongoing trip
func (h *DriverHandler) CompleteTrip(c echo.Context) error {
	tripID, err := h.ownTrip(c)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	var req trip.CompleteTripRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	t, err := h.tripUC.CompleteTrip(c.Request().Context(), tripID, req)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip completed", t)
}

// CancelTrip handles the driver cancelling a trip
func (h *DriverHandler) CancelTrip(c echo.Context) error {
	tripID, err := h.ownTrip(c)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	t, err := h.tripUC.CancelTrip(c.Request().Context(), tripID)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip cancelled", t)
}

// RecordLocation handles a GPS ping from the driver app
func (h *DriverHandler) RecordLocation(c echo.Context) error {
	tripID, err := h.ownTrip(c)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	var req trip.RecordLocationRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	update, err := h.tripUC.RecordLocation(c.Request().Context(), tripID, req)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location recorded", update)
}

// RecordBoarding handles a boarding status report from the driver app
func (h *DriverHandler) RecordBoarding(c echo.Context) error {
	tripID, err := h.ownTrip(c)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	var req trip.RecordBoardingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	record, err := h.tripUC.RecordBoarding(c.Request().Context(), tripID, req)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Boarding recorded", record)
}

// ListBoardings handles boarding log retrieval for the driver's trip
func (h *DriverHandler) ListBoardings(c echo.Context) error {
	tripID, err := h.ownTrip(c)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	records, err := h.tripUC.ListBoardings(c.Request().Context(), tripID)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Boarding records retrieved successfully", records)
}
