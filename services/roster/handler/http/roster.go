package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/internal/utils"
	"github.com/fleetops/rosterd/services/roster"
)

const dateLayout = "2006-01-02"

// RosterHandler handles HTTP requests for roster operations
type RosterHandler struct {
	rosterUC roster.RosterUC
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterUC roster.RosterUC) *RosterHandler {
	return &RosterHandler{rosterUC: rosterUC}
}

// CreateAssignment handles assignment creation requests
func (h *RosterHandler) CreateAssignment(c echo.Context) error {
	var req roster.CreateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	assignment, err := h.rosterUC.CreateAssignment(c.Request().Context(), req)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Assignment created successfully", assignment)
}

// GetAssignment handles assignment retrieval requests
func (h *RosterHandler) GetAssignment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid assignment ID")
	}

	assignment, err := h.rosterUC.GetAssignment(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Assignment retrieved successfully", assignment)
}

// ListAssignments handles assignment listing requests. Supported query
// params: date, driver_id, vehicle_id, from, to.
func (h *RosterHandler) ListAssignments(c echo.Context) error {
	var filter models.AssignmentFilter

	if v := c.QueryParam("date"); v != "" {
		date, err := time.ParseInLocation(dateLayout, v, time.UTC)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid date, expected YYYY-MM-DD")
		}
		filter.Date = &date
	}
	if v := c.QueryParam("driver_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid driver_id")
		}
		filter.DriverID = &id
	}
	if v := c.QueryParam("vehicle_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid vehicle_id")
		}
		filter.VehicleID = &id
	}
	if v := c.QueryParam("from"); v != "" {
		from, err := time.ParseInLocation(dateLayout, v, time.UTC)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid from date, expected YYYY-MM-DD")
		}
		filter.FromDate = &from
	}
	if v := c.QueryParam("to"); v != "" {
		to, err := time.ParseInLocation(dateLayout, v, time.UTC)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid to date, expected YYYY-MM-DD")
		}
		filter.ToDate = &to
	}

	assignments, err := h.rosterUC.ListAssignments(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Assignments retrieved successfully", assignments)
}

// UpdateAssignment handles assignment update requests
func (h *RosterHandler) UpdateAssignment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid assignment ID")
	}

	var req roster.UpdateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	assignment, err := h.rosterUC.UpdateAssignment(c.Request().Context(), id, req)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Assignment updated successfully", assignment)
}

// DeleteAssignment handles assignment deletion requests
func (h *RosterHandler) DeleteAssignment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid assignment ID")
	}

	if err := h.rosterUC.DeleteAssignment(c.Request().Context(), id); err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Assignment deleted successfully", nil)
}

// SuggestDrivers handles driver suggestion requests. Requires date and
// route_id query params.
func (h *RosterHandler) SuggestDrivers(c echo.Context) error {
	date, err := time.ParseInLocation(dateLayout, c.QueryParam("date"), time.UTC)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid date, expected YYYY-MM-DD")
	}

	routeID, err := uuid.Parse(c.QueryParam("route_id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid route_id")
	}

	suggestions, err := h.rosterUC.SuggestDrivers(c.Request().Context(), date, routeID)
	if err != nil {
		return utils.ErrorResponseHandler(c, errs.HTTPStatus(err), err.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Driver suggestions retrieved successfully", suggestions)
}
