package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/services/roster"
)

func setupRosterUC() (*fakeRosterRepo, *fakeRegistry, *fakeRosterGW, roster.RosterUC) {
	repo := newFakeRosterRepo()
	registry := newFakeRegistry()
	gw := &fakeRosterGW{}
	return repo, registry, gw, NewRosterUC(repo, registry, gw)
}

func validCreateRequest(registry *fakeRegistry) roster.CreateAssignmentRequest {
	driver := registry.addDriver("budi")
	vehicle := registry.addVehicle()
	route := registry.addRoute()
	return roster.CreateAssignmentRequest{
		DriverID:  driver.ID,
		VehicleID: vehicle.ID,
		RouteID:   route.ID,
		Date:      "2026-09-07",
		ShiftType: models.ShiftMorning,
	}
}

func TestCreateAssignment_Success(t *testing.T) {
	repo, registry, gw, uc := setupRosterUC()

	req := validCreateRequest(registry)
	req.EmployeeIDs = []uuid.UUID{uuid.New(), uuid.New()}

	created, err := uc.CreateAssignment(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, req.DriverID, created.DriverID)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), created.Date)
	assert.Len(t, created.EmployeeIDs, 2)
	assert.Len(t, repo.assignments, 1)

	// Created event published
	require.Len(t, gw.published, 1)
	assert.Equal(t, created.ID, gw.published[0].ID)
}

func TestCreateAssignment_PublishFailureDoesNotFail(t *testing.T) {
	_, registry, gw, uc := setupRosterUC()
	gw.err = assert.AnError

	created, err := uc.CreateAssignment(context.Background(), validCreateRequest(registry))
	require.NoError(t, err)
	assert.NotNil(t, created)
}

func TestCreateAssignment_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(registry *fakeRegistry, req *roster.CreateAssignmentRequest)
	}{
		{
			name: "Bad date",
			mutate: func(_ *fakeRegistry, req *roster.CreateAssignmentRequest) {
				req.Date = "07-09-2026"
			},
		},
		{
			name: "Bad shift type",
			mutate: func(_ *fakeRegistry, req *roster.CreateAssignmentRequest) {
				req.ShiftType = "graveyard"
			},
		},
		{
			name: "Bad trip type",
			mutate: func(_ *fakeRegistry, req *roster.CreateAssignmentRequest) {
				req.TripType = "loop"
			},
		},
		{
			name: "Bad scheduled time",
			mutate: func(_ *fakeRegistry, req *roster.CreateAssignmentRequest) {
				s := "25:99"
				req.ScheduledTime = &s
			},
		},
		{
			name: "Unknown driver",
			mutate: func(_ *fakeRegistry, req *roster.CreateAssignmentRequest) {
				req.DriverID = uuid.New()
			},
		},
		{
			name: "Unknown vehicle",
			mutate: func(_ *fakeRegistry, req *roster.CreateAssignmentRequest) {
				req.VehicleID = uuid.New()
			},
		},
		{
			name: "Unknown route",
			mutate: func(_ *fakeRegistry, req *roster.CreateAssignmentRequest) {
				req.RouteID = uuid.New()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, registry, _, uc := setupRosterUC()
			req := validCreateRequest(registry)
			tc.mutate(registry, &req)

			_, err := uc.CreateAssignment(context.Background(), req)
			assert.True(t, errs.IsValidation(err), "expected validation error, got %v", err)
			assert.Empty(t, repo.assignments)
		})
	}
}

func TestUpdateAssignment(t *testing.T) {
	_, registry, _, uc := setupRosterUC()

	created, err := uc.CreateAssignment(context.Background(), validCreateRequest(registry))
	require.NoError(t, err)

	status := models.AssignmentStatusCancelled
	notes := "driver called in sick"
	updated, err := uc.UpdateAssignment(context.Background(), created.ID, roster.UpdateAssignmentRequest{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusCancelled, updated.Status)
	assert.Equal(t, notes, updated.Notes)

	bad := models.AssignmentStatus("limbo")
	_, err = uc.UpdateAssignment(context.Background(), created.ID, roster.UpdateAssignmentRequest{Status: &bad})
	assert.True(t, errs.IsValidation(err))
}

func TestDeleteAssignment_NotFound(t *testing.T) {
	_, _, _, uc := setupRosterUC()
	err := uc.DeleteAssignment(context.Background(), uuid.New())
	assert.True(t, errs.IsNotFound(err))
}
