package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestSentinelWrapping(t *testing.T) {
	err := NotFoundf("trip %s", "abc")
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "trip abc")

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsNotFound(wrapped))

	assert.True(t, IsConflict(Conflictf("dup")))
	assert.True(t, IsInvalidTransition(InvalidTransitionf("bad move")))
	assert.True(t, IsValidation(Validationf("bad input")))
}

func TestClassifyPg(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		conflict bool
	}{
		{
			name:     "Unique violation",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "idx_trips_identity"},
			conflict: true,
		},
		{
			name:     "Foreign key violation",
			err:      &pgconn.PgError{Code: "23503", ConstraintName: "trips_driver_id_fkey"},
			conflict: true,
		},
		{
			name:     "Other pg error passes through",
			err:      &pgconn.PgError{Code: "42601"},
			conflict: false,
		},
		{
			name:     "Plain error passes through",
			err:      errors.New("connection reset"),
			conflict: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyPg(tc.err, "insert trip")
			assert.Equal(t, tc.conflict, IsConflict(got))
		})
	}

	assert.NoError(t, ClassifyPg(nil, "noop"))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundf("x")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflictf("x")))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(InvalidTransitionf("x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validationf("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
