package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgconn"
)

// Sentinel errors for the domain taxonomy. Callers classify with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrValidation        = errors.New("validation failed")
)

// NotFoundf wraps ErrNotFound with a descriptive message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Conflictf wraps ErrConflict with a descriptive message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// InvalidTransitionf wraps ErrInvalidTransition with a descriptive message.
func InvalidTransitionf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidTransition)
}

// Validationf wraps ErrValidation with a descriptive message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

func IsNotFound(err error) bool          { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool          { return errors.Is(err, ErrConflict) }
func IsInvalidTransition(err error) bool { return errors.Is(err, ErrInvalidTransition) }
func IsValidation(err error) bool        { return errors.Is(err, ErrValidation) }

// Postgres error codes re-classified at the repository boundary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ClassifyPg maps constraint violations from the store into the domain
// taxonomy. Other errors pass through unchanged.
func ClassifyPg(err error, context string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Conflictf("%s: duplicate key (%s)", context, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return Conflictf("%s: still referenced (%s)", context, pgErr.ConstraintName)
		}
	}
	return err
}

// HTTPStatus maps a domain error to the HTTP status handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	case IsInvalidTransition(err):
		return http.StatusUnprocessableEntity
	case IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
