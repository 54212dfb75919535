package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
)

const maxSuggestions = 5

// SuggestDrivers ranks drivers for the given date by fairness score
// ascending. Drivers already holding any assignment on that date are
// excluded. Ties break on driver id so the ranking is deterministic.
func (uc *RosterUC) SuggestDrivers(ctx context.Context, date time.Time, routeID uuid.UUID) ([]models.DriverSuggestion, error) {
	if _, err := uc.registry.GetRoute(ctx, routeID); err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Validationf("route %s does not exist", routeID)
		}
		return nil, err
	}

	drivers, err := uc.registry.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}

	month := models.MonthOf(date)
	suggestions := make([]models.DriverSuggestion, 0, len(drivers))

	for _, driver := range drivers {
		assigned, err := uc.repo.DriverAssignedOn(ctx, driver.ID, date)
		if err != nil {
			return nil, err
		}
		if assigned {
			continue
		}

		entry, err := uc.repo.GetRotation(ctx, driver.ID, month)
		if err != nil {
			return nil, err
		}

		score := fairnessScore(entry)
		suggestions = append(suggestions, models.DriverSuggestion{
			Driver:     driver,
			Score:      score,
			Confidence: confidence(score),
			Reasoning:  reasoningFor(score),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score < suggestions[j].Score
		}
		return suggestions[i].Driver.ID.String() < suggestions[j].Driver.ID.String()
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}
