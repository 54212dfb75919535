package usecase

import (
	"github.com/fleetops/rosterd/internal/pkg/models"
)

// Fairness weights. Weekend shifts cost the most, night shifts a bit less,
// and every shift adds a small base cost. Lower total score means the driver
// is more deserving of the next assignment.
const (
	weekendWeight = 2.0
	nightWeight   = 1.5
	shiftWeight   = 0.5
)

// fairnessScore computes a driver's monthly load score from the rotation
// ledger entry. A driver with no ledger entry scores 0.
func fairnessScore(entry *models.RotationEntry) float64 {
	if entry == nil {
		return 0
	}
	return float64(entry.WeekendCount)*weekendWeight +
		float64(entry.NightShiftCount)*nightWeight +
		float64(entry.TotalShifts)*shiftWeight
}

// confidence maps a fairness score to (0, 1]; lower scores give higher
// confidence.
func confidence(score float64) float64 {
	return 1 / (score + 1)
}

// reasoningFor renders the human-readable explanation shown next to each
// suggestion.
func reasoningFor(score float64) string {
	switch {
	case score == 0:
		return "New driver or no assignments this month - highly recommended"
	case score < 5:
		return "Low assignment count this month - good choice for fair rotation"
	case score < 10:
		return "Moderate assignment count - acceptable choice"
	default:
		return "High assignment count - consider other drivers for better fairness"
	}
}
