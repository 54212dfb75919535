package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

func TestNextRun(t *testing.T) {
	testCases := []struct {
		name     string
		now      time.Time
		hour     int
		minute   int
		expected time.Time
	}{
		{
			name:     "Before target time runs today",
			now:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			hour:     0, minute: 5,
			expected: time.Date(2026, 9, 7, 0, 5, 0, 0, time.UTC),
		},
		{
			name:     "After target time rolls to tomorrow",
			now:      time.Date(2026, 9, 7, 0, 6, 0, 0, time.UTC),
			hour:     0, minute: 5,
			expected: time.Date(2026, 9, 8, 0, 5, 0, 0, time.UTC),
		},
		{
			name:     "Exactly at target time rolls to tomorrow",
			now:      time.Date(2026, 9, 7, 0, 5, 0, 0, time.UTC),
			hour:     0, minute: 5,
			expected: time.Date(2026, 9, 8, 0, 5, 0, 0, time.UTC),
		},
		{
			name:     "Month boundary",
			now:      time.Date(2026, 9, 30, 23, 59, 0, 0, time.UTC),
			hour:     0, minute: 5,
			expected: time.Date(2026, 10, 1, 0, 5, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, nextRun(tc.now, tc.hour, tc.minute))
		})
	}
}

func TestScheduler_RejectsBadClock(t *testing.T) {
	_, _, _, _, _, uc := setupTripUC()

	s := NewScheduler(uc, models.SchedulerConfig{GenerateAt: "25:99"})
	assert.Error(t, s.Start())
}

func TestScheduler_StartStop(t *testing.T) {
	_, _, _, _, _, uc := setupTripUC()

	s := NewScheduler(uc, models.SchedulerConfig{GenerateAt: "00:05"})
	require.NoError(t, s.Start())
	s.Stop()
}
