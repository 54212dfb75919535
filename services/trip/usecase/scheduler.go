package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fleetops/rosterd/internal/pkg/logger"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/services/trip"
)

// Scheduler runs the daily generation pass: once a day at the configured
// wall-clock time (UTC) it generates trips for the following day. It shares
// the exact same code path as the on-demand generate endpoint.
type Scheduler struct {
	tripUC trip.TripUC
	at     string // HH:MM
	stop   chan struct{}
	done   chan struct{}
}

// NewScheduler creates the daily generation scheduler
func NewScheduler(tripUC trip.TripUC, cfg models.SchedulerConfig) *Scheduler {
	return &Scheduler{
		tripUC: tripUC,
		at:     cfg.GenerateAt,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the scheduler loop.
func (s *Scheduler) Start() error {
	clock, err := time.Parse("15:04", s.at)
	if err != nil {
		return fmt.Errorf("invalid scheduler time %q, expected HH:MM: %w", s.at, err)
	}

	go s.run(clock.Hour(), clock.Minute())
	logger.WithFields(logrus.Fields{"generate_at": s.at}).Info("Trip generation scheduler started")
	return nil
}

// Stop halts the scheduler and waits for the loop to exit.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run(hour, minute int) {
	defer close(s.done)

	for {
		timer := time.NewTimer(time.Until(nextRun(time.Now().UTC(), hour, minute)))

		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		report, err := s.tripUC.GenerateTrips(ctx, time.Now().UTC().AddDate(0, 0, 1))
		cancel()

		if err != nil {
			logger.WithError(err).Error("Scheduled trip generation failed")
			continue
		}
		logger.WithFields(logrus.Fields{
			"date":          report.Date,
			"trips_created": report.TripsCreated,
		}).Info("Scheduled trip generation finished")
	}
}

// nextRun returns the next occurrence of hour:minute strictly after now.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
