package report

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler drives the two calendar-boundary report hooks. The cron entries
// only forward to the exported boundary methods, which are idempotent (full
// artifact overwrite) and safe to call late or repeatedly — a missed monthly
// firing is additionally covered by the dashboard's EnsureMonthly backfill.
type Scheduler struct {
	cron *cron.Cron
	mat  *Materializer
	now  func() time.Time
}

// NewScheduler wires the materializer to cron triggers. now may be nil
// (wall clock); tests freeze it to exercise the boundary math.
func NewScheduler(mat *Materializer, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{cron: cron.New(), mat: mat, now: now}
}

// Start registers the midnight triggers and launches the cron loop.
func (s *Scheduler) Start() error {
	// Daily snapshot for the day that just ended.
	if _, err := s.cron.AddFunc("0 0 * * *", s.DailyBoundary); err != nil {
		return err
	}
	// Monthly document for the month that just ended.
	if _, err := s.cron.AddFunc("0 0 1 * *", s.MonthlyBoundary); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Msg("report scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("report scheduler stopped")
}

// DailyBoundary materializes the previous day's snapshot. Fired shortly
// after midnight.
func (s *Scheduler) DailyBoundary() {
	yesterday := s.now().AddDate(0, 0, -1)
	name, err := s.mat.WriteDaily(context.Background(), yesterday)
	if err != nil {
		log.Error().Err(err).Msg("scheduled daily report failed")
		return
	}
	log.Info().Str("artifact", name).Msg("scheduled daily report written")
}

// MonthlyBoundary materializes the previous month's document. Fired shortly
// after midnight on day 1.
func (s *Scheduler) MonthlyBoundary() {
	now := s.now()
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	name, err := s.mat.WriteMonthly(context.Background(), prev.Year(), prev.Month())
	if err != nil {
		log.Error().Err(err).Msg("scheduled monthly report failed")
		return
	}
	log.Info().Str("artifact", name).Msg("scheduled monthly report written")
}
