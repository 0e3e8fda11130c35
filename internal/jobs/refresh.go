// Package jobs runs scheduled background work.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
)

// TourRefresher rebuilds the tour data, bypassing the cache.
type TourRefresher interface {
	TourData(ctx context.Context, forceRefresh bool) (*domain.TourData, error)
}

// Scheduler refreshes the cached tour data on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	svc     TourRefresher
	timeout time.Duration
	log     zerolog.Logger
}

// NewScheduler registers the refresh job under spec, a standard five field
// cron expression or a descriptor such as "@every 6h".
func NewScheduler(spec string, svc TourRefresher, timeout time.Duration, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		svc:     svc,
		timeout: timeout,
		log:     log.With().Str("component", "refresh").Logger(),
	}
	if _, err := s.cron.AddFunc(spec, s.Run); err != nil {
		return nil, fmt.Errorf("jobs: invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

// Run performs one forced refresh.
func (s *Scheduler) Run() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	data, err := s.svc.TourData(ctx, true)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled tour refresh failed")
		return
	}
	s.log.Info().
		Int("shows", len(data.Shows)).
		Dur("took", time.Since(start)).
		Msg("tour data refreshed")
}

// Start begins running the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish or ctx
// to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
