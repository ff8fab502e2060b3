package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper is the listing-expiration pass the scheduler drives.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler runs the expiration sweep once at startup and then on a fixed
// interval. A failed sweep is logged and retried at the next tick; expiry
// state self-heals, so nothing escalates from here.
type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	interval time.Duration
	log      zerolog.Logger
}

func NewScheduler(sweeper Sweeper, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		sweeper:  sweeper,
		interval: interval,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if s.sweeper == nil {
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = time.Hour
	}

	if _, err := s.cron.AddFunc("@every "+interval.String(), s.runSweep); err != nil {
		return err
	}

	go s.runSweep() // immediate pass on startup

	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits briefly for an in-flight sweep.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("sweep still running at shutdown")
	}
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	count, err := s.sweeper.Sweep(ctx, now)
	if err != nil {
		s.log.Error().Err(err).Msg("expiration sweep failed")
		return
	}
	if count > 0 {
		s.log.Info().Int64("expired", count).Time("at", now).Msg("auto-expired listings")
	}
}
