package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubSweeper struct {
	swept chan time.Time
}

func (s *stubSweeper) Sweep(_ context.Context, now time.Time) (int64, error) {
	select {
	case s.swept <- now:
	default:
	}
	return 0, nil
}

func TestSchedulerRunsSweepImmediately(t *testing.T) {
	sweeper := &stubSweeper{swept: make(chan time.Time, 1)}
	s := NewScheduler(sweeper, time.Hour, zerolog.Nop())

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	select {
	case <-sweeper.swept:
	case <-time.After(2 * time.Second):
		t.Fatal("no sweep ran at startup")
	}
}

func TestSchedulerWithoutSweeper(t *testing.T) {
	s := NewScheduler(nil, time.Hour, zerolog.Nop())
	if err := s.Start(); err != nil {
		t.Fatalf("Start with nil sweeper: %v", err)
	}
}
