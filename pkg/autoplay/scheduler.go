// Package autoplay provides the repeating timer that advances a carousel.
//
// A Scheduler calls its tick function after every full interval while it is
// running. It can be paused, resumed (counting restarts from zero, so there is
// no burst when a user stops interacting) and stopped for good. Start, Pause,
// Resume and Stop are idempotent.
package autoplay

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/rotator/internal/logging"
	"github.com/aretw0/rotator/pkg/clock"
)

// DefaultInterval matches the reference testimonial rotator: five items cycle in 25s.
const DefaultInterval = 5 * time.Second

// Status is the scheduler lifecycle position.
//
//	        Start()          Pause()
//	Idle ──────────► Running ◄──────► Paused
//	                    │     Resume()    │
//	                    └──── Stop() ─────┴──► Stopped
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Scheduler is a pausable repeating timer.
type Scheduler struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	tick     func(token uint64)
	logger   *slog.Logger

	status Status
	timer  clock.Timer
	// gen invalidates timers that fired concurrently with Pause/Reset/Stop.
	gen uint64
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithClock injects the time source.
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an idle scheduler. A non-positive interval falls back to DefaultInterval.
// tick receives a token that stays Current until the countdown is paused,
// reset or stopped.
func New(interval time.Duration, tick func(token uint64), opts ...Option) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Scheduler{
		clock:    clock.Real(),
		interval: interval,
		tick:     tick,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval returns the configured tick interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Status returns the current lifecycle position.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Start begins ticking from an idle scheduler. It has no effect otherwise.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusIdle {
		return
	}
	s.status = StatusRunning
	s.arm()
}

// Pause suspends ticking. It has no effect unless running.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusRunning {
		return
	}
	s.status = StatusPaused
	s.disarm()
}

// Resume restarts ticking after a Pause, counting a full interval from now.
// It has no effect unless paused.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusPaused {
		return
	}
	s.status = StatusRunning
	s.arm()
}

// Reset restarts the countdown from zero while running.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusRunning {
		return
	}
	s.disarm()
	s.arm()
}

// Current reports whether token belongs to the countdown still running.
// A tick whose token is no longer current raced with Pause, Reset or Stop.
func (s *Scheduler) Current(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusRunning && s.gen == token
}

// Stop cancels the scheduler permanently. No tick is emitted afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusStopped {
		return
	}
	s.status = StatusStopped
	s.disarm()
}

// arm schedules the next tick. Caller holds mu.
func (s *Scheduler) arm() {
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.interval, func() { s.fire(gen) })
}

// disarm cancels the pending tick. Caller holds mu.
func (s *Scheduler) disarm() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.status != StatusRunning {
		s.mu.Unlock()
		return
	}
	s.arm()
	token := s.gen
	tick := s.tick
	s.mu.Unlock()

	if tick == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("autoplay tick panicked", "err", fmt.Errorf("panic: %v", r))
		}
	}()
	tick(token)
}
