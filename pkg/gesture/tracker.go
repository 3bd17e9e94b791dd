package gesture

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/rotator/internal/logging"
	"github.com/aretw0/rotator/pkg/clock"
	"github.com/aretw0/rotator/pkg/domain"
)

// DefaultQuietPeriod is how long the pointer must stay idle after a gesture
// before autoplay may resume.
const DefaultQuietPeriod = 5 * time.Second

// Handlers receive the tracker's decisions. Nil handlers are skipped.
// They are called without the tracker lock held.
type Handlers struct {
	// OnEngage fires when a gesture starts.
	OnEngage func()
	// OnSwipe fires for a recognized swipe (never with domain.None).
	OnSwipe func(domain.Direction)
	// OnQuiet fires once the quiet period elapsed without further interaction.
	OnQuiet func()
}

// Tracker follows one pointer from down to up.
type Tracker struct {
	mu         sync.Mutex
	recognizer Recognizer
	quiet      time.Duration
	clock      clock.Clock
	handlers   Handlers
	logger     *slog.Logger

	active bool
	startX float64
	timer  clock.Timer
	gen    uint64
	closed bool
}

// TrackerOption configures the Tracker.
type TrackerOption func(*Tracker)

// WithClock injects the time source for the quiet period.
func WithClock(c clock.Clock) TrackerOption {
	return func(t *Tracker) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithQuietPeriod sets the idle time before OnQuiet fires.
func WithQuietPeriod(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		if d > 0 {
			t.quiet = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTracker creates a Tracker.
func NewTracker(r Recognizer, h Handlers, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		recognizer: r,
		quiet:      DefaultQuietPeriod,
		clock:      clock.Real(),
		handlers:   h,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Recognizer returns the classifier in use.
func (t *Tracker) Recognizer() Recognizer {
	return t.recognizer
}

// Active reports whether a pointer is currently down.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// QuietPending reports whether an OnQuiet call is scheduled.
func (t *Tracker) QuietPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Down records the gesture start and cancels any pending quiet callback.
func (t *Tracker) Down(x float64) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.active = true
	t.startX = x
	t.cancelQuiet()
	h := t.handlers.OnEngage
	t.mu.Unlock()

	t.call("engage", h)
}

// Up classifies the gesture, reports a swipe if any and schedules OnQuiet.
// An Up without a preceding Down is ignored.
func (t *Tracker) Up(x float64) domain.Direction {
	t.mu.Lock()
	if t.closed || !t.active {
		t.mu.Unlock()
		return domain.None
	}
	t.active = false
	dir := t.recognizer.Classify(t.startX, x)
	t.scheduleQuiet()
	h := t.handlers.OnSwipe
	t.mu.Unlock()

	t.logger.Debug("gesture classified", "direction", dir.String())
	if dir != domain.None && h != nil {
		t.call("swipe", func() { h(dir) })
	}
	return dir
}

// Cancel drops the active gesture (e.g. pointer left the surface) and schedules OnQuiet.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || !t.active {
		return
	}
	t.active = false
	t.scheduleQuiet()
}

// Suppress cancels a pending quiet callback without touching the active gesture.
func (t *Tracker) Suppress() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelQuiet()
}

// Close drops all gesture state. Every later call is ignored.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.active = false
	t.cancelQuiet()
}

// scheduleQuiet (re)arms the quiet timer. Caller holds mu.
func (t *Tracker) scheduleQuiet() {
	t.cancelQuiet()
	gen := t.gen
	t.timer = t.clock.AfterFunc(t.quiet, func() { t.fireQuiet(gen) })
}

// cancelQuiet stops the quiet timer. Caller holds mu.
func (t *Tracker) cancelQuiet() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Tracker) fireQuiet(gen uint64) {
	t.mu.Lock()
	if t.closed || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	h := t.handlers.OnQuiet
	t.mu.Unlock()

	t.call("quiet", h)
}

// call runs a handler, logging a recovered panic.
func (t *Tracker) call(op string, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("gesture handler panicked", "op", op, "err", fmt.Errorf("panic: %v", r))
		}
	}()
	fn()
}
