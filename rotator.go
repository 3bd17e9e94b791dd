package rotator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/rotator/internal/logging"
	"github.com/aretw0/rotator/internal/runtime"
	"github.com/aretw0/rotator/pkg/autoplay"
	"github.com/aretw0/rotator/pkg/clock"
	"github.com/aretw0/rotator/pkg/domain"
	"github.com/aretw0/rotator/pkg/gesture"
)

// Controller is the high-level entry point for the rotator library.
// It owns one carousel's state and arbitrates between autoplay ticks, gestures
// and explicit navigation, funneling all of them through a single engine.
type Controller struct {
	engine    *runtime.Engine
	scheduler *autoplay.Scheduler
	tracker   *gesture.Tracker

	hovering  atomic.Bool
	closeOnce sync.Once

	Name string

	// Resolved configuration.
	count     int
	start     int
	autoplay  bool
	interval  time.Duration
	threshold float64
	quiet     time.Duration
	reading   gesture.ReadingDirection
	clock     clock.Clock
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithInterval sets the autoplay interval (default 5s).
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.interval = d
	}
}

// WithSwipeThreshold sets the minimum travel of a swipe (default 50).
func WithSwipeThreshold(d float64) Option {
	return func(c *Controller) {
		c.threshold = d
	}
}

// WithQuietPeriod sets how long the pointer must stay idle after a gesture
// before autoplay resumes (default 5s).
func WithQuietPeriod(d time.Duration) Option {
	return func(c *Controller) {
		c.quiet = d
	}
}

// WithReadingDirection sets the gesture sign mapping (default RTL).
func WithReadingDirection(r gesture.ReadingDirection) Option {
	return func(c *Controller) {
		c.reading = r
	}
}

// WithStartIndex sets the initially active item (default 0).
func WithStartIndex(i int) Option {
	return func(c *Controller) {
		c.start = i
	}
}

// WithAutoplay sets whether autoplay is enabled at creation (default true).
func WithAutoplay(enabled bool) Option {
	return func(c *Controller) {
		c.autoplay = enabled
	}
}

// WithClock injects the time source for autoplay and the quiet period.
func WithClock(cl clock.Clock) Option {
	return func(c *Controller) {
		c.clock = cl
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithName labels the carousel in logs, events and metrics.
func WithName(name string) Option {
	return func(c *Controller) {
		c.Name = name
	}
}

// New creates a controller for a fixed collection of count items and starts
// its autoplay scheduler. Call Close when the carousel goes away.
func New(count int, opts ...Option) (*Controller, error) {
	c := &Controller{
		count:     count,
		autoplay:  true,
		interval:  autoplay.DefaultInterval,
		threshold: gesture.DefaultThreshold,
		quiet:     gesture.DefaultQuietPeriod,
		reading:   gesture.RTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if count < 1 {
		return nil, domain.ErrEmptyCollection
	}
	if c.start < 0 || c.start >= count {
		return nil, fmt.Errorf("start index: %w", &domain.IndexError{Index: c.start, Count: count})
	}
	if c.clock == nil {
		c.clock = clock.Real()
	}
	// Ensure logger is initialized (so we don't pass nil down, which would overwrite defaults)
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.Name != "" {
		c.logger = c.logger.With("carousel", c.Name)
	}

	c.scheduler = autoplay.New(c.interval, c.tick,
		autoplay.WithClock(c.clock),
		autoplay.WithLogger(c.logger),
	)
	c.engine = runtime.NewEngine(
		domain.NewState(count, c.start, c.autoplay),
		runtime.WithLifecycleHooks(c.hooks),
		runtime.WithLogger(c.logger),
		runtime.WithName(c.Name),
		runtime.WithNow(c.clock.Now),
		runtime.WithAutoplayFollower(c.follow),
		runtime.WithTransitionFollower(c.moved),
	)
	c.tracker = gesture.NewTracker(
		gesture.NewRecognizer(c.threshold, c.reading),
		gesture.Handlers{
			OnEngage: c.engage,
			OnSwipe:  c.swipe,
			OnQuiet:  c.quietElapsed,
		},
		gesture.WithClock(c.clock),
		gesture.WithQuietPeriod(c.quiet),
		gesture.WithLogger(c.logger),
	)

	c.scheduler.Start()
	if !c.autoplay {
		c.scheduler.Pause()
	}

	c.logger.Debug("carousel created",
		"count", count,
		"start", c.start,
		"autoplay", c.autoplay,
		"interval", c.interval,
		"reading", c.reading.String(),
	)
	return c, nil
}

// Next advances one item, wrapping after the last.
func (c *Controller) Next(ctx context.Context) domain.State {
	s, _ := c.engine.Dispatch(ctx, domain.Next(), domain.SourceAPI)
	return s
}

// Previous moves back one item, wrapping before the first.
func (c *Controller) Previous(ctx context.Context) domain.State {
	s, _ := c.engine.Dispatch(ctx, domain.Prev(), domain.SourceAPI)
	return s
}

// GoTo jumps to item i. It returns an error wrapping domain.ErrInvalidIndex
// when i is outside [0, Count) and leaves the state unchanged.
func (c *Controller) GoTo(ctx context.Context, i int) (domain.State, error) {
	return c.engine.Dispatch(ctx, domain.GotoIndex(i), domain.SourceAPI)
}

// Pause stops autoplay emission. The index is never touched.
func (c *Controller) Pause(ctx context.Context) {
	c.pause(ctx, domain.SourceAPI)
}

// Resume re-enables autoplay; the next tick comes one full interval later.
func (c *Controller) Resume(ctx context.Context) {
	c.resume(ctx, domain.SourceAPI)
}

// OnChange registers fn to be called once per applied transition.
// It returns a function that removes the subscription.
func (c *Controller) OnChange(fn func(domain.Change)) func() {
	return c.engine.Subscribe(fn)
}

// State returns a snapshot of the carousel state.
func (c *Controller) State() domain.State {
	return c.engine.State()
}

// AutoplayEnabled reports whether autoplay ticks may currently advance the carousel.
func (c *Controller) AutoplayEnabled() bool {
	return c.engine.State().Autoplay
}

// Count returns the size of the item collection.
func (c *Controller) Count() int {
	return c.count
}

// Interval returns the autoplay interval in use.
func (c *Controller) Interval() time.Duration {
	return c.scheduler.Interval()
}

// ReadingDirection returns the gesture sign mapping in use.
func (c *Controller) ReadingDirection() gesture.ReadingDirection {
	return c.reading
}

// PointerDown signals the start of a gesture at horizontal position x.
// Autoplay pauses until the quiet period after the gesture ends.
func (c *Controller) PointerDown(x float64) {
	c.tracker.Down(x)
}

// PointerUp signals the end of a gesture and returns the recognized direction
// (domain.None when the travel did not exceed the threshold).
func (c *Controller) PointerUp(x float64) domain.Direction {
	return c.tracker.Up(x)
}

// PointerCancel drops the active gesture without navigating.
func (c *Controller) PointerCancel() {
	c.tracker.Cancel()
}

// HoverEnter pauses autoplay while the pointer rests on the carousel.
func (c *Controller) HoverEnter() {
	c.hovering.Store(true)

	c.tracker.Suppress()
	c.pause(context.Background(), domain.SourceHover)
}

// HoverLeave resumes autoplay immediately.
func (c *Controller) HoverLeave() {
	c.hovering.Store(false)

	c.resume(context.Background(), domain.SourceHover)
}

// Close tears the carousel down: pending intents are discarded, the scheduler
// is canceled and gesture state is dropped. Close is idempotent.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.engine.Close()
		c.scheduler.Stop()
		c.tracker.Close()
	})
	return nil
}

func (c *Controller) pause(ctx context.Context, src domain.Source) {
	c.engine.Dispatch(ctx, domain.SetAutoplay(false), src)
}

func (c *Controller) resume(ctx context.Context, src domain.Source) {
	c.engine.Dispatch(ctx, domain.SetAutoplay(true), src)
}

// follow keeps the scheduler in step with the autoplay flag. It runs under the
// engine lock, so flag and scheduler can never disagree.
func (c *Controller) follow(enabled bool) {
	if enabled {
		c.scheduler.Resume()
		return
	}
	c.scheduler.Pause()
}

// moved restarts the countdown after any user-driven transition, under the
// engine lock, so autoplay never fires right after a manual move.
func (c *Controller) moved(ch domain.Change) {
	if ch.Source != domain.SourceAutoplay {
		c.scheduler.Reset()
	}
}

// tick is the scheduler callback. A tick whose countdown was reset or paused
// while it waited for the engine is dropped.
func (c *Controller) tick(token uint64) {
	c.engine.DispatchIf(context.Background(), domain.Next(), domain.SourceAutoplay, func(domain.State) bool {
		return c.scheduler.Current(token)
	})
}

func (c *Controller) engage() {
	c.pause(context.Background(), domain.SourceGesture)
}

func (c *Controller) swipe(dir domain.Direction) {
	in := domain.Next()
	if dir == domain.Backward {
		in = domain.Prev()
	}
	c.engine.Dispatch(context.Background(), in, domain.SourceGesture)
}

// quietElapsed resumes autoplay after a gesture unless the pointer hovers.
// The hover flag is read under the engine lock; HoverEnter sets it before
// dispatching its pause, so either the resume is refused or the pause lands
// after it.
func (c *Controller) quietElapsed() {
	c.engine.DispatchIf(context.Background(), domain.SetAutoplay(true), domain.SourceQuiet, func(domain.State) bool {
		return !c.hovering.Load()
	})
}
