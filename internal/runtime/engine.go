package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/rotator/internal/logging"
	"github.com/aretw0/rotator/pkg/domain"
)

// Engine is the single serialization point of a carousel.
// Every producer (scheduler tick, gesture, explicit call) goes through Dispatch,
// which applies one intent at a time against the latest state.
type Engine struct {
	mu       sync.Mutex
	state    domain.State
	closed   bool
	subs     []subscriber
	nextSub  int
	queue    []notification
	draining bool

	hooks  domain.LifecycleHooks
	follow func(enabled bool)
	moved  func(domain.Change)
	logger *slog.Logger
	name   string
	now    func() time.Time
}

type subscriber struct {
	id int
	fn func(domain.Change)
}

// notification is a queued delivery. Exactly one event pointer is set.
type notification struct {
	transition *domain.TransitionEvent
	reject     *domain.RejectEvent
	autoplay   *domain.AutoplayEvent
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithAutoplayFollower registers fn to be called whenever the autoplay flag
// flips. It runs while the state lock is held, so fn must not call back into
// the engine; it exists to keep a scheduler in step with the flag.
func WithAutoplayFollower(fn func(enabled bool)) EngineOption {
	return func(e *Engine) {
		e.follow = fn
	}
}

// WithTransitionFollower registers fn to be called for every applied
// transition. Like the autoplay follower it runs under the state lock and
// must not call back into the engine.
func WithTransitionFollower(fn func(domain.Change)) EngineOption {
	return func(e *Engine) {
		e.moved = fn
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithName labels events with a carousel name.
func WithName(name string) EngineOption {
	return func(e *Engine) {
		e.name = name
	}
}

// WithNow sets the time source used to stamp events.
func WithNow(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine owning initial.
func NewEngine(initial domain.State, opts ...EngineOption) *Engine {
	e := &Engine{
		state:  initial,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Subscribe registers fn to be called once per applied transition, in apply order.
// The returned function removes the subscription; it is safe to call more than once.
func (e *Engine) Subscribe(fn func(domain.Change)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || fn == nil {
		return func() {}
	}
	e.nextSub++
	id := e.nextSub
	e.subs = append(e.subs, subscriber{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch applies one intent and returns the resulting state.
//
// Intents from the autoplay source that would move the index are dropped while
// autoplay is disabled. After Close every intent is silently discarded and the
// last state is returned with a nil error.
func (e *Engine) Dispatch(ctx context.Context, in domain.Intent, src domain.Source) (domain.State, error) {
	return e.DispatchIf(ctx, in, src, nil)
}

// DispatchIf is Dispatch with a guard evaluated under the state lock, after
// the autoplay check. When guard returns false the intent is dropped without
// notifications and the current state is returned with a nil error.
// guard must not call back into the engine.
func (e *Engine) DispatchIf(ctx context.Context, in domain.Intent, src domain.Source, guard func(domain.State) bool) (domain.State, error) {
	e.mu.Lock()
	if e.closed {
		s := e.state
		e.mu.Unlock()
		return s, nil
	}

	prev := e.state
	if src == domain.SourceAutoplay && in.Moves() && !prev.Autoplay {
		e.enqueue(notification{reject: &domain.RejectEvent{
			EventBase: e.base(domain.EventRejected),
			Intent:    in,
			Source:    src,
			Reason:    domain.ReasonAutoplayDisabled,
		}})
		e.mu.Unlock()
		e.drain(ctx)
		return prev, nil
	}

	if guard != nil && !guard(prev) {
		e.mu.Unlock()
		e.logger.Debug("intent dropped", "intent", in.String(), "source", string(src))
		return prev, nil
	}

	next, err := Apply(prev, in)
	if err != nil {
		e.enqueue(notification{reject: &domain.RejectEvent{
			EventBase: e.base(domain.EventRejected),
			Intent:    in,
			Source:    src,
			Reason:    domain.ReasonInvalidIndex,
			Err:       err,
		}})
		e.mu.Unlock()
		e.drain(ctx)
		return prev, err
	}

	e.state = next
	if next.Epoch != prev.Epoch {
		change := domain.Change{
			Index:     next.Index,
			Direction: next.Direction,
			Epoch:     next.Epoch,
			Source:    src,
		}
		if e.moved != nil {
			e.safeCall("follower.transition", func() { e.moved(change) })
		}
		e.enqueue(notification{transition: &domain.TransitionEvent{
			EventBase: e.base(domain.EventTransition),
			Intent:    in,
			From:      prev.Index,
			Change:    change,
		}})
	}
	if next.Autoplay != prev.Autoplay {
		if e.follow != nil {
			e.safeCall("follower.autoplay", func() { e.follow(next.Autoplay) })
		}
		e.enqueue(notification{autoplay: &domain.AutoplayEvent{
			EventBase: e.base(domain.EventAutoplay),
			Enabled:   next.Autoplay,
			Source:    src,
		}})
	}
	e.mu.Unlock()

	e.drain(ctx)
	return next, nil
}

// Close tears the engine down. Queued notifications are dropped and later
// intents are discarded. Close is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.queue = nil
	e.subs = nil
	e.logger.Debug("carousel closed", "index", e.state.Index, "epoch", e.state.Epoch)
}

// base stamps an event. Caller holds mu.
func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: t, Carousel: e.name}
}

// enqueue appends a notification. Caller holds mu.
func (e *Engine) enqueue(n notification) {
	e.queue = append(e.queue, n)
}

// drain delivers queued notifications in order. Only one goroutine drains at a
// time; reentrant or concurrent callers return immediately and their
// notifications are picked up by the active drainer.
func (e *Engine) drain(ctx context.Context) {
	e.mu.Lock()
	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true
	for len(e.queue) > 0 && !e.closed {
		n := e.queue[0]
		e.queue = e.queue[1:]
		subs := append([]subscriber(nil), e.subs...)
		e.mu.Unlock()

		e.deliver(ctx, n, subs)

		e.mu.Lock()
	}
	e.draining = false
	e.mu.Unlock()
}

func (e *Engine) deliver(ctx context.Context, n notification, subs []subscriber) {
	switch {
	case n.transition != nil:
		ev := n.transition
		e.logger.Debug("transition applied",
			"from", ev.From,
			"index", ev.Index,
			"direction", ev.Direction.String(),
			"source", string(ev.Source),
			"epoch", ev.Epoch,
		)
		if e.hooks.OnTransition != nil {
			e.safeCall("hook.transition", func() { e.hooks.OnTransition(ctx, ev) })
		}
		for _, s := range subs {
			fn := s.fn
			e.safeCall("subscriber", func() { fn(ev.Change) })
		}

	case n.reject != nil:
		ev := n.reject
		e.logger.Debug("intent rejected",
			"intent", ev.Intent.String(),
			"source", string(ev.Source),
			"reason", ev.Reason,
		)
		if e.hooks.OnReject != nil {
			e.safeCall("hook.reject", func() { e.hooks.OnReject(ctx, ev) })
		}

	case n.autoplay != nil:
		ev := n.autoplay
		e.logger.Debug("autoplay changed", "enabled", ev.Enabled, "source", string(ev.Source))
		if e.hooks.OnAutoplay != nil {
			e.safeCall("hook.autoplay", func() { e.hooks.OnAutoplay(ctx, ev) })
		}
	}
}

// safeCall runs fn and logs a recovered panic instead of propagating it.
func (e *Engine) safeCall(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("callback panicked",
				"op", op,
				"err", fmt.Errorf("panic: %v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}
