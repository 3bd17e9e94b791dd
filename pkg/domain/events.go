package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransition EventType = "transition"
	EventRejected   EventType = "rejected"
	EventAutoplay   EventType = "autoplay"
	EventPanic      EventType = "panic"
)

// Change is delivered to subscribers once per applied transition.
type Change struct {
	Index     int       `json:"index"`
	Direction Direction `json:"direction"`
	Epoch     uint64    `json:"epoch"`
	Source    Source    `json:"source"`
}

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Carousel  string    `json:"carousel,omitempty"`
}

// TransitionEvent describes an applied index transition.
type TransitionEvent struct {
	EventBase
	Intent Intent `json:"-"`
	From   int    `json:"from"`
	Change
}

// RejectEvent describes an intent that was refused (invalid index, autoplay disabled).
type RejectEvent struct {
	EventBase
	Intent Intent `json:"-"`
	Source Source `json:"source"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// AutoplayEvent describes a change of the autoplay flag.
type AutoplayEvent struct {
	EventBase
	Enabled bool   `json:"enabled"`
	Source  Source `json:"source"`
}

// Reject reasons.
const (
	ReasonInvalidIndex     = "invalid_index"
	ReasonAutoplayDisabled = "autoplay_disabled"
)

// LifecycleHooks defines callbacks for controller observability.
// Hooks run on the goroutine that applied the intent, outside the state lock.
type LifecycleHooks struct {
	OnTransition func(context.Context, *TransitionEvent)
	OnReject     func(context.Context, *RejectEvent)
	OnAutoplay   func(context.Context, *AutoplayEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition: chain(h.OnTransition, other.OnTransition),
		OnReject:     chain(h.OnReject, other.OnReject),
		OnAutoplay:   chain(h.OnAutoplay, other.OnAutoplay),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
