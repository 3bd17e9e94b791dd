package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/rotator/internal/logging"
	"github.com/aretw0/rotator/pkg/domain"
)

// StreamManager fans state diffs out to SSE clients.
//
// It follows the carousel through lifecycle hooks (transitions and autoplay
// toggles) or, when only a Carousel is available, through OnChange.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan []byte]struct{}
	last        *domain.State
	logger      *slog.Logger
}

// NewStreamManager creates an unseeded manager. Events are ignored until Seed.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[chan []byte]struct{}),
		logger:      logger,
	}
}

// Seed sets the baseline state diffs are computed against.
func (sm *StreamManager) Seed(s domain.State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.last == nil {
		sm.last = &s
	}
}

// Snapshot returns the state as last seen by the manager.
func (sm *StreamManager) Snapshot() (domain.State, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if sm.last == nil {
		return domain.State{}, false
	}
	return *sm.last, true
}

// Hooks returns lifecycle hooks that feed the stream.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			sm.Observe(e.Change)
		},
		OnAutoplay: func(_ context.Context, e *domain.AutoplayEvent) {
			sm.update(func(s *domain.State) { s.Autoplay = e.Enabled })
		},
	}
}

// Observe records an applied change.
func (sm *StreamManager) Observe(ch domain.Change) {
	sm.update(func(s *domain.State) {
		if ch.Epoch <= s.Epoch {
			return
		}
		s.Index = ch.Index
		s.Direction = ch.Direction
		s.Epoch = ch.Epoch
	})
}

func (sm *StreamManager) update(fn func(*domain.State)) {
	sm.mu.Lock()
	if sm.last == nil {
		sm.mu.Unlock()
		return
	}
	old := *sm.last
	next := old
	fn(&next)
	sm.last = &next
	diff := domain.Diff(&old, &next)
	sm.mu.Unlock()

	if diff == nil {
		return
	}
	msg, err := json.Marshal(diff)
	if err != nil {
		sm.logger.Error("sse: failed to marshal diff", "err", err)
		return
	}
	sm.Broadcast(msg)
}

// Subscribe registers a client. The returned function unregisters it and closes the channel.
func (sm *StreamManager) Subscribe() (chan []byte, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan []byte, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast sends msg to every client, dropping it for clients whose buffer is full.
func (sm *StreamManager) Broadcast(msg []byte) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("sse: broadcasting", "subscribers", len(sm.subscribers), "payload_size", len(msg))
	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("sse: client buffer full, dropping message")
		}
	}
}
