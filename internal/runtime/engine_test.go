package runtime

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/rotator/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_NotifiesOncePerTransition(t *testing.T) {
	e := NewEngine(domain.NewState(5, 0, true), WithName("testimonials"))
	ctx := context.Background()

	var got []domain.Change
	e.Subscribe(func(c domain.Change) { got = append(got, c) })

	_, err := e.Dispatch(ctx, domain.Next(), domain.SourceAPI)
	require.NoError(t, err)
	_, err = e.Dispatch(ctx, domain.SetAutoplay(false), domain.SourceAPI)
	require.NoError(t, err)
	_, err = e.Dispatch(ctx, domain.GotoIndex(1), domain.SourceAPI) // already there
	require.NoError(t, err)
	_, err = e.Dispatch(ctx, domain.GotoIndex(9), domain.SourceAPI)
	require.ErrorIs(t, err, domain.ErrInvalidIndex)

	require.Len(t, got, 1)
	assert.Equal(t, domain.Change{Index: 1, Direction: domain.Forward, Epoch: 1, Source: domain.SourceAPI}, got[0])
}

func TestEngine_HooksReceiveEvents(t *testing.T) {
	var transitions []*domain.TransitionEvent
	var rejects []*domain.RejectEvent
	var autoplay []*domain.AutoplayEvent

	e := NewEngine(domain.NewState(3, 0, true),
		WithName("hero"),
		WithLifecycleHooks(domain.LifecycleHooks{
			OnTransition: func(_ context.Context, ev *domain.TransitionEvent) { transitions = append(transitions, ev) },
			OnReject:     func(_ context.Context, ev *domain.RejectEvent) { rejects = append(rejects, ev) },
			OnAutoplay:   func(_ context.Context, ev *domain.AutoplayEvent) { autoplay = append(autoplay, ev) },
		}),
	)
	ctx := context.Background()

	e.Dispatch(ctx, domain.Prev(), domain.SourceGesture)
	e.Dispatch(ctx, domain.SetAutoplay(false), domain.SourceHover)
	e.Dispatch(ctx, domain.SetAutoplay(false), domain.SourceHover) // idempotent
	e.Dispatch(ctx, domain.Next(), domain.SourceAutoplay)          // dropped while disabled
	e.Dispatch(ctx, domain.GotoIndex(-1), domain.SourceAPI)

	require.Len(t, transitions, 1)
	assert.Equal(t, 0, transitions[0].From)
	assert.Equal(t, 2, transitions[0].Index)
	assert.Equal(t, domain.Backward, transitions[0].Direction)
	assert.Equal(t, "hero", transitions[0].Carousel)

	require.Len(t, autoplay, 1)
	assert.False(t, autoplay[0].Enabled)
	assert.Equal(t, domain.SourceHover, autoplay[0].Source)

	require.Len(t, rejects, 2)
	assert.Equal(t, domain.ReasonAutoplayDisabled, rejects[0].Reason)
	assert.Equal(t, domain.ReasonInvalidIndex, rejects[1].Reason)
	assert.ErrorIs(t, rejects[1].Err, domain.ErrInvalidIndex)

	assert.Equal(t, 2, e.State().Index)
}

func TestEngine_AutoplayTickDroppedWhileDisabled(t *testing.T) {
	e := NewEngine(domain.NewState(5, 0, false))
	s, err := e.Dispatch(context.Background(), domain.Next(), domain.SourceAutoplay)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, uint64(0), s.Epoch)

	// Explicit navigation is never gated by autoplay.
	s, err = e.Dispatch(context.Background(), domain.Next(), domain.SourceAPI)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Index)
}

func TestEngine_ClosedDiscardsSilently(t *testing.T) {
	e := NewEngine(domain.NewState(5, 2, true))
	fired := false
	e.Subscribe(func(domain.Change) { fired = true })

	e.Close()
	e.Close()

	s, err := e.Dispatch(context.Background(), domain.Next(), domain.SourceAutoplay)
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Index)

	_, err = e.Dispatch(context.Background(), domain.GotoIndex(99), domain.SourceAPI)
	assert.NoError(t, err, "post-teardown intents are discarded, not reported")

	assert.False(t, fired)
	assert.True(t, e.Closed())
}

func TestEngine_ReentrantSubscriberKeepsOrder(t *testing.T) {
	e := NewEngine(domain.NewState(5, 0, true))
	ctx := context.Background()

	var seen []int
	e.Subscribe(func(c domain.Change) {
		seen = append(seen, c.Index)
		if c.Index == 1 {
			// Re-entering from a callback must neither deadlock nor reorder.
			e.Dispatch(ctx, domain.Next(), domain.SourceAPI)
		}
	})

	e.Dispatch(ctx, domain.Next(), domain.SourceAPI)
	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, 2, e.State().Index)
}

func TestEngine_SubscriberPanicIsContained(t *testing.T) {
	e := NewEngine(domain.NewState(3, 0, true))
	var after []int
	e.Subscribe(func(domain.Change) { panic("renderer exploded") })
	e.Subscribe(func(c domain.Change) { after = append(after, c.Index) })

	assert.NotPanics(t, func() {
		e.Dispatch(context.Background(), domain.Next(), domain.SourceAPI)
	})
	assert.Equal(t, []int{1}, after)
}

func TestEngine_Unsubscribe(t *testing.T) {
	e := NewEngine(domain.NewState(3, 0, true))
	count := 0
	unsub := e.Subscribe(func(domain.Change) { count++ })

	e.Dispatch(context.Background(), domain.Next(), domain.SourceAPI)
	unsub()
	unsub()
	e.Dispatch(context.Background(), domain.Next(), domain.SourceAPI)

	assert.Equal(t, 1, count)
}

func TestEngine_ConcurrentProducersAreSerialized(t *testing.T) {
	const n = 7
	e := NewEngine(domain.NewState(n, 0, true))
	ctx := context.Background()

	var mu sync.Mutex
	var epochs []uint64
	e.Subscribe(func(c domain.Change) {
		mu.Lock()
		epochs = append(epochs, c.Epoch)
		mu.Unlock()
	})

	const perProducer = 200
	var wg sync.WaitGroup
	producers := []struct {
		intent domain.Intent
		src    domain.Source
	}{
		{domain.Next(), domain.SourceAutoplay},
		{domain.Next(), domain.SourceGesture},
		{domain.Prev(), domain.SourceAPI},
		{domain.Next(), domain.SourceAPI},
	}
	for _, p := range producers {
		wg.Add(1)
		go func(in domain.Intent, src domain.Source) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				e.Dispatch(ctx, in, src)
			}
		}(p.intent, p.src)
	}
	wg.Wait()

	// Net displacement: three forward producers, one backward.
	want := domain.Wrap(2*perProducer, n)
	s := e.State()
	assert.Equal(t, want, s.Index)
	assert.Equal(t, uint64(4*perProducer), s.Epoch, "no intent lost or merged")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, epochs, 4*perProducer)
	for i, ep := range epochs {
		assert.Equal(t, uint64(i+1), ep, "notifications delivered in apply order")
	}
}

func TestEngine_DispatchIfGuardRunsUnderLock(t *testing.T) {
	var events int
	e := NewEngine(domain.NewState(5, 0, false),
		WithLifecycleHooks(domain.LifecycleHooks{
			OnAutoplay: func(context.Context, *domain.AutoplayEvent) { events++ },
		}),
	)
	ctx := context.Background()

	var seen domain.State
	s, err := e.DispatchIf(ctx, domain.SetAutoplay(true), domain.SourceQuiet, func(cur domain.State) bool {
		seen = cur
		return false
	})
	require.NoError(t, err)
	assert.False(t, s.Autoplay)
	assert.False(t, e.State().Autoplay)
	assert.Equal(t, 0, events, "a refused intent notifies nobody")
	assert.Equal(t, e.State(), seen)

	s, err = e.DispatchIf(ctx, domain.SetAutoplay(true), domain.SourceQuiet, func(domain.State) bool { return true })
	require.NoError(t, err)
	assert.True(t, s.Autoplay)
	assert.Equal(t, 1, events)
}

func TestEngine_AutoplayCheckPrecedesGuard(t *testing.T) {
	var rejects []*domain.RejectEvent
	e := NewEngine(domain.NewState(5, 0, false),
		WithLifecycleHooks(domain.LifecycleHooks{
			OnReject: func(_ context.Context, ev *domain.RejectEvent) { rejects = append(rejects, ev) },
		}),
	)

	called := false
	e.DispatchIf(context.Background(), domain.Next(), domain.SourceAutoplay, func(domain.State) bool {
		called = true
		return true
	})
	assert.False(t, called)
	require.Len(t, rejects, 1)
	assert.Equal(t, domain.ReasonAutoplayDisabled, rejects[0].Reason)
}

func TestEngine_TransitionFollowerSeesChangeBeforeSubscribers(t *testing.T) {
	var order []string
	var followed []domain.Change

	e := NewEngine(domain.NewState(3, 0, true),
		WithTransitionFollower(func(ch domain.Change) {
			followed = append(followed, ch)
			order = append(order, "follower")
		}),
	)
	e.Subscribe(func(domain.Change) { order = append(order, "subscriber") })
	ctx := context.Background()

	e.Dispatch(ctx, domain.Next(), domain.SourceAPI)
	e.Dispatch(ctx, domain.SetAutoplay(false), domain.SourceAPI) // no transition
	e.Dispatch(ctx, domain.GotoIndex(1), domain.SourceAPI)       // already there

	require.Len(t, followed, 1)
	assert.Equal(t, domain.Change{Index: 1, Direction: domain.Forward, Epoch: 1, Source: domain.SourceAPI}, followed[0])
	assert.Equal(t, []string{"follower", "subscriber"}, order)
}

func TestEngine_FollowerPanicIsContained(t *testing.T) {
	e := NewEngine(domain.NewState(3, 0, true),
		WithTransitionFollower(func(domain.Change) { panic("boom") }),
	)
	var s domain.State
	assert.NotPanics(t, func() { s, _ = e.Dispatch(context.Background(), domain.Next(), domain.SourceAPI) })
	assert.Equal(t, 1, s.Index)
}
