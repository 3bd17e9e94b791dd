package gesture_test

import (
	"testing"
	"time"

	"github.com/aretw0/rotator/pkg/clock"
	"github.com/aretw0/rotator/pkg/domain"
	"github.com/aretw0/rotator/pkg/gesture"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	engaged int
	swipes  []domain.Direction
	quiet   int
}

func (r *recorder) handlers() gesture.Handlers {
	return gesture.Handlers{
		OnEngage: func() { r.engaged++ },
		OnSwipe:  func(d domain.Direction) { r.swipes = append(r.swipes, d) },
		OnQuiet:  func() { r.quiet++ },
	}
}

func newTracker(rec *recorder) (*gesture.Tracker, *clock.Fake) {
	fake := clock.NewFake()
	tr := gesture.NewTracker(
		gesture.NewRecognizer(50, gesture.RTL),
		rec.handlers(),
		gesture.WithClock(fake),
		gesture.WithQuietPeriod(5*time.Second),
	)
	return tr, fake
}

func TestTracker_SwipeThenQuiet(t *testing.T) {
	rec := &recorder{}
	tr, fake := newTracker(rec)

	tr.Down(300)
	assert.Equal(t, 1, rec.engaged)
	assert.True(t, tr.Active())

	dir := tr.Up(100)
	assert.Equal(t, domain.Forward, dir)
	assert.Equal(t, []domain.Direction{domain.Forward}, rec.swipes)
	assert.True(t, tr.QuietPending())

	fake.Advance(4 * time.Second)
	assert.Equal(t, 0, rec.quiet)
	fake.Advance(time.Second)
	assert.Equal(t, 1, rec.quiet)
	assert.False(t, tr.QuietPending())
}

func TestTracker_NoopGestureStillSchedulesQuiet(t *testing.T) {
	rec := &recorder{}
	tr, fake := newTracker(rec)

	tr.Down(100)
	assert.Equal(t, domain.None, tr.Up(130))
	assert.Empty(t, rec.swipes)

	fake.Advance(5 * time.Second)
	assert.Equal(t, 1, rec.quiet)
}

func TestTracker_NewTouchCancelsPendingQuiet(t *testing.T) {
	rec := &recorder{}
	tr, fake := newTracker(rec)

	tr.Down(300)
	tr.Up(100)
	fake.Advance(3 * time.Second)

	tr.Down(100)
	fake.Advance(10 * time.Second)
	assert.Equal(t, 0, rec.quiet, "finger still down")

	tr.Up(300)
	assert.Equal(t, []domain.Direction{domain.Forward, domain.Backward}, rec.swipes)
	fake.Advance(5 * time.Second)
	assert.Equal(t, 1, rec.quiet)
}

func TestTracker_UpWithoutDownIgnored(t *testing.T) {
	rec := &recorder{}
	tr, fake := newTracker(rec)

	assert.Equal(t, domain.None, tr.Up(0))
	fake.Advance(time.Minute)
	assert.Equal(t, 0, rec.quiet)
	assert.Empty(t, rec.swipes)
}

func TestTracker_Cancel(t *testing.T) {
	rec := &recorder{}
	tr, fake := newTracker(rec)

	tr.Down(300)
	tr.Cancel()
	assert.False(t, tr.Active())
	assert.Equal(t, domain.None, tr.Up(0), "cancelled gesture has no end")

	fake.Advance(5 * time.Second)
	assert.Equal(t, 1, rec.quiet)
}

func TestTracker_Suppress(t *testing.T) {
	rec := &recorder{}
	tr, fake := newTracker(rec)

	tr.Down(300)
	tr.Up(300)
	tr.Suppress()
	fake.Advance(time.Minute)
	assert.Equal(t, 0, rec.quiet)
}

func TestTracker_CloseDropsEverything(t *testing.T) {
	rec := &recorder{}
	tr, fake := newTracker(rec)

	tr.Down(300)
	tr.Close()
	assert.False(t, tr.Active())

	tr.Up(0)
	tr.Down(0)
	fake.Advance(time.Hour)

	assert.Equal(t, 1, rec.engaged)
	assert.Empty(t, rec.swipes)
	assert.Equal(t, 0, rec.quiet)
	assert.Equal(t, 0, fake.Pending())
}

func TestTracker_HandlerPanicIsContained(t *testing.T) {
	fake := clock.NewFake()
	tr := gesture.NewTracker(gesture.NewRecognizer(10, gesture.LTR), gesture.Handlers{
		OnSwipe: func(domain.Direction) { panic("render failed") },
	}, gesture.WithClock(fake))

	tr.Down(0)
	assert.NotPanics(t, func() { tr.Up(100) })
}
