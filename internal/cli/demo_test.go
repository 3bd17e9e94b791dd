package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/rotator"
	"github.com/aretw0/rotator/pkg/clock"
	"github.com/aretw0/rotator/pkg/deck"
	"github.com/aretw0/rotator/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemo(t *testing.T) (*Demo, *bytes.Buffer, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake()
	d := deck.Default()
	c, err := rotator.New(d.Len(), rotator.WithClock(fake))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	var out bytes.Buffer
	return &Demo{
		Controller: c,
		Deck:       d,
		Out:        &out,
		Profile:    termenv.Ascii,
	}, &out, fake
}

func TestDemo_Run(t *testing.T) {
	demo, out, _ := newDemo(t)

	err := demo.Run(context.Background(), strings.NewReader("n\ng 4\nbogus\nstate\nq\nn\n"))
	require.NoError(t, err)

	s := demo.Controller.State()
	assert.Equal(t, 4, s.Index, "commands after quit are not executed")

	text := out.String()
	assert.Contains(t, text, "### 1/5")
	assert.Contains(t, text, "### 2/5")
	assert.Contains(t, text, "### 5/5")
	assert.Contains(t, text, "רונית כהן")
	assert.Contains(t, text, `! unknown command "bogus"`)
	assert.Contains(t, text, "index=4 direction=backward autoplay=true epoch=2")
	assert.Contains(t, text, "● ○ ○ ○ ○", "rtl dots put item 4 leftmost")
}

func TestDemo_RunStopsAtEOF(t *testing.T) {
	demo, _, _ := newDemo(t)
	require.NoError(t, demo.Run(context.Background(), strings.NewReader("p\n")))
	assert.Equal(t, 4, demo.Controller.State().Index)
}

func TestDemo_RunStopsOnCancel(t *testing.T) {
	demo, _, _ := newDemo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- demo.Run(ctx, blockingReader{}) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestDemo_Exec(t *testing.T) {
	demo, out, fake := newDemo(t)
	ctx := context.Background()

	_, err := demo.Exec(ctx, "g 9")
	assert.ErrorIs(t, err, domain.ErrInvalidIndex)

	_, err = demo.Exec(ctx, "swipe 300 100")
	require.NoError(t, err)
	assert.Equal(t, 1, demo.Controller.State().Index)
	assert.False(t, demo.Controller.AutoplayEnabled())

	_, err = demo.Exec(ctx, "swipe 100 120")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "swipe too short")

	_, err = demo.Exec(ctx, "hover")
	require.NoError(t, err)
	fake.Advance(time.Minute)
	assert.False(t, demo.Controller.AutoplayEnabled())

	_, err = demo.Exec(ctx, "leave")
	require.NoError(t, err)
	assert.True(t, demo.Controller.AutoplayEnabled())

	_, err = demo.Exec(ctx, "pause")
	require.NoError(t, err)
	assert.False(t, demo.Controller.AutoplayEnabled())

	quit, err := demo.Exec(ctx, "quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
