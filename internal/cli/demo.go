package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/rotator"
	"github.com/aretw0/rotator/internal/logging"
	"github.com/aretw0/rotator/internal/presentation/tui"
	"github.com/aretw0/rotator/pkg/deck"
	"github.com/aretw0/rotator/pkg/domain"
	"github.com/aretw0/rotator/pkg/gesture"
	"github.com/muesli/termenv"
)

// Demo drives a carousel from line commands and renders every change.
type Demo struct {
	Controller *rotator.Controller
	Deck       *deck.Deck
	Out        io.Writer
	Render     func(string) (string, error)
	Profile    termenv.Profile
	Logger     *slog.Logger

	mu sync.Mutex // serializes writes to Out
}

// Run reads commands from in until quit, EOF or ctx cancellation.
// Autoplay keeps rendering in the background while waiting for input.
func (d *Demo) Run(ctx context.Context, in io.Reader) error {
	if d.Render == nil {
		d.Render = tui.PlainRenderer
	}
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}

	unsubscribe := d.Controller.OnChange(func(ch domain.Change) {
		d.show(ch.Index)
	})
	defer unsubscribe()

	d.show(d.Controller.State().Index)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			quit, err := d.Exec(ctx, line)
			if err != nil && !errors.Is(err, ErrEmptyCommand) {
				d.printf("! %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Exec runs a single command line. It reports whether the demo should stop.
func (d *Demo) Exec(ctx context.Context, line string) (bool, error) {
	cmd, err := Parse(line)
	if err != nil {
		return false, err
	}
	c := d.Controller

	switch cmd.Kind {
	case CmdNext:
		c.Next(ctx)
	case CmdPrev:
		c.Previous(ctx)
	case CmdGoto:
		if _, err := c.GoTo(ctx, cmd.Index); err != nil {
			return false, err
		}
	case CmdPause:
		c.Pause(ctx)
		d.printf("autoplay paused\n")
	case CmdResume:
		c.Resume(ctx)
		d.printf("autoplay resumed\n")
	case CmdSwipe:
		c.PointerDown(cmd.From)
		if dir := c.PointerUp(cmd.To); dir == domain.None {
			d.printf("swipe too short\n")
		}
	case CmdHover:
		c.HoverEnter()
	case CmdLeave:
		c.HoverLeave()
	case CmdState:
		s := c.State()
		d.printf("index=%d direction=%s autoplay=%t epoch=%d\n", s.Index, s.Direction, s.Autoplay, s.Epoch)
	case CmdHelp:
		d.printf("%s\n", helpText)
	case CmdQuit:
		return true, nil
	}
	return false, nil
}

func (d *Demo) show(index int) {
	count := d.Controller.Count()
	it, ok := d.Deck.At(index)
	if !ok {
		d.Logger.Warn("deck shorter than carousel", "index", index, "count", d.Deck.Len())
		return
	}
	out, err := d.Render(tui.SlideMarkdown(it, index, count))
	if err != nil {
		d.Logger.Error("render failed", "index", index, "err", err)
		out = tui.SlideMarkdown(it, index, count)
	}
	rtl := d.Controller.ReadingDirection() == gesture.RTL
	d.printf("%s\n%s\n", out, tui.Dots(index, count, rtl, d.Profile))
}

func (d *Demo) printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.Out, format, args...)
}
