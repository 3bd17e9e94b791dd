package domain

import "fmt"

// IntentKind identifies the requested state change.
type IntentKind string

const (
	IntentNext        IntentKind = "next"
	IntentPrev        IntentKind = "prev"
	IntentGoto        IntentKind = "goto"
	IntentSetAutoplay IntentKind = "set_autoplay"
)

// Source identifies which input produced an intent.
type Source string

const (
	SourceAPI      Source = "api"      // Explicit navigation (buttons, dots, HTTP, MCP)
	SourceAutoplay Source = "autoplay" // Autoplay scheduler tick
	SourceGesture  Source = "gesture"  // Recognized swipe
	SourceHover    Source = "hover"    // Hover enter/leave attention signal
	SourceQuiet    Source = "quiet"    // Quiet period elapsed after a gesture
)

// Intent is a requested state change. Only the field matching Kind is meaningful.
type Intent struct {
	Kind     IntentKind
	Index    int  // IntentGoto target
	Autoplay bool // IntentSetAutoplay value
}

// Next requests a move of +1.
func Next() Intent { return Intent{Kind: IntentNext} }

// Prev requests a move of -1.
func Prev() Intent { return Intent{Kind: IntentPrev} }

// GotoIndex requests a jump to index i.
func GotoIndex(i int) Intent { return Intent{Kind: IntentGoto, Index: i} }

// SetAutoplay requests the autoplay flag to be set to enabled.
func SetAutoplay(enabled bool) Intent { return Intent{Kind: IntentSetAutoplay, Autoplay: enabled} }

// Moves reports whether the intent can change the index.
func (i Intent) Moves() bool {
	return i.Kind == IntentNext || i.Kind == IntentPrev || i.Kind == IntentGoto
}

func (i Intent) String() string {
	switch i.Kind {
	case IntentGoto:
		return fmt.Sprintf("goto(%d)", i.Index)
	case IntentSetAutoplay:
		return fmt.Sprintf("set_autoplay(%t)", i.Autoplay)
	default:
		return string(i.Kind)
	}
}
