package domain

import "fmt"

// Direction is the travel direction of the most recently applied transition.
// Renderers use it to pick an enter/exit animation; the controller never reads it back.
type Direction int

const (
	// None means no movement (initial state or a goto onto the current index).
	None Direction = iota
	// Forward means the index advanced by +1 (mod N).
	Forward
	// Backward means the index moved by -1 (mod N).
	Backward
)

// String returns the lower-case name used in logs, JSON and metrics labels.
func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Sign returns +1 for Forward, -1 for Backward and 0 otherwise.
func (d Direction) Sign() int {
	switch d {
	case Forward:
		return 1
	case Backward:
		return -1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "":
		*d = None
	case "forward":
		*d = Forward
	case "backward":
		*d = Backward
	default:
		return fmt.Errorf("unknown direction %q", string(text))
	}
	return nil
}
