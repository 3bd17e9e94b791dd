package domain

// State represents the current snapshot of a carousel.
// It is a value type: copies never alias the controller's live state.
type State struct {
	// Count is the size N of the item collection (N >= 1).
	Count int `json:"count"`

	// Index is the active item, always in [0, Count).
	Index int `json:"index"`

	// Direction is the direction of the most recently applied transition.
	Direction Direction `json:"direction"`

	// Autoplay reports whether scheduler ticks may produce transitions.
	Autoplay bool `json:"autoplay"`

	// Epoch is the sequence number of the last applied transition.
	// Advisory only (idempotence/debugging).
	Epoch uint64 `json:"epoch"`
}

// NewState creates a clean state for a collection of count items.
// The start index is wrapped into range.
func NewState(count, start int, autoplay bool) State {
	s := State{
		Count:    count,
		Autoplay: autoplay,
	}
	if count > 0 {
		s.Index = Wrap(start, count)
	}
	return s
}

// Wrap maps any integer onto [0, n).
func Wrap(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}
