package domain

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// Epoch is always present so clients can discard out-of-order updates.
	Epoch uint64 `json:"epoch"`

	Index     *int       `json:"index,omitempty"`
	Direction *Direction `json:"direction,omitempty"`
	Autoplay  *bool      `json:"autoplay,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing observable changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{Epoch: newState.Epoch}

	if oldState == nil || oldState.Index != newState.Index {
		diff.Index = &newState.Index
	}
	// A transition onto the same index still carries a direction worth animating.
	if oldState == nil || oldState.Direction != newState.Direction || oldState.Epoch != newState.Epoch {
		diff.Direction = &newState.Direction
	}
	if oldState == nil || oldState.Autoplay != newState.Autoplay {
		diff.Autoplay = &newState.Autoplay
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Index == nil && d.Direction == nil && d.Autoplay == nil
}

// Apply merges the diff into s and returns the result.
func (d *StateDiff) Apply(s State) State {
	if d == nil {
		return s
	}
	s.Epoch = d.Epoch
	if d.Index != nil {
		s.Index = *d.Index
	}
	if d.Direction != nil {
		s.Direction = *d.Direction
	}
	if d.Autoplay != nil {
		s.Autoplay = *d.Autoplay
	}
	return s
}
