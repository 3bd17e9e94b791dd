package runtime

import (
	"github.com/aretw0/rotator/pkg/domain"
)

// Apply computes the unique next state for the given intent.
// It is pure: it never reads time, randomness or any state besides s.
// On error the returned state equals s.
func Apply(s domain.State, in domain.Intent) (domain.State, error) {
	if s.Count < 1 {
		return s, domain.ErrEmptyCollection
	}

	switch in.Kind {
	case domain.IntentNext:
		return move(s, domain.Wrap(s.Index+1, s.Count), domain.Forward), nil

	case domain.IntentPrev:
		return move(s, domain.Wrap(s.Index-1, s.Count), domain.Backward), nil

	case domain.IntentGoto:
		if in.Index < 0 || in.Index >= s.Count {
			return s, &domain.IndexError{Index: in.Index, Count: s.Count}
		}
		dir := ShortestDirection(s.Index, in.Index, s.Count)
		if dir == domain.None {
			// Already there: nothing to apply.
			return s, nil
		}
		return move(s, in.Index, dir), nil

	case domain.IntentSetAutoplay:
		s.Autoplay = in.Autoplay
		return s, nil
	}

	return s, nil
}

// ShortestDirection returns the direction of the shorter cyclic path from
// -> to on a ring of n positions. Ties go Forward; from == to yields None.
func ShortestDirection(from, to, n int) domain.Direction {
	if from == to {
		return domain.None
	}
	forward := domain.Wrap(to-from, n)
	backward := domain.Wrap(from-to, n)
	if forward <= backward {
		return domain.Forward
	}
	return domain.Backward
}

func move(s domain.State, index int, dir domain.Direction) domain.State {
	s.Index = index
	s.Direction = dir
	s.Epoch++
	return s
}
