package ports

import (
	"context"

	"github.com/aretw0/rotator/pkg/domain"
)

// Carousel is the surface adapters drive. *rotator.Controller implements it.
type Carousel interface {
	// Next advances one item, wrapping after the last.
	Next(ctx context.Context) domain.State
	// Previous moves back one item, wrapping before the first.
	Previous(ctx context.Context) domain.State
	// GoTo jumps to an index; out-of-range targets return domain.ErrInvalidIndex.
	GoTo(ctx context.Context, i int) (domain.State, error)

	Pause(ctx context.Context)
	Resume(ctx context.Context)

	PointerDown(x float64)
	PointerUp(x float64) domain.Direction
	PointerCancel()
	HoverEnter()
	HoverLeave()

	// State returns a snapshot; OnChange subscribes to applied transitions.
	State() domain.State
	OnChange(fn func(domain.Change)) func()
	Count() int
}
