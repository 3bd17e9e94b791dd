package ports

import (
	"context"

	"github.com/aretw0/rotator/pkg/deck"
	"github.com/aretw0/rotator/pkg/domain"
)

// DeckSource loads the items of a carousel. It is read once at startup.
type DeckSource interface {
	Load(ctx context.Context) (*deck.Deck, error)
}

// ChangePublisher delivers applied changes to remote observers.
type ChangePublisher interface {
	Publish(ctx context.Context, carousel string, ch domain.Change) error
	Close() error
}
