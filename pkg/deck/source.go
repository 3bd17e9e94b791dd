package deck

import "context"

// FileSource loads a YAML deck file.
type FileSource struct {
	Path string
}

// Load implements ports.DeckSource.
func (s FileSource) Load(ctx context.Context) (*Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(s.Path)
}

// DefaultSource serves the built-in testimonial deck.
type DefaultSource struct{}

// Load implements ports.DeckSource.
func (DefaultSource) Load(ctx context.Context) (*Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Default(), nil
}
