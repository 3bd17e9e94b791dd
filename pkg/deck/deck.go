// Package deck models the items a carousel rotates through.
//
// The controller itself only needs the item count; hosts (HTTP, MCP, the
// terminal demo) use a Deck to render the active slide.
package deck

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed testimonials.yaml
var defaultDeck []byte

var (
	// ErrEmptyDeck is returned when a deck has no items.
	ErrEmptyDeck = errors.New("deck has no items")
	// ErrDuplicateID is returned when two items share an ID.
	ErrDuplicateID = errors.New("duplicate item id")
)

// Item is a single slide (testimonial) of the carousel.
type Item struct {
	ID    string `json:"id" yaml:"id" mapstructure:"id"`
	Name  string `json:"name" yaml:"name" mapstructure:"name"`
	Quote string `json:"quote" yaml:"quote" mapstructure:"quote"`
	Image string `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`
	Order int    `json:"order,omitempty" yaml:"order,omitempty" mapstructure:"order"`
}

// Deck is an ordered, immutable-by-convention collection of items.
type Deck struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Items []Item `json:"items" yaml:"items"`
}

// Len returns the number of items.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Items)
}

// At returns the item at index i, or false if i is out of range.
func (d *Deck) At(i int) (Item, bool) {
	if d == nil || i < 0 || i >= len(d.Items) {
		return Item{}, false
	}
	return d.Items[i], true
}

// Validate checks the deck is usable by a carousel.
func (d *Deck) Validate() error {
	if d.Len() == 0 {
		return ErrEmptyDeck
	}
	seen := make(map[string]int, len(d.Items))
	for i, it := range d.Items {
		if strings.TrimSpace(it.Quote) == "" {
			return fmt.Errorf("item %d (%q): quote is required", i, it.ID)
		}
		if it.ID == "" {
			continue
		}
		if prev, ok := seen[it.ID]; ok {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateID, it.ID, prev, i)
		}
		seen[it.ID] = i
	}
	return nil
}

// Sort orders items by Order, keeping file order for ties.
func (d *Deck) Sort() {
	sort.SliceStable(d.Items, func(i, j int) bool {
		return d.Items[i].Order < d.Items[j].Order
	})
}

// Parse decodes a YAML deck. Items without an ID get their 1-based position.
func Parse(data []byte) (*Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}
	d.Sort()
	for i := range d.Items {
		if d.Items[i].ID == "" {
			d.Items[i].ID = fmt.Sprintf("%d", i+1)
		}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads and parses a YAML deck file.
func LoadFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the built-in testimonial deck.
func Default() *Deck {
	d, err := Parse(defaultDeck)
	if err != nil {
		panic(fmt.Sprintf("embedded deck is invalid: %v", err))
	}
	return d
}
