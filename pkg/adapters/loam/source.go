// Package loam loads carousel decks from a directory of Markdown slides.
//
// Each document is one item: frontmatter carries id, name, image and order,
// the body carries the quote.
package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/rotator/pkg/deck"
)

// Source adapts a Loam repository to ports.DeckSource.
type Source struct {
	Repo  *loam.TypedRepository[SlideMetadata]
	Title string
}

// New creates a deck source over a typed repository.
func New(repo *loam.TypedRepository[SlideMetadata]) *Source {
	return &Source{Repo: repo}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Source, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numbers as json.Number across Markdown and JSON documents.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	src := New(loam.NewTypedRepository[SlideMetadata](repo))
	src.Title = filepath.Base(absPath)
	return src, nil
}

// Load lists every document and builds a deck ordered by (order, id).
func (s *Source) Load(ctx context.Context) (*deck.Deck, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	items := make([]deck.Item, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		order, err := toInt(doc.Data.Order)
		if err != nil {
			return nil, fmt.Errorf("slide %s: invalid order: %w", id, err)
		}
		quote := strings.TrimSpace(doc.Content)
		if doc.Data.Quote != "" {
			quote = doc.Data.Quote
		}
		items = append(items, deck.Item{
			ID:    id,
			Name:  doc.Data.Name,
			Quote: quote,
			Image: doc.Data.Image,
			Order: order,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	d := &deck.Deck{Title: s.Title, Items: items}
	d.Sort()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}
