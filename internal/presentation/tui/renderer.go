package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/rotator/pkg/deck"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// If the terminal renderer cannot be built, markdown is returned unchanged.
func NewRenderer(width int) func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return PlainRenderer
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// PlainRenderer passes markdown through untouched (pipes, tests).
func PlainRenderer(markdown string) (string, error) {
	return markdown, nil
}

// SlideMarkdown formats one deck item as a markdown slide.
func SlideMarkdown(it deck.Item, index, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %d/%d\n\n", index+1, count)
	for _, line := range strings.Split(strings.TrimSpace(it.Quote), "\n") {
		fmt.Fprintf(&b, "> %s\n", line)
	}
	if it.Name != "" {
		fmt.Fprintf(&b, "\n**%s**\n", it.Name)
	}
	if it.Image != "" {
		fmt.Fprintf(&b, "\n![%s](%s)\n", it.Name, it.Image)
	}
	return b.String()
}
