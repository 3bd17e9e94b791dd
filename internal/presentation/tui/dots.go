package tui

import (
	"strings"

	"github.com/muesli/termenv"
)

const (
	dotActive   = "●"
	dotInactive = "○"
)

// Dots renders the page indicator for a carousel of count items.
// With rtl set, item 0 is the rightmost dot. Color is applied only when the
// profile supports it.
func Dots(index, count int, rtl bool, profile termenv.Profile) string {
	if count < 1 {
		return ""
	}
	cells := make([]string, count)
	for i := 0; i < count; i++ {
		pos := i
		if rtl {
			pos = count - 1 - i
		}
		if i == index {
			cells[pos] = profile.String(dotActive).Foreground(profile.Color("#f59e0b")).Bold().String()
			continue
		}
		cells[pos] = profile.String(dotInactive).Foreground(profile.Color("#6b7280")).String()
	}
	return strings.Join(cells, " ")
}
