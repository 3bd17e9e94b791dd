// Package gesture converts pointer movement into carousel travel directions.
//
// A Recognizer classifies a start/end coordinate pair with a distance threshold.
// A Tracker binds a Recognizer to the pointer lifecycle and tells its owner when
// the user engages (pause autoplay), swipes, and goes quiet (resume autoplay).
package gesture

import (
	"fmt"
	"strings"

	"github.com/aretw0/rotator/pkg/domain"
)

// DefaultThreshold is the minimum horizontal travel, in pixels, of a swipe.
const DefaultThreshold = 50.0

// ReadingDirection describes the reading order of the surrounding UI.
type ReadingDirection int

const (
	// RTL is right-to-left (mirrored UI). The reading-end edge is -x.
	RTL ReadingDirection = iota
	// LTR is left-to-right. The reading-end edge is +x.
	LTR
)

func (r ReadingDirection) String() string {
	if r == LTR {
		return "ltr"
	}
	return "rtl"
}

// ParseReadingDirection accepts "ltr" or "rtl" (case-insensitive).
func ParseReadingDirection(s string) (ReadingDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rtl":
		return RTL, nil
	case "ltr":
		return LTR, nil
	}
	return RTL, fmt.Errorf("unknown reading direction %q (want ltr or rtl)", s)
}

// Recognizer classifies a pointer gesture.
type Recognizer struct {
	// Threshold is the travel that must be strictly exceeded.
	Threshold float64
	// Reading maps travel sign to direction.
	Reading ReadingDirection
}

// NewRecognizer returns a Recognizer. A non-positive threshold falls back to DefaultThreshold.
func NewRecognizer(threshold float64, reading ReadingDirection) Recognizer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Recognizer{Threshold: threshold, Reading: reading}
}

// Classify maps a gesture to Forward, Backward or None.
// A swipe toward the reading-end edge is Forward; toward the reading-start edge
// is Backward; travel of at most Threshold is None.
func (r Recognizer) Classify(start, end float64) domain.Direction {
	travel := end - start
	if r.Reading == RTL {
		travel = -travel
	}
	switch {
	case travel > r.Threshold:
		return domain.Forward
	case travel < -r.Threshold:
		return domain.Backward
	}
	return domain.None
}
