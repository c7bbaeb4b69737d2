package gui

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrDuplicateKey is returned when a widget key is registered twice.
	ErrDuplicateKey = errors.New("widget key already exists")
	// ErrNotFound is returned for operations on an unregistered widget key.
	ErrNotFound = errors.New("widget not found")
	// ErrChartNotFound is returned when plotting a chart id never added.
	ErrChartNotFound = errors.New("chart not found")
	// ErrUnsupportedKind is returned when the toolkit has no constructor
	// for a widget kind.
	ErrUnsupportedKind = errors.New("unsupported widget kind")
)

// notFound wraps ErrNotFound, suggesting the closest registered key.
func (g *GUI) notFound(key string) error {
	if s := closest(key, g.Keys()); s != "" {
		return fmt.Errorf("%w: %q (did you mean %q?)", ErrNotFound, key, s)
	}
	return fmt.Errorf("%w: %q", ErrNotFound, key)
}

// closest returns the candidate nearest to key by edit distance, or "" when
// nothing is reasonably close.
func closest(key string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(key, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(key)/3) {
		return ""
	}
	return best
}
