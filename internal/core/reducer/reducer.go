// Package reducer cancels the characters two names have in common and
// counts what is left.
package reducer

import (
	"github.com/baditaflorin/go_flames/internal/ports"
)

// Multiset maps each character to its number of occurrences.
type Multiset map[rune]int

// NewMultiset counts the runes of s.
func NewMultiset(s string) Multiset {
	m := make(Multiset, len(s))
	for _, r := range s {
		m[r]++
	}
	return m
}

// Cancel removes from both m and other every occurrence they share.
func (m Multiset) Cancel(other Multiset) {
	for r, n := range m {
		k, ok := other[r]
		if !ok {
			continue
		}
		shared := min(n, k)
		m[r] = n - shared
		other[r] = k - shared
	}
}

// Size returns the total number of occurrences in m.
func (m Multiset) Size() int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// Count returns how many characters remain after mutual cancellation of two
// already-normalized strings. It is zero exactly when a and b are anagrams.
func Count(a, b string) int {
	ma, mb := NewMultiset(a), NewMultiset(b)
	ma.Cancel(mb)
	return ma.Size() + mb.Size()
}

// Reducer normalizes two names and counts their remaining characters.
type Reducer struct {
	normalizer ports.Normalizer
	logger     ports.Logger
}

// New creates a reducer.
func New(normalizer ports.Normalizer, logger ports.Logger) *Reducer {
	return &Reducer{
		normalizer: normalizer,
		logger:     logger,
	}
}

// Reduce returns the RemainingCount for two names. Callers must reject empty
// names beforehand.
func (r *Reducer) Reduce(nameA, nameB string) int {
	normalizedA := r.normalizer.Normalize(nameA)
	normalizedB := r.normalizer.Normalize(nameB)

	count := Count(normalizedA, normalizedB)

	r.logger.Debug("Reduced names",
		"normalizedA", normalizedA,
		"normalizedB", normalizedB,
		"remaining", count,
	)
	return count
}
