package domain

import (
	"bytes"
	"fmt"
	"strconv"
)

// Category is one of the FLAMES outcome labels.
type Category string

const (
	Friends   Category = "F"
	Love      Category = "L"
	Affection Category = "A"
	Marriage  Category = "M"
	Enemies   Category = "E"
	Siblings  Category = "S"

	// Same is the outcome for names that cancel out completely.
	Same Category = "SAME"
)

var meanings = map[Category]string{
	Friends:   "Friends 🤝",
	Love:      "Love ❤️",
	Affection: "Affection 💞",
	Marriage:  "Marriage 💍",
	Enemies:   "Enemies ⚔️",
	Siblings:  "Siblings 👨‍👩‍👧",
	Same:      "Same Names 😄",
}

// Meaning returns the human-readable meaning of the category.
func (c Category) Meaning() string {
	return meanings[c]
}

// Valid reports whether c is one of the six elimination labels.
func (c Category) Valid() bool {
	switch c {
	case Friends, Love, Affection, Marriage, Enemies, Siblings:
		return true
	}
	return false
}

// SequenceLength is the fixed number of categories in a Sequence.
const SequenceLength = 6

// Sequence is an ordered set of the six categories. It is an array so that
// every assignment is a copy.
type Sequence [SequenceLength]Category

// FLAMES is the canonical category order.
var FLAMES = Sequence{Friends, Love, Affection, Marriage, Enemies, Siblings}

// Validate checks that s is a permutation of the six categories.
func (s Sequence) Validate() error {
	seen := make(map[Category]bool, SequenceLength)
	for i, c := range s {
		if !c.Valid() {
			return fmt.Errorf("invalid category %q at position %d", c, i)
		}
		if seen[c] {
			return fmt.Errorf("duplicate category %q at position %d", c, i)
		}
		seen[c] = true
	}
	return nil
}

// String renders the sequence as its concatenated labels, e.g. "FLAMES".
func (s Sequence) String() string {
	var b bytes.Buffer
	for _, c := range s {
		b.WriteString(string(c))
	}
	return b.String()
}

// ParseSequence parses a six-letter string such as "FLAMES" or "SEMALF".
func ParseSequence(text string) (Sequence, error) {
	var s Sequence
	if len(text) != SequenceLength {
		return s, fmt.Errorf("sequence %q must have exactly %d labels", text, SequenceLength)
	}
	for i := 0; i < SequenceLength; i++ {
		s[i] = Category(text[i : i+1])
	}
	if err := s.Validate(); err != nil {
		return Sequence{}, err
	}
	return s, nil
}

// Outcome is the result of a single elimination run.
type Outcome struct {
	// Survivor is the last remaining category, or Same for a zero count.
	Survivor Category
	// Eliminated lists removed categories in removal order.
	Eliminated []Category
}

// Share is the percentage of probe counts won by one category.
type Share struct {
	Category Category
	Percent  float64
}

// Distribution holds one Share per category, in sequence order.
type Distribution []Share

// ZeroDistribution returns an all-zero distribution in sequence order.
func ZeroDistribution(seq Sequence) Distribution {
	d := make(Distribution, SequenceLength)
	for i, c := range seq {
		d[i] = Share{Category: c}
	}
	return d
}

// Percent returns the share of c, or 0 if c is absent.
func (d Distribution) Percent(c Category) float64 {
	for _, s := range d {
		if s.Category == c {
			return s.Percent
		}
	}
	return 0
}

// Total returns the sum of all shares.
func (d Distribution) Total() float64 {
	var total float64
	for _, s := range d {
		total += s.Percent
	}
	return total
}

// Clone returns a copy that shares no memory with d.
func (d Distribution) Clone() Distribution {
	if d == nil {
		return nil
	}
	out := make(Distribution, len(d))
	copy(out, d)
	return out
}

// MarshalJSON encodes the distribution as an object keyed by label,
// preserving sequence order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, s := range d {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(string(s.Category)))
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(s.Percent, 'f', 1, 64))
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Result is the full classification for a pair of names.
type Result struct {
	// Meaning is the human-readable meaning of Type.
	Meaning string
	// Type is the surviving category, or Same.
	Type Category
	// Count is the number of characters left after cancellation.
	Count int
	// Statistics is the survivor distribution over the probe range.
	Statistics Distribution
	// EliminationOrder is nil when Count is zero.
	EliminationOrder []Category
}
