package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_flames/internal/ports"
)

// DefaultNormalizer implements the default name normalization strategy.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize composes the text to NFC, lowercases it and drops all whitespace.
// A Caser is stateful, so a fresh one is built per call.
func (n *DefaultNormalizer) Normalize(text string) string {
	text = cases.Lower(language.Und).String(norm.NFC.String(text))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}
