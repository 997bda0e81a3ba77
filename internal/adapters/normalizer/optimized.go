package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_flames/internal/pool"
	"github.com/baditaflorin/go_flames/internal/ports"
)

// asciiAction is the precomputed decision for one ASCII byte.
type asciiAction struct {
	drop bool
	char byte
}

// FastNormalizer lowercases and strips whitespace with a precomputed table
// for ASCII and a pooled builder. It skips Unicode composition, so it is
// only equivalent to DefaultNormalizer for precomposed input.
type FastNormalizer struct {
	asciiTable  [128]asciiAction
	builderPool *pool.StringBuilderPool
}

// NewFastNormalizer creates a new fast normalizer with precomputed tables
func NewFastNormalizer() ports.Normalizer {
	n := &FastNormalizer{
		builderPool: pool.NewStringBuilderPool(),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsSpace(r):
			n.asciiTable[i] = asciiAction{drop: true}
		case unicode.IsUpper(r):
			n.asciiTable[i] = asciiAction{char: byte(unicode.ToLower(r))}
		default:
			n.asciiTable[i] = asciiAction{char: byte(i)}
		}
	}

	return n
}

// Normalize performs fast normalization with pre-computed decisions for ASCII
func (n *FastNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	sb := n.builderPool.Get(len(text))
	defer n.builderPool.Put(sb)

	for _, r := range text {
		if r < 128 {
			entry := n.asciiTable[r]
			if !entry.drop {
				sb.WriteByte(entry.char)
			}
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType composes Unicode and uses full case mapping
	DefaultNormalizerType NormalizerType = iota
	// FastNormalizerType uses precomputed tables and is optimized for ASCII
	FastNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case FastNormalizerType:
		return NewFastNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
