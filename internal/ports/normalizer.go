package ports

// Normalizer canonicalizes a name before its characters are counted.
type Normalizer interface {
	Normalize(text string) string
}
