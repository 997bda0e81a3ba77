package ports

import (
	"context"

	"github.com/baditaflorin/go_flames/internal/core/domain"
)

// ResultCalculator classifies a pair of names.
type ResultCalculator interface {
	Compute(ctx context.Context, nameA, nameB string) (domain.Result, error)
}

// Primer precomputes input-independent state ahead of the first request.
type Primer interface {
	Prime(seq domain.Sequence) domain.Distribution
}
