// Package flames classifies the relationship between two names with the
// FLAMES elimination game.
//
// The characters the two names share are cancelled out, and the number of
// characters left drives a round-robin elimination over the six categories
// Friends, Love, Affection, Marriage, Enemies and Siblings. Alongside the
// result, every classification carries the distribution of winners over the
// counts 1 to 100, which is computed once per Flames instance.
package flames

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/baditaflorin/go_flames/internal/adapters/logger"
	"github.com/baditaflorin/go_flames/internal/adapters/normalizer"
	"github.com/baditaflorin/go_flames/internal/batch"
	"github.com/baditaflorin/go_flames/internal/core/domain"
	"github.com/baditaflorin/go_flames/internal/core/elimination"
	"github.com/baditaflorin/go_flames/internal/core/reducer"
	"github.com/baditaflorin/go_flames/internal/ports"
	"github.com/baditaflorin/go_flames/internal/warmup"
	"github.com/baditaflorin/l"
)

type (
	// Result is the classification of a pair of names.
	Result = domain.Result
	// Outcome is a single elimination run.
	Outcome = domain.Outcome
	// Distribution is the survivor share per category.
	Distribution = domain.Distribution
	// Category is a FLAMES label.
	Category = domain.Category
	// Sequence is an ordering of the six labels.
	Sequence = domain.Sequence
	// BatchConfig controls ProcessBatch.
	BatchConfig = batch.Config
	// BatchSummary describes a finished batch.
	BatchSummary = batch.Summary
	// WarmupConfig controls WarmUp.
	WarmupConfig = warmup.WarmupConfig
)

// DefaultWarmupConfig returns the warm-up settings used by WithWarmUp.
func DefaultWarmupConfig() WarmupConfig {
	return warmup.DefaultWarmupConfig()
}

// FLAMES is the canonical category order.
var FLAMES = domain.FLAMES

// Flames computes FLAMES classifications.
type Flames struct {
	reducer    *reducer.Reducer
	engine     *elimination.Engine
	logger     ports.Logger
	normalizer ports.Normalizer
	sequence   domain.Sequence
	warmed     atomic.Bool
}

// Option defines a functional option for configuring Flames.
type Option func(*flamesConfig)

type flamesConfig struct {
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	Sequence     domain.Sequence
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *flamesConfig) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(normalizer ports.Normalizer) Option {
	return func(cfg *flamesConfig) {
		cfg.Normalizer = normalizer
	}
}

// WithFastNormalizer sets the table-driven ASCII normalizer.
func WithFastNormalizer() Option {
	return func(cfg *flamesConfig) {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.FastNormalizerType)
	}
}

// WithSequence changes the category order used for elimination.
func WithSequence(seq domain.Sequence) Option {
	return func(cfg *flamesConfig) {
		cfg.Sequence = seq
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *flamesConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) Option {
	return func(cfg *flamesConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Flames instance.
func New(opts ...Option) (*Flames, error) {
	config := &flamesConfig{
		Sequence:     domain.FLAMES,
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.Sequence.Validate(); err != nil {
		return nil, err
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	f := &Flames{
		reducer:    reducer.New(config.Normalizer, config.Logger),
		engine:     elimination.NewEngine(config.Logger),
		logger:     config.Logger,
		normalizer: config.Normalizer,
		sequence:   config.Sequence,
	}

	if config.WarmUp {
		f.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return f, nil
}

// Compute classifies two names. Names must already be validated as
// non-empty; the only error is a done context.
func (f *Flames) Compute(ctx context.Context, nameA, nameB string) (Result, error) {
	if err := ctx.Err(); err != nil {
		f.logger.Warn("Computation cancelled", "error", err)
		return Result{}, err
	}

	count := f.reducer.Reduce(nameA, nameB)
	result := f.engine.Resolve(count, f.sequence)

	f.logger.Debug("Computed FLAMES result",
		"nameA", nameA,
		"nameB", nameB,
		"count", count,
		"result_type", string(result.Type),
	)
	return result, nil
}

// Reduce returns the number of characters left after cancellation.
func (f *Flames) Reduce(nameA, nameB string) int {
	return f.reducer.Reduce(nameA, nameB)
}

// Eliminate runs a single elimination for count.
func (f *Flames) Eliminate(count int) Outcome {
	return f.engine.Eliminate(count, f.sequence)
}

// Resolve classifies a raw count, as if it came from Reduce.
func (f *Flames) Resolve(count int) Result {
	return f.engine.Resolve(count, f.sequence)
}

// Distribution returns the survivor distribution for counts 1 to 100.
func (f *Flames) Distribution() Distribution {
	return f.engine.Distribution(f.sequence)
}

// Sequence returns the category order in use.
func (f *Flames) Sequence() Sequence {
	return f.sequence
}

// WarmUp precomputes the distribution and exercises the hot paths. Only the
// first call does any work; it is safe to call from several goroutines.
func (f *Flames) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	if !f.warmed.CompareAndSwap(false, true) {
		f.logger.Debug("System already warmed up, skipping")
		return
	}

	warmupMgr := warmup.NewManager(f.logger, config)
	warmupMgr.RegisterPrimer(f.engine, f.sequence)
	warmupMgr.RegisterNormalizer(f.normalizer)
	warmupMgr.RegisterCalculator(f)

	warmupMgr.WarmUp(ctx)
}

// ProcessBatch classifies one "name1,name2" pair per line of r and writes
// one JSON object per pair to w, in input order.
func (f *Flames) ProcessBatch(ctx context.Context, r io.Reader, w io.Writer, config BatchConfig) (BatchSummary, error) {
	return batch.NewProcessor(f, f.logger, config).Process(ctx, r, batch.JSONLines(w))
}

// Close releases the logger.
func (f *Flames) Close() error {
	return f.logger.Close()
}
