package warmup

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_flames/internal/core/domain"
	"github.com/baditaflorin/go_flames/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		Duration:    2 * time.Second,
		ForceGC:     true,
	}
}

type primerEntry struct {
	primer ports.Primer
	seq    domain.Sequence
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	calculators []ports.ResultCalculator
	normalizers []ports.Normalizer
	primers     []primerEntry
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterCalculator adds a calculator to be warmed up
func (wm *Manager) RegisterCalculator(calc ports.ResultCalculator) {
	wm.calculators = append(wm.calculators, calc)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// RegisterPrimer adds a primer whose memo for seq is filled before anything else.
func (wm *Manager) RegisterPrimer(p ports.Primer, seq domain.Sequence) {
	wm.primers = append(wm.primers, primerEntry{primer: p, seq: seq})
}

// WarmUp runs the warmup process for all registered components. Primers run
// to completion even if ctx is already done; the rest stops at the deadline.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.calculators)+len(wm.normalizers)+len(wm.primers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	for _, p := range wm.primers {
		d := p.primer.Prime(p.seq)
		wm.logger.Debug("Primed distribution", "sequence", p.seq.String(), "total", d.Total())
	}

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.warmUpNormalizers(warmupCtx)
	wm.warmUpCalculators(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// run executes fn Iterations times spread over Concurrency goroutines,
// stopping early when ctx is done.
func (wm *Manager) run(ctx context.Context, fn func(ctx context.Context, iteration int)) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wm.config.Concurrency)

	for i := 0; i < wm.config.Iterations; i++ {
		if gctx.Err() != nil {
			break
		}
		iteration := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(gctx, iteration)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		wm.logger.Debug("Warmup stopped early", "error", err)
	}
}

func (wm *Manager) warmUpNormalizers(ctx context.Context) {
	if len(wm.normalizers) == 0 {
		return
	}

	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	names := sampleNames()
	wm.run(ctx, func(_ context.Context, i int) {
		for _, normalizer := range wm.normalizers {
			_ = normalizer.Normalize(names[i%len(names)])
		}
	})
}

func (wm *Manager) warmUpCalculators(ctx context.Context) {
	if len(wm.calculators) == 0 {
		return
	}

	wm.logger.Debug("Warming up calculators", "count", len(wm.calculators))

	names := sampleNames()
	wm.run(ctx, func(ctx context.Context, i int) {
		a := names[i%len(names)]
		b := names[(i*7+3)%len(names)]
		for _, calculator := range wm.calculators {
			_, _ = calculator.Compute(ctx, a, b)
		}
	})
}

// sampleNames returns a fixed corpus that covers anagrams, repeated letters,
// spaces and punctuation.
func sampleNames() []string {
	return []string{
		"John", "Jane", "Tom", "Mot", "Romeo", "Juliet",
		"Mary Ann", "Ann Mary", "O'Neil", "Jean-Luc", "J. R. R. Tolkien",
		"Elizabeth", "Darcy", "Listen", "Silent", "Alexandria Ocasio",
	}
}
