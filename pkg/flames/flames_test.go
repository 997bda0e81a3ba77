package flames

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/baditaflorin/go_flames/internal/adapters/logger"
	"github.com/baditaflorin/go_flames/internal/core/domain"
	"github.com/baditaflorin/go_flames/internal/warmup"
)

func withNopLogger() Option {
	return func(cfg *flamesConfig) {
		cfg.Logger = logger.NewNopLogger()
	}
}

func newTestFlames(t *testing.T, opts ...Option) *Flames {
	t.Helper()
	f, err := New(append([]Option{withNopLogger()}, opts...)...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return f
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		count int
		typ   Category
	}{
		{"john and jane", "John", "Jane", 4, domain.Enemies},
		{"romeo and juliet", "Romeo", "Juliet", 9, domain.Enemies},
		{"alice and bob", "Alice", "Bob", 8, domain.Affection},
		{"anagrams", "Tom", "Mot", 0, domain.Same},
	}

	for _, fast := range []bool{false, true} {
		var opts []Option
		if fast {
			opts = append(opts, WithFastNormalizer())
		}
		f := newTestFlames(t, opts...)

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				result, err := f.Compute(context.Background(), tc.a, tc.b)
				if err != nil {
					t.Fatalf("Compute() error: %v", err)
				}
				if result.Count != tc.count || result.Type != tc.typ {
					t.Errorf("Compute(%q, %q) = count %d type %s, want %d %s",
						tc.a, tc.b, result.Count, result.Type, tc.count, tc.typ)
				}
				if result.Meaning != tc.typ.Meaning() {
					t.Errorf("meaning %q, want %q", result.Meaning, tc.typ.Meaning())
				}
			})
		}
	}
}

func TestComputeSameNames(t *testing.T) {
	f := newTestFlames(t)
	result, err := f.Compute(context.Background(), "Mary Ann", "ann mary")
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if result.Type != domain.Same || result.EliminationOrder != nil {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Statistics.Total() != 0 {
		t.Errorf("expected zero statistics, got %v", result.Statistics)
	}
}

func TestComputeCancelled(t *testing.T) {
	f := newTestFlames(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Compute(ctx, "John", "Jane"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWithSequence(t *testing.T) {
	reversed := Sequence{domain.Siblings, domain.Enemies, domain.Marriage, domain.Affection, domain.Love, domain.Friends}
	f := newTestFlames(t, WithSequence(reversed))

	if f.Sequence() != reversed {
		t.Fatalf("sequence = %s", f.Sequence())
	}
	// Count 1 removes the first five labels and keeps the last.
	if got := f.Eliminate(1); got.Survivor != domain.Friends {
		t.Errorf("Eliminate(1) survivor = %s, want F", got.Survivor)
	}
	if d := f.Distribution(); d[0].Category != domain.Siblings || d.Percent(domain.Siblings) != 19 {
		t.Errorf("unexpected distribution %v", d)
	}

	if _, err := New(withNopLogger(), WithSequence(Sequence{})); err == nil {
		t.Error("expected an error for an invalid sequence")
	}
}

func TestWarmUpKeepsResults(t *testing.T) {
	cold := newTestFlames(t)
	warm := newTestFlames(t, WithWarmUpConfig(warmup.WarmupConfig{Concurrency: 2, Iterations: 20}))

	if !reflect.DeepEqual(cold.Distribution(), warm.Distribution()) {
		t.Error("warm-up changed the distribution")
	}
	if !reflect.DeepEqual(cold.Resolve(4), warm.Resolve(4)) {
		t.Error("warm-up changed Resolve")
	}
	if cold.Reduce("John", "Jane") != 4 {
		t.Error("unexpected Reduce result")
	}
}

func TestProcessBatch(t *testing.T) {
	f := newTestFlames(t)
	var out bytes.Buffer

	summary, err := f.ProcessBatch(context.Background(),
		strings.NewReader("Alice,Bob\n# comment\nMary Ann\tAnn Mary\n,Jane\n"), &out, BatchConfig{Workers: 2})
	if err != nil {
		t.Fatalf("ProcessBatch() error: %v", err)
	}
	if summary.Computed != 2 || summary.Failed != 1 || summary.Skipped != 1 {
		t.Errorf("summary %+v", summary)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"result_type":"A"`) || !strings.Contains(lines[0], `"count":8`) {
		t.Errorf("line 1: %s", lines[0])
	}
	if !strings.Contains(lines[2], `"error":"both names are required"`) {
		t.Errorf("line 3: %s", lines[2])
	}
}

// countingNormalizer counts calls so repeated warm-ups can be detected.
type countingNormalizer struct {
	calls atomic.Int64
}

func (n *countingNormalizer) Normalize(text string) string {
	n.calls.Add(1)
	return strings.ToLower(text)
}

func TestWarmUpRunsOnceUnderConcurrentCalls(t *testing.T) {
	norm := &countingNormalizer{}
	f := newTestFlames(t, WithNormalizer(norm))
	config := WarmupConfig{Concurrency: 1, Iterations: 1}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.WarmUp(context.Background(), config)
		}()
	}
	wg.Wait()

	first := norm.calls.Load()
	if first == 0 {
		t.Fatal("warm-up never ran")
	}
	f.WarmUp(context.Background(), config)
	if got := norm.calls.Load(); got != first {
		t.Errorf("second warm-up ran again: %d normalizer calls, want %d", got, first)
	}
}
