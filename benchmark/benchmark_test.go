package benchmark

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/baditaflorin/go_flames/internal/adapters/logger"
	"github.com/baditaflorin/go_flames/internal/adapters/normalizer"
	"github.com/baditaflorin/go_flames/internal/core/domain"
	"github.com/baditaflorin/go_flames/internal/core/elimination"
	"github.com/baditaflorin/go_flames/internal/core/reducer"
	"github.com/baditaflorin/go_flames/pkg/flames"
)

var samplePairs = [][2]string{
	{"John", "Jane"},
	{"Romeo", "Juliet"},
	{"Mary Ann", "Ann Mary"},
	{"Alexander Hamilton", "Elizabeth Schuyler"},
	{"O'Brien", "Anne-Marie"},
}

// generateBatch creates n lines of name pairs.
func generateBatch(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		pair := samplePairs[i%len(samplePairs)]
		sb.WriteString(pair[0])
		sb.WriteByte(',')
		sb.WriteString(pair[1])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func newFlames(b *testing.B, opts ...flames.Option) *flames.Flames {
	b.Helper()
	lg, err := logger.New(logger.ConsoleConfig(io.Discard, slog.LevelError))
	if err != nil {
		b.Fatalf("create logger: %v", err)
	}
	f, err := flames.New(append([]flames.Option{flames.WithLogger(lg)}, opts...)...)
	if err != nil {
		b.Fatalf("flames.New: %v", err)
	}
	return f
}

// BenchmarkNormalizers compares the performance of different normalizers
func BenchmarkNormalizers(b *testing.B) {
	factory := normalizer.NewNormalizerFactory()

	benchmarks := []struct {
		name     string
		normType normalizer.NormalizerType
		input    string
	}{
		{"Default-ASCII", normalizer.DefaultNormalizerType, "Alexander Hamilton"},
		{"Default-Accented", normalizer.DefaultNormalizerType, "Renée Zürcher"},
		{"Fast-ASCII", normalizer.FastNormalizerType, "Alexander Hamilton"},
		{"Fast-Accented", normalizer.FastNormalizerType, "Renée Zürcher"},
	}

	for _, bm := range benchmarks {
		norm := factory.CreateNormalizer(bm.normType)

		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bm.input)))

			for i := 0; i < b.N; i++ {
				_ = norm.Normalize(bm.input)
			}
		})
	}
}

// BenchmarkReduce measures multiset cancellation on normalized names
func BenchmarkReduce(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pair := samplePairs[i%len(samplePairs)]
		_ = reducer.Count(pair[0], pair[1])
	}
}

// BenchmarkEliminate measures a single elimination run for small and large counts
func BenchmarkEliminate(b *testing.B) {
	for _, count := range []int{1, 4, 59, 100000} {
		b.Run("n="+strconv.Itoa(count), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = elimination.Eliminate(count, domain.FLAMES)
			}
		})
	}
}

// BenchmarkDistribution compares computing the distribution from scratch with
// the memoized engine
func BenchmarkDistribution(b *testing.B) {
	b.Run("Uncached", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = elimination.Distribution(domain.FLAMES)
		}
	})

	b.Run("Engine", func(b *testing.B) {
		engine := elimination.NewEngine(logger.NewNopLogger())
		engine.Prime(domain.FLAMES)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = engine.Distribution(domain.FLAMES)
		}
	})
}

// BenchmarkCompute benchmarks the facade with different configurations
func BenchmarkCompute(b *testing.B) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	configs := []struct {
		name string
		opts []flames.Option
	}{
		{"Standard", nil},
		{"FastNormalizer", []flames.Option{flames.WithFastNormalizer()}},
		{"WithWarmUp", []flames.Option{flames.WithFastNormalizer(), flames.WithWarmUp(true)}},
	}

	for _, cfg := range configs {
		b.Run(cfg.name, func(b *testing.B) {
			f := newFlames(b, cfg.opts...)
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				pair := samplePairs[i%len(samplePairs)]
				if _, err := f.Compute(ctx, pair[0], pair[1]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}

	b.Run("Parallel", func(b *testing.B) {
		f := newFlames(b, flames.WithFastNormalizer())
		b.ReportAllocs()
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			i := 0
			for pb.Next() {
				pair := samplePairs[i%len(samplePairs)]
				if _, err := f.Compute(ctx, pair[0], pair[1]); err != nil {
					b.Error(err)
					return
				}
				i++
			}
		})
	})
}

// BenchmarkProcessBatch measures batch throughput with different worker counts
func BenchmarkProcessBatch(b *testing.B) {
	input := generateBatch(10000)
	ctx := context.Background()

	for _, workers := range []int{1, 4, 0} {
		name := "Workers-" + strconv.Itoa(workers)
		if workers == 0 {
			name = "Workers-NumCPU"
		}
		b.Run(name, func(b *testing.B) {
			f := newFlames(b, flames.WithFastNormalizer())
			b.SetBytes(int64(len(input)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := f.ProcessBatch(ctx, strings.NewReader(input), io.Discard, flames.BatchConfig{Workers: workers}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
