// Package batch classifies many name pairs read line by line from a stream.
//
// Lines are grouped into chunks, classified by a pool of workers and
// emitted in input order.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_flames/internal/core/domain"
	"github.com/baditaflorin/go_flames/internal/ports"
	"github.com/baditaflorin/go_flames/internal/validate"
)

const (
	// DefaultChunkSize is the number of lines handed to a worker at once.
	DefaultChunkSize = 64

	// MaxJobQueueSize limits the number of pending chunks.
	MaxJobQueueSize = 32

	// MaxLineSize is the longest accepted input line in bytes.
	MaxLineSize = 64 * 1024
)

// ErrMissingSeparator is reported for a line that does not hold two names.
var ErrMissingSeparator = errors.New("line must hold two names separated by a comma or tab")

// Config controls batch processing.
type Config struct {
	// Workers is the number of worker goroutines; 0 means runtime.NumCPU().
	Workers int
	// ChunkSize is the number of lines per job; 0 means DefaultChunkSize.
	ChunkSize int
}

// Record is the outcome for one input line. Exactly one of Result and Err
// is meaningful.
type Record struct {
	Line   int
	Name1  string
	Name2  string
	Result domain.Result
	Err    error
}

// Summary describes a finished batch.
type Summary struct {
	Records  int
	Computed int
	Failed   int
	Skipped  int
	Duration time.Duration
}

type line struct {
	number int
	text   string
}

type job struct {
	chunkID int
	lines   []line
}

type jobResult struct {
	chunkID int
	records []Record
	skipped int
}

// Processor runs batches against a calculator.
type Processor struct {
	calc   ports.ResultCalculator
	logger ports.Logger
	config Config
}

// NewProcessor creates a batch processor.
func NewProcessor(calc ports.ResultCalculator, logger ports.Logger, config Config) *Processor {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	return &Processor{calc: calc, logger: logger, config: config}
}

// Process reads name pairs from r and calls emit once per pair, in input
// order. Blank lines and lines starting with '#' are skipped. Invalid pairs
// produce a Record with Err set; only read errors, a done context or an
// emit error stop the batch.
func (p *Processor) Process(ctx context.Context, r io.Reader, emit func(Record) error) (Summary, error) {
	startTime := time.Now()
	var summary Summary

	jobs := make(chan job, MaxJobQueueSize)
	results := make(chan jobResult, p.config.Workers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		return p.readJobs(gctx, r, jobs)
	})

	g.Go(func() error {
		defer close(results)
		workers, wctx := errgroup.WithContext(gctx)
		for i := 0; i < p.config.Workers; i++ {
			workers.Go(func() error {
				return p.work(wctx, jobs, results)
			})
		}
		return workers.Wait()
	})

	g.Go(func() error {
		return collect(results, emit, &summary)
	})

	err := g.Wait()
	summary.Duration = time.Since(startTime)

	if err != nil {
		p.logger.Error("Batch aborted", "error", err, "records", summary.Records)
		return summary, err
	}

	p.logger.Info("Batch processed",
		"records", summary.Records,
		"computed", summary.Computed,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"workers", p.config.Workers,
		"duration", summary.Duration,
	)
	return summary, nil
}

func (p *Processor) readJobs(ctx context.Context, r io.Reader, jobs chan<- job) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineSize)

	var chunkID, number int
	pending := make([]line, 0, p.config.ChunkSize)

	send := func() error {
		if len(pending) == 0 {
			return nil
		}
		select {
		case jobs <- job{chunkID: chunkID, lines: pending}:
			chunkID++
			pending = make([]line, 0, p.config.ChunkSize)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for scanner.Scan() {
		number++
		pending = append(pending, line{number: number, text: scanner.Text()})
		if len(pending) == p.config.ChunkSize {
			if err := send(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading line %d: %w", number+1, err)
	}
	return send()
}

func (p *Processor) work(ctx context.Context, jobs <-chan job, results chan<- jobResult) error {
	for j := range jobs {
		res := jobResult{chunkID: j.chunkID, records: make([]Record, 0, len(j.lines))}
		for _, ln := range j.lines {
			if skip(ln.text) {
				res.skipped++
				continue
			}
			rec, err := p.classify(ctx, ln)
			if err != nil {
				return err
			}
			res.records = append(res.records, rec)
		}

		select {
		case results <- res:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// classify returns an error only when the calculator fails.
func (p *Processor) classify(ctx context.Context, ln line) (Record, error) {
	rec := Record{Line: ln.number}

	rawA, rawB, err := ParseLine(ln.text)
	if err != nil {
		rec.Err = err
		return rec, nil
	}
	rec.Name1, rec.Name2 = rawA, rawB

	nameA, nameB, err := validate.Names(rawA, rawB)
	if err != nil {
		rec.Err = err
		return rec, nil
	}
	rec.Name1, rec.Name2 = nameA, nameB

	rec.Result, err = p.calc.Compute(ctx, nameA, nameB)
	if err != nil {
		return rec, err
	}
	return rec, nil
}

// collect emits chunks in chunk ID order as they complete.
func collect(results <-chan jobResult, emit func(Record) error, summary *Summary) error {
	pending := make(map[int]jobResult)
	next := 0

	for res := range results {
		pending[res.chunkID] = res
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			summary.Skipped += ready.skipped
			for _, rec := range ready.records {
				summary.Records++
				if rec.Err != nil {
					summary.Failed++
				} else {
					summary.Computed++
				}
				if err := emit(rec); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func skip(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// ParseLine splits a line into two names at the first tab, or at the first
// comma when the line has no tab.
func ParseLine(text string) (string, string, error) {
	sep := "\t"
	if !strings.Contains(text, sep) {
		sep = ","
	}
	nameA, nameB, ok := strings.Cut(text, sep)
	if !ok {
		return "", "", ErrMissingSeparator
	}
	return nameA, nameB, nil
}
