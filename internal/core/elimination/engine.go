// Package elimination runs the round-robin FLAMES elimination and derives the
// survivor distribution over a fixed range of counts.
//
// For a positive count the cursor advances as
//
//	cursor = (cursor + count - 1) mod len(remaining)
//
// and the category under the cursor is removed until one is left. The
// survivor therefore depends only on count modulo lcm(6, 5, 4, 3, 2) = 60.
package elimination

import (
	"math"
	"sync"

	"github.com/baditaflorin/go_flames/internal/core/domain"
	"github.com/baditaflorin/go_flames/internal/ports"
)

// Probe range for Distribution, inclusive.
const (
	ProbeMin = 1
	ProbeMax = 100
)

// Eliminate runs the elimination for count over seq. A count of zero or less
// yields the Same outcome without entering the loop.
func Eliminate(count int, seq domain.Sequence) domain.Outcome {
	if count <= 0 {
		return domain.Outcome{Survivor: domain.Same}
	}

	working := seq[:]
	trace := make([]domain.Category, 0, domain.SequenceLength-1)
	cursor := 0
	for len(working) > 1 {
		cursor = (cursor + count - 1) % len(working)
		trace = append(trace, working[cursor])
		working = append(working[:cursor], working[cursor+1:]...)
	}

	return domain.Outcome{Survivor: working[0], Eliminated: trace}
}

// Survivor returns only the surviving category for count.
func Survivor(count int, seq domain.Sequence) domain.Category {
	if count <= 0 {
		return domain.Same
	}

	n := len(seq)
	cursor := 0
	for n > 1 {
		cursor = (cursor + count - 1) % n
		copy(seq[cursor:n-1], seq[cursor+1:n])
		n--
	}
	return seq[0]
}

// Distribution runs one elimination per probe count and returns the share of
// probes each category survives, rounded to one decimal place.
func Distribution(seq domain.Sequence) domain.Distribution {
	wins := make(map[domain.Category]int, domain.SequenceLength)
	for t := ProbeMin; t <= ProbeMax; t++ {
		wins[Survivor(t, seq)]++
	}

	probes := float64(ProbeMax - ProbeMin + 1)
	d := make(domain.Distribution, domain.SequenceLength)
	for i, c := range seq {
		d[i] = domain.Share{
			Category: c,
			Percent:  math.Round(float64(wins[c])*100/probes*10) / 10,
		}
	}
	return d
}

// Resolve eliminates count over seq and attaches the distribution. It
// recomputes the distribution on every call; Engine memoizes it.
func Resolve(count int, seq domain.Sequence) domain.Result {
	return resolve(count, seq, Distribution)
}

func resolve(count int, seq domain.Sequence, dist func(domain.Sequence) domain.Distribution) domain.Result {
	if count <= 0 {
		return domain.Result{
			Meaning:    domain.Same.Meaning(),
			Type:       domain.Same,
			Count:      0,
			Statistics: domain.ZeroDistribution(seq),
		}
	}

	outcome := Eliminate(count, seq)
	return domain.Result{
		Meaning:          outcome.Survivor.Meaning(),
		Type:             outcome.Survivor,
		Count:            count,
		Statistics:       dist(seq),
		EliminationOrder: outcome.Eliminated,
	}
}

// Engine resolves counts with a process-wide memo of distributions.
// It is safe for concurrent use.
type Engine struct {
	logger ports.Logger

	mu    sync.RWMutex
	cache map[domain.Sequence]domain.Distribution
}

// NewEngine creates an engine with an empty memo.
func NewEngine(logger ports.Logger) *Engine {
	return &Engine{
		logger: logger,
		cache:  make(map[domain.Sequence]domain.Distribution),
	}
}

// Distribution returns the memoized distribution for seq, computing it on
// first use. The returned slice is a copy.
func (e *Engine) Distribution(seq domain.Sequence) domain.Distribution {
	e.mu.RLock()
	d, ok := e.cache[seq]
	e.mu.RUnlock()
	if ok {
		return d.Clone()
	}

	d = Distribution(seq)

	e.mu.Lock()
	if cached, ok := e.cache[seq]; ok {
		d = cached
	} else {
		e.cache[seq] = d
		e.logger.Debug("Cached distribution", "sequence", seq.String(), "total", d.Total())
	}
	e.mu.Unlock()

	return d.Clone()
}

// Prime fills the memo for seq. It implements ports.Primer.
func (e *Engine) Prime(seq domain.Sequence) domain.Distribution {
	return e.Distribution(seq)
}

// Eliminate is the package-level Eliminate; it carries no state.
func (e *Engine) Eliminate(count int, seq domain.Sequence) domain.Outcome {
	return Eliminate(count, seq)
}

// Resolve eliminates count over seq and attaches the memoized distribution.
func (e *Engine) Resolve(count int, seq domain.Sequence) domain.Result {
	result := resolve(count, seq, e.Distribution)
	e.logger.Debug("Resolved count",
		"count", count,
		"result_type", string(result.Type),
		"elimination_order", result.EliminationOrder,
	)
	return result
}
