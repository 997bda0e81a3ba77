// flames.go
// Package goflames is the short way in: one call classifies two names with a
// shared, lazily built engine. Use pkg/flames for options.
package goflames

import (
	"context"
	"sync"

	"github.com/baditaflorin/go_flames/internal/validate"
	"github.com/baditaflorin/go_flames/pkg/flames"
)

// Result is the classification of a pair of names.
type Result = flames.Result

var (
	defaultOnce   sync.Once
	defaultFlames *flames.Flames
	defaultErr    error
)

func defaultInstance() (*flames.Flames, error) {
	defaultOnce.Do(func() {
		logger, err := createDefaultLogger()
		if err != nil {
			defaultErr = err
			return
		}
		defaultFlames, defaultErr = flames.New(flames.WithLogger(logger))
	})
	return defaultFlames, defaultErr
}

// ComputeWithDefaults validates both names and classifies them with the
// default configuration.
func ComputeWithDefaults(nameA, nameB string) (Result, error) {
	nameA, nameB, err := validate.Names(nameA, nameB)
	if err != nil {
		return Result{}, err
	}
	f, err := defaultInstance()
	if err != nil {
		return Result{}, err
	}
	return f.Compute(context.Background(), nameA, nameB)
}
