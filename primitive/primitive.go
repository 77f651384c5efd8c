// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package primitive provides the public API for the estimator and
// sampler primitives.
//
// The Estimator evaluates expectation values of Pauli observables and
// the Sampler produces quasi-probability distributions over
// measurement outcomes. Both run exactly by default and model shot
// noise when configured with a finite shot count:
//
//	est := primitive.NewEstimator(
//		primitive.WithShots(1024),
//		primitive.WithSeed(42),
//	)
//	values, err := est.Run(circuits, observables, paramSets)
package primitive

import (
	"github.com/bloch-ml/bloch/internal/parallel"
	"github.com/bloch-ml/bloch/internal/primitive"
)

// Estimator evaluates expectation values of observables.
type Estimator = primitive.Estimator

// Sampler produces quasi-probability distributions over outcomes.
type Sampler = primitive.Sampler

// Distribution is a dense probability vector over 2^n basis states.
type Distribution = primitive.Distribution

// Option configures an Estimator or Sampler.
type Option = primitive.Option

// ParallelConfig controls how batch items fan out over worker
// goroutines.
type ParallelConfig = parallel.Config

// NewEstimator creates an estimator primitive.
func NewEstimator(opts ...Option) *Estimator {
	return primitive.NewEstimator(opts...)
}

// NewSampler creates a sampler primitive.
func NewSampler(opts ...Option) *Sampler {
	return primitive.NewSampler(opts...)
}

// WithBackend selects the simulation backend.
var WithBackend = primitive.WithBackend

// WithShots enables shot-noise modelling with the given shot count.
var WithShots = primitive.WithShots

// WithSeed seeds the shot-noise random source.
var WithSeed = primitive.WithSeed

// WithParallelism overrides the batch fan-out configuration.
var WithParallelism = primitive.WithParallelism
