// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gradient provides the public API for circuit gradients.
//
// ParamShiftEstimator and ParamShiftSampler compute exact gradients
// with the parameter-shift rule; SPSAEstimator approximates them with
// simultaneous perturbation, trading accuracy for a constant number of
// circuit evaluations per gradient:
//
//	grad := gradient.NewParamShiftEstimator(est)
//	jac, err := grad.Gradient(c, observables, values, params)
package gradient

import (
	"github.com/bloch-ml/bloch/internal/gradient"
	"github.com/bloch-ml/bloch/internal/primitive"
)

// ParamShiftEstimator computes exact expectation-value gradients via
// the parameter-shift rule.
type ParamShiftEstimator = gradient.ParamShiftEstimator

// ParamShiftSampler computes exact probability gradients via the
// parameter-shift rule.
type ParamShiftSampler = gradient.ParamShiftSampler

// SPSAEstimator approximates expectation-value gradients by
// simultaneous perturbation stochastic approximation.
type SPSAEstimator = gradient.SPSAEstimator

// SPSAOption configures an SPSAEstimator.
type SPSAOption = gradient.SPSAOption

// NewParamShiftEstimator wraps an estimator with parameter-shift
// gradients.
func NewParamShiftEstimator(est *primitive.Estimator) *ParamShiftEstimator {
	return gradient.NewParamShiftEstimator(est)
}

// NewParamShiftSampler wraps a sampler with parameter-shift gradients.
func NewParamShiftSampler(smp *primitive.Sampler) *ParamShiftSampler {
	return gradient.NewParamShiftSampler(smp)
}

// NewSPSAEstimator wraps an estimator with SPSA gradients.
func NewSPSAEstimator(est *primitive.Estimator, opts ...SPSAOption) *SPSAEstimator {
	return gradient.NewSPSAEstimator(est, opts...)
}

// WithEpsilon sets the SPSA perturbation magnitude.
var WithEpsilon = gradient.WithEpsilon

// WithResamplings sets the number of averaged SPSA perturbations.
var WithResamplings = gradient.WithResamplings

// WithSeed seeds the SPSA perturbation source.
var WithSeed = gradient.WithSeed
