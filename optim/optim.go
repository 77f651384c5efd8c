// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for weight optimizers.
//
// Optimizers update a flat weight vector in place from a gradient of
// the same length:
//
//	opt := optim.NewAdam(optim.AdamConfig{LR: 0.05})
//	opt.Step(weights, grad)
package optim

import (
	"github.com/bloch-ml/bloch/internal/optim"
)

// Optimizer updates weights from gradients.
type Optimizer = optim.Optimizer

// SGD is stochastic gradient descent with optional momentum and
// weight decay.
type SGD = optim.SGD

// SGDConfig configures SGD. Zero values select the defaults.
type SGDConfig = optim.SGDConfig

// Adam is the Adam optimizer.
type Adam = optim.Adam

// AdamConfig configures Adam. Zero values select the defaults.
type AdamConfig = optim.AdamConfig

// StepLR decays an optimizer's learning rate by gamma every stepSize
// epochs.
type StepLR = optim.StepLR

// NewSGD creates an SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// NewAdam creates an Adam optimizer.
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}

// NewStepLR creates a step learning-rate scheduler.
func NewStepLR(opt Optimizer, stepSize int, gamma float64) *StepLR {
	return optim.NewStepLR(opt, stepSize, gamma)
}

// GradNorm returns the L2 norm of a gradient vector.
func GradNorm(grad []float64) float64 {
	return optim.GradNorm(grad)
}
