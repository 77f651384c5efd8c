// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package qnn provides the public API for quantum neural networks.
//
// A quantum neural network maps a flat input vector and a flat weight
// vector to an output vector by running a parametrized circuit.
// EstimatorQNN outputs expectation values of observables; SamplerQNN
// outputs (folded) probability distributions over measurement
// outcomes. Both implement the NeuralNetwork interface consumed by
// the learn package:
//
//	qc := circuit.NewQNNCircuit(2)
//	net, err := qnn.NewEstimatorQNNFromQNNCircuit(qc)
//	out, err := net.Forward(qnn.SingleInput([]float64{0.1, 0.2}), weights)
package qnn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/qnn"
)

// NeuralNetwork is the interface shared by EstimatorQNN and
// SamplerQNN.
type NeuralNetwork = qnn.NeuralNetwork

// EstimatorQNN computes expectation values of observables over a
// parametrized circuit.
type EstimatorQNN = qnn.EstimatorQNN

// SamplerQNN computes probability distributions over measurement
// outcomes of a parametrized circuit.
type SamplerQNN = qnn.SamplerQNN

// EstimatorQNNOption configures an EstimatorQNN.
type EstimatorQNNOption = qnn.EstimatorQNNOption

// SamplerQNNOption configures a SamplerQNN.
type SamplerQNNOption = qnn.SamplerQNNOption

// Interpret maps a raw measurement outcome to an output index.
type Interpret = qnn.Interpret

// EstimatorGradient computes gradients of expectation values.
type EstimatorGradient = qnn.EstimatorGradient

// SamplerGradient computes gradients of outcome probabilities.
type SamplerGradient = qnn.SamplerGradient

// NewEstimatorQNN builds an estimator network over a circuit.
func NewEstimatorQNN(c *circuit.Circuit, opts ...EstimatorQNNOption) (*EstimatorQNN, error) {
	return qnn.NewEstimatorQNN(c, opts...)
}

// NewEstimatorQNNFromQNNCircuit builds an estimator network from a
// QNNCircuit, taking the input/weight split from its feature map and
// ansatz.
func NewEstimatorQNNFromQNNCircuit(qc *circuit.QNNCircuit, opts ...EstimatorQNNOption) (*EstimatorQNN, error) {
	return qnn.NewEstimatorQNNFromQNNCircuit(qc, opts...)
}

// NewSamplerQNN builds a sampler network over a circuit.
func NewSamplerQNN(c *circuit.Circuit, opts ...SamplerQNNOption) (*SamplerQNN, error) {
	return qnn.NewSamplerQNN(c, opts...)
}

// NewSamplerQNNFromQNNCircuit builds a sampler network from a
// QNNCircuit.
func NewSamplerQNNFromQNNCircuit(qc *circuit.QNNCircuit, opts ...SamplerQNNOption) (*SamplerQNN, error) {
	return qnn.NewSamplerQNNFromQNNCircuit(qc, opts...)
}

// Parity maps an outcome to the parity of its bit string, the usual
// interpret function for binary classification with a SamplerQNN.
func Parity(outcome int) int {
	return qnn.Parity(outcome)
}

// SingleInput wraps a single sample as a 1-row input matrix.
func SingleInput(x []float64) *mat.Dense {
	return qnn.SingleInput(x)
}

// EstimatorQNN options.
var (
	WithObservables       = qnn.WithObservables
	WithInputParams       = qnn.WithInputParams
	WithWeightParams      = qnn.WithWeightParams
	WithEstimator         = qnn.WithEstimator
	WithEstimatorGradient = qnn.WithEstimatorGradient
	WithInputGradients    = qnn.WithInputGradients
)

// SamplerQNN options.
var (
	WithSamplerInputParams    = qnn.WithSamplerInputParams
	WithSamplerWeightParams   = qnn.WithSamplerWeightParams
	WithInterpret             = qnn.WithInterpret
	WithSampler               = qnn.WithSampler
	WithSamplerGradient       = qnn.WithSamplerGradient
	WithSamplerInputGradients = qnn.WithSamplerInputGradients
)
