// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package circuit provides the public API for parametrized quantum
// circuits in the Bloch QML framework.
//
// A circuit is built gate by gate over a fixed number of qubits;
// rotation angles may reference symbolic parameters that are bound to
// numeric values later:
//
//	theta := circuit.NewParameter("θ")
//	c := circuit.New(2)
//	c.H(0)
//	c.RY(theta, 1)
//	c.CX(0, 1)
//	bound, err := c.Bind([]float64{0.3})
//
// The package also ships the standard feature maps and ansatz circuits
// quantum neural networks are assembled from (ZZFeatureMap,
// RealAmplitudes, EfficientSU2) and the QNNCircuit pairing that keeps
// the input/weight parameter split.
package circuit

import (
	"github.com/bloch-ml/bloch/internal/circuit"
)

// Parameter is a named symbolic placeholder for a rotation angle.
type Parameter = circuit.Parameter

// ParameterVector is an indexed family of parameters sharing a base name.
type ParameterVector = circuit.ParameterVector

// Angle is a rotation angle that may depend on symbolic parameters.
type Angle = circuit.Angle

// Circuit is a parametrized quantum circuit.
type Circuit = circuit.Circuit

// Gate is a single instruction in a circuit.
type Gate = circuit.Gate

// Kind identifies a gate type.
type Kind = circuit.Kind

// QNNCircuit pairs a feature map with an ansatz and keeps the
// input/weight parameter partition.
type QNNCircuit = circuit.QNNCircuit

// NewParameter creates a new symbolic parameter.
func NewParameter(name string) *Parameter {
	return circuit.NewParameter(name)
}

// NewParameterVector creates a vector of n parameters named name[i].
func NewParameterVector(name string, n int) *ParameterVector {
	return circuit.NewParameterVector(name, n)
}

// New creates an empty circuit over numQubits qubits.
func New(numQubits int) *Circuit {
	return circuit.New(numQubits)
}

// Value returns a constant angle.
func Value(v float64) Angle {
	return circuit.Value(v)
}

// Scaled returns the angle coeff*p.
func Scaled(coeff float64, p *Parameter) Angle {
	return circuit.Scaled(coeff, p)
}

// ScaledBias returns the angle coeff*p + bias.
func ScaledBias(coeff float64, p *Parameter, bias float64) Angle {
	return circuit.ScaledBias(coeff, p, bias)
}

// NewZFeatureMap builds a first-order Pauli-Z feature map.
func NewZFeatureMap(numQubits, reps int) *Circuit {
	return circuit.NewZFeatureMap(numQubits, reps)
}

// NewZZFeatureMap builds a second-order Pauli-ZZ feature map.
func NewZZFeatureMap(numQubits, reps int) *Circuit {
	return circuit.NewZZFeatureMap(numQubits, reps)
}

// NewRealAmplitudes builds the real-amplitudes ansatz.
func NewRealAmplitudes(numQubits, reps int) *Circuit {
	return circuit.NewRealAmplitudes(numQubits, reps)
}

// NewEfficientSU2 builds the efficient-SU2 ansatz.
func NewEfficientSU2(numQubits, reps int) *Circuit {
	return circuit.NewEfficientSU2(numQubits, reps)
}

// NewQNNCircuit builds the default feature map/ansatz pair for
// numQubits qubits.
func NewQNNCircuit(numQubits int) *QNNCircuit {
	return circuit.NewQNNCircuit(numQubits)
}

// NewQNNCircuitFrom combines an explicit feature map and ansatz.
func NewQNNCircuitFrom(featureMap, ansatz *Circuit) (*QNNCircuit, error) {
	return circuit.NewQNNCircuitFrom(featureMap, ansatz)
}
