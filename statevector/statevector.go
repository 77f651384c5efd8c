// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package statevector provides the public API for exact statevector
// simulation.
//
// A statevector holds the 2^n complex amplitudes of an n-qubit state
// and supports gate application, circuit evolution, probabilities,
// expectation values and sampling:
//
//	sv, err := statevector.Evolve(c, values)
//	ev, err := sv.ExpectationValue(obs)
package statevector

import (
	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/statevector"
)

// Statevector is the amplitude vector of an n-qubit pure state.
type Statevector = statevector.Statevector

// Circuit is a parametrized quantum circuit.
type Circuit = circuit.Circuit

// New returns the all-zeros state |0…0⟩ on numQubits qubits.
func New(numQubits int) *Statevector {
	return statevector.New(numQubits)
}

// FromAmplitudes wraps an amplitude slice of power-of-two length.
func FromAmplitudes(amps []complex128) (*Statevector, error) {
	return statevector.FromAmplitudes(amps)
}

// Evolve runs a circuit with bound parameter values on |0…0⟩.
func Evolve(c *Circuit, values []float64) (*Statevector, error) {
	return statevector.Evolve(c, values)
}
