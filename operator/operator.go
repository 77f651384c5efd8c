// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package operator provides the public API for Pauli observables.
//
// Observables are sums of weighted Pauli strings, the standard
// measurement operators for quantum neural networks:
//
//	obs, err := operator.NewSparsePauliOp(
//		[]string{"ZZ", "XI"},
//		[]complex128{1, 0.5},
//	)
//
// Qubit 0 corresponds to the rightmost character of a label.
package operator

import (
	"github.com/bloch-ml/bloch/internal/operator"
)

// PauliOp is a single-qubit Pauli operator (I, X, Y or Z).
type PauliOp = operator.PauliOp

// Single-qubit Pauli operators.
const (
	I = operator.I
	X = operator.X
	Y = operator.Y
	Z = operator.Z
)

// Pauli is an n-qubit Pauli string.
type Pauli = operator.Pauli

// SparsePauliOp is a weighted sum of Pauli strings.
type SparsePauliOp = operator.SparsePauliOp

// NewPauli parses a Pauli string label such as "ZIXY".
func NewPauli(label string) (Pauli, error) {
	return operator.NewPauli(label)
}

// Identity returns the n-qubit identity Pauli string.
func Identity(n int) Pauli {
	return operator.Identity(n)
}

// NewSparsePauliOp builds an observable from labels and coefficients.
func NewSparsePauliOp(labels []string, coeffs []complex128) (*SparsePauliOp, error) {
	return operator.NewSparsePauliOp(labels, coeffs)
}

// FromPauli wraps a single Pauli string with unit coefficient.
func FromPauli(p Pauli) *SparsePauliOp {
	return operator.FromPauli(p)
}

// AllZ returns the Z⊗…⊗Z observable on n qubits, the default
// observable for estimator networks.
func AllZ(n int) *SparsePauliOp {
	return operator.AllZ(n)
}

// SingleZ returns the observable measuring Z on qubit q of n.
func SingleZ(n, q int) (*SparsePauliOp, error) {
	return operator.SingleZ(n, q)
}
