// Package operator implements Pauli-string observables for the Bloch QML
// framework.
//
// An observable is a weighted sum of tensor products of single-qubit
// Pauli operators (I, X, Y, Z), represented sparsely by label. Qubit 0
// corresponds to the rightmost label character, so "XZ" applies X to
// qubit 1 and Z to qubit 0.
package operator

import (
	"fmt"
	"strings"
)

// PauliOp is a single-qubit Pauli operator.
type PauliOp byte

// Single-qubit Pauli operators.
const (
	I PauliOp = 'I'
	X PauliOp = 'X'
	Y PauliOp = 'Y'
	Z PauliOp = 'Z'
)

// Pauli is a tensor product of single-qubit Pauli operators, stored as
// its label string.
type Pauli struct {
	label string
}

// NewPauli parses a Pauli label such as "ZZ" or "IXYI".
func NewPauli(label string) (Pauli, error) {
	if label == "" {
		return Pauli{}, fmt.Errorf("empty Pauli label")
	}
	for i := 0; i < len(label); i++ {
		switch PauliOp(label[i]) {
		case I, X, Y, Z:
		default:
			return Pauli{}, fmt.Errorf("invalid Pauli label %q: bad operator %q at position %d",
				label, label[i], i)
		}
	}
	return Pauli{label: label}, nil
}

// Identity returns the n-qubit identity Pauli.
func Identity(n int) Pauli {
	return Pauli{label: strings.Repeat("I", n)}
}

// NumQubits returns the number of qubits the Pauli acts on.
func (p Pauli) NumQubits() int {
	return len(p.label)
}

// Op returns the single-qubit operator acting on qubit q.
// Qubit 0 is the rightmost label character.
func (p Pauli) Op(q int) PauliOp {
	return PauliOp(p.label[len(p.label)-1-q])
}

// Label returns the Pauli's label string.
func (p Pauli) Label() string {
	return p.label
}

// String implements fmt.Stringer.
func (p Pauli) String() string {
	return p.label
}

// IsIdentity reports whether every factor is I.
func (p Pauli) IsIdentity() bool {
	for i := 0; i < len(p.label); i++ {
		if p.label[i] != byte(I) {
			return false
		}
	}
	return true
}
