// Package cpu implements the default statevector simulation engine in
// pure Go. It is exact, dependency-free and fast enough for the circuit
// widths quantum neural networks use in practice.
package cpu

import (
	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/statevector"
)

// Backend is the CPU statevector engine. The zero value is ready to use.
type Backend struct{}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{}
}

// Simulate evolves c from |0...0> with the given parameter values.
func (b *Backend) Simulate(c *circuit.Circuit, values []float64) (*statevector.Statevector, error) {
	return statevector.Evolve(c, values)
}

// Name returns "cpu".
func (b *Backend) Name() string {
	return "cpu"
}
