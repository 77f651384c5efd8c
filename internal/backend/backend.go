// Package backend defines the interface that all simulation engines
// implement. Primitives depend only on this interface; the default
// engine is the CPU statevector simulator, with an optional WebGPU
// engine for wide circuits.
package backend

import (
	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/statevector"
)

// Backend evolves circuits into statevectors.
type Backend interface {
	// Simulate evolves c from |0...0> with the given parameter values,
	// which follow c.Parameters() order. Returns an error if the value
	// count does not match the circuit's free parameters.
	Simulate(c *circuit.Circuit, values []float64) (*statevector.Statevector, error)

	// Name returns the backend name.
	Name() string
}
