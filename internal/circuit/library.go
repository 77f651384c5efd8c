package circuit

import (
	"fmt"
	"math"
)

// NewZFeatureMap builds a first-order Pauli-Z feature map: per repetition,
// a Hadamard layer followed by P(2*x[i]) on each qubit. It encodes
// numQubits input features.
func NewZFeatureMap(numQubits, reps int) *Circuit {
	x := NewParameterVector("x", numQubits)
	c := New(numQubits)
	for r := 0; r < reps; r++ {
		for q := 0; q < numQubits; q++ {
			c.H(q)
		}
		for q := 0; q < numQubits; q++ {
			c.P(Scaled(2, x.At(q)), q)
		}
	}
	return c
}

// NewZZFeatureMap builds a second-order Pauli-ZZ feature map encoding
// numQubits input features. Per repetition: a Hadamard layer, P(2*x[i])
// on each qubit, and for every pair i<j the entangling block
// CX(i,j), P(2*(π-x[i])*(π-x[j]), j), CX(i,j).
//
// Requires at least 2 qubits; use NewZFeatureMap for a single feature.
func NewZZFeatureMap(numQubits, reps int) *Circuit {
	if numQubits < 2 {
		panic(fmt.Sprintf("circuit.NewZZFeatureMap: need at least 2 qubits, got %d", numQubits))
	}
	x := NewParameterVector("x", numQubits)
	c := New(numQubits)
	for r := 0; r < reps; r++ {
		for q := 0; q < numQubits; q++ {
			c.H(q)
		}
		for q := 0; q < numQubits; q++ {
			c.P(Scaled(2, x.At(q)), q)
		}
		for i := 0; i < numQubits; i++ {
			for j := i + 1; j < numQubits; j++ {
				c.CX(i, j)
				c.P(ShiftProduct(2, math.Pi, x.At(i), math.Pi, x.At(j)), j)
				c.CX(i, j)
			}
		}
	}
	return c
}

// NewRealAmplitudes builds the real-amplitudes ansatz: reps+1 layers of
// RY rotations with full CX entanglement between them. It has
// numQubits*(reps+1) weight parameters named θ[k].
func NewRealAmplitudes(numQubits, reps int) *Circuit {
	theta := NewParameterVector("θ", numQubits*(reps+1))
	c := New(numQubits)
	k := 0
	rotate := func() {
		for q := 0; q < numQubits; q++ {
			c.RY(theta.At(k), q)
			k++
		}
	}
	rotate()
	for r := 0; r < reps; r++ {
		for i := 0; i < numQubits; i++ {
			for j := i + 1; j < numQubits; j++ {
				c.CX(i, j)
			}
		}
		rotate()
	}
	return c
}

// NewEfficientSU2 builds the efficient-SU2 ansatz: reps+1 layers of RY
// and RZ rotations with full CX entanglement between them. It has
// 2*numQubits*(reps+1) weight parameters.
func NewEfficientSU2(numQubits, reps int) *Circuit {
	theta := NewParameterVector("θ", 2*numQubits*(reps+1))
	c := New(numQubits)
	k := 0
	rotate := func() {
		for q := 0; q < numQubits; q++ {
			c.RY(theta.At(k), q)
			k++
		}
		for q := 0; q < numQubits; q++ {
			c.RZ(theta.At(k), q)
			k++
		}
	}
	rotate()
	for r := 0; r < reps; r++ {
		for i := 0; i < numQubits; i++ {
			for j := i + 1; j < numQubits; j++ {
				c.CX(i, j)
			}
		}
		rotate()
	}
	return c
}

// QNNCircuit pairs a feature map with an ansatz and keeps the input/weight
// parameter partition that quantum neural networks consume.
//
// Input parameters come from the feature map, weight parameters from the
// ansatz; the combined circuit lists inputs before weights.
type QNNCircuit struct {
	circuit    *Circuit
	featureMap *Circuit
	ansatz     *Circuit
}

// NewQNNCircuit builds the default feature map/ansatz pair for numQubits
// qubits: a ZZ feature map (2 repetitions) followed by a real-amplitudes
// ansatz (3 repetitions). A single qubit falls back to the first-order Z
// feature map.
func NewQNNCircuit(numQubits int) *QNNCircuit {
	var fm *Circuit
	if numQubits == 1 {
		fm = NewZFeatureMap(numQubits, 2)
	} else {
		fm = NewZZFeatureMap(numQubits, 2)
	}
	qc, err := NewQNNCircuitFrom(fm, NewRealAmplitudes(numQubits, 3))
	if err != nil {
		// Widths match by construction.
		panic(err)
	}
	return qc
}

// NewQNNCircuitFrom combines an explicit feature map and ansatz. The two
// circuits must have the same width and disjoint parameters.
func NewQNNCircuitFrom(featureMap, ansatz *Circuit) (*QNNCircuit, error) {
	for _, p := range ansatz.Parameters() {
		if featureMap.ParameterIndex(p) >= 0 {
			return nil, fmt.Errorf("parameter %s appears in both feature map and ansatz", p)
		}
	}
	combined, err := featureMap.Compose(ansatz)
	if err != nil {
		return nil, err
	}
	return &QNNCircuit{circuit: combined, featureMap: featureMap, ansatz: ansatz}, nil
}

// Circuit returns the combined circuit.
func (qc *QNNCircuit) Circuit() *Circuit { return qc.circuit }

// FeatureMap returns the feature map circuit.
func (qc *QNNCircuit) FeatureMap() *Circuit { return qc.featureMap }

// Ansatz returns the ansatz circuit.
func (qc *QNNCircuit) Ansatz() *Circuit { return qc.ansatz }

// InputParameters returns the feature map's parameters.
func (qc *QNNCircuit) InputParameters() []*Parameter { return qc.featureMap.Parameters() }

// WeightParameters returns the ansatz's parameters.
func (qc *QNNCircuit) WeightParameters() []*Parameter { return qc.ansatz.Parameters() }
