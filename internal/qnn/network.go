// Package qnn implements quantum neural networks: thin trainable
// wrappers that evaluate a parametrized circuit through a primitive and
// expose batched Forward and Backward passes over flat numeric vectors.
//
// A network's circuit parameters are partitioned into input parameters,
// bound per sample from the data, and weight parameters, bound from the
// trainable weight vector. EstimatorQNN produces expectation values of
// observables; SamplerQNN produces measurement probabilities folded
// through an interpret function.
package qnn

import (
	"fmt"
	"math/bits"

	"gonum.org/v1/gonum/mat"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/operator"
)

// NeuralNetwork is the interface shared by all quantum networks.
//
// Forward and Backward accept a batch of input rows and one flat weight
// vector. Input may be nil when the network has no input parameters.
type NeuralNetwork interface {
	// NumInputs returns the number of input features per sample.
	NumInputs() int

	// NumWeights returns the number of trainable weights.
	NumWeights() int

	// OutputDim returns the per-sample output length.
	OutputDim() int

	// Forward evaluates the network, returning a [batch, OutputDim] matrix.
	Forward(input *mat.Dense, weights []float64) (*mat.Dense, error)

	// Backward evaluates gradients. weightGrads[i] is the
	// [OutputDim, NumWeights] Jacobian for sample i; inputGrads is nil
	// unless input gradients are enabled on the network.
	Backward(input *mat.Dense, weights []float64) (inputGrads, weightGrads []*mat.Dense, err error)
}

// EstimatorGradient computes gradients of expectation values with
// respect to a subset of circuit parameters.
type EstimatorGradient interface {
	Gradient(c *circuit.Circuit, observables []*operator.SparsePauliOp,
		values []float64, params []*circuit.Parameter) (*mat.Dense, error)
}

// SamplerGradient computes gradients of measurement probabilities with
// respect to a subset of circuit parameters.
type SamplerGradient interface {
	Gradient(c *circuit.Circuit, values []float64, params []*circuit.Parameter) (*mat.Dense, error)
}

// Interpret maps a measured basis state to an output index. Outcomes
// mapping to the same index accumulate probability mass.
type Interpret func(outcome int) int

// Parity maps a basis state to the parity of its bit count, the standard
// two-class readout for sampler networks.
func Parity(outcome int) int {
	return bits.OnesCount(uint(outcome)) % 2
}

// SingleInput wraps one flat input vector as a batch of size 1.
func SingleInput(x []float64) *mat.Dense {
	if len(x) == 0 {
		return nil
	}
	return mat.NewDense(1, len(x), x)
}

// validateSplit checks that inputs and weights partition the circuit's
// parameters: disjoint, fully covering, no strangers.
func validateSplit(c *circuit.Circuit, inputs, weights []*circuit.Parameter) error {
	seen := make(map[*circuit.Parameter]bool, len(inputs)+len(weights))
	for _, p := range inputs {
		if c.ParameterIndex(p) < 0 {
			return fmt.Errorf("input parameter %s does not appear in the circuit", p)
		}
		if seen[p] {
			return fmt.Errorf("parameter %s listed twice", p)
		}
		seen[p] = true
	}
	for _, p := range weights {
		if c.ParameterIndex(p) < 0 {
			return fmt.Errorf("weight parameter %s does not appear in the circuit", p)
		}
		if seen[p] {
			return fmt.Errorf("parameter %s listed as both input and weight", p)
		}
		seen[p] = true
	}
	if len(seen) != c.NumParameters() {
		return fmt.Errorf("parameter split covers %d of %d circuit parameters",
			len(seen), c.NumParameters())
	}
	return nil
}

// batchRows normalizes the input matrix: nil is a batch of one empty
// row for input-free networks, otherwise the column count must match
// numInputs.
func batchRows(input *mat.Dense, numInputs int) (int, error) {
	if input == nil {
		if numInputs != 0 {
			return 0, fmt.Errorf("network has %d inputs, got nil input", numInputs)
		}
		return 1, nil
	}
	r, cols := input.Dims()
	if cols != numInputs {
		return 0, fmt.Errorf("network has %d inputs, got %d columns", numInputs, cols)
	}
	return r, nil
}

// bindValues assembles the full circuit value vector for one sample.
func bindValues(c *circuit.Circuit, inputParams, weightParams []*circuit.Parameter,
	input *mat.Dense, row int, weights []float64,
) []float64 {
	values := make([]float64, c.NumParameters())
	for k, p := range inputParams {
		values[c.ParameterIndex(p)] = input.At(row, k)
	}
	for k, p := range weightParams {
		values[c.ParameterIndex(p)] = weights[k]
	}
	return values
}
