package qnn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/gradient"
	"github.com/bloch-ml/bloch/internal/operator"
	"github.com/bloch-ml/bloch/internal/primitive"
)

// EstimatorQNN evaluates a parametrized circuit through an Estimator.
// Each observable contributes one output: Forward returns
// [batch, numObservables] expectation values.
//
// Example:
//
//	qc := circuit.NewQNNCircuit(2)
//	net, err := qnn.NewEstimatorQNN(qc.Circuit(),
//	    qnn.WithInputParams(qc.InputParameters()),
//	    qnn.WithWeightParams(qc.WeightParameters()),
//	)
type EstimatorQNN struct {
	circ           *circuit.Circuit
	observables    []*operator.SparsePauliOp
	inputParams    []*circuit.Parameter
	weightParams   []*circuit.Parameter
	est            *primitive.Estimator
	grad           EstimatorGradient
	inputGradients bool
}

// EstimatorQNNOption configures an EstimatorQNN.
type EstimatorQNNOption func(*EstimatorQNN)

// WithObservables sets the measured observables, one output per
// observable. Defaults to Z on every qubit.
func WithObservables(obs ...*operator.SparsePauliOp) EstimatorQNNOption {
	return func(n *EstimatorQNN) { n.observables = obs }
}

// WithInputParams declares which circuit parameters are bound from the
// input data, in input order.
func WithInputParams(ps []*circuit.Parameter) EstimatorQNNOption {
	return func(n *EstimatorQNN) { n.inputParams = ps }
}

// WithWeightParams declares which circuit parameters are trainable
// weights, in weight order. Defaults to every circuit parameter.
func WithWeightParams(ps []*circuit.Parameter) EstimatorQNNOption {
	return func(n *EstimatorQNN) { n.weightParams = ps }
}

// WithEstimator sets the estimator used by Forward. Defaults to an
// exact CPU estimator.
func WithEstimator(est *primitive.Estimator) EstimatorQNNOption {
	return func(n *EstimatorQNN) { n.est = est }
}

// WithEstimatorGradient sets the gradient engine used by Backward.
// Defaults to the parameter-shift rule over the network's estimator.
func WithEstimatorGradient(g EstimatorGradient) EstimatorQNNOption {
	return func(n *EstimatorQNN) { n.grad = g }
}

// WithInputGradients makes Backward also return gradients with respect
// to the inputs, which connectors into classical networks need.
func WithInputGradients() EstimatorQNNOption {
	return func(n *EstimatorQNN) { n.inputGradients = true }
}

// NewEstimatorQNN builds an estimator network over c. Without
// WithInputParams/WithWeightParams every circuit parameter is a weight.
func NewEstimatorQNN(c *circuit.Circuit, opts ...EstimatorQNNOption) (*EstimatorQNN, error) {
	n := &EstimatorQNN{circ: c}
	for _, opt := range opts {
		opt(n)
	}
	if n.inputParams == nil && n.weightParams == nil {
		n.weightParams = c.Parameters()
	}
	if err := validateSplit(c, n.inputParams, n.weightParams); err != nil {
		return nil, fmt.Errorf("estimator qnn: %w", err)
	}
	if len(n.observables) == 0 {
		n.observables = []*operator.SparsePauliOp{operator.AllZ(c.NumQubits())}
	}
	for i, obs := range n.observables {
		if obs.NumQubits() != c.NumQubits() {
			return nil, fmt.Errorf("estimator qnn: observable %d acts on %d qubits, circuit has %d",
				i, obs.NumQubits(), c.NumQubits())
		}
	}
	if n.est == nil {
		n.est = primitive.NewEstimator()
	}
	if n.grad == nil {
		n.grad = gradient.NewParamShiftEstimator(n.est)
	}
	return n, nil
}

// NewEstimatorQNNFromQNNCircuit builds an estimator network from a
// feature map/ansatz pair, wiring the input/weight split automatically.
func NewEstimatorQNNFromQNNCircuit(qc *circuit.QNNCircuit, opts ...EstimatorQNNOption) (*EstimatorQNN, error) {
	all := append([]EstimatorQNNOption{
		WithInputParams(qc.InputParameters()),
		WithWeightParams(qc.WeightParameters()),
	}, opts...)
	return NewEstimatorQNN(qc.Circuit(), all...)
}

// Circuit returns the underlying circuit.
func (n *EstimatorQNN) Circuit() *circuit.Circuit { return n.circ }

// Observables returns the measured observables.
func (n *EstimatorQNN) Observables() []*operator.SparsePauliOp { return n.observables }

// NumInputs returns the number of input features per sample.
func (n *EstimatorQNN) NumInputs() int { return len(n.inputParams) }

// NumWeights returns the number of trainable weights.
func (n *EstimatorQNN) NumWeights() int { return len(n.weightParams) }

// OutputDim returns the number of observables.
func (n *EstimatorQNN) OutputDim() int { return len(n.observables) }

func (n *EstimatorQNN) checkWeights(weights []float64) error {
	if len(weights) != len(n.weightParams) {
		return fmt.Errorf("network has %d weights, got %d", len(n.weightParams), len(weights))
	}
	return nil
}

// Forward returns the [batch, OutputDim] matrix of expectation values.
// input may be a single row per sample or nil for input-free networks.
func (n *EstimatorQNN) Forward(input *mat.Dense, weights []float64) (*mat.Dense, error) {
	if err := n.checkWeights(weights); err != nil {
		return nil, fmt.Errorf("estimator qnn forward: %w", err)
	}
	batch, err := batchRows(input, n.NumInputs())
	if err != nil {
		return nil, fmt.Errorf("estimator qnn forward: %w", err)
	}
	paramSets := make([][]float64, batch)
	for i := 0; i < batch; i++ {
		paramSets[i] = bindValues(n.circ, n.inputParams, n.weightParams, input, i, weights)
	}
	out := mat.NewDense(batch, len(n.observables), nil)
	for j, obs := range n.observables {
		values, err := n.est.Run(
			[]*circuit.Circuit{n.circ},
			[]*operator.SparsePauliOp{obs},
			paramSets,
		)
		if err != nil {
			return nil, fmt.Errorf("estimator qnn forward: %w", err)
		}
		for i, v := range values {
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// Backward returns per-sample Jacobians of the outputs. weightGrads[i]
// is [OutputDim, NumWeights]; inputGrads is nil unless the network was
// built with WithInputGradients.
func (n *EstimatorQNN) Backward(input *mat.Dense, weights []float64) (inputGrads, weightGrads []*mat.Dense, err error) {
	if err := n.checkWeights(weights); err != nil {
		return nil, nil, fmt.Errorf("estimator qnn backward: %w", err)
	}
	batch, err := batchRows(input, n.NumInputs())
	if err != nil {
		return nil, nil, fmt.Errorf("estimator qnn backward: %w", err)
	}
	weightGrads = make([]*mat.Dense, batch)
	if n.inputGradients {
		inputGrads = make([]*mat.Dense, batch)
	}
	for i := 0; i < batch; i++ {
		values := bindValues(n.circ, n.inputParams, n.weightParams, input, i, weights)
		weightGrads[i], err = n.grad.Gradient(n.circ, n.observables, values, n.weightParams)
		if err != nil {
			return nil, nil, fmt.Errorf("estimator qnn backward: sample %d: %w", i, err)
		}
		if n.inputGradients {
			inputGrads[i], err = n.grad.Gradient(n.circ, n.observables, values, n.inputParams)
			if err != nil {
				return nil, nil, fmt.Errorf("estimator qnn backward: sample %d: %w", i, err)
			}
		}
	}
	return inputGrads, weightGrads, nil
}
