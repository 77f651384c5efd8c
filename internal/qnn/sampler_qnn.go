package qnn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/gradient"
	"github.com/bloch-ml/bloch/internal/primitive"
)

// SamplerQNN evaluates a parametrized circuit through a Sampler. The
// measurement distribution over basis states is folded through an
// interpret function into OutputDim probabilities per sample.
//
// Example (two-class parity readout):
//
//	qc := circuit.NewQNNCircuit(2)
//	net, err := qnn.NewSamplerQNN(qc.Circuit(),
//	    qnn.WithSamplerInputParams(qc.InputParameters()),
//	    qnn.WithSamplerWeightParams(qc.WeightParameters()),
//	    qnn.WithInterpret(qnn.Parity, 2),
//	)
type SamplerQNN struct {
	circ           *circuit.Circuit
	inputParams    []*circuit.Parameter
	weightParams   []*circuit.Parameter
	smp            *primitive.Sampler
	grad           SamplerGradient
	interpret      Interpret
	outputDim      int
	inputGradients bool
}

// SamplerQNNOption configures a SamplerQNN.
type SamplerQNNOption func(*SamplerQNN)

// WithSamplerInputParams declares which circuit parameters are bound
// from the input data, in input order.
func WithSamplerInputParams(ps []*circuit.Parameter) SamplerQNNOption {
	return func(n *SamplerQNN) { n.inputParams = ps }
}

// WithSamplerWeightParams declares which circuit parameters are
// trainable weights, in weight order. Defaults to every circuit
// parameter.
func WithSamplerWeightParams(ps []*circuit.Parameter) SamplerQNNOption {
	return func(n *SamplerQNN) { n.weightParams = ps }
}

// WithInterpret maps measured basis states to output indices.
// outputDim is the resulting per-sample output length. Without it the
// network returns the raw 2^n distribution.
func WithInterpret(fn Interpret, outputDim int) SamplerQNNOption {
	return func(n *SamplerQNN) {
		n.interpret = fn
		n.outputDim = outputDim
	}
}

// WithSampler sets the sampler used by Forward. Defaults to an exact
// CPU sampler.
func WithSampler(smp *primitive.Sampler) SamplerQNNOption {
	return func(n *SamplerQNN) { n.smp = smp }
}

// WithSamplerGradient sets the gradient engine used by Backward.
// Defaults to the parameter-shift rule over the network's sampler.
func WithSamplerGradient(g SamplerGradient) SamplerQNNOption {
	return func(n *SamplerQNN) { n.grad = g }
}

// WithSamplerInputGradients makes Backward also return gradients with
// respect to the inputs.
func WithSamplerInputGradients() SamplerQNNOption {
	return func(n *SamplerQNN) { n.inputGradients = true }
}

// NewSamplerQNN builds a sampler network over c. Without explicit
// parameter options every circuit parameter is a weight.
func NewSamplerQNN(c *circuit.Circuit, opts ...SamplerQNNOption) (*SamplerQNN, error) {
	n := &SamplerQNN{circ: c}
	for _, opt := range opts {
		opt(n)
	}
	if n.inputParams == nil && n.weightParams == nil {
		n.weightParams = c.Parameters()
	}
	if err := validateSplit(c, n.inputParams, n.weightParams); err != nil {
		return nil, fmt.Errorf("sampler qnn: %w", err)
	}
	if n.interpret == nil {
		n.interpret = func(outcome int) int { return outcome }
		n.outputDim = 1 << c.NumQubits()
	}
	if n.outputDim <= 0 {
		return nil, fmt.Errorf("sampler qnn: output dimension must be positive, got %d", n.outputDim)
	}
	if n.smp == nil {
		n.smp = primitive.NewSampler()
	}
	if n.grad == nil {
		n.grad = gradient.NewParamShiftSampler(n.smp)
	}
	return n, nil
}

// NewSamplerQNNFromQNNCircuit builds a sampler network from a feature
// map/ansatz pair, wiring the input/weight split automatically.
func NewSamplerQNNFromQNNCircuit(qc *circuit.QNNCircuit, opts ...SamplerQNNOption) (*SamplerQNN, error) {
	all := append([]SamplerQNNOption{
		WithSamplerInputParams(qc.InputParameters()),
		WithSamplerWeightParams(qc.WeightParameters()),
	}, opts...)
	return NewSamplerQNN(qc.Circuit(), all...)
}

// Circuit returns the underlying circuit.
func (n *SamplerQNN) Circuit() *circuit.Circuit { return n.circ }

// NumInputs returns the number of input features per sample.
func (n *SamplerQNN) NumInputs() int { return len(n.inputParams) }

// NumWeights returns the number of trainable weights.
func (n *SamplerQNN) NumWeights() int { return len(n.weightParams) }

// OutputDim returns the per-sample output length.
func (n *SamplerQNN) OutputDim() int { return n.outputDim }

func (n *SamplerQNN) checkWeights(weights []float64) error {
	if len(weights) != len(n.weightParams) {
		return fmt.Errorf("network has %d weights, got %d", len(n.weightParams), len(weights))
	}
	return nil
}

// fold accumulates a raw basis-state vector into interpret output space.
func (n *SamplerQNN) fold(dist []float64, out []float64) error {
	for outcome, p := range dist {
		if p == 0 {
			continue
		}
		k := n.interpret(outcome)
		if k < 0 || k >= n.outputDim {
			return fmt.Errorf("interpret mapped outcome %d to %d, outside [0, %d)", outcome, k, n.outputDim)
		}
		out[k] += p
	}
	return nil
}

// Forward returns the [batch, OutputDim] matrix of output
// probabilities. input may be nil for input-free networks.
func (n *SamplerQNN) Forward(input *mat.Dense, weights []float64) (*mat.Dense, error) {
	if err := n.checkWeights(weights); err != nil {
		return nil, fmt.Errorf("sampler qnn forward: %w", err)
	}
	batch, err := batchRows(input, n.NumInputs())
	if err != nil {
		return nil, fmt.Errorf("sampler qnn forward: %w", err)
	}
	paramSets := make([][]float64, batch)
	for i := 0; i < batch; i++ {
		paramSets[i] = bindValues(n.circ, n.inputParams, n.weightParams, input, i, weights)
	}
	dists, err := n.smp.Run([]*circuit.Circuit{n.circ}, paramSets)
	if err != nil {
		return nil, fmt.Errorf("sampler qnn forward: %w", err)
	}
	out := mat.NewDense(batch, n.outputDim, nil)
	for i, dist := range dists {
		if err := n.fold(dist, out.RawRowView(i)); err != nil {
			return nil, fmt.Errorf("sampler qnn forward: sample %d: %w", i, err)
		}
	}
	return out, nil
}

// foldGrad folds a raw [2^n, params] probability Jacobian into
// interpret output space.
func (n *SamplerQNN) foldGrad(raw *mat.Dense, numParams int) (*mat.Dense, error) {
	out := mat.NewDense(n.outputDim, numParams, nil)
	rows, _ := raw.Dims()
	for outcome := 0; outcome < rows; outcome++ {
		k := n.interpret(outcome)
		if k < 0 || k >= n.outputDim {
			return nil, fmt.Errorf("interpret mapped outcome %d to %d, outside [0, %d)", outcome, k, n.outputDim)
		}
		for p := 0; p < numParams; p++ {
			if v := raw.At(outcome, p); v != 0 {
				out.Set(k, p, out.At(k, p)+v)
			}
		}
	}
	return out, nil
}

// Backward returns per-sample Jacobians of the output probabilities.
// weightGrads[i] is [OutputDim, NumWeights]; inputGrads is nil unless
// the network was built with WithSamplerInputGradients.
func (n *SamplerQNN) Backward(input *mat.Dense, weights []float64) (inputGrads, weightGrads []*mat.Dense, err error) {
	if err := n.checkWeights(weights); err != nil {
		return nil, nil, fmt.Errorf("sampler qnn backward: %w", err)
	}
	batch, err := batchRows(input, n.NumInputs())
	if err != nil {
		return nil, nil, fmt.Errorf("sampler qnn backward: %w", err)
	}
	weightGrads = make([]*mat.Dense, batch)
	if n.inputGradients {
		inputGrads = make([]*mat.Dense, batch)
	}
	for i := 0; i < batch; i++ {
		values := bindValues(n.circ, n.inputParams, n.weightParams, input, i, weights)
		raw, err := n.grad.Gradient(n.circ, values, n.weightParams)
		if err != nil {
			return nil, nil, fmt.Errorf("sampler qnn backward: sample %d: %w", i, err)
		}
		weightGrads[i], err = n.foldGrad(raw, len(n.weightParams))
		if err != nil {
			return nil, nil, fmt.Errorf("sampler qnn backward: sample %d: %w", i, err)
		}
		if n.inputGradients {
			raw, err = n.grad.Gradient(n.circ, values, n.inputParams)
			if err != nil {
				return nil, nil, fmt.Errorf("sampler qnn backward: sample %d: %w", i, err)
			}
			inputGrads[i], err = n.foldGrad(raw, len(n.inputParams))
			if err != nil {
				return nil, nil, fmt.Errorf("sampler qnn backward: sample %d: %w", i, err)
			}
		}
	}
	return inputGrads, weightGrads, nil
}
