package qnn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/operator"
	"github.com/bloch-ml/bloch/internal/primitive"
)

// ryNet builds the simplest estimator network: RY(x) then RY(w) on one
// qubit, measuring <Z> = cos(x + w).
func ryNet(t *testing.T) (*EstimatorQNN, *circuit.Parameter, *circuit.Parameter) {
	t.Helper()
	x := circuit.NewParameter("x")
	w := circuit.NewParameter("w")
	c := circuit.New(1)
	c.RY(x, 0)
	c.RY(w, 0)

	net, err := NewEstimatorQNN(c,
		WithInputParams([]*circuit.Parameter{x}),
		WithWeightParams([]*circuit.Parameter{w}),
	)
	require.NoError(t, err)
	return net, x, w
}

func TestEstimatorQNNForward(t *testing.T) {
	net, _, _ := ryNet(t)
	assert.Equal(t, 1, net.NumInputs())
	assert.Equal(t, 1, net.NumWeights())
	assert.Equal(t, 1, net.OutputDim())

	input := mat.NewDense(3, 1, []float64{0.1, 0.5, 1.2})
	w := []float64{0.3}

	out, err := net.Forward(input, w)
	require.NoError(t, err)

	rows, cols := out.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 1, cols)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, math.Cos(input.At(i, 0)+0.3), out.At(i, 0), 1e-9, "sample %d", i)
	}
}

func TestEstimatorQNNBackward(t *testing.T) {
	net, _, _ := ryNet(t)

	input := mat.NewDense(2, 1, []float64{0.2, 0.9})
	w := []float64{0.4}

	inputGrads, weightGrads, err := net.Backward(input, w)
	require.NoError(t, err)
	assert.Nil(t, inputGrads)
	require.Len(t, weightGrads, 2)

	// d cos(x+w)/dw = -sin(x+w).
	for i := 0; i < 2; i++ {
		rows, cols := weightGrads[i].Dims()
		assert.Equal(t, 1, rows)
		assert.Equal(t, 1, cols)
		assert.InDelta(t, -math.Sin(input.At(i, 0)+0.4), weightGrads[i].At(0, 0), 1e-9, "sample %d", i)
	}
}

func TestEstimatorQNNInputGradients(t *testing.T) {
	x := circuit.NewParameter("x")
	w := circuit.NewParameter("w")
	c := circuit.New(1)
	c.RY(x, 0)
	c.RY(w, 0)

	net, err := NewEstimatorQNN(c,
		WithInputParams([]*circuit.Parameter{x}),
		WithWeightParams([]*circuit.Parameter{w}),
		WithInputGradients(),
	)
	require.NoError(t, err)

	input := SingleInput([]float64{0.6})
	inputGrads, _, err := net.Backward(input, []float64{0.2})
	require.NoError(t, err)
	require.Len(t, inputGrads, 1)
	assert.InDelta(t, -math.Sin(0.8), inputGrads[0].At(0, 0), 1e-9)
}

func TestEstimatorQNNDefaultsToWeights(t *testing.T) {
	// Without a declared split every parameter is a weight.
	theta := circuit.NewParameter("θ")
	c := circuit.New(1)
	c.RY(theta, 0)

	net, err := NewEstimatorQNN(c)
	require.NoError(t, err)
	assert.Equal(t, 0, net.NumInputs())
	assert.Equal(t, 1, net.NumWeights())

	// nil input is a batch of one.
	out, err := net.Forward(nil, []float64{0.7})
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(0.7), out.At(0, 0), 1e-9)
}

func TestEstimatorQNNDefaultObservable(t *testing.T) {
	net, _, _ := ryNet(t)
	require.Len(t, net.Observables(), 1)
	p, _ := net.Observables()[0].Term(0)
	assert.Equal(t, "Z", p.Label())
}

func TestEstimatorQNNMultipleObservables(t *testing.T) {
	x := circuit.NewParameter("x")
	c := circuit.New(1)
	c.RY(x, 0)

	xOp, err := operator.NewSparsePauliOp([]string{"X"}, []complex128{1})
	require.NoError(t, err)

	net, err := NewEstimatorQNN(c,
		WithObservables(operator.AllZ(1), xOp),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, net.OutputDim())

	out, err := net.Forward(nil, []float64{0.5})
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(0.5), out.At(0, 0), 1e-9)
	assert.InDelta(t, math.Sin(0.5), out.At(0, 1), 1e-9)
}

func TestEstimatorQNNValidation(t *testing.T) {
	x := circuit.NewParameter("x")
	w := circuit.NewParameter("w")
	c := circuit.New(1)
	c.RY(x, 0)
	c.RY(w, 0)

	// Split not covering every parameter.
	_, err := NewEstimatorQNN(c, WithInputParams([]*circuit.Parameter{x}))
	assert.Error(t, err)

	// Parameter in both lists.
	_, err = NewEstimatorQNN(c,
		WithInputParams([]*circuit.Parameter{x, w}),
		WithWeightParams([]*circuit.Parameter{w}),
	)
	assert.Error(t, err)

	// Stranger parameter.
	_, err = NewEstimatorQNN(c,
		WithInputParams([]*circuit.Parameter{x}),
		WithWeightParams([]*circuit.Parameter{w, circuit.NewParameter("other")}),
	)
	assert.Error(t, err)

	// Observable width mismatch.
	_, err = NewEstimatorQNN(c,
		WithInputParams([]*circuit.Parameter{x}),
		WithWeightParams([]*circuit.Parameter{w}),
		WithObservables(operator.AllZ(2)),
	)
	assert.Error(t, err)
}

func TestEstimatorQNNWeightCountMismatch(t *testing.T) {
	net, _, _ := ryNet(t)
	_, err := net.Forward(SingleInput([]float64{0.1}), []float64{1, 2})
	assert.Error(t, err)
	_, _, err = net.Backward(SingleInput([]float64{0.1}), nil)
	assert.Error(t, err)
}

func TestEstimatorQNNInputShapeMismatch(t *testing.T) {
	net, _, _ := ryNet(t)
	_, err := net.Forward(mat.NewDense(1, 2, []float64{1, 2}), []float64{0.1})
	assert.Error(t, err)
	_, err = net.Forward(nil, []float64{0.1})
	assert.Error(t, err)
}

func TestEstimatorQNNFromQNNCircuit(t *testing.T) {
	qc := circuit.NewQNNCircuit(2)
	net, err := NewEstimatorQNNFromQNNCircuit(qc)
	require.NoError(t, err)
	assert.Equal(t, 2, net.NumInputs())
	assert.Equal(t, 8, net.NumWeights())
	assert.Equal(t, 1, net.OutputDim())

	input := mat.NewDense(2, 2, []float64{0.1, 0.2, 0.3, 0.4})
	weights := make([]float64, 8)
	out, err := net.Forward(input, weights)
	require.NoError(t, err)
	rows, cols := out.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1, cols)
	// Expectation values of ZZ are bounded.
	for i := 0; i < rows; i++ {
		assert.LessOrEqual(t, math.Abs(out.At(i, 0)), 1.0+1e-9)
	}
}

func TestSamplerQNNRawDistribution(t *testing.T) {
	// Without interpret, the outputs are the raw 2^n distribution.
	w := circuit.NewParameter("w")
	c := circuit.New(1)
	c.RY(w, 0)

	net, err := NewSamplerQNN(c)
	require.NoError(t, err)
	assert.Equal(t, 2, net.OutputDim())

	theta := 0.8
	out, err := net.Forward(nil, []float64{theta})
	require.NoError(t, err)

	p0 := math.Cos(theta/2) * math.Cos(theta/2)
	assert.InDelta(t, p0, out.At(0, 0), 1e-9)
	assert.InDelta(t, 1-p0, out.At(0, 1), 1e-9)
}

func TestSamplerQNNParityInterpret(t *testing.T) {
	// Bell pair: both outcomes have even parity.
	c := circuit.New(2)
	c.H(0)
	c.CX(0, 1)

	net, err := NewSamplerQNN(c, WithInterpret(Parity, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, net.OutputDim())

	out, err := net.Forward(nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.At(0, 0), 1e-9)
	assert.InDelta(t, 0.0, out.At(0, 1), 1e-9)
}

func TestSamplerQNNForwardRowsSumToOne(t *testing.T) {
	qc := circuit.NewQNNCircuit(2)
	net, err := NewSamplerQNNFromQNNCircuit(qc, WithInterpret(Parity, 2))
	require.NoError(t, err)

	input := mat.NewDense(3, 2, []float64{0.1, 0.9, 0.5, 0.5, 1.4, 0.2})
	weights := make([]float64, net.NumWeights())
	for i := range weights {
		weights[i] = 0.1 * float64(i)
	}
	out, err := net.Forward(input, weights)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0, out.At(i, 0)+out.At(i, 1), 1e-9, "sample %d", i)
	}
}

func TestSamplerQNNBackward(t *testing.T) {
	// P(0) of RY(w)|0> is cos²(w/2): dP0/dw = -sin(w)/2.
	w := circuit.NewParameter("w")
	c := circuit.New(1)
	c.RY(w, 0)

	net, err := NewSamplerQNN(c)
	require.NoError(t, err)

	v := 0.6
	inputGrads, weightGrads, err := net.Backward(nil, []float64{v})
	require.NoError(t, err)
	assert.Nil(t, inputGrads)
	require.Len(t, weightGrads, 1)

	assert.InDelta(t, -math.Sin(v)/2, weightGrads[0].At(0, 0), 1e-9)
	assert.InDelta(t, math.Sin(v)/2, weightGrads[0].At(1, 0), 1e-9)
}

func TestSamplerQNNBackwardFoldsGradient(t *testing.T) {
	// Gradient rows fold like the forward distribution; each parity
	// class column sums the raw outcome gradients.
	qc := circuit.NewQNNCircuit(2)
	net, err := NewSamplerQNNFromQNNCircuit(qc, WithInterpret(Parity, 2))
	require.NoError(t, err)

	input := SingleInput([]float64{0.3, 0.7})
	weights := make([]float64, net.NumWeights())
	for i := range weights {
		weights[i] = 0.2
	}
	_, weightGrads, err := net.Backward(input, weights)
	require.NoError(t, err)
	require.Len(t, weightGrads, 1)

	rows, cols := weightGrads[0].Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, net.NumWeights(), cols)

	// Probability mass is conserved, so gradient columns sum to zero.
	for k := 0; k < cols; k++ {
		assert.InDelta(t, 0.0, weightGrads[0].At(0, k)+weightGrads[0].At(1, k), 1e-9, "weight %d", k)
	}
}

func TestSamplerQNNInterpretRangeError(t *testing.T) {
	c := circuit.New(1)
	c.H(0)

	net, err := NewSamplerQNN(c, WithInterpret(func(int) int { return 5 }, 2))
	require.NoError(t, err)

	_, err = net.Forward(nil, nil)
	assert.Error(t, err)
}

func TestSamplerQNNShotSampler(t *testing.T) {
	c := circuit.New(1)
	c.H(0)

	net, err := NewSamplerQNN(c,
		WithSampler(primitive.NewSampler(primitive.WithShots(4000), primitive.WithSeed(13))),
	)
	require.NoError(t, err)

	out, err := net.Forward(nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out.At(0, 0), 0.05)
	assert.InDelta(t, 1.0, out.At(0, 0)+out.At(0, 1), 1e-9)
}

func TestParity(t *testing.T) {
	tests := []struct {
		outcome int
		want    int
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 0}, {7, 1}, {15, 0},
	}
	for _, tt := range tests {
		if got := Parity(tt.outcome); got != tt.want {
			t.Errorf("Parity(%d) = %d, want %d", tt.outcome, got, tt.want)
		}
	}
}

func TestSingleInput(t *testing.T) {
	m := SingleInput([]float64{1, 2, 3})
	rows, cols := m.Dims()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 3, cols)
	assert.Nil(t, SingleInput(nil))
}
