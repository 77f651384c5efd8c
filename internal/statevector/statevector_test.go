package statevector

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/operator"
)

const tol = 1e-12

func assertAmps(t *testing.T, sv *Statevector, want []complex128) {
	t.Helper()
	amps := sv.Amplitudes()
	require.Len(t, amps, len(want))
	for k := range want {
		if cmplx.Abs(amps[k]-want[k]) > 1e-9 {
			t.Errorf("amp[%d] = %v, want %v", k, amps[k], want[k])
		}
	}
}

func TestNewIsZeroState(t *testing.T) {
	sv := New(2)
	assertAmps(t, sv, []complex128{1, 0, 0, 0})
	assert.InDelta(t, 1.0, sv.Norm(), tol)
}

func TestFromAmplitudes(t *testing.T) {
	sv, err := FromAmplitudes([]complex128{0, 1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, sv.NumQubits())

	_, err = FromAmplitudes(make([]complex128, 3))
	assert.Error(t, err)
	_, err = FromAmplitudes(nil)
	assert.Error(t, err)
}

func TestBellState(t *testing.T) {
	c := circuit.New(2)
	c.H(0)
	c.CX(0, 1)

	sv, err := Evolve(c, nil)
	require.NoError(t, err)

	s := complex(1/math.Sqrt2, 0)
	assertAmps(t, sv, []complex128{s, 0, 0, s})
	assert.InDelta(t, 1.0, sv.Norm(), tol)

	// Bell state: <ZZ> = 1, <ZI> = 0, <XX> = 1.
	for _, tt := range []struct {
		label string
		want  float64
	}{
		{"ZZ", 1},
		{"ZI", 0},
		{"IZ", 0},
		{"XX", 1},
		{"YY", -1},
	} {
		op, err := operator.NewSparsePauliOp([]string{tt.label}, []complex128{1})
		require.NoError(t, err)
		ev, err := sv.ExpectationValue(op)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, ev, 1e-9, "label %s", tt.label)
	}
}

func TestXGate(t *testing.T) {
	c := circuit.New(2)
	c.X(1)

	sv, err := Evolve(c, nil)
	require.NoError(t, err)
	// Qubit 1 set: basis state |10> = index 2.
	assertAmps(t, sv, []complex128{0, 0, 1, 0})
}

func TestRYExpectation(t *testing.T) {
	// RY(θ)|0>: <Z> = cos θ, <X> = sin θ.
	theta := circuit.NewParameter("θ")
	zOp := operator.AllZ(1)
	xOp, err := operator.NewSparsePauliOp([]string{"X"}, []complex128{1})
	require.NoError(t, err)

	for _, v := range []float64{0, 0.3, math.Pi / 2, 2.1, math.Pi} {
		c := circuit.New(1)
		c.RY(theta, 0)
		sv, err := Evolve(c, []float64{v})
		require.NoError(t, err)

		z, err := sv.ExpectationValue(zOp)
		require.NoError(t, err)
		assert.InDelta(t, math.Cos(v), z, 1e-9, "theta=%v", v)

		x, err := sv.ExpectationValue(xOp)
		require.NoError(t, err)
		assert.InDelta(t, math.Sin(v), x, 1e-9, "theta=%v", v)
	}
}

func TestPhaseGates(t *testing.T) {
	// S then T on |+> leaves probabilities flat but rotates phase by 3π/4.
	c := circuit.New(1)
	c.H(0)
	c.S(0)
	c.T(0)

	sv, err := Evolve(c, nil)
	require.NoError(t, err)

	s := 1 / math.Sqrt2
	phase := cmplx.Exp(complex(0, 3*math.Pi/4))
	assertAmps(t, sv, []complex128{complex(s, 0), phase * complex(s, 0)})

	// Sdg and Tdg undo them.
	c.Tdg(0)
	c.Sdg(0)
	c.H(0)
	sv, err = Evolve(c, nil)
	require.NoError(t, err)
	assertAmps(t, sv, []complex128{1, 0})
}

func TestControlledRotation(t *testing.T) {
	theta := 0.7

	// Control off: CRY is a no-op.
	c := circuit.New(2)
	c.CRY(circuit.Value(theta), 0, 1)
	sv, err := Evolve(c, nil)
	require.NoError(t, err)
	assertAmps(t, sv, []complex128{1, 0, 0, 0})

	// Control on: target rotates.
	c = circuit.New(2)
	c.X(0)
	c.CRY(circuit.Value(theta), 0, 1)
	sv, err = Evolve(c, nil)
	require.NoError(t, err)

	op, err := operator.SingleZ(2, 1)
	require.NoError(t, err)
	z, err := sv.ExpectationValue(op)
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(theta), z, 1e-9)
}

func TestSwap(t *testing.T) {
	c := circuit.New(2)
	c.X(0)
	c.Swap(0, 1)

	sv, err := Evolve(c, nil)
	require.NoError(t, err)
	assertAmps(t, sv, []complex128{0, 0, 1, 0})
}

func TestProbabilities(t *testing.T) {
	c := circuit.New(2)
	c.H(0)
	c.H(1)

	sv, err := Evolve(c, nil)
	require.NoError(t, err)

	probs := sv.Probabilities()
	require.Len(t, probs, 4)
	for k, p := range probs {
		assert.InDelta(t, 0.25, p, 1e-9, "state %d", k)
	}
}

func TestExpectationValueWidthMismatch(t *testing.T) {
	sv := New(2)
	_, err := sv.ExpectationValue(operator.AllZ(3))
	assert.Error(t, err)
}

func TestExpectationVariance(t *testing.T) {
	// |0>: <Z> = 1 with zero variance, <X> = 0 with unit variance.
	sv := New(1)

	z := operator.AllZ(1)
	ev, v, err := sv.ExpectationVariance(z)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ev, tol)
	assert.InDelta(t, 0.0, v, tol)

	x, err := operator.NewSparsePauliOp([]string{"X"}, []complex128{0.5})
	require.NoError(t, err)
	ev, v, err = sv.ExpectationVariance(x)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ev, tol)
	assert.InDelta(t, 0.25, v, tol)
}

func TestSampleCounts(t *testing.T) {
	c := circuit.New(1)
	c.H(0)
	sv, err := Evolve(c, nil)
	require.NoError(t, err)

	shots := 10000
	counts := sv.SampleCounts(shots, rand.NewPCG(1, 2))

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, shots, total)
	// Both outcomes should land near 50% at this shot count.
	assert.InDelta(t, 0.5, float64(counts[0])/float64(shots), 0.05)
	assert.InDelta(t, 0.5, float64(counts[1])/float64(shots), 0.05)
}

func TestSampleCountsDeterministicState(t *testing.T) {
	sv := New(2)
	counts := sv.SampleCounts(100, rand.NewPCG(3, 4))
	assert.Equal(t, map[int]int{0: 100}, counts)
}

func TestBaseMatrixUnitary(t *testing.T) {
	kinds := []struct {
		kind  circuit.Kind
		theta float64
	}{
		{circuit.KindH, 0},
		{circuit.KindX, 0},
		{circuit.KindY, 0},
		{circuit.KindZ, 0},
		{circuit.KindS, 0},
		{circuit.KindT, 0},
		{circuit.KindRX, 0.4},
		{circuit.KindRY, 1.1},
		{circuit.KindRZ, 2.5},
		{circuit.KindP, 0.9},
	}
	for _, tt := range kinds {
		m := BaseMatrix(tt.kind, tt.theta)
		// Unitarity: M M† = I.
		c00 := m[0]*complexConj(m[0]) + m[1]*complexConj(m[1])
		c01 := m[0]*complexConj(m[2]) + m[1]*complexConj(m[3])
		c11 := m[2]*complexConj(m[2]) + m[3]*complexConj(m[3])
		assert.InDelta(t, 1.0, real(c00), 1e-12, "%s", tt.kind)
		assert.InDelta(t, 0.0, cmplx.Abs(c01), 1e-12, "%s", tt.kind)
		assert.InDelta(t, 1.0, real(c11), 1e-12, "%s", tt.kind)
	}
}

func TestEvolveStatePreservesNorm(t *testing.T) {
	qc := circuit.NewQNNCircuit(3)
	c := qc.Circuit()

	values := make([]float64, c.NumParameters())
	for i := range values {
		values[i] = 0.1 * float64(i+1)
	}
	sv, err := Evolve(c, values)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sv.Norm(), 1e-9)
}
