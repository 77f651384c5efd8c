// Package statevector implements exact quantum state simulation on flat
// complex128 amplitude slices.
//
// The kernels apply 2x2 unitaries to bit-strided amplitude pairs in
// place; a state over n qubits holds 2^n amplitudes, so the practical
// limit on a laptop is around 25 qubits. Measurement helpers compute
// probabilities, Pauli-sum expectation values and sampled counts.
package statevector

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/operator"
)

// Statevector is the full amplitude vector of an n-qubit pure state.
// Amplitude k corresponds to the computational basis state whose binary
// expansion has qubit q at bit q of k.
type Statevector struct {
	numQubits int
	amps      []complex128
}

// New creates the |0...0> state on numQubits qubits.
func New(numQubits int) *Statevector {
	if numQubits <= 0 {
		panic(fmt.Sprintf("statevector.New: numQubits must be positive, got %d", numQubits))
	}
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &Statevector{numQubits: numQubits, amps: amps}
}

// FromAmplitudes wraps an amplitude slice. The length must be a power of
// two; the slice is used directly, not copied.
func FromAmplitudes(amps []complex128) (*Statevector, error) {
	n := len(amps)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("amplitude count %d is not a power of two", n)
	}
	return &Statevector{numQubits: bits.TrailingZeros(uint(n)), amps: amps}, nil
}

// NumQubits returns the number of qubits.
func (sv *Statevector) NumQubits() int {
	return sv.numQubits
}

// Amplitudes returns the underlying amplitude slice (not a copy).
func (sv *Statevector) Amplitudes() []complex128 {
	return sv.amps
}

// Apply1Q applies a 2x2 unitary (row-major) to qubit q in place.
func (sv *Statevector) Apply1Q(m [4]complex128, q int) {
	s := 1 << q
	for base := 0; base < len(sv.amps); base += 2 * s {
		for k := base; k < base+s; k++ {
			a0 := sv.amps[k]
			a1 := sv.amps[k+s]
			sv.amps[k] = m[0]*a0 + m[1]*a1
			sv.amps[k+s] = m[2]*a0 + m[3]*a1
		}
	}
}

// ApplyControlled applies a 2x2 unitary to the target qubit on the
// subspace where the control qubit is 1.
func (sv *Statevector) ApplyControlled(m [4]complex128, control, target int) {
	t := 1 << target
	c := 1 << control
	for k := range sv.amps {
		if k&t == 0 && k&c != 0 {
			a0 := sv.amps[k]
			a1 := sv.amps[k|t]
			sv.amps[k] = m[0]*a0 + m[1]*a1
			sv.amps[k|t] = m[2]*a0 + m[3]*a1
		}
	}
}

// ApplySwap exchanges qubits q0 and q1.
func (sv *Statevector) ApplySwap(q0, q1 int) {
	b0 := 1 << q0
	b1 := 1 << q1
	for k := range sv.amps {
		if k&b0 != 0 && k&b1 == 0 {
			j := k ^ b0 ^ b1
			sv.amps[k], sv.amps[j] = sv.amps[j], sv.amps[k]
		}
	}
}

// ApplyGate applies a fully bound gate. The gate's angle, if any, must be
// parameter-free.
func (sv *Statevector) ApplyGate(g circuit.Gate) {
	theta := 0.0
	if g.Angle != nil {
		theta = g.Angle.Eval(nil)
	}
	switch {
	case g.Kind == circuit.KindSwap:
		sv.ApplySwap(g.Qubits[0], g.Qubits[1])
	case g.Kind.Controlled():
		sv.ApplyControlled(baseMatrix(g.Kind, theta), g.Qubits[0], g.Qubits[1])
	default:
		sv.Apply1Q(baseMatrix(g.Kind, theta), g.Qubits[0])
	}
}

// Evolve simulates a circuit from |0...0> with the given parameter values
// and returns the resulting state.
func Evolve(c *circuit.Circuit, values []float64) (*Statevector, error) {
	bind, err := c.Binder(values)
	if err != nil {
		return nil, err
	}
	sv := New(c.NumQubits())
	for i := 0; i < c.NumGates(); i++ {
		g := c.Gate(i)
		theta := 0.0
		if g.Angle != nil {
			theta = g.Angle.Eval(bind)
		}
		switch {
		case g.Kind == circuit.KindSwap:
			sv.ApplySwap(g.Qubits[0], g.Qubits[1])
		case g.Kind.Controlled():
			sv.ApplyControlled(baseMatrix(g.Kind, theta), g.Qubits[0], g.Qubits[1])
		default:
			sv.Apply1Q(baseMatrix(g.Kind, theta), g.Qubits[0])
		}
	}
	return sv, nil
}

// Probabilities returns |amp|^2 for every basis state.
func (sv *Statevector) Probabilities() []float64 {
	probs := make([]float64, len(sv.amps))
	for k, a := range sv.amps {
		probs[k] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// pauliMasks returns the bit masks describing a Pauli's action:
// applying P to |k> yields phase(k) * |k ^ flip>, with the phase built
// from the Z and Y masks.
func pauliMasks(p operator.Pauli) (flip, zMask, yMask int) {
	for q := 0; q < p.NumQubits(); q++ {
		switch p.Op(q) {
		case operator.X:
			flip |= 1 << q
		case operator.Y:
			flip |= 1 << q
			yMask |= 1 << q
		case operator.Z:
			zMask |= 1 << q
		}
	}
	return flip, zMask, yMask
}

// expectationPauli computes <psi|P|psi> for a single Pauli term.
func (sv *Statevector) expectationPauli(p operator.Pauli) complex128 {
	flip, zMask, yMask := pauliMasks(p)
	numY := bits.OnesCount(uint(yMask))
	// Global factor from Y = i * (flip with sign): Y|0> = i|1>, Y|1> = -i|0>.
	// Per index k the Y contribution is i^numY * (-1)^(popcount(k & yMask)),
	// folded together with the Z sign below.
	iPow := [4]complex128{1, complex(0, 1), -1, complex(0, -1)}
	global := iPow[numY%4]
	var sum complex128
	for k, a := range sv.amps {
		if a == 0 {
			continue
		}
		sign := 1.0
		if bits.OnesCount(uint(k&(zMask|yMask)))%2 == 1 {
			sign = -1
		}
		phase := global * complex(sign, 0)
		// <psi| P |psi> term: conj(amp[k^flip]) * phase * amp[k]
		sum += complexConj(sv.amps[k^flip]) * phase * a
	}
	return sum
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

// ExpectationValue computes the real part of <psi|O|psi> for a Pauli-sum
// observable acting on the same number of qubits.
func (sv *Statevector) ExpectationValue(op *operator.SparsePauliOp) (float64, error) {
	if op.NumQubits() != sv.numQubits {
		return 0, fmt.Errorf("observable acts on %d qubits, state has %d", op.NumQubits(), sv.numQubits)
	}
	var total complex128
	for i := 0; i < op.NumTerms(); i++ {
		p, c := op.Term(i)
		if p.IsIdentity() {
			total += c
			continue
		}
		total += c * sv.expectationPauli(p)
	}
	return real(total), nil
}

// ExpectationVariance returns the expectation value of op together with a
// per-term sampling variance: sum_i |c_i|^2 (1 - <P_i>^2). Shot-based
// estimators use it to model measurement noise; Pauli terms square to the
// identity, so the per-term variance is exact when terms are measured
// independently.
func (sv *Statevector) ExpectationVariance(op *operator.SparsePauliOp) (ev, variance float64, err error) {
	if op.NumQubits() != sv.numQubits {
		return 0, 0, fmt.Errorf("observable acts on %d qubits, state has %d", op.NumQubits(), sv.numQubits)
	}
	for i := 0; i < op.NumTerms(); i++ {
		p, c := op.Term(i)
		var tv float64
		if p.IsIdentity() {
			tv = 1
		} else {
			tv = real(sv.expectationPauli(p))
		}
		cc := real(c)*real(c) + imag(c)*imag(c)
		ev += real(c) * tv
		variance += cc * (1 - tv*tv)
	}
	if variance < 0 {
		variance = 0
	}
	return ev, variance, nil
}

// SampleCounts draws shots samples from the measurement distribution and
// returns basis-state counts.
func (sv *Statevector) SampleCounts(shots int, src rand.Source) map[int]int {
	if shots <= 0 {
		panic(fmt.Sprintf("statevector.SampleCounts: shots must be positive, got %d", shots))
	}
	probs := sv.Probabilities()
	dist := distuv.NewCategorical(probs, src)
	counts := make(map[int]int)
	for i := 0; i < shots; i++ {
		counts[int(dist.Rand())]++
	}
	return counts
}

// Norm returns the L2 norm of the state. A valid state has norm 1 up to
// floating point error.
func (sv *Statevector) Norm() float64 {
	var s float64
	for _, a := range sv.amps {
		s += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(s)
}
