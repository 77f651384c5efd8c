package operator

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// simplifyTol is the coefficient magnitude below which Simplify drops a term.
const simplifyTol = 1e-12

// SparsePauliOp is a weighted sum of Pauli tensor products.
//
// Terms are stored as parallel slices of Paulis and complex coefficients.
// All terms act on the same number of qubits.
//
// Example:
//
//	// 0.5*ZZ - 0.5*XI
//	op, err := operator.NewSparsePauliOp(
//	    []string{"ZZ", "XI"},
//	    []complex128{0.5, -0.5},
//	)
type SparsePauliOp struct {
	paulis []Pauli
	coeffs []complex128
}

// NewSparsePauliOp builds an operator from labels and coefficients. The
// slices must have equal, nonzero length and all labels must share the
// same width.
func NewSparsePauliOp(labels []string, coeffs []complex128) (*SparsePauliOp, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("operator must have at least one term")
	}
	if len(labels) != len(coeffs) {
		return nil, fmt.Errorf("got %d labels but %d coefficients", len(labels), len(coeffs))
	}
	paulis := make([]Pauli, len(labels))
	for i, l := range labels {
		p, err := NewPauli(l)
		if err != nil {
			return nil, err
		}
		if i > 0 && p.NumQubits() != paulis[0].NumQubits() {
			return nil, fmt.Errorf("label %q acts on %d qubits, want %d",
				l, p.NumQubits(), paulis[0].NumQubits())
		}
		paulis[i] = p
	}
	return &SparsePauliOp{paulis: paulis, coeffs: append([]complex128(nil), coeffs...)}, nil
}

// FromPauli wraps a single Pauli with coefficient 1.
func FromPauli(p Pauli) *SparsePauliOp {
	return &SparsePauliOp{paulis: []Pauli{p}, coeffs: []complex128{1}}
}

// AllZ returns the observable Z⊗Z⊗...⊗Z on n qubits, the default
// observable of estimator-based networks.
func AllZ(n int) *SparsePauliOp {
	return &SparsePauliOp{
		paulis: []Pauli{{label: strings.Repeat("Z", n)}},
		coeffs: []complex128{1},
	}
}

// SingleZ returns the n-qubit observable measuring Z on qubit q only.
func SingleZ(n, q int) (*SparsePauliOp, error) {
	if q < 0 || q >= n {
		return nil, fmt.Errorf("qubit %d out of range [0, %d)", q, n)
	}
	b := []byte(strings.Repeat("I", n))
	b[n-1-q] = byte(Z)
	return NewSparsePauliOp([]string{string(b)}, []complex128{1})
}

// NumQubits returns the number of qubits the operator acts on.
func (o *SparsePauliOp) NumQubits() int {
	return o.paulis[0].NumQubits()
}

// NumTerms returns the number of Pauli terms.
func (o *SparsePauliOp) NumTerms() int {
	return len(o.paulis)
}

// Term returns the i-th Pauli and its coefficient.
func (o *SparsePauliOp) Term(i int) (Pauli, complex128) {
	return o.paulis[i], o.coeffs[i]
}

// Add returns o + other. The operators must have the same width.
func (o *SparsePauliOp) Add(other *SparsePauliOp) (*SparsePauliOp, error) {
	if o.NumQubits() != other.NumQubits() {
		return nil, fmt.Errorf("cannot add %d-qubit operator to %d-qubit operator",
			other.NumQubits(), o.NumQubits())
	}
	return &SparsePauliOp{
		paulis: append(append([]Pauli(nil), o.paulis...), other.paulis...),
		coeffs: append(append([]complex128(nil), o.coeffs...), other.coeffs...),
	}, nil
}

// Scale returns c*o.
func (o *SparsePauliOp) Scale(c complex128) *SparsePauliOp {
	coeffs := make([]complex128, len(o.coeffs))
	for i, v := range o.coeffs {
		coeffs[i] = c * v
	}
	return &SparsePauliOp{paulis: o.paulis, coeffs: coeffs}
}

// Simplify merges duplicate labels and drops terms with negligible
// coefficients. The result keeps first-occurrence label order; if every
// term vanishes, a single zero-weight identity remains.
func (o *SparsePauliOp) Simplify() *SparsePauliOp {
	index := make(map[string]int, len(o.paulis))
	out := &SparsePauliOp{}
	for i, p := range o.paulis {
		if j, ok := index[p.label]; ok {
			out.coeffs[j] += o.coeffs[i]
			continue
		}
		index[p.label] = len(out.paulis)
		out.paulis = append(out.paulis, p)
		out.coeffs = append(out.coeffs, o.coeffs[i])
	}
	paulis := out.paulis[:0]
	coeffs := out.coeffs[:0]
	for i, c := range out.coeffs {
		if cmplx.Abs(c) > simplifyTol {
			paulis = append(paulis, out.paulis[i])
			coeffs = append(coeffs, c)
		}
	}
	if len(paulis) == 0 {
		return &SparsePauliOp{paulis: []Pauli{Identity(o.NumQubits())}, coeffs: []complex128{0}}
	}
	return &SparsePauliOp{paulis: paulis, coeffs: coeffs}
}

// IsHermitian reports whether every coefficient is real to within tol.
// Expectation values are only physical for Hermitian observables.
func (o *SparsePauliOp) IsHermitian() bool {
	for _, c := range o.coeffs {
		if math.Abs(imag(c)) > simplifyTol {
			return false
		}
	}
	return true
}

// String renders the operator as "c0*L0 + c1*L1 + ...".
func (o *SparsePauliOp) String() string {
	var b strings.Builder
	for i, p := range o.paulis {
		if i > 0 {
			b.WriteString(" + ")
		}
		c := o.coeffs[i]
		if imag(c) == 0 {
			fmt.Fprintf(&b, "%g*%s", real(c), p)
		} else {
			fmt.Fprintf(&b, "%v*%s", c, p)
		}
	}
	return b.String()
}
