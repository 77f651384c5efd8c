// Package circuit implements parametrized quantum circuits for the Bloch
// QML framework.
//
// A Circuit is an ordered list of gates over a fixed number of qubits.
// Rotation angles may reference symbolic parameters (see Parameter and
// Angle); the circuit tracks every referenced parameter in first-use
// order, and Bind substitutes numeric values for all of them at once.
//
// Circuits are pure data: no simulation happens here. Backends consume
// circuits together with a value vector, and gradient engines rewrite
// individual gate angles to build shifted evaluations.
package circuit

import (
	"fmt"
	"strings"
)

// Circuit is a parametrized quantum circuit.
//
// Example:
//
//	theta := circuit.NewParameter("θ")
//	c := circuit.New(2)
//	c.H(0)
//	c.RY(theta, 1)
//	c.CX(0, 1)
type Circuit struct {
	numQubits int
	gates     []Gate
	params    []*Parameter
	index     map[*Parameter]int
}

// New creates an empty circuit over numQubits qubits.
func New(numQubits int) *Circuit {
	if numQubits <= 0 {
		panic(fmt.Sprintf("circuit.New: numQubits must be positive, got %d", numQubits))
	}
	return &Circuit{
		numQubits: numQubits,
		index:     make(map[*Parameter]int),
	}
}

// NumQubits returns the circuit width.
func (c *Circuit) NumQubits() int {
	return c.numQubits
}

// NumGates returns the number of gates in the circuit.
func (c *Circuit) NumGates() int {
	return len(c.gates)
}

// Gate returns the i-th gate.
func (c *Circuit) Gate(i int) Gate {
	return c.gates[i]
}

// Parameters returns the circuit's free parameters in first-use order.
// The slice is shared; callers must not modify it.
func (c *Circuit) Parameters() []*Parameter {
	return c.params
}

// NumParameters returns the number of free parameters.
func (c *Circuit) NumParameters() int {
	return len(c.params)
}

// ParameterIndex returns the position of p in Parameters, or -1 if the
// circuit does not reference p.
func (c *Circuit) ParameterIndex(p *Parameter) int {
	if i, ok := c.index[p]; ok {
		return i
	}
	return -1
}

func (c *Circuit) checkQubit(op string, q int) {
	if q < 0 || q >= c.numQubits {
		panic(fmt.Sprintf("circuit.%s: qubit %d out of range [0, %d)", op, q, c.numQubits))
	}
}

func (c *Circuit) register(a Angle) {
	if a == nil {
		return
	}
	for _, p := range a.Parameters() {
		if _, ok := c.index[p]; !ok {
			c.index[p] = len(c.params)
			c.params = append(c.params, p)
		}
	}
}

func (c *Circuit) append1(k Kind, a Angle, q int) *Circuit {
	c.checkQubit(k.String(), q)
	c.register(a)
	c.gates = append(c.gates, Gate{Kind: k, Qubits: []int{q}, Angle: a})
	return c
}

func (c *Circuit) append2(k Kind, a Angle, q0, q1 int) *Circuit {
	c.checkQubit(k.String(), q0)
	c.checkQubit(k.String(), q1)
	if q0 == q1 {
		panic(fmt.Sprintf("circuit.%s: qubits must differ, got %d twice", k.String(), q0))
	}
	c.register(a)
	c.gates = append(c.gates, Gate{Kind: k, Qubits: []int{q0, q1}, Angle: a})
	return c
}

// H appends a Hadamard gate on qubit q.
func (c *Circuit) H(q int) *Circuit { return c.append1(KindH, nil, q) }

// X appends a Pauli-X gate on qubit q.
func (c *Circuit) X(q int) *Circuit { return c.append1(KindX, nil, q) }

// Y appends a Pauli-Y gate on qubit q.
func (c *Circuit) Y(q int) *Circuit { return c.append1(KindY, nil, q) }

// Z appends a Pauli-Z gate on qubit q.
func (c *Circuit) Z(q int) *Circuit { return c.append1(KindZ, nil, q) }

// S appends a phase gate S = diag(1, i) on qubit q.
func (c *Circuit) S(q int) *Circuit { return c.append1(KindS, nil, q) }

// Sdg appends the inverse phase gate on qubit q.
func (c *Circuit) Sdg(q int) *Circuit { return c.append1(KindSdg, nil, q) }

// T appends a T gate diag(1, e^{iπ/4}) on qubit q.
func (c *Circuit) T(q int) *Circuit { return c.append1(KindT, nil, q) }

// Tdg appends the inverse T gate on qubit q.
func (c *Circuit) Tdg(q int) *Circuit { return c.append1(KindTdg, nil, q) }

// RX appends an X-rotation by angle on qubit q.
func (c *Circuit) RX(angle Angle, q int) *Circuit { return c.append1(KindRX, angle, q) }

// RY appends a Y-rotation by angle on qubit q.
func (c *Circuit) RY(angle Angle, q int) *Circuit { return c.append1(KindRY, angle, q) }

// RZ appends a Z-rotation by angle on qubit q.
func (c *Circuit) RZ(angle Angle, q int) *Circuit { return c.append1(KindRZ, angle, q) }

// P appends a phase rotation diag(1, e^{iθ}) on qubit q.
func (c *Circuit) P(angle Angle, q int) *Circuit { return c.append1(KindP, angle, q) }

// CX appends a controlled-X gate.
func (c *Circuit) CX(control, target int) *Circuit { return c.append2(KindCX, nil, control, target) }

// CY appends a controlled-Y gate.
func (c *Circuit) CY(control, target int) *Circuit { return c.append2(KindCY, nil, control, target) }

// CZ appends a controlled-Z gate.
func (c *Circuit) CZ(control, target int) *Circuit { return c.append2(KindCZ, nil, control, target) }

// CRX appends a controlled X-rotation.
func (c *Circuit) CRX(angle Angle, control, target int) *Circuit {
	return c.append2(KindCRX, angle, control, target)
}

// CRY appends a controlled Y-rotation.
func (c *Circuit) CRY(angle Angle, control, target int) *Circuit {
	return c.append2(KindCRY, angle, control, target)
}

// CRZ appends a controlled Z-rotation.
func (c *Circuit) CRZ(angle Angle, control, target int) *Circuit {
	return c.append2(KindCRZ, angle, control, target)
}

// CP appends a controlled phase rotation.
func (c *Circuit) CP(angle Angle, control, target int) *Circuit {
	return c.append2(KindCP, angle, control, target)
}

// Swap appends a swap of qubits q0 and q1.
func (c *Circuit) Swap(q0, q1 int) *Circuit { return c.append2(KindSwap, nil, q0, q1) }

// Binder returns a lookup function resolving each parameter to its value.
// len(values) must equal NumParameters.
func (c *Circuit) Binder(values []float64) (func(*Parameter) float64, error) {
	if len(values) != len(c.params) {
		return nil, fmt.Errorf("circuit has %d parameters, got %d values", len(c.params), len(values))
	}
	return func(p *Parameter) float64 {
		i, ok := c.index[p]
		if !ok {
			panic(fmt.Sprintf("circuit: parameter %s is not bound", p))
		}
		return values[i]
	}, nil
}

// Bind substitutes numeric values for all parameters and returns a new,
// parameter-free circuit. values follow Parameters() order.
func (c *Circuit) Bind(values []float64) (*Circuit, error) {
	bind, err := c.Binder(values)
	if err != nil {
		return nil, err
	}
	out := New(c.numQubits)
	out.gates = make([]Gate, len(c.gates))
	for i, g := range c.gates {
		bg := Gate{Kind: g.Kind, Qubits: g.Qubits}
		if g.Angle != nil {
			bg.Angle = Value(g.Angle.Eval(bind))
		}
		out.gates[i] = bg
	}
	return out, nil
}

// BindPartial substitutes numeric values for a subset of the circuit's
// parameters and returns a new circuit over the remaining ones, in the
// same relative order. A parameter the circuit does not use is an error.
func (c *Circuit) BindPartial(values map[*Parameter]float64) (*Circuit, error) {
	for p := range values {
		if _, ok := c.index[p]; !ok {
			return nil, fmt.Errorf("circuit has no parameter %s", p)
		}
	}
	out := New(c.numQubits)
	out.gates = make([]Gate, len(c.gates))
	for i, g := range c.gates {
		bg := Gate{Kind: g.Kind, Qubits: g.Qubits}
		if g.Angle != nil {
			bg.Angle = bindAngle(g.Angle, values)
			out.register(bg.Angle)
		}
		out.gates[i] = bg
	}
	return out, nil
}

// ShiftGateAngle returns a copy of the circuit with gate i's angle offset
// by delta. The circuit must be fully bound (no free parameters) and gate
// i must be parametric. Gradient engines use this to build the shifted
// evaluations of the parameter-shift rule.
func (c *Circuit) ShiftGateAngle(i int, delta float64) *Circuit {
	if len(c.params) != 0 {
		panic("circuit.ShiftGateAngle: circuit has unbound parameters")
	}
	g := c.gates[i]
	if !g.Kind.Parametric() {
		panic(fmt.Sprintf("circuit.ShiftGateAngle: gate %d (%s) has no angle", i, g.Kind))
	}
	out := New(c.numQubits)
	out.gates = make([]Gate, len(c.gates))
	copy(out.gates, c.gates)
	out.gates[i].Angle = Value(g.Angle.Eval(nil) + delta)
	return out
}

// Compose appends other's gates to a copy of c and returns it. Parameters
// of other are merged into the combined parameter table, preserving
// first-use order. The circuits must have the same width.
func (c *Circuit) Compose(other *Circuit) (*Circuit, error) {
	if c.numQubits != other.numQubits {
		return nil, fmt.Errorf("cannot compose %d-qubit circuit with %d-qubit circuit",
			c.numQubits, other.numQubits)
	}
	out := New(c.numQubits)
	out.gates = make([]Gate, 0, len(c.gates)+len(other.gates))
	out.gates = append(out.gates, c.gates...)
	out.gates = append(out.gates, other.gates...)
	out.params = append(out.params, c.params...)
	for p, i := range c.index {
		out.index[p] = i
	}
	for _, p := range other.params {
		if _, ok := out.index[p]; !ok {
			out.index[p] = len(out.params)
			out.params = append(out.params, p)
		}
	}
	return out, nil
}

// String renders the circuit as one gate per line.
func (c *Circuit) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "circuit(%d qubits, %d gates)\n", c.numQubits, len(c.gates))
	for _, g := range c.gates {
		if g.Angle != nil {
			fmt.Fprintf(&b, "  %s(%s) %v\n", g.Kind, g.Angle, g.Qubits)
		} else {
			fmt.Fprintf(&b, "  %s %v\n", g.Kind, g.Qubits)
		}
	}
	return b.String()
}
