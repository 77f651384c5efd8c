package circuit

import (
	"math"
	"testing"
)

func TestParameterOrder(t *testing.T) {
	a := NewParameter("a")
	b := NewParameter("b")

	c := New(2)
	c.RY(b, 0)
	c.RZ(a, 1)
	c.RX(b, 0) // already registered

	params := c.Parameters()
	if len(params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(params))
	}
	if params[0] != b || params[1] != a {
		t.Errorf("parameters not in first-use order: %v", params)
	}
	if got := c.ParameterIndex(a); got != 1 {
		t.Errorf("ParameterIndex(a) = %d, want 1", got)
	}
	if got := c.ParameterIndex(NewParameter("a")); got != -1 {
		t.Errorf("distinct parameter with same name should not resolve, got %d", got)
	}
}

func TestParameterVectorNames(t *testing.T) {
	v := NewParameterVector("x", 3)
	if v.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", v.Len())
	}
	for i, want := range []string{"x[0]", "x[1]", "x[2]"} {
		if got := v.At(i).Name(); got != want {
			t.Errorf("At(%d).Name() = %q, want %q", i, got, want)
		}
	}
}

func TestBind(t *testing.T) {
	theta := NewParameter("θ")
	c := New(1)
	c.RY(Scaled(2, theta), 0)

	bound, err := c.Bind([]float64{0.5})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if bound.NumParameters() != 0 {
		t.Errorf("bound circuit has %d parameters, want 0", bound.NumParameters())
	}
	got := bound.Gate(0).Angle.Eval(nil)
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("bound angle = %v, want 1.0", got)
	}
}

func TestBindWrongLength(t *testing.T) {
	c := New(1)
	c.RY(NewParameter("θ"), 0)
	if _, err := c.Bind([]float64{1, 2}); err == nil {
		t.Error("expected error for wrong value count")
	}
}

func TestBindPartial(t *testing.T) {
	x := NewParameter("x")
	theta := NewParameter("θ")
	c := New(2)
	c.P(ShiftProduct(2, math.Pi, x, math.Pi, theta), 0)
	c.RY(Scaled(3, x), 0)
	c.RZ(theta, 1)

	half, err := c.BindPartial(map[*Parameter]float64{x: 0.5})
	if err != nil {
		t.Fatalf("BindPartial: %v", err)
	}
	if got := half.Parameters(); len(got) != 1 || got[0] != theta {
		t.Fatalf("remaining parameters = %v, want [θ]", got)
	}

	// The RY angle had only x, so it must now be constant.
	if ps := half.Gate(1).Angle.Parameters(); ps != nil {
		t.Errorf("gate 1 still depends on %v", ps)
	}
	if got := half.Gate(1).Angle.Eval(nil); math.Abs(got-1.5) > 1e-12 {
		t.Errorf("gate 1 angle = %v, want 1.5", got)
	}

	bound, err := half.Bind([]float64{0.25})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	want := 2 * (math.Pi - 0.5) * (math.Pi - 0.25)
	if got := bound.Gate(0).Angle.Eval(nil); math.Abs(got-want) > 1e-12 {
		t.Errorf("gate 0 angle = %v, want %v", got, want)
	}

	// The partial angle's derivative in x is pinned to zero.
	shifted, err := c.BindPartial(map[*Parameter]float64{x: 0.5})
	if err != nil {
		t.Fatalf("BindPartial: %v", err)
	}
	binder, err := shifted.Binder([]float64{0.25})
	if err != nil {
		t.Fatalf("Binder: %v", err)
	}
	if d := shifted.Gate(0).Angle.Deriv(x, binder); d != 0 {
		t.Errorf("Deriv(x) = %v, want 0", d)
	}
	wantD := -2 * (math.Pi - 0.5)
	if d := shifted.Gate(0).Angle.Deriv(theta, binder); math.Abs(d-wantD) > 1e-12 {
		t.Errorf("Deriv(θ) = %v, want %v", d, wantD)
	}
}

func TestBindPartialUnknownParameter(t *testing.T) {
	c := New(1)
	c.RY(NewParameter("θ"), 0)
	if _, err := c.BindPartial(map[*Parameter]float64{NewParameter("φ"): 1}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestShiftGateAngle(t *testing.T) {
	c := New(1)
	c.H(0)
	c.RY(Value(0.3), 0)

	shifted := c.ShiftGateAngle(1, math.Pi/2)
	got := shifted.Gate(1).Angle.Eval(nil)
	want := 0.3 + math.Pi/2
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("shifted angle = %v, want %v", got, want)
	}
	// Original circuit untouched.
	if orig := c.Gate(1).Angle.Eval(nil); orig != 0.3 {
		t.Errorf("original angle changed to %v", orig)
	}
}

func TestShiftGateAngleUnboundPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unbound circuit")
		}
	}()
	c := New(1)
	c.RY(NewParameter("θ"), 0)
	c.ShiftGateAngle(0, 0.1)
}

func TestQubitRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range qubit")
		}
	}()
	New(2).H(2)
}

func TestTwoQubitSamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for control == target")
		}
	}()
	New(2).CX(1, 1)
}

func TestCompose(t *testing.T) {
	x := NewParameter("x")
	w := NewParameter("w")

	fm := New(2)
	fm.RY(x, 0)

	ansatz := New(2)
	ansatz.RY(w, 0)
	ansatz.CX(0, 1)

	combined, err := fm.Compose(ansatz)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if combined.NumGates() != 3 {
		t.Errorf("NumGates = %d, want 3", combined.NumGates())
	}
	params := combined.Parameters()
	if len(params) != 2 || params[0] != x || params[1] != w {
		t.Errorf("combined parameters wrong: %v", params)
	}
	// Source circuits unchanged.
	if fm.NumGates() != 1 || ansatz.NumGates() != 2 {
		t.Error("Compose modified its inputs")
	}
}

func TestComposeWidthMismatch(t *testing.T) {
	if _, err := New(1).Compose(New(2)); err == nil {
		t.Error("expected error composing circuits of different width")
	}
}

func TestShiftProductAngle(t *testing.T) {
	a := NewParameter("a")
	b := NewParameter("b")
	angle := ShiftProduct(2, math.Pi, a, math.Pi, b)

	bind := func(p *Parameter) float64 {
		if p == a {
			return 1.0
		}
		return 2.0
	}
	want := 2 * (math.Pi - 1.0) * (math.Pi - 2.0)
	if got := angle.Eval(bind); math.Abs(got-want) > 1e-12 {
		t.Errorf("Eval = %v, want %v", got, want)
	}

	// d/da 2(π-a)(π-b) = -2(π-b)
	wantDa := -2 * (math.Pi - 2.0)
	if got := angle.Deriv(a, bind); math.Abs(got-wantDa) > 1e-12 {
		t.Errorf("Deriv(a) = %v, want %v", got, wantDa)
	}
}

func TestScaledAngleDeriv(t *testing.T) {
	p := NewParameter("p")
	q := NewParameter("q")
	angle := ScaledBias(3, p, 0.5)

	if got := angle.Deriv(p, nil); got != 3 {
		t.Errorf("Deriv(p) = %v, want 3", got)
	}
	if got := angle.Deriv(q, nil); got != 0 {
		t.Errorf("Deriv(q) = %v, want 0", got)
	}
}

func TestLibraryParameterCounts(t *testing.T) {
	tests := []struct {
		name   string
		c      *Circuit
		params int
	}{
		{"ZFeatureMap(3,2)", NewZFeatureMap(3, 2), 3},
		{"ZZFeatureMap(2,2)", NewZZFeatureMap(2, 2), 2},
		{"ZZFeatureMap(3,1)", NewZZFeatureMap(3, 1), 3},
		{"RealAmplitudes(2,3)", NewRealAmplitudes(2, 3), 8},
		{"RealAmplitudes(3,1)", NewRealAmplitudes(3, 1), 6},
		{"EfficientSU2(2,1)", NewEfficientSU2(2, 1), 8},
	}
	for _, tt := range tests {
		if got := tt.c.NumParameters(); got != tt.params {
			t.Errorf("%s: NumParameters = %d, want %d", tt.name, got, tt.params)
		}
	}
}

func TestZZFeatureMapSingleQubitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for 1-qubit ZZ feature map")
		}
	}()
	NewZZFeatureMap(1, 2)
}

func TestQNNCircuitPartition(t *testing.T) {
	qc := NewQNNCircuit(2)

	if got := len(qc.InputParameters()); got != 2 {
		t.Errorf("input parameters = %d, want 2", got)
	}
	if got := len(qc.WeightParameters()); got != 8 {
		t.Errorf("weight parameters = %d, want 8", got)
	}

	// Combined circuit lists inputs before weights.
	params := qc.Circuit().Parameters()
	if len(params) != 10 {
		t.Fatalf("combined parameters = %d, want 10", len(params))
	}
	for i, p := range qc.InputParameters() {
		if params[i] != p {
			t.Errorf("combined parameter %d is not input parameter %d", i, i)
		}
	}
}

func TestQNNCircuitSingleQubit(t *testing.T) {
	qc := NewQNNCircuit(1)
	if got := len(qc.InputParameters()); got != 1 {
		t.Errorf("input parameters = %d, want 1", got)
	}
	if got := len(qc.WeightParameters()); got != 4 {
		t.Errorf("weight parameters = %d, want 4", got)
	}
}

func TestQNNCircuitFromSharedParameter(t *testing.T) {
	p := NewParameter("p")
	fm := New(1)
	fm.RY(p, 0)
	ansatz := New(1)
	ansatz.RZ(p, 0)

	if _, err := NewQNNCircuitFrom(fm, ansatz); err == nil {
		t.Error("expected error for parameter shared between feature map and ansatz")
	}
}
