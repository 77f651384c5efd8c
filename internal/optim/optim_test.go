package optim

import (
	"math"
	"testing"
)

func assertClose(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func TestSGDStep(t *testing.T) {
	sgd := NewSGD(SGDConfig{LR: 0.1})
	weights := []float64{1.0, -2.0}
	grad := []float64{0.5, -0.5}

	sgd.Step(weights, grad)

	assertClose(t, 0.95, weights[0], "weights[0]")
	assertClose(t, -1.95, weights[1], "weights[1]")
}

func TestSGDDefaults(t *testing.T) {
	sgd := NewSGD(SGDConfig{})
	if sgd.GetLR() != 0.01 {
		t.Errorf("default LR = %v, want 0.01", sgd.GetLR())
	}
}

func TestSGDMomentum(t *testing.T) {
	sgd := NewSGD(SGDConfig{LR: 0.1, Momentum: 0.9})
	weights := []float64{0.0}
	grad := []float64{1.0}

	// v1 = 1, w = -0.1; v2 = 0.9 + 1 = 1.9, w = -0.1 - 0.19 = -0.29
	sgd.Step(weights, grad)
	assertClose(t, -0.1, weights[0], "after first step")
	sgd.Step(weights, grad)
	assertClose(t, -0.29, weights[0], "after second step")
}

func TestSGDWeightDecay(t *testing.T) {
	sgd := NewSGD(SGDConfig{LR: 0.1, WeightDecay: 0.5})
	weights := []float64{2.0}
	grad := []float64{0.0}

	// w = 2 - 0.1*(0 + 0.5*2) = 1.9
	sgd.Step(weights, grad)
	assertClose(t, 1.9, weights[0], "decayed weight")
}

func TestSGDLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for length mismatch")
		}
	}()
	NewSGD(SGDConfig{}).Step([]float64{1}, []float64{1, 2})
}

func TestSGDStateDictRoundTrip(t *testing.T) {
	sgd := NewSGD(SGDConfig{LR: 0.1, Momentum: 0.9})
	weights := []float64{0.5, 0.5}
	sgd.Step(weights, []float64{1, -1})

	state := sgd.StateDict()
	if len(state["velocity"]) != 2 {
		t.Fatalf("velocity length = %d, want 2", len(state["velocity"]))
	}

	restored := NewSGD(SGDConfig{LR: 0.1, Momentum: 0.9})
	if err := restored.LoadStateDict(state); err != nil {
		t.Fatalf("LoadStateDict: %v", err)
	}

	w1 := []float64{1.0, 1.0}
	w2 := []float64{1.0, 1.0}
	g := []float64{0.2, 0.2}
	sgd.Step(w1, g)
	restored.Step(w2, g)
	assertClose(t, w1[0], w2[0], "restored optimizer diverged")
	assertClose(t, w1[1], w2[1], "restored optimizer diverged")
}

func TestAdamDefaults(t *testing.T) {
	adam := NewAdam(AdamConfig{})
	if adam.GetLR() != 0.001 {
		t.Errorf("default LR = %v, want 0.001", adam.GetLR())
	}
	if adam.beta1 != 0.9 || adam.beta2 != 0.999 || adam.eps != 1e-8 {
		t.Errorf("defaults: beta1=%v beta2=%v eps=%v", adam.beta1, adam.beta2, adam.eps)
	}
}

func TestAdamFirstStep(t *testing.T) {
	// With bias correction the first step moves by almost exactly
	// lr * sign(grad).
	adam := NewAdam(AdamConfig{LR: 0.1})
	weights := []float64{0.0, 0.0}
	grad := []float64{0.3, -2.0}

	adam.Step(weights, grad)

	if math.Abs(weights[0]+0.1) > 1e-6 {
		t.Errorf("weights[0] = %v, want ~-0.1", weights[0])
	}
	if math.Abs(weights[1]-0.1) > 1e-6 {
		t.Errorf("weights[1] = %v, want ~0.1", weights[1])
	}
}

func TestAdamConverges(t *testing.T) {
	// Minimize (w-3)² from w=0.
	adam := NewAdam(AdamConfig{LR: 0.3})
	weights := []float64{0.0}
	for i := 0; i < 200; i++ {
		grad := []float64{2 * (weights[0] - 3)}
		adam.Step(weights, grad)
	}
	if math.Abs(weights[0]-3) > 0.1 {
		t.Errorf("did not converge: w = %v", weights[0])
	}
}

func TestAdamStateDictRoundTrip(t *testing.T) {
	adam := NewAdam(AdamConfig{LR: 0.01})
	weights := []float64{1, 2, 3}
	adam.Step(weights, []float64{0.1, 0.2, 0.3})
	adam.Step(weights, []float64{0.1, 0.2, 0.3})

	state := adam.StateDict()
	if state["t"][0] != 2 {
		t.Errorf("t = %v, want 2", state["t"][0])
	}

	restored := NewAdam(AdamConfig{LR: 0.01})
	if err := restored.LoadStateDict(state); err != nil {
		t.Fatalf("LoadStateDict: %v", err)
	}

	w1 := append([]float64(nil), weights...)
	w2 := append([]float64(nil), weights...)
	g := []float64{0.1, 0.2, 0.3}
	adam.Step(w1, g)
	restored.Step(w2, g)
	for i := range w1 {
		assertClose(t, w1[i], w2[i], "restored optimizer diverged")
	}
}

func TestAdamLoadStateDictIncomplete(t *testing.T) {
	adam := NewAdam(AdamConfig{})
	err := adam.LoadStateDict(map[string][]float64{"m": {1}})
	if err == nil {
		t.Error("expected error for incomplete state")
	}

	// Empty state resets the optimizer.
	if err := adam.LoadStateDict(map[string][]float64{}); err != nil {
		t.Errorf("empty state: %v", err)
	}
}

func TestStepLR(t *testing.T) {
	sgd := NewSGD(SGDConfig{LR: 1.0})
	sched := NewStepLR(sgd, 2, 0.5)

	sched.Step()
	assertClose(t, 1.0, sgd.GetLR(), "after epoch 1")
	sched.Step()
	assertClose(t, 0.5, sgd.GetLR(), "after epoch 2")
	sched.Step()
	sched.Step()
	assertClose(t, 0.25, sgd.GetLR(), "after epoch 4")
	if sched.Epoch() != 4 {
		t.Errorf("Epoch() = %d, want 4", sched.Epoch())
	}
}

func TestGradNorm(t *testing.T) {
	assertClose(t, 5.0, GradNorm([]float64{3, 4}), "3-4-5")
	assertClose(t, 0.0, GradNorm([]float64{0, 0}), "zero")
}
