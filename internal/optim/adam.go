package optim

import (
	"fmt"
	"math"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1*m_{t-1} + (1-beta1)*grad
//	v_t = beta2*v_{t-1} + (1-beta2)*grad²
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	w = w - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014).
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int
	m     []float64 // first moment estimates
	v     []float64 // second moment estimates
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Running-average coefficients (default: [0.9, 0.999])
	Eps   float64    // Numerical stability term (default: 1e-8)
}

// NewAdam creates a new Adam optimizer with defaulted hyperparameters.
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
	}
}

// Step applies one gradient update to weights in place.
func (a *Adam) Step(weights, grad []float64) {
	if len(weights) != len(grad) {
		panic(fmt.Sprintf("optim: weight/gradient length mismatch %d vs %d", len(weights), len(grad)))
	}
	if a.m == nil {
		a.m = make([]float64, len(weights))
		a.v = make([]float64, len(weights))
	}
	if len(a.m) != len(weights) {
		panic(fmt.Sprintf("optim: weight count changed from %d to %d", len(a.m), len(weights)))
	}
	a.t++
	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))
	for i, g := range grad {
		a.m[i] = a.beta1*a.m[i] + (1-a.beta1)*g
		a.v[i] = a.beta2*a.v[i] + (1-a.beta2)*g*g
		mHat := a.m[i] / c1
		vHat := a.v[i] / c2
		weights[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
	}
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 { return a.lr }

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) { a.lr = lr }

// StateDict exports moment buffers and the timestep.
func (a *Adam) StateDict() map[string][]float64 {
	state := make(map[string][]float64)
	if a.m != nil {
		state["m"] = append([]float64(nil), a.m...)
		state["v"] = append([]float64(nil), a.v...)
		state["t"] = []float64{float64(a.t)}
	}
	return state
}

// LoadStateDict restores moment buffers and the timestep.
func (a *Adam) LoadStateDict(state map[string][]float64) error {
	m, okM := state["m"]
	v, okV := state["v"]
	t, okT := state["t"]
	if !okM && !okV {
		a.m, a.v, a.t = nil, nil, 0
		return nil
	}
	if !okM || !okV || !okT || len(t) != 1 {
		return fmt.Errorf("optim: incomplete Adam state")
	}
	if len(m) != len(v) {
		return fmt.Errorf("optim: Adam moment length mismatch %d vs %d", len(m), len(v))
	}
	a.m = append([]float64(nil), m...)
	a.v = append([]float64(nil), v...)
	a.t = int(t[0])
	return nil
}
