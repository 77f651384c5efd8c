package optim

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// SGD implements gradient descent with optional momentum and weight
// decay.
//
// Update rule without momentum:
//
//	w = w - lr * (grad + weightDecay*w)
//
// With momentum:
//
//	v = momentum*v + grad + weightDecay*w
//	w = w - lr * v
type SGD struct {
	lr          float64
	momentum    float64
	weightDecay float64
	velocity    []float64
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR          float64 // Learning rate (default: 0.01)
	Momentum    float64 // Momentum factor (default: 0, range [0, 1))
	WeightDecay float64 // L2 penalty coefficient (default: 0)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		lr:          config.LR,
		momentum:    config.Momentum,
		weightDecay: config.WeightDecay,
	}
}

// Step applies one gradient update to weights in place.
func (s *SGD) Step(weights, grad []float64) {
	if len(weights) != len(grad) {
		panic(fmt.Sprintf("optim: weight/gradient length mismatch %d vs %d", len(weights), len(grad)))
	}
	if s.momentum == 0 {
		for i, g := range grad {
			weights[i] -= s.lr * (g + s.weightDecay*weights[i])
		}
		return
	}
	if s.velocity == nil {
		s.velocity = make([]float64, len(weights))
	}
	if len(s.velocity) != len(weights) {
		panic(fmt.Sprintf("optim: weight count changed from %d to %d", len(s.velocity), len(weights)))
	}
	for i, g := range grad {
		s.velocity[i] = s.momentum*s.velocity[i] + g + s.weightDecay*weights[i]
		weights[i] -= s.lr * s.velocity[i]
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 { return s.lr }

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) { s.lr = lr }

// StateDict exports the velocity buffer (empty without momentum).
func (s *SGD) StateDict() map[string][]float64 {
	state := make(map[string][]float64)
	if s.velocity != nil {
		state["velocity"] = append([]float64(nil), s.velocity...)
	}
	return state
}

// LoadStateDict restores the velocity buffer.
func (s *SGD) LoadStateDict(state map[string][]float64) error {
	v, ok := state["velocity"]
	if !ok {
		s.velocity = nil
		return nil
	}
	s.velocity = append([]float64(nil), v...)
	return nil
}

// GradNorm returns the L2 norm of a gradient vector. Training loops log
// it to watch for barren plateaus.
func GradNorm(grad []float64) float64 {
	return floats.Norm(grad, 2)
}
