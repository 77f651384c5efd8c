// Package optim implements optimization algorithms for training quantum
// neural network weights.
//
// Quantum networks carry their trainable state as one flat float64
// vector, so optimizers here step vectors, not parameter trees:
//
//	opt := optim.NewAdam(optim.AdamConfig{LR: 0.05})
//	for epoch := 0; epoch < epochs; epoch++ {
//	    grad := lossGradient(weights)
//	    opt.Step(weights, grad)
//	}
//
// Design inspired by PyTorch's torch.optim, adapted to flat vectors.
package optim

// Optimizer is the base interface for all optimization algorithms.
//
// Step updates weights in place from the loss gradient; the two slices
// must have the same length, and the length must stay constant across
// calls because stateful optimizers keep per-component buffers.
type Optimizer interface {
	// Step applies one in-place gradient update to weights.
	Step(weights, grad []float64)

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate; schedulers use this.
	SetLR(lr float64)

	// StateDict returns the optimizer state for checkpointing.
	StateDict() map[string][]float64

	// LoadStateDict restores optimizer state from a checkpoint.
	LoadStateDict(state map[string][]float64) error
}
