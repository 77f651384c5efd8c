// Package learn implements the training layer over quantum neural
// networks: loss functions, a classifier and a regressor driving
// gradient descent through a network's Backward pass, and msgpack
// checkpoints for trained weights.
package learn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// logEps keeps cross-entropy finite on zero probabilities.
const logEps = 1e-12

// Loss scores a batch of predictions against targets and provides the
// gradient with respect to the predictions.
type Loss interface {
	// Loss returns the scalar batch loss.
	Loss(pred, target *mat.Dense) float64

	// Grad returns dLoss/dpred with pred's dimensions.
	Grad(pred, target *mat.Dense) *mat.Dense
}

// SquaredError is the mean squared error, summed over output
// components and averaged over the batch.
type SquaredError struct{}

// Loss returns (1/N) Σ_i Σ_j (pred_ij - target_ij)².
func (SquaredError) Loss(pred, target *mat.Dense) float64 {
	r, c := pred.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d := pred.At(i, j) - target.At(i, j)
			sum += d * d
		}
	}
	return sum / float64(r)
}

// Grad returns 2(pred - target)/N.
func (SquaredError) Grad(pred, target *mat.Dense) *mat.Dense {
	r, c := pred.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, 2*(pred.At(i, j)-target.At(i, j))/float64(r))
		}
	}
	return out
}

// CrossEntropy is the negative log-likelihood of probability outputs
// against one-hot (or soft) targets, averaged over the batch. Sampler
// networks produce probabilities directly, so no softmax is applied.
type CrossEntropy struct{}

// Loss returns -(1/N) Σ_i Σ_j target_ij log(pred_ij).
func (CrossEntropy) Loss(pred, target *mat.Dense) float64 {
	r, c := pred.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if t := target.At(i, j); t != 0 {
				sum -= t * math.Log(pred.At(i, j)+logEps)
			}
		}
	}
	return sum / float64(r)
}

// Grad returns -target/(pred)/N elementwise.
func (CrossEntropy) Grad(pred, target *mat.Dense) *mat.Dense {
	r, c := pred.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if t := target.At(i, j); t != 0 {
				out.Set(i, j, -t/(pred.At(i, j)+logEps)/float64(r))
			}
		}
	}
	return out
}
