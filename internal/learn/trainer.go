package learn

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/bloch-ml/bloch/internal/optim"
	"github.com/bloch-ml/bloch/internal/qnn"
)

// TrainConfig configures a classifier or regressor.
//
// Zero values select the defaults: an Adam optimizer with lr 0.05,
// squared-error loss, 50 epochs, a disabled logger and a random initial
// point in [-π, π).
type TrainConfig struct {
	Optimizer optim.Optimizer
	Loss      Loss
	Epochs    int
	Seed      uint64 // Weight initialization seed; 0 draws a random seed.
	Logger    zerolog.Logger
	// Callback runs after every epoch with the epoch index and loss.
	Callback func(epoch int, loss float64)
}

func (cfg *TrainConfig) defaults() {
	if cfg.Optimizer == nil {
		cfg.Optimizer = optim.NewAdam(optim.AdamConfig{LR: 0.05})
	}
	if cfg.Loss == nil {
		cfg.Loss = SquaredError{}
	}
	if cfg.Epochs == 0 {
		cfg.Epochs = 50
	}
}

// trainer drives full-batch gradient descent through a network's
// Backward pass. Classifier and Regressor wrap it with their target
// encodings.
type trainer struct {
	net     qnn.NeuralNetwork
	cfg     TrainConfig
	weights []float64
	trained bool
	log     zerolog.Logger
}

func newTrainer(net qnn.NeuralNetwork, cfg TrainConfig, component string) *trainer {
	cfg.defaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	weights := make([]float64, net.NumWeights())
	for i := range weights {
		weights[i] = (2*rng.Float64() - 1) * math.Pi
	}
	return &trainer{
		net:     net,
		cfg:     cfg,
		weights: weights,
		log:     cfg.Logger.With().Str("component", component).Logger(),
	}
}

// lossGradient maps per-prediction loss gradients through the network's
// weight Jacobians: grad_k = Σ_i Σ_j dL/dpred_ij * J_i[j, k].
func (t *trainer) lossGradient(predGrad *mat.Dense, weightGrads []*mat.Dense) []float64 {
	grad := make([]float64, t.net.NumWeights())
	out := t.net.OutputDim()
	for i, jac := range weightGrads {
		for j := 0; j < out; j++ {
			g := predGrad.At(i, j)
			if g == 0 {
				continue
			}
			for k := range grad {
				grad[k] += g * jac.At(j, k)
			}
		}
	}
	return grad
}

// fit runs the training loop against an already-encoded target matrix.
func (t *trainer) fit(x, target *mat.Dense) error {
	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		pred, err := t.net.Forward(x, t.weights)
		if err != nil {
			return fmt.Errorf("epoch %d: %w", epoch, err)
		}
		loss := t.cfg.Loss.Loss(pred, target)

		_, weightGrads, err := t.net.Backward(x, t.weights)
		if err != nil {
			return fmt.Errorf("epoch %d: %w", epoch, err)
		}
		grad := t.lossGradient(t.cfg.Loss.Grad(pred, target), weightGrads)
		t.cfg.Optimizer.Step(t.weights, grad)

		t.log.Debug().
			Int("epoch", epoch).
			Float64("loss", loss).
			Float64("grad_norm", optim.GradNorm(grad)).
			Msg("training step")
		if t.cfg.Callback != nil {
			t.cfg.Callback(epoch, loss)
		}
	}
	t.trained = true
	return nil
}

func (t *trainer) forward(x *mat.Dense) (*mat.Dense, error) {
	if !t.trained {
		t.log.Warn().Msg("predicting with untrained weights")
	}
	return t.net.Forward(x, t.weights)
}

// Weights returns the current flat weight vector (not a copy).
func (t *trainer) Weights() []float64 { return t.weights }

// SetWeights replaces the weight vector, e.g. from a checkpoint.
func (t *trainer) SetWeights(w []float64) error {
	if len(w) != t.net.NumWeights() {
		return fmt.Errorf("network has %d weights, got %d", t.net.NumWeights(), len(w))
	}
	t.weights = append([]float64(nil), w...)
	t.trained = true
	return nil
}
