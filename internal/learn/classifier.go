package learn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bloch-ml/bloch/internal/qnn"
)

// Classifier trains a quantum network for multi-class classification.
// The network's outputs are treated as class scores (probabilities for
// sampler networks); labels are one-hot encoded against OutputDim.
//
// Example:
//
//	net, _ := qnn.NewSamplerQNNFromQNNCircuit(qc, qnn.WithInterpret(qnn.Parity, 2))
//	clf := learn.NewClassifier(net, learn.TrainConfig{Epochs: 100})
//	if err := clf.Fit(x, labels); err != nil { ... }
//	pred, _ := clf.Predict(x)
type Classifier struct {
	*trainer
}

// NewClassifier creates a classifier over net.
func NewClassifier(net qnn.NeuralNetwork, cfg TrainConfig) *Classifier {
	return &Classifier{trainer: newTrainer(net, cfg, "classifier")}
}

// encode one-hot encodes labels against the network's output dimension.
func (c *Classifier) encode(batch int, y []int) (*mat.Dense, error) {
	dim := c.net.OutputDim()
	target := mat.NewDense(batch, dim, nil)
	for i, label := range y {
		if label < 0 || label >= dim {
			return nil, fmt.Errorf("label %d outside [0, %d)", label, dim)
		}
		target.Set(i, label, 1)
	}
	return target, nil
}

// Fit trains the classifier on inputs x (one row per sample) and
// integer labels y.
func (c *Classifier) Fit(x *mat.Dense, y []int) error {
	batch, _ := x.Dims()
	if batch != len(y) {
		return fmt.Errorf("classifier: %d samples but %d labels", batch, len(y))
	}
	target, err := c.encode(batch, y)
	if err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	c.log.Info().
		Int("samples", batch).
		Int("classes", c.net.OutputDim()).
		Int("weights", c.net.NumWeights()).
		Int("epochs", c.cfg.Epochs).
		Msg("fitting classifier")
	if err := c.fit(x, target); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	return nil
}

// PredictProba returns the [batch, OutputDim] class score matrix.
func (c *Classifier) PredictProba(x *mat.Dense) (*mat.Dense, error) {
	out, err := c.forward(x)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	return out, nil
}

// Predict returns the argmax class per sample.
func (c *Classifier) Predict(x *mat.Dense) ([]int, error) {
	scores, err := c.PredictProba(x)
	if err != nil {
		return nil, err
	}
	batch, dim := scores.Dims()
	pred := make([]int, batch)
	for i := 0; i < batch; i++ {
		best := 0
		for j := 1; j < dim; j++ {
			if scores.At(i, j) > scores.At(i, best) {
				best = j
			}
		}
		pred[i] = best
	}
	return pred, nil
}

// Score returns the fraction of correctly classified samples.
func (c *Classifier) Score(x *mat.Dense, y []int) (float64, error) {
	pred, err := c.Predict(x)
	if err != nil {
		return 0, err
	}
	if len(pred) != len(y) {
		return 0, fmt.Errorf("classifier: %d predictions but %d labels", len(pred), len(y))
	}
	correct := 0
	for i, p := range pred {
		if p == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}
