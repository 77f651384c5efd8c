package learn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/bloch-ml/bloch/internal/qnn"
)

// Regressor trains a quantum network with a single output for scalar
// regression. Estimator networks fit naturally: their expectation
// values are smooth in the weights and bounded by the observable's
// spectrum.
type Regressor struct {
	*trainer
}

// NewRegressor creates a regressor over net. The network must have
// exactly one output.
func NewRegressor(net qnn.NeuralNetwork, cfg TrainConfig) (*Regressor, error) {
	if net.OutputDim() != 1 {
		return nil, fmt.Errorf("regressor: network must have 1 output, has %d", net.OutputDim())
	}
	return &Regressor{trainer: newTrainer(net, cfg, "regressor")}, nil
}

// Fit trains the regressor on inputs x (one row per sample) and scalar
// targets y.
func (r *Regressor) Fit(x *mat.Dense, y []float64) error {
	batch, _ := x.Dims()
	if batch != len(y) {
		return fmt.Errorf("regressor: %d samples but %d targets", batch, len(y))
	}
	target := mat.NewDense(batch, 1, append([]float64(nil), y...))
	r.log.Info().
		Int("samples", batch).
		Int("weights", r.net.NumWeights()).
		Int("epochs", r.cfg.Epochs).
		Msg("fitting regressor")
	if err := r.fit(x, target); err != nil {
		return fmt.Errorf("regressor: %w", err)
	}
	return nil
}

// Predict returns one scalar prediction per sample.
func (r *Regressor) Predict(x *mat.Dense) ([]float64, error) {
	out, err := r.forward(x)
	if err != nil {
		return nil, fmt.Errorf("regressor: %w", err)
	}
	batch, _ := out.Dims()
	pred := make([]float64, batch)
	for i := range pred {
		pred[i] = out.At(i, 0)
	}
	return pred, nil
}

// Score returns the coefficient of determination R² of the predictions
// against y.
func (r *Regressor) Score(x *mat.Dense, y []float64) (float64, error) {
	pred, err := r.Predict(x)
	if err != nil {
		return 0, err
	}
	if len(pred) != len(y) {
		return 0, fmt.Errorf("regressor: %d predictions but %d targets", len(pred), len(y))
	}
	return stat.RSquaredFrom(pred, y, nil), nil
}
