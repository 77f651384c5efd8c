package primitive

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/operator"
	"github.com/bloch-ml/bloch/internal/parallel"
)

// Estimator computes expectation values <psi(θ)|O|psi(θ)>.
//
// Example:
//
//	est := primitive.NewEstimator()
//	values, err := est.Run(
//	    []*circuit.Circuit{c},
//	    []*operator.SparsePauliOp{operator.AllZ(2)},
//	    [][]float64{{0.1, 0.2}},
//	)
type Estimator struct {
	opts options
}

// NewEstimator creates an Estimator. With no options it runs exact
// simulation on the CPU engine.
func NewEstimator(opts ...Option) *Estimator {
	return &Estimator{opts: newOptions(opts)}
}

// Shots returns the configured shot count (0 means exact).
func (e *Estimator) Shots() int {
	return e.opts.shots
}

// Run evaluates one expectation value per batch item. circuits,
// observables and paramSets broadcast: each must have the batch length
// or length one.
func (e *Estimator) Run(circuits []*circuit.Circuit, observables []*operator.SparsePauliOp, paramSets [][]float64) ([]float64, error) {
	if len(circuits) == 0 || len(observables) == 0 {
		return nil, fmt.Errorf("estimator: circuits and observables must be non-empty")
	}
	if len(paramSets) == 0 {
		paramSets = [][]float64{nil}
	}
	n, ok := broadcastLen(len(circuits), len(observables), len(paramSets))
	if !ok {
		return nil, fmt.Errorf("estimator: mismatched batch sizes %d/%d/%d",
			len(circuits), len(observables), len(paramSets))
	}
	for i := 0; i < n; i++ {
		c := pick(circuits, i)
		obs := pick(observables, i)
		if obs.NumQubits() != c.NumQubits() {
			return nil, fmt.Errorf("estimator: batch item %d: observable acts on %d qubits, circuit has %d",
				i, obs.NumQubits(), c.NumQubits())
		}
		if !obs.IsHermitian() {
			return nil, fmt.Errorf("estimator: batch item %d: observable is not Hermitian", i)
		}
	}

	// Batch items are independent: simulate them in parallel. Noise
	// sampling stays sequential because the source is shared.
	values := make([]float64, n)
	variances := make([]float64, n)
	err := parallel.ForErr(n, func(i int) error {
		sv, err := e.opts.backend.Simulate(pick(circuits, i), pick(paramSets, i))
		if err != nil {
			return fmt.Errorf("estimator: batch item %d: %w", i, err)
		}
		obs := pick(observables, i)
		if e.opts.shots <= 0 {
			values[i], err = sv.ExpectationValue(obs)
		} else {
			values[i], variances[i], err = sv.ExpectationVariance(obs)
		}
		if err != nil {
			return fmt.Errorf("estimator: batch item %d: %w", i, err)
		}
		return nil
	}, e.opts.par)
	if err != nil {
		return nil, err
	}
	if e.opts.shots > 0 {
		for i := range values {
			sigma := math.Sqrt(variances[i] / float64(e.opts.shots))
			if sigma > 0 {
				noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: e.opts.src}
				values[i] += noise.Rand()
			}
		}
	}
	return values, nil
}
