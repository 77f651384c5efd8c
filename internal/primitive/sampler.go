package primitive

import (
	"fmt"

	"github.com/bloch-ml/bloch/internal/circuit"
	"github.com/bloch-ml/bloch/internal/parallel"
	"github.com/bloch-ml/bloch/internal/statevector"
)

// Distribution is a dense probability vector over the 2^n computational
// basis states of a circuit.
type Distribution []float64

// Sampler computes measurement distributions of bound circuits.
//
// Exact by default; with shots configured the distribution holds
// observed frequencies instead of exact probabilities.
type Sampler struct {
	opts options
}

// NewSampler creates a Sampler. With no options it returns exact
// probabilities from the CPU engine.
func NewSampler(opts ...Option) *Sampler {
	return &Sampler{opts: newOptions(opts)}
}

// Shots returns the configured shot count (0 means exact).
func (s *Sampler) Shots() int {
	return s.opts.shots
}

// Run returns one distribution per batch item. circuits and paramSets
// broadcast: each must have the batch length or length one.
func (s *Sampler) Run(circuits []*circuit.Circuit, paramSets [][]float64) ([]Distribution, error) {
	if len(circuits) == 0 {
		return nil, fmt.Errorf("sampler: circuits must be non-empty")
	}
	if len(paramSets) == 0 {
		paramSets = [][]float64{nil}
	}
	n, ok := broadcastLen(len(circuits), len(paramSets))
	if !ok {
		return nil, fmt.Errorf("sampler: mismatched batch sizes %d/%d", len(circuits), len(paramSets))
	}
	// Simulation fans out over workers; shot sampling stays on the
	// calling goroutine because the source is shared.
	states := make([]*statevector.Statevector, n)
	err := parallel.ForErr(n, func(i int) error {
		sv, err := s.opts.backend.Simulate(pick(circuits, i), pick(paramSets, i))
		if err != nil {
			return fmt.Errorf("sampler: batch item %d: %w", i, err)
		}
		states[i] = sv
		return nil
	}, s.opts.par)
	if err != nil {
		return nil, err
	}
	dists := make([]Distribution, n)
	for i, sv := range states {
		if s.opts.shots <= 0 {
			dists[i] = sv.Probabilities()
			continue
		}
		counts := sv.SampleCounts(s.opts.shots, s.opts.src)
		dist := make(Distribution, 1<<sv.NumQubits())
		for outcome, c := range counts {
			dist[outcome] = float64(c) / float64(s.opts.shots)
		}
		dists[i] = dist
	}
	return dists, nil
}
