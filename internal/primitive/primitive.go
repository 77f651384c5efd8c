// Package primitive implements the two execution primitives quantum
// neural networks are built on: the Estimator, which computes
// expectation values of observables, and the Sampler, which computes
// measurement distributions.
//
// Both primitives run batches: every run takes parallel slices of
// circuits, (for the Estimator) observables and parameter sets, where
// any slice of length one broadcasts across the batch. Results are
// exact by default; configuring shots switches to a sampled model with
// a seedable source.
package primitive

import (
	"math/rand/v2"

	"github.com/bloch-ml/bloch/internal/backend"
	"github.com/bloch-ml/bloch/internal/backend/cpu"
	"github.com/bloch-ml/bloch/internal/parallel"
)

// Option configures a primitive.
type Option func(*options)

type options struct {
	backend backend.Backend
	shots   int
	src     rand.Source
	par     parallel.Config
}

func newOptions(opts []Option) options {
	o := options{backend: cpu.New(), par: parallel.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBackend selects the simulation engine. Defaults to the CPU
// statevector engine.
func WithBackend(b backend.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithShots switches the primitive from exact results to a sampled model
// with the given number of shots per circuit. shots <= 0 means exact.
func WithShots(shots int) Option {
	return func(o *options) { o.shots = shots }
}

// WithSeed seeds the sampling source, making shot-based results
// deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15) }
}

// WithParallelism overrides how batch items are spread over worker
// goroutines. The default parallelizes across all CPUs.
func WithParallelism(cfg parallel.Config) Option {
	return func(o *options) { o.par = cfg }
}

// broadcastLen resolves the batch size for parallel argument slices:
// every length must equal the longest or be 1.
func broadcastLen(lens ...int) (int, bool) {
	n := 1
	for _, l := range lens {
		if l > n {
			n = l
		}
	}
	for _, l := range lens {
		if l != n && l != 1 {
			return 0, false
		}
	}
	return n, true
}

// pick returns element i of a broadcastable slice.
func pick[T any](s []T, i int) T {
	if len(s) == 1 {
		return s[0]
	}
	return s[i]
}
