// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure-Go statevector simulation backend.
//
// This backend is always available and is the default for the
// estimator and sampler primitives:
//
//	est := primitive.NewEstimator(primitive.WithBackend(cpu.New()))
package cpu

import (
	"github.com/bloch-ml/bloch/internal/backend/cpu"
)

// Backend is the CPU statevector backend.
type Backend = cpu.Backend

// New creates a CPU backend.
func New() *Backend {
	return cpu.New()
}
