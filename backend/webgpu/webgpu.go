//go:build windows

// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated
// statevector simulation.
//
// WebGPU is a cross-platform graphics and compute API; this backend
// uses its compute pipelines to apply gates to the amplitude vector
// on the GPU.
//
// Example:
//
//	import (
//	    "github.com/bloch-ml/bloch/backend/webgpu"
//	    "github.com/bloch-ml/bloch/primitive"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    est := primitive.NewEstimator(primitive.WithBackend(gpu))
//	}
package webgpu

import (
	"github.com/bloch-ml/bloch/internal/backend"
	internalwebgpu "github.com/bloch-ml/bloch/internal/backend/webgpu"
)

// Backend is the WebGPU statevector backend.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements backend.Backend.
var _ backend.Backend = (*Backend)(nil)

// New creates a WebGPU backend.
//
// This initializes the WebGPU device and returns a backend ready for
// circuit simulation. Call Release() when done to free GPU resources.
//
// Returns an error if WebGPU initialization fails (e.g., no
// compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// It attempts to initialize a WebGPU adapter to verify that a
// compatible GPU and drivers are present, and is useful for deciding
// between the GPU and CPU backends at startup.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
