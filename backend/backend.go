// Copyright 2025 Bloch QML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package backend defines the simulation backend interface.
//
// A backend turns a circuit plus bound parameter values into a final
// statevector. The cpu backend is always available; the webgpu backend
// offloads gate application to the GPU on supported platforms.
package backend

import (
	"github.com/bloch-ml/bloch/internal/backend"
)

// Backend simulates circuits to statevectors.
type Backend = backend.Backend
