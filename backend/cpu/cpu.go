// Copyright 2026 Ripple ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the public API for the pure-Go CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	g := graph.New(backend)
package cpu

import (
	"github.com/ripple-ml/ripple/internal/backend/cpu"
)

// Backend implements tensor operations on CPU.
type Backend = cpu.CPUBackend

// New creates a new CPU backend.
func New() *Backend {
	return cpu.New()
}
