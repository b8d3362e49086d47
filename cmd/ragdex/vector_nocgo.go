//go:build !cgo

package main

import (
	"github.com/archivelabs/ragdex/internal/adapters/driven/vector/memory"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// newVectorFactory returns the pure-Go brute-force factory, used when
// the HNSWlib wrapper is unavailable.
func newVectorFactory() driven.VectorIndexFactory {
	return memory.NewFactory()
}
