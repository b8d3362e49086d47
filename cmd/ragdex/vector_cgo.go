//go:build cgo

package main

import (
	"github.com/archivelabs/ragdex/cgo/hnsw"
	"github.com/archivelabs/ragdex/internal/core/ports/driven"
)

// newVectorFactory returns the HNSWlib-backed factory.
func newVectorFactory() driven.VectorIndexFactory {
	return hnsw.NewFactory()
}
