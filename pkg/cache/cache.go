// Package cache provides a content-addressed cache for derived layout
// artifacts: resolved cell arrays, rendered containment graphs, anything the
// CLI computes from a layout document and may be asked for again.
//
// Keys carry the document's content hash plus the computation's parameters,
// so a stale document can never serve a stale artifact - editing the
// document changes the key.
package cache

import (
	"context"
	"time"
)

// Artifact kinds the layout pipeline produces.
const (
	ArtifactCells = "cells"
	ArtifactGraph = "graph"
)

// Key identifies one derived artifact: what was computed, from which
// document, and with which parameters.
type Key struct {
	// Artifact is the kind of derived output, e.g. ArtifactCells.
	Artifact string

	// DocHash is the content hash of the source layout document.
	DocHash string

	// Variant distinguishes computations over the same document, e.g. the
	// breakpoint cells were resolved for or the graph output format.
	Variant string
}

// Cache stores derived artifacts keyed by their source document and
// computation parameters.
type Cache interface {
	// Get retrieves an artifact. The boolean reports whether the key was
	// found and unexpired.
	Get(ctx context.Context, key Key) ([]byte, bool, error)

	// Set stores an artifact. A non-positive ttl stores it without
	// expiration.
	Set(ctx context.Context, key Key, data []byte, ttl time.Duration) error

	// Delete removes an artifact. Deleting an absent key is not an error.
	Delete(ctx context.Context, key Key) error

	// Close releases any resources held by the cache.
	Close() error
}

// CellsKey builds the key for a resolved cell array: the document hash, the
// breakpoint it was resolved for, and whether overlaps were optimized away.
func CellsKey(docHash, breakpoint string, optimized bool) Key {
	variant := breakpoint
	if optimized {
		variant += "+optimized"
	}
	return Key{Artifact: ArtifactCells, DocHash: docHash, Variant: variant}
}

// GraphKey builds the key for a rendered containment graph: the document
// hash, the output format, and whether detailed node labels were requested.
func GraphKey(docHash, format string, detailed bool) Key {
	variant := format
	if detailed {
		variant += "+detailed"
	}
	return Key{Artifact: ArtifactGraph, DocHash: docHash, Variant: variant}
}
