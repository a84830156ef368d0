// Package io provides JSON import and export for page layout documents.
//
// # Overview
//
// This package is the loader/validator collaborator the engine depends on:
// it decodes [layout.Document] values from JSON, checks them structurally
// before they are allowed anywhere near the engine, and encodes documents
// back out for persistence.
//
// Validation is strict on the way in and absent on the way out: a document
// produced by the engine is valid by construction, while a document arriving
// from storage or another tool is untrusted. Unknown document versions are
// rejected rather than coerced.
//
// # Validation rules
//
//   - version must equal the current [layout.Version]
//   - the grid config must pass [grid.Config.Validate]
//   - at most [layout.MaxRootWidgets] root-level widgets
//   - every widget id unique across the whole tree, ids and types well-formed
//   - every position with non-negative origin and positive spans
//
// Failures are reported as structured [errors.Error] values with
// machine-readable codes so hosts can present them appropriately.
package io
