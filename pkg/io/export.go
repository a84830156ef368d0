package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pagegrid/pagegrid/pkg/layout"
)

// WriteJSON encodes a layout document as indented JSON and writes it to w.
// The output round-trips through [ReadJSON] unchanged.
func WriteJSON(doc layout.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes a layout document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportFile(doc layout.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
