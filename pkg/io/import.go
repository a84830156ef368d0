package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pagegrid/pagegrid/pkg/errors"
	"github.com/pagegrid/pagegrid/pkg/layout"
)

// ReadJSON decodes a layout document from r and validates it.
//
// The input must be a JSON object with "version", "grid", and "widgets"
// fields; "metadata" is optional. ReadJSON returns a structured error if the
// JSON is malformed, the version is not the supported one, or the document
// fails any of the package's validation rules. The returned document is
// independent of r and safe to adopt. ReadJSON does not close r.
func ReadJSON(r io.Reader) (layout.Document, error) {
	var doc layout.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return layout.Document{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode layout")
	}
	if err := Validate(doc); err != nil {
		return layout.Document{}, err
	}
	return doc, nil
}

// ImportFile reads a JSON layout file at path and returns the validated
// document. If the file cannot be opened or fails validation, ImportFile
// returns a structured error wrapping the underlying cause with the file
// path for context.
func ImportFile(path string) (layout.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return layout.Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
