// SPDX-License-Identifier: MIT

// Package segment implements machine-learned phrase boundary detection for
// languages written without spaces between words (Japanese, Chinese, Thai).
// A trained model assigns integer scores to character-window features; the
// parser inserts a boundary wherever the summed score exceeds a threshold.
package segment

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Model maps feature keys (e.g. "UW3:は", "BB2:108109") to trained scores.
// A Model is immutable once loaded and safe for concurrent use.
type Model map[string]int

// LoadModel reads a JSON model from r.
func LoadModel(r io.Reader) (Model, error) {
	var m Model
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("decode model: no features")
	}
	return m, nil
}

// LoadModelFile reads a JSON model from the file at path.
func LoadModelFile(path string) (Model, error) {
	f, err := os.Open(path) // #nosec G304 -- model paths come from operator config
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := LoadModel(f)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}
