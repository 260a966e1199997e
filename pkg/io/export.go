package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/polypath/pkg/polypath"
)

type document struct {
	Size  int     `json:"size"`
	Count int     `json:"count"`
	Paths []entry `json:"paths"`
}

type entry struct {
	Path  polypath.JumpSequence `json:"path"`
	Label string                `json:"label,omitempty"`
}

// WriteJSON encodes paths as an indented JSON document and writes it to w.
// The output can be re-imported with [ReadJSON].
//
// WriteJSON returns an error if the paths do not all share one size.
func WriteJSON(paths []polypath.PolyPath, w io.Writer) error {
	out := document{Count: len(paths), Paths: make([]entry, len(paths))}
	for i, p := range paths {
		if i == 0 {
			out.Size = p.Size
		} else if p.Size != out.Size {
			return fmt.Errorf("path %d: size %d differs from %d", i, p.Size, out.Size)
		}
		out.Paths[i] = entry{Path: p.Path, Label: p.Label()}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal is [WriteJSON] into a byte slice.
func Marshal(paths []polypath.PolyPath) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(paths, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes paths to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(paths []polypath.PolyPath, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(paths, f)
}
