package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/polypath/pkg/polypath"
)

// ReadJSON decodes a JSON document of paths from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - The size is outside the supported range
//   - An entry is not a closed path visiting every vertex once
//   - An entry is not the canonical form of its orbit
//   - An entry appears twice
//   - The count does not match the number of entries
//
// Paths are returned in document order. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]polypath.PolyPath, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Count != len(doc.Paths) {
		return nil, fmt.Errorf("count %d does not match %d paths", doc.Count, len(doc.Paths))
	}
	if len(doc.Paths) == 0 {
		return []polypath.PolyPath{}, nil
	}
	if err := polypath.CheckSize(doc.Size); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(doc.Paths))
	out := make([]polypath.PolyPath, 0, len(doc.Paths))
	for i, e := range doc.Paths {
		p := polypath.PolyPath{Size: doc.Size, Path: e.Path}
		if err := checkEntry(p); err != nil {
			return nil, fmt.Errorf("path %d (%v): %w", i, []int(e.Path), err)
		}
		k := p.Key()
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("path %d (%v): duplicate", i, []int(e.Path))
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func checkEntry(p polypath.PolyPath) error {
	if len(p.Path) != p.Size {
		return fmt.Errorf("length %d, want %d", len(p.Path), p.Size)
	}
	if !polypath.Validate(p.Path) {
		return fmt.Errorf("not a closed path over all vertices")
	}
	if c := polypath.Canonicalize(p.Path); c.Compare(p.Path) != 0 {
		return fmt.Errorf("not canonical, want %v", []int(c))
	}
	return nil
}

// Unmarshal is [ReadJSON] over a byte slice.
func Unmarshal(data []byte) ([]polypath.PolyPath, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads a JSON file at path and returns the decoded paths.
//
// ImportJSON returns the same validation errors as [ReadJSON], wrapped with
// the file path for context when the file cannot be opened.
func ImportJSON(path string) ([]polypath.PolyPath, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
