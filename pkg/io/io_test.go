package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/polypath/pkg/polypath"
)

func TestRoundTrip(t *testing.T) {
	paths, err := polypath.FindPaths(6)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(paths, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got) != len(paths) {
		t.Fatalf("got %d paths, want %d", len(got), len(paths))
	}
	for i := range got {
		if !got[i].Equal(paths[i]) {
			t.Errorf("path %d = %v, want %v", i, got[i], paths[i])
		}
	}
}

func TestWriteJSONFormat(t *testing.T) {
	paths := []polypath.PolyPath{
		{Size: 4, Path: polypath.JumpSequence{1, 1, 1, 1}},
		{Size: 4, Path: polypath.JumpSequence{1, 2, 3, 2}},
	}
	data, err := Marshal(paths)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"size": 4`, `"count": 2`, `"label": "1232"`} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %s:\n%s", want, s)
		}
	}
}

func TestWriteJSONMixedSizes(t *testing.T) {
	paths := []polypath.PolyPath{
		{Size: 3, Path: polypath.JumpSequence{1, 1, 1}},
		{Size: 4, Path: polypath.JumpSequence{1, 1, 1, 1}},
	}
	if _, err := Marshal(paths); err == nil {
		t.Error("expected error for mixed sizes")
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"malformed", `{"size":`, "decode"},
		{"count mismatch", `{"size":4,"count":2,"paths":[{"path":[1,1,1,1]}]}`, "count"},
		{"bad size", `{"size":2,"count":1,"paths":[{"path":[1,1]}]}`, "invalid polygon size"},
		{"wrong length", `{"size":4,"count":1,"paths":[{"path":[1,1,1]}]}`, "length"},
		{"not closed", `{"size":4,"count":1,"paths":[{"path":[2,2,2,2]}]}`, "closed"},
		{"not canonical", `{"size":4,"count":1,"paths":[{"path":[3,3,3,3]}]}`, "canonical"},
		{"duplicate", `{"size":4,"count":2,"paths":[{"path":[1,1,1,1]},{"path":[1,1,1,1]}]}`, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.json))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestReadJSONEmpty(t *testing.T) {
	got, err := Unmarshal([]byte(`{"size":0,"count":0,"paths":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d paths, want 0", len(got))
	}
}

func TestExportImportFile(t *testing.T) {
	paths, err := polypath.FindPaths(5)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "output5.json")
	if err := ExportJSON(paths, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("got %d paths, want 4", len(got))
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
