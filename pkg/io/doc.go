// Package io provides JSON import and export for enumerated polygon paths.
//
// # Overview
//
// The JSON format stores the result of one enumeration so it can be shared,
// cached or re-rendered without enumerating again:
//
//	{
//	  "size": 4,
//	  "count": 2,
//	  "paths": [
//	    {"path": [1, 1, 1, 1], "label": "1111"},
//	    {"path": [1, 2, 3, 2], "label": "1232"}
//	  ]
//	}
//
// The label is informational; readers rely on "path".
//
// # Import
//
// Use [ImportJSON] to read paths from a file, or [ReadJSON] to read from any
// io.Reader. Every entry is checked: it must be a closed path over all
// vertices, in canonical form, and appear only once. The count must match.
//
//	paths, err := io.ImportJSON("output6.json")
//
// # Export
//
// Use [ExportJSON] to write paths to a file, or [WriteJSON] to write to any
// io.Writer. All paths must share one polygon size.
package io
