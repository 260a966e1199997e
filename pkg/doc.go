// Package pkg provides the libraries behind polypath.
//
// # Overview
//
// Polypath finds every closed path that visits all vertices of a regular
// n-gon exactly once, folds together paths that are the same shape up to
// rotation, reversal and reflection, and draws what remains.
//
// # Architecture
//
// The data flow through polypath:
//
//	    n
//	    ↓
//	[polypath/perm] (rank ↔ visit order, Lehmer code)
//	    ↓
//	[polypath] (jump encoding, validation, canonical form, enumeration)
//	    ↓
//	[render] / [render/nodelink] / [io]
//	    ↓
//	SVG/PDF/PNG/DOT/JSON output
//
// # Quick Start
//
//	paths, _ := polypath.FindPaths(6)
//	svg := render.SVG(paths, render.WithScale(40))
//	_ = os.WriteFile("output6.svg", svg, 0o644)
//
// # Main Packages
//
// [polypath] - The core: jump sequences, the symmetry orbit, canonical
// forms and the enumerator. [polypath/perm] maps integers to visit orders.
//
// [render] - The grid drawing in SVG and conversion to PDF and PNG.
// [render/nodelink] draws the same paths as Graphviz graphs.
//
// [io] - JSON import and export with validation of every entry.
//
// [pipeline] - Enumerate then render with caching, shared by the CLI
// commands and the HTTP server.
//
// [cache] - File, memory, Redis and no-op caches with a common interface.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks around enumeration, rendering, caching and HTTP
// requests.
//
// [buildinfo] - Version information set at build time.
//
// [polypath]: https://pkg.go.dev/github.com/matzehuels/polypath/pkg/polypath
// [polypath/perm]: https://pkg.go.dev/github.com/matzehuels/polypath/pkg/polypath/perm
// [render]: https://pkg.go.dev/github.com/matzehuels/polypath/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/polypath/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/polypath/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/polypath/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/polypath/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/polypath/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/polypath/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/polypath/pkg/buildinfo
package pkg
