// Package pkg provides the core libraries for rnadraw, a drawing tool for RNA
// secondary structures.
//
// # Overview
//
// rnadraw turns a dot-bracket structure into a planar diagram: helices become
// straight ladders, loops are fitted on circles and pseudoknot pairs are
// drawn as extra links on top. The pkg directory is organized into these
// areas:
//
//  1. [structure] - Dot-bracket parsing and the pair map
//  2. [layout] - Helix/loop tree and residue coordinates
//  3. [coloring] - Colour ranges, schemes and data palettes
//  4. [figsize] - Physical figure size from the layout extents
//  5. [render] - SVG, PNG, PDF and JSON output, plus segment tree diagrams
//  6. [pipeline] - Orchestration (parse → layout → colour → render)
//
// # Architecture
//
// The typical data flow:
//
//	dot-bracket + sequence
//	         ↓
//	    [structure] package (pair map, pseudoknot channels)
//	         ↓
//	    [layout] package (segment tree + loop circles)
//	         ↓
//	    [coloring] package (one colour per residue)
//	         ↓
//	    [render] package (scene → SVG/PNG/PDF/JSON)
//
// # Quick Start
//
//	pm, _ := structure.Parse("((((....))))..((...))")
//	res, _ := layout.Compute(pm, layout.DefaultSpacing())
//	colors, _ := coloring.Resolve(seq, pm, coloring.Inputs{Scheme: "res_type"})
//	scene, _ := diagram.Build(res, colors, seq, diagram.Options{})
//	svg := sink.RenderSVG(scene)
//
// Most callers go through [pipeline] instead, which adds validation,
// figure sizing and artifact caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Structure: "((..))"})
//
// # Supporting Packages
//
// [cache] - Artifact caches on the filesystem, Redis or MongoDB.
//
// [config] - TOML configuration with environment overrides.
//
// [io] - Vienna files, per-residue data files and output writing.
//
// [api] - HTTP server exposing the pipeline.
//
// [errors] - Error codes shared by the CLI and the HTTP API.
//
// [observability] - Hooks for metrics on stages, cache lookups and requests.
//
// [structure]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/structure
// [layout]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/layout
// [coloring]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/coloring
// [figsize]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/figsize
// [render]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/io
// [api]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/rnadraw/pkg/observability
package pkg
