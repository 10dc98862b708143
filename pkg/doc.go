// Package pkg provides the core libraries for Stackchart line and bar charts.
//
// # Overview
//
// Stackchart turns an ordered table of records into chart geometry: a flat
// list of rectangles, circles, lines, paths and text in paint order, which
// sinks then draw as SVG, PNG, PDF or JSON. The pkg directory is organized
// into four main areas:
//
//  1. [dataset] - Records, field accessors and dataset readers
//  2. [render/chart] - The chart engines and their geometry packages
//  3. [pipeline] - Orchestration (load → layout → render) with caching
//  4. Infrastructure - [cache], [config], [errors], [observability]
//
// # Architecture
//
// The typical data flow through Stackchart:
//
//	JSON / CSV / TSV / XLSX file
//	         ↓
//	    [dataset] package (records + accessor)
//	         ↓
//	    [render/chart] package (scale → ticks → marks → render model)
//	         ↓
//	    [render/chart/sink] package (SVG/PNG/PDF/JSON)
//
// # Quick Start
//
// Lay out a line chart and render it:
//
//	import (
//	    "github.com/matzehuels/stackchart/pkg/dataset"
//	    "github.com/matzehuels/stackchart/pkg/render/chart"
//	    "github.com/matzehuels/stackchart/pkg/render/chart/sink"
//	)
//
//	ds, _ := dataset.ReadFile("sales.csv")
//	c := chart.Line(ds, dataset.Keys{XKey: "month", YKey: "sales"}, chart.LineDefaults(900))
//	svg := sink.RenderSVG(c.Model)
//
// # Main Packages
//
// ## Geometry
//
// [render/chart/scale] - The scaling model shared by both engines: value
// range, tick gaps and the anchored (line) or bucketed (bar) X placement.
//
// [render/chart/axis] - Tick anchors and label strings, with an explicit
// memo for hosts that redraw often.
//
// [render/chart/path] - Straight and quadratic-smoothed line paths and the
// closed area-shadow path.
//
// [render/chart/bars] - Flat and 3D bar marks.
//
// [render/chart/tooltip] - Tooltip bubble placement over line points.
//
// ## Output
//
// [render/chart/model] - The render model: primitives, styles, layers and
// gradients.
//
// [render/chart/sink] - SVG and JSON writers, and PDF and PNG painting with
// tdewolff/canvas.
//
// [format] - A small expression language for axis and tooltip formatters,
// such as compact(1) | prefix("$").
//
// [fonts] - Font loading and embedding for chart text.
//
// ## Infrastructure
//
// [pipeline] - Complete chart pipeline (load → layout → render) used by the
// CLI and the HTTP server. Ensures consistent behavior across entry points.
//
// [cache] - Cache backends for datasets and artifacts: file (CLI), Redis and
// MongoDB (shared), and a null cache.
//
// [config] - TOML configuration files that map onto pipeline options and
// chart style overrides.
//
// [observability] - Pipeline, cache and HTTP hooks with a Prometheus
// implementation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/render/chart/...       # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/dataset
// [render/chart]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/chart
// [render/chart/scale]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/chart/scale
// [render/chart/axis]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/chart/axis
// [render/chart/path]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/chart/path
// [render/chart/bars]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/chart/bars
// [render/chart/tooltip]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/chart/tooltip
// [render/chart/model]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/chart/model
// [render/chart/sink]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/render/chart/sink
// [format]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/format
// [fonts]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/observability
package pkg
