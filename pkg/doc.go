// Package pkg provides the libraries behind progcompare, the program
// comparison exporter of the BackToSchool platform.
//
// # Overview
//
// Progcompare turns two university programs into a side-by-side comparison
// document. The pkg directory is organized by concern:
//
//  1. [program] - The program record and its loosely typed JSON fields
//  2. [format] - Display strings for every cell (fees, durations, requirements)
//  3. [render] - Page layout and the PDF/JSON renderers
//  4. [explain] - AI comparison summaries through an OpenAI-compatible API
//  5. [store] - Program lookup from PostgreSQL or a JSON catalog
//  6. [cache] - File, Redis and null caches plus key derivation
//  7. [pipeline] - Orchestration (resolve → explain → render)
//
// # Architecture
//
// The typical data flow:
//
//	program ids or inline JSON
//	         ↓
//	    [store] (resolve ids, cached)
//	         ↓
//	    [explain] (optional AI summary, cached)
//	         ↓
//	    [render/compare] (layout + fpdf)
//	         ↓
//	    PDF or JSON recording
//
// # Quick Start
//
//	import (
//	    "github.com/backtoschool/progcompare/pkg/pipeline"
//	    "github.com/backtoschool/progcompare/pkg/store"
//	)
//
//	catalog, _ := store.LoadCatalog("examples/catalog.json")
//	runner := pipeline.NewRunner(nil, nil, logger, pipeline.WithStore(catalog))
//	res, err := runner.Execute(ctx, pipeline.Options{ProgramAID: 12, ProgramBID: 40})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(res.Filename, res.Data, 0o644)
//
// # Supporting Packages
//
//   - [config] - TOML config file with environment overrides
//   - [errors] - Coded errors and input validation
//   - [observability] - Hooks for exports, cache, explanations and HTTP
//   - [buildinfo] - Version information set at build time
//
// [program]: github.com/backtoschool/progcompare/pkg/program
// [format]: github.com/backtoschool/progcompare/pkg/format
// [render]: github.com/backtoschool/progcompare/pkg/render
// [render/compare]: github.com/backtoschool/progcompare/pkg/render/compare
// [explain]: github.com/backtoschool/progcompare/pkg/explain
// [store]: github.com/backtoschool/progcompare/pkg/store
// [cache]: github.com/backtoschool/progcompare/pkg/cache
// [pipeline]: github.com/backtoschool/progcompare/pkg/pipeline
// [config]: github.com/backtoschool/progcompare/pkg/config
// [errors]: github.com/backtoschool/progcompare/pkg/errors
// [observability]: github.com/backtoschool/progcompare/pkg/observability
// [buildinfo]: github.com/backtoschool/progcompare/pkg/buildinfo
package pkg
