// Package io provides JSON import and export of build plans.
//
// # Overview
//
// A build plan is the serializable outcome of a reactor invocation: the
// selected projects in build order, each with the direct dependencies an
// executor has to wait for. External tools (CI matrix generators, remote
// executors) consume plans instead of re-implementing the reactor.
//
// # JSON Format
//
//	{
//	  "id": "9f0c3c4e-...",
//	  "sort": "kahn",
//	  "projects": [
//	    {"id": "org.example:api", "version": "1.0.0", "path": "api", "upstream": []},
//	    {"id": "org.example:app", "path": "app", "upstream": ["org.example:api"]}
//	  ]
//	}
//
// Projects appear in build order. For a filtered graph, "upstream" holds the
// contracted dependencies: hidden projects are skipped and the selected
// projects behind them are listed instead.
//
// # Import
//
// [ReadJSON] and [ImportJSON] decode a plan and check that it is internally
// consistent (unique ids, upstream entries refer to earlier projects).
// [Plan.Descriptors] turns it back into reactor projects, so a plan can be
// re-scheduled without the manifest it came from.
//
// # Concurrency
//
// All functions are safe for concurrent use; graphs are only read.
package io
