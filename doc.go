// Package figmaassets fetches design components from a Figma document and
// exports them as platform-ready asset files: Android vector drawables and
// DPI-scaled raster images, or iOS asset-catalog imagesets.
//
// The CLI lives in cmd/figma-assets; this root package exposes the same
// pipeline as a Go API so that callers can embed the export in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmaassets:
//
//	import "github.com/hellenic-development/figma-assets" // package figmaassets
//
// # Quick start
//
//	cfg, err := config.Load("figma-assets.yaml", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := figmaassets.Run(figmaassets.Options{
//	    AccessToken: os.Getenv("FIGMA_TOKEN"),
//	    Config:      cfg,
//	    All:         true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Component namespaces
//
// Components named with the icon/ prefix go through the vector pipeline
// (SVG fetch, optimization, per-platform conversion); components named with
// the img/ prefix go through the raster pipeline (one render per DPI or
// device scale). Components outside both namespaces are never exported.
// Nodes whose name starts with # are invisible to the whole run.
//
// # Failure model
//
// Resolution problems (ambiguous names, empty result, missing section) abort
// the run. Export problems are tracked per component: a failed icon or a
// failed raster variant is logged and the component is marked unprocessed,
// but the remaining components still export. Re-running is always safe
// because every write is a full overwrite.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
package figmaassets
