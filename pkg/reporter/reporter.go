// Package reporter renders resolution diagnostics and export summaries for
// the console. It is purely presentational: duplicate detection and outcome
// tracking produce data elsewhere, and this package turns that data into
// human-readable output.
package reporter

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/hellenic-development/figma-assets/pkg/exporter"
	"github.com/hellenic-development/figma-assets/pkg/figma"
	"github.com/hellenic-development/figma-assets/pkg/resolver"
)

// Duplicates renders every duplicate-name group with a deep link per
// conflicting component, so the user can open each one in Figma directly.
func Duplicates(w io.Writer, groups []resolver.DuplicateGroup, fileID string) {
	if len(groups) == 0 {
		color.New(color.FgGreen).Fprintln(w, "No duplicate component names found.")
		return
	}

	red := color.New(color.FgRed)
	red.Fprintf(w, "Found %d duplicate component name(s):\n", len(groups))

	for _, group := range groups {
		red.Fprintf(w, "\n  %s (%d components)\n", group.Name, len(group.Components))
		for _, c := range group.Components {
			fmt.Fprintf(w, "    %s\n      %s\n", c.Path, figma.DeepLink(fileID, c.ID))
		}
	}
}

// NotFound lists explicitly requested names that matched no component.
func NotFound(w io.Writer, names []string) {
	if len(names) == 0 {
		return
	}

	yellow := color.New(color.FgYellow)
	for _, name := range names {
		yellow.Fprintf(w, "⚠ component %q not found\n", name)
	}
}

// Summary renders the per-component outcomes of an export run and reports
// the processed / failed totals.
func Summary(w io.Writer, outcomes []exporter.Outcome) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	processed := 0
	for _, o := range outcomes {
		if o.Processed {
			green.Fprintf(w, "✓ %s\n", o.Name)
			processed++
		} else {
			red.Fprintf(w, "✗ %s (%s)\n", o.Name, o.Reason)
		}
	}

	fmt.Fprintf(w, "\n%d of %d component(s) exported\n", processed, len(outcomes))
}
