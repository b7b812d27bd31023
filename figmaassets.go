package figmaassets

import (
	"fmt"

	"github.com/hellenic-development/figma-assets/pkg/config"
	"github.com/hellenic-development/figma-assets/pkg/exporter"
	"github.com/hellenic-development/figma-assets/pkg/extractor"
	"github.com/hellenic-development/figma-assets/pkg/figma"
	"github.com/hellenic-development/figma-assets/pkg/resolver"
)

// Options configures one export run.
type Options struct {
	AccessToken string
	Config      config.Config

	// Request selection: exactly one of Names, All or Section is active.
	Names   []string
	All     bool
	Section string

	// FindDuplicates switches the run into pure duplicate reporting: no
	// resolution, no export, only Result.Duplicates is populated.
	FindDuplicates bool

	Logger Logger // nil = no logging

	// OnProgress, when non-nil, receives (done, total) after every
	// component attempt.
	OnProgress func(done, total int)

	// APIBaseURL overrides the Figma API endpoint. Empty means the public API.
	APIBaseURL string
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the run output.
type Result struct {
	FileName   string // Figma file name
	Components []extractor.Component

	// Duplicates is populated in FindDuplicates mode.
	Duplicates []resolver.DuplicateGroup

	// Outcomes holds one entry per resolved component; NotFound lists
	// explicitly requested names that matched nothing.
	Outcomes []exporter.Outcome
	NotFound []string
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

// Run executes the export pipeline: fetch the document, extract components,
// then either report duplicates or resolve the request and fan out to the
// icon and image pipelines. Resolution failures (ambiguous names, empty
// result, missing section) abort with an error; per-component export
// failures are recorded in Result.Outcomes and do not fail the run.
func Run(opts Options) (*Result, error) {
	if opts.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	client := figma.NewClient(opts.AccessToken)
	if opts.APIBaseURL != "" {
		client.BaseURL = opts.APIBaseURL
	}

	opts.logInfo("Fetching file %s...", opts.Config.FileID)
	fileResp, err := client.GetFile(opts.Config.FileID)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	opts.logInfo("File: %s", fileResp.Name)

	opts.logInfo("Extracting components...")
	components := extractor.Extract(&fileResp.Document, opts.Config.Pages, opts.logInfo)
	opts.logInfo("Found %d component(s)", len(components))

	result := &Result{
		FileName:   fileResp.Name,
		Components: components,
	}

	if opts.FindDuplicates {
		result.Duplicates = resolver.FindDuplicates(components)
		return result, nil
	}

	resolved, err := resolver.Resolve(components, resolver.Request{
		Names:   opts.Names,
		All:     opts.All,
		Section: opts.Section,
	})
	if err != nil {
		return nil, err
	}
	result.NotFound = resolver.MissingNames(opts.Names, resolved)

	var icons, images []extractor.Component
	for _, c := range resolved {
		switch {
		case c.IsIcon():
			icons = append(icons, c)
		case c.IsImage():
			images = append(images, c)
		}
		// Components outside both namespaces are never exported.
	}

	total := len(icons) + len(images)
	done := 0
	exp := &exporter.Exporter{
		Client: client,
		Config: opts.Config,
		Logger: opts.Logger,
		OnComponent: func() {
			done++
			if opts.OnProgress != nil {
				opts.OnProgress(done, total)
			}
		},
	}

	if len(icons) > 0 {
		opts.logInfo("Exporting %d icon(s) to %s...", len(icons), opts.Config.Icons.Path)
		result.Outcomes = append(result.Outcomes, exp.ExportIcons(icons)...)
	}
	if len(images) > 0 {
		opts.logInfo("Exporting %d image(s) to %s...", len(images), opts.Config.Images.Path)
		result.Outcomes = append(result.Outcomes, exp.ExportImages(images)...)
	}

	return result, nil
}
