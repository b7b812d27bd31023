// Package exporter drives the per-platform export fan-out: the icon pipeline
// (SVG fetch, optimize, convert, write) and the image pipeline (per-DPI /
// per-scale raster fetch, re-encode, write). Components are processed
// strictly sequentially so progress output stays deterministic and failures
// attribute cleanly; one component's failure never aborts the batch.
package exporter

import (
	"errors"
	"regexp"
	"strings"

	"github.com/hellenic-development/figma-assets/pkg/config"
	"github.com/hellenic-development/figma-assets/pkg/figma"
)

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Outcome records the fate of a single resolved component. Processed is true
// only when every required file for the component was written; a component
// with any failed variant is excluded from the processed set even though the
// variants that succeeded stay on disk.
type Outcome struct {
	Name      string
	Processed bool
	Reason    string // empty when Processed
}

// Exporter runs the icon and image pipelines against one configuration.
type Exporter struct {
	Client *figma.Client
	Config config.Config
	Logger Logger

	// OnComponent, when non-nil, is called after each component attempt.
	OnComponent func()
}

// errNoImageURL marks the distinct failure kind where the render API answered
// but returned no URL for the component.
var errNoImageURL = errors.New("no image URL returned")

// fetchRender requests a rendered image URL for one component at the given
// format and scale, then downloads it. One network round-trip per call; the
// pipelines deliberately do not batch so failures stay attributable.
func (e *Exporter) fetchRender(componentID, format string, scale float64) ([]byte, error) {
	urls, err := e.Client.GetImages(e.Config.FileID, []string{componentID}, format, scale)
	if err != nil {
		return nil, err
	}

	renderURL := urls[componentID]
	if renderURL == "" {
		return nil, errNoImageURL
	}

	return e.Client.DownloadImage(renderURL)
}

// separators matches the character runs normalized to a single underscore in
// asset file names: whitespace and the residual name-path separators.
var separators = regexp.MustCompile(`[\s/]+`)

// assetBaseName derives a filesystem-safe base name from a component name:
// the namespace prefix is stripped, whitespace and slash runs become single
// underscores, and the result is lowercased.
func assetBaseName(name, namespace string) string {
	base := strings.TrimPrefix(name, namespace)
	base = separators.ReplaceAllString(strings.TrimSpace(base), "_")
	return strings.ToLower(base)
}

func (e *Exporter) infof(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Infof(format, args...)
	}
}

func (e *Exporter) warnf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Warnf(format, args...)
	}
}

func (e *Exporter) errorf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Errorf(format, args...)
	}
}

func (e *Exporter) tick() {
	if e.OnComponent != nil {
		e.OnComponent()
	}
}
