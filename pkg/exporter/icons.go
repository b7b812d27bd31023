package exporter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hellenic-development/figma-assets/pkg/config"
	"github.com/hellenic-development/figma-assets/pkg/extractor"
	"github.com/hellenic-development/figma-assets/pkg/vectordrawable"
)

// ExportIcons runs the icon pipeline over each resolved icon component in
// order. A failing component is logged and marked unprocessed; the loop
// continues with the next one.
func (e *Exporter) ExportIcons(components []extractor.Component) []Outcome {
	outcomes := make([]Outcome, 0, len(components))

	for _, c := range components {
		err := e.exportIcon(c)
		outcome := Outcome{Name: c.Name, Processed: err == nil}
		if err != nil {
			outcome.Reason = err.Error()
			if errors.Is(err, errNoImageURL) {
				e.errorf("icon %s: no image URL", c.Name)
			} else {
				e.errorf("icon %s: %v", c.Name, err)
			}
		} else {
			e.infof("exported icon %s", c.Name)
		}
		outcomes = append(outcomes, outcome)
		e.tick()
	}

	return outcomes
}

func (e *Exporter) exportIcon(c extractor.Component) error {
	base := e.Config.Icons.Prefix + assetBaseName(c.Name, "icon/")

	svgData, err := e.fetchRender(c.ID, "svg", 1)
	if err != nil {
		return err
	}

	optimized, err := optimizeSVG(svgData)
	if err != nil {
		// Optimization is best-effort: fall back to the raw render.
		e.warnf("icon %s: svg optimization failed, using raw svg: %v", c.Name, err)
		optimized = svgData
	}

	switch e.Config.Platform {
	case config.PlatformAndroid:
		return e.writeAndroidIcon(base, optimized)
	case config.PlatformIOS:
		return e.writeIOSIcon(base, optimized)
	default:
		return fmt.Errorf("unsupported platform %q", e.Config.Platform)
	}
}

// writeAndroidIcon converts the SVG to a vector drawable and writes it under
// <icons.path>/drawable/<base>.xml.
func (e *Exporter) writeAndroidIcon(base string, svgData []byte) error {
	drawable, err := vectordrawable.FromSVG(svgData)
	if err != nil {
		return fmt.Errorf("convert to vector drawable: %w", err)
	}

	dir := filepath.Join(e.Config.Icons.Path, "drawable")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create icon directory: %w", err)
	}

	target := filepath.Join(dir, base+".xml")
	if err := os.WriteFile(target, drawable, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

// writeIOSIcon writes <icons.path>/<base>.imageset/ with the optimized SVG
// and a Contents.json manifest holding one universal entry.
func (e *Exporter) writeIOSIcon(base string, svgData []byte) error {
	dir := filepath.Join(e.Config.Icons.Path, base+".imageset")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create imageset directory: %w", err)
	}

	fileName := base + ".svg"
	if err := os.WriteFile(filepath.Join(dir, fileName), svgData, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}

	manifest := contentsManifest{
		Images: []contentsImage{{Idiom: "universal", Filename: fileName}},
		Info:   xcodeInfo,
		Properties: &contentsProperties{
			PreservesVectorRepresentation: true,
		},
	}
	return writeContents(dir, manifest)
}
