package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hellenic-development/figma-assets/pkg/config"
	"github.com/hellenic-development/figma-assets/pkg/extractor"
)

// variant is a single resolution rendition of an image component. Every
// variant is fetched from the render API at its own scale factor; nothing is
// downsampled locally.
type variant struct {
	// dir is the resolution-specific subdirectory (Android), empty on iOS.
	dir string
	// suffix is appended to the base file name (iOS scale/idiom naming).
	suffix string
	// idiom and scale feed the iOS Contents.json manifest.
	idiom string
	scale string
	// factor is the render scale requested from the API.
	factor float64
}

// androidVariants returns the DPI ladder minus the configured skip list, in
// the fixed density order.
func androidVariants(skipDPI []string) []variant {
	all := []variant{
		{dir: "drawable-ldpi", factor: 0.75},
		{dir: "drawable-mdpi", factor: 1},
		{dir: "drawable-hdpi", factor: 1.5},
		{dir: "drawable-xhdpi", factor: 2},
		{dir: "drawable-xxhdpi", factor: 3},
		{dir: "drawable-xxxhdpi", factor: 4},
	}

	skip := make(map[string]bool, len(skipDPI))
	for _, dpi := range skipDPI {
		skip[dpi] = true
	}

	variants := all[:0]
	for _, v := range all {
		if !skip[v.dir[len("drawable-"):]] {
			variants = append(variants, v)
		}
	}
	return variants
}

// iosVariants returns the fixed device-scale ladder. The 1x rendition is
// unsuffixed; iPad renditions carry the ~ipad infix and render at one scale
// step above their nominal catalog scale.
func iosVariants() []variant {
	return []variant{
		{suffix: "", idiom: "universal", scale: "1x", factor: 1},
		{suffix: "@2x", idiom: "universal", scale: "2x", factor: 2},
		{suffix: "@3x", idiom: "universal", scale: "3x", factor: 3},
		{suffix: "~ipad", idiom: "ipad", scale: "1x", factor: 2},
		{suffix: "@2x~ipad", idiom: "ipad", scale: "2x", factor: 3},
	}
}

// ExportImages runs the image pipeline over each resolved image component in
// order. A variant failure is recorded but does not stop the remaining
// variants or components; a component with any failed variant is marked
// unprocessed while its successfully written files stay on disk.
func (e *Exporter) ExportImages(components []extractor.Component) []Outcome {
	outcomes := make([]Outcome, 0, len(components))

	for _, c := range components {
		err := e.exportImage(c)
		outcome := Outcome{Name: c.Name, Processed: err == nil}
		if err != nil {
			outcome.Reason = err.Error()
		} else {
			e.infof("exported image %s", c.Name)
		}
		outcomes = append(outcomes, outcome)
		e.tick()
	}

	return outcomes
}

func (e *Exporter) exportImage(c extractor.Component) error {
	base := e.Config.Images.Prefix + assetBaseName(c.Name, "img/")

	var variants []variant
	var dir string
	switch e.Config.Platform {
	case config.PlatformAndroid:
		variants = androidVariants(e.Config.Images.SkipDPI)
		dir = e.Config.Images.Path
	case config.PlatformIOS:
		variants = iosVariants()
		dir = filepath.Join(e.Config.Images.Path, base+".imageset")
	default:
		return fmt.Errorf("unsupported platform %q", e.Config.Platform)
	}

	ext := e.Config.Images.Format

	failures := 0
	for _, v := range variants {
		if err := e.exportImageVariant(c, dir, base, ext, v); err != nil {
			e.errorf("image %s (%s%s): %v", c.Name, v.dir, v.suffix, err)
			failures++
		}
	}

	// The manifest lists every variant, including ones whose write failed:
	// re-running the tool fills the gaps without touching the manifest.
	if e.Config.Platform == config.PlatformIOS {
		if err := e.writeImageManifest(dir, base, ext, variants); err != nil {
			e.errorf("image %s: %v", c.Name, err)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d variants failed", failures, len(variants))
	}
	return nil
}

// exportImageVariant fetches one rendition at its exact scale, re-encodes it
// when the target format requires it, and writes it to its final location.
func (e *Exporter) exportImageVariant(c extractor.Component, dir, base, ext string, v variant) error {
	data, err := e.fetchRender(c.ID, "png", v.factor)
	if err != nil {
		return err
	}

	if ext == config.FormatWebP {
		data, err = encodeWebP(data, e.Config.Images.Quality)
		if err != nil {
			return err
		}
	}

	targetDir := dir
	if v.dir != "" {
		targetDir = filepath.Join(dir, v.dir)
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	target := filepath.Join(targetDir, base+v.suffix+"."+ext)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

func (e *Exporter) writeImageManifest(dir, base, ext string, variants []variant) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create imageset directory: %w", err)
	}

	images := make([]contentsImage, 0, len(variants))
	for _, v := range variants {
		images = append(images, contentsImage{
			Idiom:    v.idiom,
			Filename: base + v.suffix + "." + ext,
			Scale:    v.scale,
		})
	}

	return writeContents(dir, contentsManifest{Images: images, Info: xcodeInfo})
}
