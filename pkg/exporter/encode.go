package exporter

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

var svgMinifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("image/svg+xml", svg.Minify)
	return m
}()

// optimizeSVG runs the SVG through the minifier, dropping metadata and
// collapsing whitespace. Callers fall back to the input on error.
func optimizeSVG(data []byte) ([]byte, error) {
	out, err := svgMinifier.Bytes("image/svg+xml", data)
	if err != nil {
		return nil, fmt.Errorf("optimize svg: %w", err)
	}
	return out, nil
}

// encodeWebP re-encodes a PNG rendition as lossy WebP at the given quality.
func encodeWebP(pngData []byte, quality int) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
