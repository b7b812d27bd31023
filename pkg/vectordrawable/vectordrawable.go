// Package vectordrawable converts SVG documents into Android vector drawable
// XML. It covers the subset of SVG that Figma emits for icon renders: path
// elements, basic shapes, nested groups with paint inheritance, and the
// common paint attributes. Unsupported constructs produce an error so the
// caller can fail that one icon instead of writing a broken drawable.
package vectordrawable

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const androidNS = "http://schemas.android.com/apk/res/android"

// path holds the resolved paint state of a single drawable path.
type path struct {
	data        string
	fillColor   string // #AARRGGBB, empty = no fill
	fillAlpha   float64
	fillType    string // "evenOdd" or ""
	strokeColor string
	strokeWidth float64
}

// paint is the inheritable SVG paint state pushed down through groups.
type paint struct {
	fill        string
	stroke      string
	strokeWidth string
	fillRule    string
	opacity     string
}

// FromSVG converts an SVG document to Android vector drawable XML.
func FromSVG(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))

	var (
		paths    []path
		width    float64
		height   float64
		vpWidth  float64
		vpHeight float64
		stack    []paint
	)
	current := func() paint {
		if len(stack) == 0 {
			return paint{}
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			attrs := attrMap(t.Attr)

			switch t.Name.Local {
			case "svg":
				width = parseLength(attrs["width"])
				height = parseLength(attrs["height"])
				if vb, ok := attrs["viewBox"]; ok {
					parts := strings.Fields(strings.ReplaceAll(vb, ",", " "))
					if len(parts) == 4 {
						vpWidth, _ = strconv.ParseFloat(parts[2], 64)
						vpHeight, _ = strconv.ParseFloat(parts[3], 64)
					}
				}
				stack = append(stack, inherit(paint{}, attrs))

			case "g":
				if _, ok := attrs["transform"]; ok {
					return nil, fmt.Errorf("unsupported svg construct: transform on <g>")
				}
				stack = append(stack, inherit(current(), attrs))

			case "path", "rect", "circle", "ellipse", "line", "polyline", "polygon":
				if _, ok := attrs["transform"]; ok {
					return nil, fmt.Errorf("unsupported svg construct: transform on <%s>", t.Name.Local)
				}
				d, err := pathData(t.Name.Local, attrs)
				if err != nil {
					return nil, err
				}
				if d == "" {
					break
				}
				p, err := resolvePaint(d, inherit(current(), attrs))
				if err != nil {
					return nil, err
				}
				paths = append(paths, p)

			case "defs", "style", "linearGradient", "radialGradient", "pattern", "mask", "clipPath":
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("invalid svg: %w", err)
				}
			}

		case xml.EndElement:
			if (t.Name.Local == "g" || t.Name.Local == "svg") && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("svg contains no drawable paths")
	}

	// Fall back between explicit dimensions and the viewBox, defaulting to 24.
	if vpWidth == 0 {
		vpWidth = width
	}
	if vpHeight == 0 {
		vpHeight = height
	}
	if width == 0 {
		width = vpWidth
	}
	if height == 0 {
		height = vpHeight
	}
	if width == 0 {
		width, vpWidth = 24, 24
	}
	if height == 0 {
		height, vpHeight = 24, 24
	}

	return render(width, height, vpWidth, vpHeight, paths), nil
}

func render(width, height, vpWidth, vpHeight float64, paths []path) []byte {
	var sb strings.Builder

	sb.WriteString(`<vector xmlns:android="` + androidNS + `"` + "\n")
	fmt.Fprintf(&sb, "    android:width=\"%sdp\"\n", num(width))
	fmt.Fprintf(&sb, "    android:height=\"%sdp\"\n", num(height))
	fmt.Fprintf(&sb, "    android:viewportWidth=\"%s\"\n", num(vpWidth))
	fmt.Fprintf(&sb, "    android:viewportHeight=\"%s\">\n", num(vpHeight))

	for _, p := range paths {
		sb.WriteString("    <path\n")
		fmt.Fprintf(&sb, "        android:pathData=%q", p.data)
		if p.fillColor != "" {
			fmt.Fprintf(&sb, "\n        android:fillColor=%q", p.fillColor)
		}
		if p.fillAlpha > 0 && p.fillAlpha < 1 {
			fmt.Fprintf(&sb, "\n        android:fillAlpha=%q", num(p.fillAlpha))
		}
		if p.fillType != "" {
			fmt.Fprintf(&sb, "\n        android:fillType=%q", p.fillType)
		}
		if p.strokeColor != "" {
			fmt.Fprintf(&sb, "\n        android:strokeColor=%q", p.strokeColor)
			fmt.Fprintf(&sb, "\n        android:strokeWidth=%q", num(p.strokeWidth))
		}
		sb.WriteString("/>\n")
	}

	sb.WriteString("</vector>\n")
	return []byte(sb.String())
}

// resolvePaint maps the effective SVG paint state onto drawable attributes.
func resolvePaint(data string, pt paint) (path, error) {
	p := path{data: data, fillAlpha: 1}

	fill := pt.fill
	if fill == "" {
		fill = "black" // SVG default paint
	}
	if fill != "none" {
		c, err := parseColor(fill)
		if err != nil {
			return path{}, err
		}
		p.fillColor = c
	}

	if pt.stroke != "" && pt.stroke != "none" {
		c, err := parseColor(pt.stroke)
		if err != nil {
			return path{}, err
		}
		p.strokeColor = c
		p.strokeWidth = 1
		if pt.strokeWidth != "" {
			p.strokeWidth = parseLength(pt.strokeWidth)
		}
	}

	if pt.opacity != "" {
		if a, err := strconv.ParseFloat(pt.opacity, 64); err == nil {
			p.fillAlpha = a
		}
	}
	if pt.fillRule == "evenodd" {
		p.fillType = "evenOdd"
	}

	return p, nil
}

// inherit overlays an element's paint attributes on the inherited state.
func inherit(base paint, attrs map[string]string) paint {
	if v, ok := attrs["fill"]; ok {
		base.fill = v
	}
	if v, ok := attrs["stroke"]; ok {
		base.stroke = v
	}
	if v, ok := attrs["stroke-width"]; ok {
		base.strokeWidth = v
	}
	if v, ok := attrs["fill-rule"]; ok {
		base.fillRule = v
	}
	if v, ok := attrs["opacity"]; ok {
		base.opacity = v
	} else if v, ok := attrs["fill-opacity"]; ok {
		base.opacity = v
	}
	return base
}

// pathData returns the path data for an element, converting basic shapes to
// their path equivalents.
func pathData(element string, attrs map[string]string) (string, error) {
	f := func(key string) float64 { return parseLength(attrs[key]) }

	switch element {
	case "path":
		return attrs["d"], nil

	case "rect":
		x, y, w, h := f("x"), f("y"), f("width"), f("height")
		if w <= 0 || h <= 0 {
			return "", nil
		}
		rx, ry := f("rx"), f("ry")
		if rx == 0 {
			rx = ry
		}
		if ry == 0 {
			ry = rx
		}
		if rx == 0 {
			return fmt.Sprintf("M%s,%s H%s V%s H%s Z", num(x), num(y), num(x+w), num(y+h), num(x)), nil
		}
		return fmt.Sprintf("M%s,%s H%s A%s,%s 0 0 1 %s,%s V%s A%s,%s 0 0 1 %s,%s H%s A%s,%s 0 0 1 %s,%s V%s A%s,%s 0 0 1 %s,%s Z",
			num(x+rx), num(y),
			num(x+w-rx), num(rx), num(ry), num(x+w), num(y+ry),
			num(y+h-ry), num(rx), num(ry), num(x+w-rx), num(y+h),
			num(x+rx), num(rx), num(ry), num(x), num(y+h-ry),
			num(y+ry), num(rx), num(ry), num(x+rx), num(y)), nil

	case "circle":
		cx, cy, r := f("cx"), f("cy"), f("r")
		if r <= 0 {
			return "", nil
		}
		return fmt.Sprintf("M%s,%s A%s,%s 0 1 0 %s,%s A%s,%s 0 1 0 %s,%s Z",
			num(cx-r), num(cy), num(r), num(r), num(cx+r), num(cy),
			num(r), num(r), num(cx-r), num(cy)), nil

	case "ellipse":
		cx, cy, rx, ry := f("cx"), f("cy"), f("rx"), f("ry")
		if rx <= 0 || ry <= 0 {
			return "", nil
		}
		return fmt.Sprintf("M%s,%s A%s,%s 0 1 0 %s,%s A%s,%s 0 1 0 %s,%s Z",
			num(cx-rx), num(cy), num(rx), num(ry), num(cx+rx), num(cy),
			num(rx), num(ry), num(cx-rx), num(cy)), nil

	case "line":
		return fmt.Sprintf("M%s,%s L%s,%s", num(f("x1")), num(f("y1")), num(f("x2")), num(f("y2"))), nil

	case "polyline", "polygon":
		points := strings.Fields(strings.ReplaceAll(attrs["points"], ",", " "))
		if len(points) < 4 || len(points)%2 != 0 {
			return "", nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "M%s,%s", points[0], points[1])
		for i := 2; i < len(points); i += 2 {
			fmt.Fprintf(&sb, " L%s,%s", points[i], points[i+1])
		}
		if element == "polygon" {
			sb.WriteString(" Z")
		}
		return sb.String(), nil
	}

	return "", nil
}

// parseColor normalizes an SVG color to the #AARRGGBB form drawables use.
func parseColor(s string) (string, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	// Figma emits currentColor for themeable icons; render them black.
	named := map[string]string{
		"black": "#FF000000", "white": "#FFFFFFFF", "red": "#FFFF0000",
		"green": "#FF008000", "blue": "#FF0000FF", "currentcolor": "#FF000000",
	}
	if c, ok := named[s]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3: // #rgb
			return strings.ToUpper(fmt.Sprintf("#ff%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2])), nil
		case 6: // #rrggbb
			return strings.ToUpper("#ff" + hex), nil
		case 8: // #rrggbbaa -> #aarrggbb
			return strings.ToUpper("#" + hex[6:] + hex[:6]), nil
		}
	}

	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) == 3 {
			var rgb [3]int
			for i, part := range parts {
				v, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil {
					return "", fmt.Errorf("unsupported svg color %q", s)
				}
				rgb[i] = v
			}
			return fmt.Sprintf("#FF%02X%02X%02X", rgb[0], rgb[1], rgb[2]), nil
		}
	}

	return "", fmt.Errorf("unsupported svg color %q", s)
}

// parseLength parses a numeric attribute, tolerating a px suffix.
func parseLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}
