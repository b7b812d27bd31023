// Package extractor walks a Figma document tree and produces a flat,
// document-ordered list of exportable components with their ancestry paths
// and component-set membership.
package extractor

import (
	"strings"

	"github.com/hellenic-development/figma-assets/pkg/figma"
)

// PathSeparator joins ancestor names when a node path is displayed.
const PathSeparator = " / "

// hiddenMarker prefixes node names that designers want excluded from export.
const hiddenMarker = "#"

// Component is a flat record for a single COMPONENT node found in the document.
type Component struct {
	ID          string
	Name        string
	Path        string // ancestor names joined with PathSeparator, including the component itself
	Type        string
	Description string

	// Width and Height are nil when the node carries no bounding box.
	Width  *float64
	Height *float64

	// Set references the owning component set, nil for standalone components.
	Set *SetRef
}

// SetRef identifies the component set a component variant belongs to.
type SetRef struct {
	ID   string
	Name string
	Path string
}

// IsIcon reports whether the component belongs to the icon export namespace.
func (c Component) IsIcon() bool { return strings.HasPrefix(c.Name, "icon/") }

// IsImage reports whether the component belongs to the image export namespace.
func (c Component) IsImage() bool { return strings.HasPrefix(c.Name, "img/") }

// PageSelector restricts extraction to canvases matched by ID and/or name.
// The zero value selects the whole document.
type PageSelector struct {
	IDs   []string
	Names []string
}

// IsZero reports whether the selector places no restriction on pages.
func (s PageSelector) IsZero() bool { return len(s.IDs) == 0 && len(s.Names) == 0 }

func (s PageSelector) matchesID(id string) bool {
	for _, v := range s.IDs {
		if v == id {
			return true
		}
	}
	return false
}

func (s PageSelector) matchesName(name string) bool {
	for _, v := range s.Names {
		if v == name {
			return true
		}
	}
	return false
}

// Traverse walks the node tree depth-first in pre-order, calling visit with
// each node and its accumulated ancestry path (ending with the node's own
// name). A node whose name is empty or starts with "#" is skipped together
// with its entire subtree. The input is assumed to be a tree; cycles are not
// detected.
func Traverse(node *figma.Node, visit func(n *figma.Node, path []string), path []string) {
	if node.Name == "" || strings.HasPrefix(node.Name, hiddenMarker) {
		return
	}

	path = append(path, node.Name)
	visit(node, path)

	for i := range node.Children {
		Traverse(&node.Children[i], visit, path)
	}
}

// Extract walks the document and returns every COMPONENT node as a flat
// Component record, in pre-order document order. When pages is non-zero the
// traversal roots are the matching CANVAS nodes; if nothing matches the whole
// document is used instead (page selection narrows best-effort, it never
// produces an empty scope on its own).
//
// Component-set membership is resolved with a two-pass join: pass 1 indexes
// COMPONENT_SET nodes by ID, pass 2 emits components and attaches the owning
// set's name and path when the component declares a known componentSetId.
//
// logf receives selection diagnostics and may be nil.
func Extract(document *figma.Node, pages PageSelector, logf func(format string, args ...any)) []Component {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	roots := selectRoots(document, pages, logf)

	// Pass 1: index component sets by ID.
	type setEntry struct {
		name string
		path string
	}
	sets := make(map[string]setEntry)
	for _, root := range roots {
		Traverse(root, func(n *figma.Node, path []string) {
			if n.Type == "COMPONENT_SET" {
				sets[n.ID] = setEntry{name: n.Name, path: strings.Join(path, PathSeparator)}
			}
		}, nil)
	}

	// Pass 2: collect components, joining against the set index.
	var components []Component
	for _, root := range roots {
		Traverse(root, func(n *figma.Node, path []string) {
			if n.Type != "COMPONENT" {
				return
			}

			c := Component{
				ID:          n.ID,
				Name:        n.Name,
				Path:        strings.Join(path, PathSeparator),
				Type:        n.Type,
				Description: n.Description,
			}
			if n.AbsoluteBoundingBox != nil {
				w, h := n.AbsoluteBoundingBox.Width, n.AbsoluteBoundingBox.Height
				c.Width, c.Height = &w, &h
			}
			if n.ComponentSetID != "" {
				if set, ok := sets[n.ComponentSetID]; ok {
					c.Set = &SetRef{ID: n.ComponentSetID, Name: set.name, Path: set.path}
				}
			}

			components = append(components, c)
		}, nil)
	}

	return components
}

// selectRoots resolves the page selector against the document: matched CANVAS
// nodes become the traversal roots, and an unmatched selector falls back to
// the whole document.
func selectRoots(document *figma.Node, pages PageSelector, logf func(format string, args ...any)) []*figma.Node {
	if pages.IsZero() {
		return []*figma.Node{document}
	}

	var roots []*figma.Node
	Traverse(document, func(n *figma.Node, path []string) {
		if n.Type != "CANVAS" {
			return
		}
		switch {
		case pages.matchesID(n.ID):
			logf("page %q matched by id %s at %s", n.Name, n.ID, strings.Join(path, PathSeparator))
			roots = append(roots, n)
		case pages.matchesName(n.Name):
			logf("page %q matched by name at %s", n.Name, strings.Join(path, PathSeparator))
			roots = append(roots, n)
		}
	}, nil)

	if len(roots) == 0 {
		logf("no pages matched selector (ids=%v names=%v), searching the whole document", pages.IDs, pages.Names)
		return []*figma.Node{document}
	}

	return roots
}
