// Package resolver turns a user's resolution request (explicit names, all,
// or section) into the exact set of components to export, and detects
// duplicate-name conflicts. Detection is pure data; rendering of diagnostics
// lives in pkg/reporter.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hellenic-development/figma-assets/pkg/extractor"
)

// Request describes which components a run should export. Exactly one mode is
// active: explicit Names, All, or Section.
type Request struct {
	Names   []string
	All     bool
	Section string
}

// DuplicateGroup holds all components occupying a single name.
type DuplicateGroup struct {
	Name       string
	Components []extractor.Component
}

// AmbiguityError reports every explicitly requested name that matched more
// than one component. All conflicting names are collected before the error is
// returned, so the user sees the full picture at once.
type AmbiguityError struct {
	Groups []DuplicateGroup
}

func (e *AmbiguityError) Error() string {
	names := make([]string, len(e.Groups))
	for i, g := range e.Groups {
		names[i] = fmt.Sprintf("%q (%d matches)", g.Name, len(g.Components))
	}
	return fmt.Sprintf("ambiguous component names: %s", strings.Join(names, ", "))
}

// Resolve applies the request to the extracted component list.
//
// Explicit-name mode matches names exactly. A name with multiple matches is a
// fatal condition reported through *AmbiguityError after every requested name
// has been checked. A name with zero matches is silently omitted here and
// surfaced later via MissingNames; only an empty overall result is fatal.
//
// Section mode keeps components whose path contains the section string
// (case-sensitive); zero matches is fatal for this mode because the user
// asked for a section expecting it to exist.
func Resolve(all []extractor.Component, req Request) ([]extractor.Component, error) {
	var resolved []extractor.Component

	switch {
	case req.All:
		resolved = all

	case req.Section != "":
		for _, c := range all {
			if strings.Contains(c.Path, req.Section) {
				resolved = append(resolved, c)
			}
		}
		if len(resolved) == 0 {
			return nil, fmt.Errorf("section %q matched no components", req.Section)
		}

	default:
		var ambiguous []DuplicateGroup
		seen := make(map[string]bool, len(req.Names))
		for _, name := range req.Names {
			if seen[name] {
				continue
			}
			seen[name] = true

			matches := matchByName(all, name)
			switch {
			case len(matches) > 1:
				ambiguous = append(ambiguous, DuplicateGroup{Name: name, Components: matches})
			case len(matches) == 1:
				resolved = append(resolved, matches[0])
			}
			// Zero matches: omitted, reported post-hoc as "not found".
		}
		if len(ambiguous) > 0 {
			return nil, &AmbiguityError{Groups: ambiguous}
		}
	}

	if len(resolved) == 0 {
		return nil, fmt.Errorf("no components matched the request")
	}

	return resolved, nil
}

// MissingNames returns the requested names that did not resolve to any
// component, preserving request order and dropping repeats.
func MissingNames(requested []string, resolved []extractor.Component) []string {
	found := make(map[string]bool, len(resolved))
	for _, c := range resolved {
		found[c.Name] = true
	}

	var missing []string
	seen := make(map[string]bool, len(requested))
	for _, name := range requested {
		if !found[name] && !seen[name] {
			missing = append(missing, name)
			seen[name] = true
		}
	}
	return missing
}

// FindDuplicates groups icon- and image-namespaced components by name across
// the whole searched scope and returns the names occupied by more than one
// component, sorted by name. Components outside both namespaces are never
// exported, so collisions on them are not reported.
func FindDuplicates(all []extractor.Component) []DuplicateGroup {
	byName := make(map[string][]extractor.Component)
	for _, c := range all {
		if !c.IsIcon() && !c.IsImage() {
			continue
		}
		byName[c.Name] = append(byName[c.Name], c)
	}

	var groups []DuplicateGroup
	for name, comps := range byName {
		if len(comps) > 1 {
			groups = append(groups, DuplicateGroup{Name: name, Components: comps})
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })

	return groups
}

func matchByName(all []extractor.Component, name string) []extractor.Component {
	var matches []extractor.Component
	for _, c := range all {
		if c.Name == name {
			matches = append(matches, c)
		}
	}
	return matches
}
