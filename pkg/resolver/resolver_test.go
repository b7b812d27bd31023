package resolver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hellenic-development/figma-assets/pkg/extractor"
)

func component(id, name, path string) extractor.Component {
	return extractor.Component{ID: id, Name: name, Path: path, Type: "COMPONENT"}
}

func testComponents() []extractor.Component {
	return []extractor.Component{
		component("1:1", "icon/scissor", "Document / Icons / icon/scissor"),
		component("1:2", "icon/pen", "Document / Icons / icon/pen"),
		component("2:1", "img/grids", "Document / Images / img/grids"),
		component("3:1", "button/primary", "Document / Controls / button/primary"),
	}
}

func names(components []extractor.Component) []string {
	out := make([]string, len(components))
	for i, c := range components {
		out[i] = c.Name
	}
	return out
}

func TestResolveExplicitNames(t *testing.T) {
	resolved, err := Resolve(testComponents(), Request{Names: []string{"icon/scissor", "img/grids"}})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{"icon/scissor", "img/grids"}
	if got := names(resolved); !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolveDuplicateNameIsFatal(t *testing.T) {
	all := append(testComponents(),
		component("9:1", "icon/scissor", "Document / Drafts / icon/scissor"),
	)

	// The same name requested twice must still produce a single conflict
	// group listing both components, and nothing may resolve.
	resolved, err := Resolve(all, Request{Names: []string{"icon/scissor", "icon/scissor"}})
	if resolved != nil {
		t.Errorf("Resolve() returned components despite ambiguity: %v", names(resolved))
	}

	var ambErr *AmbiguityError
	if !errors.As(err, &ambErr) {
		t.Fatalf("Resolve() error = %v, want *AmbiguityError", err)
	}
	if len(ambErr.Groups) != 1 {
		t.Fatalf("AmbiguityError has %d groups, want 1", len(ambErr.Groups))
	}
	if len(ambErr.Groups[0].Components) != 2 {
		t.Errorf("conflict group has %d components, want 2", len(ambErr.Groups[0].Components))
	}
}

func TestResolveCollectsAllConflictsBeforeFailing(t *testing.T) {
	all := append(testComponents(),
		component("9:1", "icon/scissor", "Document / Drafts / icon/scissor"),
		component("9:2", "img/grids", "Document / Drafts / img/grids"),
	)

	_, err := Resolve(all, Request{Names: []string{"icon/scissor", "img/grids"}})

	var ambErr *AmbiguityError
	if !errors.As(err, &ambErr) {
		t.Fatalf("Resolve() error = %v, want *AmbiguityError", err)
	}
	if len(ambErr.Groups) != 2 {
		t.Errorf("AmbiguityError has %d groups, want 2 (all conflicts reported together)", len(ambErr.Groups))
	}
}

func TestResolveZeroMatchesOverallIsFatal(t *testing.T) {
	_, err := Resolve(testComponents(), Request{Names: []string{"icon/doesnotexist"}})
	if err == nil {
		t.Fatal("Resolve() with no matching names should fail")
	}
	var ambErr *AmbiguityError
	if errors.As(err, &ambErr) {
		t.Errorf("empty result should not be an AmbiguityError, got %v", err)
	}
}

func TestResolveZeroMatchAmongManyIsNotFatal(t *testing.T) {
	resolved, err := Resolve(testComponents(), Request{Names: []string{"icon/pen", "icon/missing"}})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := names(resolved); !reflect.DeepEqual(got, []string{"icon/pen"}) {
		t.Errorf("Resolve() = %v, want [icon/pen]", got)
	}

	missing := MissingNames([]string{"icon/pen", "icon/missing"}, resolved)
	if !reflect.DeepEqual(missing, []string{"icon/missing"}) {
		t.Errorf("MissingNames() = %v, want [icon/missing]", missing)
	}
}

func TestResolveAll(t *testing.T) {
	resolved, err := Resolve(testComponents(), Request{All: true})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(resolved) != 4 {
		t.Errorf("Resolve(all) returned %d components, want 4 (unfiltered)", len(resolved))
	}
}

func TestResolveSection(t *testing.T) {
	resolved, err := Resolve(testComponents(), Request{Section: "Icons"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []string{"icon/scissor", "icon/pen"}
	if got := names(resolved); !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve(section) = %v, want %v", got, want)
	}
}

func TestResolveSectionIsCaseSensitive(t *testing.T) {
	_, err := Resolve(testComponents(), Request{Section: "icons"})
	if err == nil {
		t.Fatal("Resolve() with a non-matching section should fail")
	}
}

func TestResolveMissingSectionIsFatal(t *testing.T) {
	_, err := Resolve(testComponents(), Request{Section: "No Such Section"})
	if err == nil {
		t.Fatal("Resolve() with a missing section should fail")
	}
}

func TestFindDuplicates(t *testing.T) {
	all := []extractor.Component{
		component("1:1", "icon/share", "Document / A / icon/share"),
		component("1:2", "icon/share", "Document / B / icon/share"),
		component("2:1", "img/hero", "Document / A / img/hero"),
		component("3:1", "button/ok", "Document / A / button/ok"),
		component("3:2", "button/ok", "Document / B / button/ok"),
	}

	groups := FindDuplicates(all)
	if len(groups) != 1 {
		t.Fatalf("FindDuplicates() returned %d groups, want 1 (only icon//img/ names count)", len(groups))
	}
	if groups[0].Name != "icon/share" {
		t.Errorf("duplicate group name = %q, want %q", groups[0].Name, "icon/share")
	}
	if len(groups[0].Components) != 2 {
		t.Errorf("duplicate group has %d components, want 2", len(groups[0].Components))
	}
}

func TestFindDuplicatesSorted(t *testing.T) {
	all := []extractor.Component{
		component("1", "img/b", "x"),
		component("2", "img/b", "y"),
		component("3", "icon/a", "x"),
		component("4", "icon/a", "y"),
	}

	groups := FindDuplicates(all)
	if len(groups) != 2 {
		t.Fatalf("FindDuplicates() returned %d groups, want 2", len(groups))
	}
	if groups[0].Name != "icon/a" || groups[1].Name != "img/b" {
		t.Errorf("groups not sorted by name: %q, %q", groups[0].Name, groups[1].Name)
	}
}

func TestFindDuplicatesIgnoresRequestFiltering(t *testing.T) {
	// Duplicate reporting covers the whole searched scope, independent of
	// whatever names a run requests.
	all := []extractor.Component{
		component("1", "icon/a", "x"),
		component("2", "icon/a", "y"),
	}
	if groups := FindDuplicates(all); len(groups) != 1 {
		t.Errorf("FindDuplicates() = %d groups, want 1", len(groups))
	}
}
