package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildTOCListLoneH1IsNotSpecialCased(t *testing.T) {
	headings := []*Heading{
		NewHeading(1, []Inline{&Text{Content: "Intro"}}),
		NewHeading(2, []Inline{&Text{Content: "Section"}}),
	}
	list := buildTOCList(headings)
	if len(list.Entries) != 1 {
		t.Fatalf("got %d top-level entries, want 1 (lone H1 is the sole top-level entry)", len(list.Entries))
	}
	top := list.Entries[0]
	if len(top.Sublists) != 1 || len(top.Sublists[0].Entries) != 1 {
		t.Fatalf("top entry = %+v, want a single sublist holding the H2", top)
	}
}

func TestBuildTOCListMultipleH1sStayTopLevel(t *testing.T) {
	headings := []*Heading{
		NewHeading(1, []Inline{&Text{Content: "One"}}),
		NewHeading(1, []Inline{&Text{Content: "Two"}}),
		NewHeading(2, []Inline{&Text{Content: "Two Sub"}}),
	}
	list := buildTOCList(headings)
	if len(list.Entries) != 2 {
		t.Fatalf("got %d top-level entries, want 2 H1s at top level", len(list.Entries))
	}
	if len(list.Entries[0].Sublists) != 0 {
		t.Errorf("first H1 should have no sublist, got %+v", list.Entries[0])
	}
	if len(list.Entries[1].Sublists) != 1 {
		t.Fatalf("second H1 should nest its H2, got %+v", list.Entries[1])
	}
}

func TestBuildTOCListSiblingsShareOneSublist(t *testing.T) {
	headings := []*Heading{
		NewHeading(2, []Inline{&Text{Content: "A"}}),
		NewHeading(3, []Inline{&Text{Content: "A.1"}}),
		NewHeading(3, []Inline{&Text{Content: "A.2"}}),
	}
	list := buildTOCList(headings)
	if len(list.Entries) != 1 {
		t.Fatalf("got %d top-level entries, want 1", len(list.Entries))
	}
	a := list.Entries[0]
	if len(a.Sublists) != 1 || len(a.Sublists[0].Entries) != 2 {
		t.Fatalf("A should have one sublist holding both A.1 and A.2, got %+v", a)
	}
	want := []string{"A.1", "A.2"}
	var got []string
	for _, e := range a.Sublists[0].Entries {
		got = append(got, PlainText(e.Inlines))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nested heading order (-want +got):\n%s", diff)
	}
}

func TestBuildTOCListEmpty(t *testing.T) {
	list := buildTOCList(nil)
	if len(list.Entries) != 0 {
		t.Errorf("got %d entries for no headings, want 0", len(list.Entries))
	}
}
