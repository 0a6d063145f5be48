package html

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeDropsDisallowedTag(t *testing.T) {
	div := NewElement("div")
	div.SetAttr("onclick", "x()")
	div.AppendChild("hi")
	script := NewElement("script")
	script.AppendChild("bad()")
	div.AppendChild(script)

	clean := Sanitize(div, nil, nil)

	if clean.Tag() != "div" {
		t.Fatalf("tag = %q, want div", clean.Tag())
	}
	if _, ok := clean.GetAttr("onclick"); ok {
		t.Errorf("onclick attribute was not stripped")
	}
	if len(clean.Children()) != 1 || clean.Children()[0].Text() != "hi" {
		t.Errorf("children = %+v, want only the text node", clean.Children())
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	div := NewElement("div")
	div.SetAttr("onclick", "x()")
	div.SetAttr("id", "keep")
	div.AppendChild(NewElement("script"))

	once := Sanitize(div, nil, nil)
	twice := Sanitize(once, nil, nil)

	if diff := cmp.Diff(once, twice, cmp.AllowUnexported(Node{})); diff != "" {
		t.Errorf("sanitize is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestSanitizeLeavesCleanTreeUnchanged(t *testing.T) {
	p := NewElement("p")
	p.SetAttr("id", "intro")
	p.AppendChild("hello")

	clean := Sanitize(p, nil, nil)
	if diff := cmp.Diff(p, clean, cmp.AllowUnexported(Node{})); diff != "" {
		t.Errorf("sanitize altered an already-clean tree (-before +after):\n%s", diff)
	}
}

func TestSanitizeWildcardAndPerTagPolicy(t *testing.T) {
	img := NewElement("img")
	img.SetAttr("src", "x.png")
	img.SetAttr("title", "a title")
	img.SetAttr("onerror", "bad()")

	clean := Sanitize(img, nil, nil)
	if _, ok := clean.GetAttr("src"); !ok {
		t.Errorf("src should survive via img policy")
	}
	if _, ok := clean.GetAttr("title"); !ok {
		t.Errorf("title should survive via wildcard policy")
	}
	if _, ok := clean.GetAttr("onerror"); ok {
		t.Errorf("onerror should have been stripped")
	}
}
