package html

import "testing"

func TestAddTokenMergesWithoutDuplicates(t *testing.T) {
	el := NewElement("div")
	el.AddToken("class", "foo")
	el.AddToken("class", "bar")
	el.AddToken("class", "foo")

	a, ok := el.GetAttr("class")
	if !ok {
		t.Fatal("class attribute missing")
	}
	if got, want := a.String(), "foo bar"; got != want {
		t.Errorf("class = %q, want %q", got, want)
	}
}

func TestSetStyleAccumulates(t *testing.T) {
	el := NewElement("td")
	el.SetStyle("text-align", "left")
	el.SetStyle("color", "red")
	el.SetStyle("text-align", "right")

	a, ok := el.GetAttr("style")
	if !ok {
		t.Fatal("style attribute missing")
	}
	if got, want := a.String(), "text-align:right;color:red;"; got != want {
		t.Errorf("style = %q, want %q", got, want)
	}
}

func TestVoidElementRejectsChildren(t *testing.T) {
	br := NewElement("br")
	br.AppendChild("text")
	if len(br.Children()) != 0 {
		t.Errorf("void element accepted a child")
	}
	if !br.SelfClosing() {
		t.Errorf("br should be self-closing")
	}
}

func TestPurgeEmptyChildren(t *testing.T) {
	root := NewElement("div")
	root.AppendChild(NewText("", ModeNormal))
	root.AppendChild(NewElement("em"))
	root.AppendChild(NewText("hi", ModeNormal))
	root.PurgeEmptyChildren()

	if got := len(root.Children()); got != 1 {
		t.Fatalf("children after purge = %d, want 1", got)
	}
	if root.Children()[0].Text() != "hi" {
		t.Errorf("surviving child = %q, want %q", root.Children()[0].Text(), "hi")
	}
}

func TestAppendChildCoercesString(t *testing.T) {
	p := NewElement("p")
	p.AppendChild("hello")
	if len(p.Children()) != 1 || p.Children()[0].Kind() != TextNode {
		t.Fatalf("string child was not coerced to a Text node")
	}
	if p.Children()[0].Mode() != ModeNormal {
		t.Errorf("coerced text mode = %v, want ModeNormal", p.Children()[0].Mode())
	}
}
