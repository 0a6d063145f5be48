package html

import "testing"

func TestParseSimpleElement(t *testing.T) {
	nodes := Parse(`<div class="x">hi</div>`)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	div := nodes[0]
	if div.Tag() != "div" {
		t.Fatalf("tag = %q, want div", div.Tag())
	}
	a, ok := div.GetAttr("class")
	if !ok || a.Value != "x" {
		t.Errorf("class attr = %+v, ok=%v", a, ok)
	}
	if len(div.Children()) != 1 || div.Children()[0].Text() != "hi" {
		t.Errorf("children = %+v", div.Children())
	}
}

func TestParseSelfClosing(t *testing.T) {
	nodes := Parse(`a<br/>b`)
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	if nodes[1].Tag() != "br" || !nodes[1].SelfClosing() {
		t.Errorf("nodes[1] = %+v, want self-closing br", nodes[1])
	}
}

func TestParseComment(t *testing.T) {
	nodes := Parse(`<!-- note -->`)
	if len(nodes) != 1 || nodes[0].Kind() != CommentNode {
		t.Fatalf("got %+v, want a single comment node", nodes)
	}
}

func TestParseUnmatchedCloseTagDegradesToText(t *testing.T) {
	nodes := Parse(`hi</span>`)
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2: %+v", len(nodes), nodes)
	}
	if nodes[1].Kind() != TextNode || nodes[1].Text() != "</span>" {
		t.Errorf("nodes[1] = %+v, want literal </span> text", nodes[1])
	}
}

func TestParseUnknownTagPreserved(t *testing.T) {
	nodes := Parse(`<my-widget data-x="1">hi</my-widget>`)
	if len(nodes) != 1 || nodes[0].Tag() != "my-widget" {
		t.Fatalf("got %+v", nodes)
	}
}
