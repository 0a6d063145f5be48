package html

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// Parse reads an HTML fragment (as emitted by this package's own
// serializer, or typical inline-HTML subtrees encountered while
// parsing Markdown) and returns its top-level nodes.
//
// Parse is not a full HTML5 parser: it recognizes comments, start
// tags with attributes, end tags, and self-closing tags, and treats
// unmatched close tags as literal text, per spec.md §4.3. It is
// grounded on internal/normhtml/normhtml.go's use of
// html.NewTokenizerFragment to drive a token loop without invoking a
// full document parse.
func Parse(fragment string) []*Node {
	tok := xhtml.NewTokenizerFragment(strings.NewReader(fragment), "div")

	var root []*Node
	var stack []*Node // stack of open elements; stack[0] is outermost

	appendNode := func(n *Node) {
		if len(stack) == 0 {
			root = append(root, n)
			return
		}
		top := stack[len(stack)-1]
		top.children = append(top.children, n)
	}

	for {
		tt := tok.Next()
		switch tt {
		case xhtml.ErrorToken:
			// EOF or tokenizer error: any unclosed elements are kept
			// open as-is (best-effort, matching "not a full HTML5
			// parser" per spec.md §4.3).
			return root
		case xhtml.TextToken:
			text := string(tok.Text())
			if text != "" {
				appendNode(NewText(text, ModeNormal))
			}
		case xhtml.CommentToken:
			appendNode(NewComment(string(tok.Text())))
		case xhtml.DoctypeToken:
			// Ignored: not part of the inline/block HTML subtrees this
			// micro-parser is meant to handle.
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, hasAttr := tok.TagName()
			el := NewElement(string(name))
			if hasAttr {
				for {
					k, v, more := tok.TagAttr()
					el.SetAttr(string(k), string(v))
					if !more {
						break
					}
				}
			}
			appendNode(el)
			if tt == xhtml.StartTagToken && !el.self {
				stack = append(stack, el)
			}
		case xhtml.EndTagToken:
			name, _ := tok.TagName()
			tag := strings.ToLower(string(name))
			idx := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].tag == tag {
					idx = i
					break
				}
			}
			if idx < 0 {
				// Unmatched close tag: degrade to literal text per
				// spec.md §4.3.
				appendNode(NewText("</"+tag+">", ModeNormal))
				continue
			}
			stack = stack[:idx]
		}
	}
}

// ParseInto parses fragment and returns a single wrapping element
// (the given tag) containing the parsed nodes as children. Useful
// when the caller needs a single root Node rather than a sequence.
func ParseInto(tag, fragment string) *Node {
	wrapper := NewElement(tag)
	wrapper.children = Parse(fragment)
	return wrapper
}
