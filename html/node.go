package html

import "strings"

// NodeKind identifies which of the three shapes (§3.1) a Node takes.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
)

// TextMode controls how a Text node's content is escaped by the
// serializer, per spec.md §4.1.
type TextMode int

const (
	// ModeNormal escapes &, <, > — ordinary document text.
	ModeNormal TextMode = iota
	// ModeRaw passes content through unescaped.
	ModeRaw
	// ModeCode escapes < and > but leaves & untouched, for content
	// that originated inside backtick code spans/blocks.
	ModeCode
)

// Node is an HTML AST node: an Element, a Text run, or a Comment.
// The zero Node is not valid; use the New* factories.
type Node struct {
	kind NodeKind

	// Element fields.
	tag      string
	self     bool // self-closing
	preserve bool // preserve whitespace (pre, code)
	attrs    []Attribute
	children []*Node

	// Text/Comment fields.
	text string
	mode TextMode
}

// NewElement creates an element node for the given (lowercase) tag
// name. Self-closing and whitespace-preservation flags are derived
// from the tag's entry in the built-in tag tables.
func NewElement(tag string) *Node {
	tag = strings.ToLower(tag)
	return &Node{
		kind:     ElementNode,
		tag:      tag,
		self:     IsVoidTag(tag),
		preserve: IsPreserveWhitespaceTag(tag),
	}
}

// NewText creates a Text node with the given content and mode.
func NewText(content string, mode TextMode) *Node {
	return &Node{kind: TextNode, text: content, mode: mode}
}

// NewComment creates a Comment node.
func NewComment(content string) *Node {
	return &Node{kind: CommentNode, text: content}
}

// Kind reports which shape this node takes.
func (n *Node) Kind() NodeKind {
	if n == nil {
		return TextNode
	}
	return n.kind
}

// Tag returns the element's tag name, or "" for Text/Comment nodes.
func (n *Node) Tag() string {
	if n == nil || n.kind != ElementNode {
		return ""
	}
	return n.tag
}

// SelfClosing reports whether the element is a void tag.
func (n *Node) SelfClosing() bool {
	return n != nil && n.kind == ElementNode && n.self
}

// PreserveWhitespace reports whether the element's descendant text
// must not be reformatted.
func (n *Node) PreserveWhitespace() bool {
	return n != nil && n.kind == ElementNode && n.preserve
}

// Text returns the textual content of a Text or Comment node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// SetText replaces the textual content of a Text or Comment node.
func (n *Node) SetText(s string) {
	if n == nil || n.kind == ElementNode {
		return
	}
	n.text = s
}

// Mode returns the escaping mode of a Text node.
func (n *Node) Mode() TextMode {
	if n == nil {
		return ModeNormal
	}
	return n.mode
}

// Children returns the element's children in document order. The
// returned slice must not be mutated by the caller.
func (n *Node) Children() []*Node {
	if n == nil || n.kind != ElementNode {
		return nil
	}
	return n.children
}

// AppendChild appends child to the element's children. A string
// argument is coerced to a Text(ModeNormal) node. AppendChild is a
// no-op on void elements, non-element nodes, or a nil child.
func (n *Node) AppendChild(child any) *Node {
	if n == nil || n.kind != ElementNode || n.self {
		return n
	}
	switch c := child.(type) {
	case string:
		if c == "" {
			return n
		}
		n.children = append(n.children, NewText(c, ModeNormal))
	case *Node:
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

// AppendChildren appends each of children in order.
func (n *Node) AppendChildren(children ...*Node) *Node {
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// SetChildren replaces the element's children wholesale.
func (n *Node) SetChildren(children []*Node) {
	if n == nil || n.kind != ElementNode {
		return
	}
	n.children = children
}

// Attrs returns the element's attributes in insertion order.
func (n *Node) Attrs() []Attribute {
	if n == nil || n.kind != ElementNode {
		return nil
	}
	return n.attrs
}

func (n *Node) attrIndex(name string) int {
	for i, a := range n.attrs {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// GetAttr returns the named attribute and whether it is present.
func (n *Node) GetAttr(name string) (Attribute, bool) {
	if n == nil || n.kind != ElementNode {
		return Attribute{}, false
	}
	if i := n.attrIndex(name); i >= 0 {
		return n.attrs[i], true
	}
	return Attribute{}, false
}

// SetAttr sets a plain string-valued attribute, overwriting any
// existing attribute of the same name regardless of its prior kind.
func (n *Node) SetAttr(name, value string) *Node {
	if n == nil || n.kind != ElementNode {
		return n
	}
	attr := Attribute{Name: name, Kind: AttrString, Value: value}
	if i := n.attrIndex(name); i >= 0 {
		n.attrs[i] = attr
	} else {
		n.attrs = append(n.attrs, attr)
	}
	return n
}

// RemoveAttr deletes the named attribute if present.
func (n *Node) RemoveAttr(name string) *Node {
	if n == nil || n.kind != ElementNode {
		return n
	}
	if i := n.attrIndex(name); i >= 0 {
		n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
	}
	return n
}

// AddToken appends a token to the named token-list attribute
// (typically "class"), creating it if absent and merging without
// duplicates per spec.md §3.1.
func (n *Node) AddToken(name, token string) *Node {
	if n == nil || n.kind != ElementNode || token == "" {
		return n
	}
	i := n.attrIndex(name)
	if i < 0 {
		n.attrs = append(n.attrs, Attribute{Name: name, Kind: AttrTokens, Tokens: []string{token}})
		return n
	}
	a := &n.attrs[i]
	if a.Kind != AttrTokens {
		// Coerce an existing string value into the token list.
		var toks []string
		if a.Value != "" {
			toks = strings.Fields(a.Value)
		}
		a.Kind = AttrTokens
		a.Tokens = toks
		a.Value = ""
	}
	if !hasToken(a.Tokens, token) {
		a.Tokens = append(a.Tokens, token)
	}
	return n
}

// SetStyle sets a single CSS property within the element's style
// attribute, creating the attribute if absent.
func (n *Node) SetStyle(name, value string) *Node {
	if n == nil || n.kind != ElementNode {
		return n
	}
	i := n.attrIndex("style")
	if i < 0 {
		n.attrs = append(n.attrs, Attribute{Name: "style", Kind: AttrStyle, Style: []StyleProperty{{name, value}}})
		return n
	}
	a := &n.attrs[i]
	if a.Kind != AttrStyle {
		a.Kind = AttrStyle
		a.Style = nil
		a.Value = ""
	}
	if j := styleIndex(a.Style, name); j >= 0 {
		a.Style[j].Value = value
	} else {
		a.Style = append(a.Style, StyleProperty{name, value})
	}
	return n
}

// InnerHTML returns the serialized children of the element.
func (n *Node) InnerHTML() string {
	return Serialize(n.Children())
}

// OuterHTML returns the serialized form of the node itself.
func (n *Node) OuterHTML() string {
	return Serialize([]*Node{n})
}

// PurgeEmptyChildren recursively removes text children whose escaped
// content is empty, and element children whose serialization
// collapses to the empty string, except void tags (which are never
// considered empty).
func (n *Node) PurgeEmptyChildren() {
	if n == nil || n.kind != ElementNode || n.self {
		return
	}
	kept := n.children[:0]
	for _, c := range n.children {
		switch c.kind {
		case TextNode:
			if c.text == "" {
				continue
			}
		case ElementNode:
			c.PurgeEmptyChildren()
			if !c.self && len(c.children) == 0 && len(c.attrs) == 0 {
				continue
			}
		}
		kept = append(kept, c)
	}
	n.children = kept
}
