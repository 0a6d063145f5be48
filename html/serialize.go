package html

import (
	"strings"

	"go4.org/bytereplacer"
)

// Escaping tables, grounded on internal/normhtml/normhtml.go's
// htmlEscaper byte-replacer in the teacher repo, split three ways per
// spec.md §4.1 instead of the teacher's single HTML-escaper table.
var (
	normalEscaper = bytereplacer.New(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	codeEscaper = bytereplacer.New(
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = bytereplacer.New(
		`"`, "&quot;",
		"&", "&amp;",
	)
)

// EscapeText escapes s according to mode.
func EscapeText(s string, mode TextMode) string {
	switch mode {
	case ModeRaw:
		return s
	case ModeCode:
		return string(codeEscaper.Replace([]byte(s)))
	default:
		return string(normalEscaper.Replace([]byte(s)))
	}
}

// EscapeAttrValue escapes s for use inside a double-quoted attribute value.
func EscapeAttrValue(s string) string {
	return string(attrEscaper.Replace([]byte(s)))
}

// Serialize renders a sequence of sibling nodes as compact HTML.
func Serialize(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeNode(&sb, n, -1)
	}
	return sb.String()
}

// SerializePretty renders nodes one per line, each indented by its
// depth, skipping indentation and added newlines inside
// whitespace-preserving elements (pre, code).
func SerializePretty(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeNode(&sb, n, 0)
	}
	return sb.String()
}

func writeIndent(sb *strings.Builder, depth int) {
	if depth < 0 {
		return
	}
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}

func writeNode(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	switch n.kind {
	case TextNode:
		writeIndent(sb, depth)
		sb.WriteString(EscapeText(n.text, n.mode))
		if depth >= 0 {
			sb.WriteByte('\n')
		}
	case CommentNode:
		writeIndent(sb, depth)
		sb.WriteString("<!--")
		sb.WriteString(n.text)
		sb.WriteString("-->")
		if depth >= 0 {
			sb.WriteByte('\n')
		}
	case ElementNode:
		writeIndent(sb, depth)
		sb.WriteByte('<')
		sb.WriteString(n.tag)
		writeAttrs(sb, n.attrs)
		if n.self {
			sb.WriteString(">")
			if depth >= 0 {
				sb.WriteByte('\n')
			}
			return
		}
		sb.WriteByte('>')
		childDepth := depth
		if depth >= 0 {
			if n.preserve {
				childDepth = -1
			} else {
				sb.WriteByte('\n')
				childDepth = depth + 1
			}
		}
		for _, c := range n.children {
			writeNode(sb, c, childDepth)
		}
		if depth >= 0 && !n.preserve {
			writeIndent(sb, depth)
		}
		sb.WriteString("</")
		sb.WriteString(n.tag)
		sb.WriteByte('>')
		if depth >= 0 {
			sb.WriteByte('\n')
		}
	}
}

func writeAttrs(sb *strings.Builder, attrs []Attribute) {
	for _, a := range attrs {
		switch a.Kind {
		case AttrTokens:
			if len(a.Tokens) == 0 {
				continue
			}
		case AttrStyle:
			if len(a.Style) == 0 {
				continue
			}
		}
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(EscapeAttrValue(a.String()))
		sb.WriteByte('"')
	}
}
