package html

// Sanitize recursively scrubs root per spec.md §4.2: elements whose
// tag is in disallowedTags are dropped (default policy; this project
// doesn't implement the unwrap alternative since no renderer path
// needs it — see DESIGN.md), and every surviving element keeps only
// the attributes allowed by policy[tag] ∪ policy["*"].
//
// Grounded on njchilds90-htmlsanitizer/sanitizer.go's Policy/walk
// shape, adapted to this package's own Node tree.
//
// A nil disallowedTags or policy falls back to the package defaults.
// Sanitize does not mutate root; it returns a new tree.
func Sanitize(root *Node, disallowedTags map[string]bool, policy map[string][]string) *Node {
	if disallowedTags == nil {
		disallowedTags = DefaultDisallowedTags()
	}
	if policy == nil {
		policy = DefaultAttributePolicy()
	}
	out := sanitizeNode(root, disallowedTags, policy)
	if out == nil {
		return NewElement("div")
	}
	return out
}

// SanitizeAll sanitizes a sequence of sibling nodes, dropping any that
// scrub away entirely.
func SanitizeAll(nodes []*Node, disallowedTags map[string]bool, policy map[string][]string) []*Node {
	if disallowedTags == nil {
		disallowedTags = DefaultDisallowedTags()
	}
	if policy == nil {
		policy = DefaultAttributePolicy()
	}
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if clean := sanitizeNode(n, disallowedTags, policy); clean != nil {
			out = append(out, clean)
		}
	}
	return out
}

func sanitizeNode(n *Node, disallowedTags map[string]bool, policy map[string][]string) *Node {
	if n == nil {
		return nil
	}
	switch n.kind {
	case TextNode:
		return NewText(n.text, n.mode)
	case CommentNode:
		return NewComment(n.text)
	case ElementNode:
		if disallowedTags[n.tag] {
			return nil
		}
		clean := NewElement(n.tag)
		clean.attrs = filterAttrs(n.attrs, n.tag, policy)
		if !clean.self {
			for _, c := range n.children {
				if sc := sanitizeNode(c, disallowedTags, policy); sc != nil {
					clean.children = append(clean.children, sc)
				}
			}
		}
		return clean
	default:
		return nil
	}
}

func filterAttrs(attrs []Attribute, tag string, policy map[string][]string) []Attribute {
	allowed := func(name string) bool {
		for _, n := range policy[tag] {
			if n == name {
				return true
			}
		}
		for _, n := range policy["*"] {
			if n == name {
				return true
			}
		}
		return false
	}
	var out []Attribute
	for _, a := range attrs {
		if allowed(a.Name) {
			out = append(out, a)
		}
	}
	return out
}
