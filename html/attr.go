package html

// AttrKind distinguishes the three shapes an attribute value can take
// per spec.md §3.1: a plain string, a space-delimited token list (e.g.
// class), or a CSS-style property map.
type AttrKind int

const (
	// AttrString is a plain string-valued attribute, e.g. href, id.
	AttrString AttrKind = iota
	// AttrTokens is a space-delimited, deduplicated token list, e.g. class.
	AttrTokens
	// AttrStyle is an ordered set of CSS property/value pairs.
	AttrStyle
)

// StyleProperty is a single CSS declaration within a style attribute.
type StyleProperty struct {
	Name  string
	Value string
}

// Attribute is one name/value pair on an Element. Exactly one of
// Value, Tokens, or Style is meaningful, selected by Kind.
type Attribute struct {
	Name   string
	Kind   AttrKind
	Value  string
	Tokens []string
	Style  []StyleProperty
}

// String returns the attribute's value rendered the way it would
// appear inside a double-quoted HTML attribute (before escaping).
func (a Attribute) String() string {
	switch a.Kind {
	case AttrTokens:
		s := ""
		for i, t := range a.Tokens {
			if i > 0 {
				s += " "
			}
			s += t
		}
		return s
	case AttrStyle:
		s := ""
		for _, p := range a.Style {
			s += p.Name + ":" + p.Value + ";"
		}
		return s
	default:
		return a.Value
	}
}

func hasToken(tokens []string, tok string) bool {
	for _, t := range tokens {
		if t == tok {
			return true
		}
	}
	return false
}

func styleIndex(props []StyleProperty, name string) int {
	for i, p := range props {
		if p.Name == name {
			return i
		}
	}
	return -1
}
