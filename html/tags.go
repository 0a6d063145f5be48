package html

import "golang.org/x/net/html/atom"

// voidTags is the set of tags that never have children and serialize
// without a closing tag. Modeled on the atom-table style of the
// teacher's html.go (htmlBlockStarters6), which builds its tag sets
// entirely from golang.org/x/net/html/atom constants.
var voidTags = map[string]bool{
	atom.Area.String():   true,
	atom.Base.String():   true,
	atom.Br.String():     true,
	atom.Col.String():    true,
	atom.Embed.String():  true,
	atom.Hr.String():     true,
	atom.Img.String():    true,
	atom.Input.String():  true,
	atom.Link.String():   true,
	atom.Meta.String():   true,
	atom.Param.String():  true,
	atom.Source.String(): true,
	atom.Track.String():  true,
	atom.Wbr.String():    true,
}

// preserveWhitespaceTags is the set of tags whose text content must
// not be reformatted by a pretty-printing serializer.
var preserveWhitespaceTags = map[string]bool{
	atom.Pre.String():  true,
	atom.Code.String(): true,
}

// IsVoidTag reports whether tag (already lowercased) is a void
// element per spec.md's "Void tag" glossary entry.
func IsVoidTag(tag string) bool {
	return voidTags[tag]
}

// IsPreserveWhitespaceTag reports whether tag's contents must be left
// untouched by pretty-printing.
func IsPreserveWhitespaceTag(tag string) bool {
	return preserveWhitespaceTags[tag]
}

// blockHTMLTagNames is the set of tag names recognized by the
// Markdown block pass as opening an HTML block (spec.md §4.4.2 rule
// 10). Reuses the same atom-constant table construction the teacher
// uses for htmlBlockStarters6.
var blockHTMLTagNames = map[string]bool{
	atom.Address.String():    true,
	atom.Article.String():    true,
	atom.Aside.String():      true,
	atom.Base.String():       true,
	atom.Basefont.String():   true,
	atom.Blockquote.String(): true,
	atom.Body.String():       true,
	atom.Caption.String():    true,
	atom.Center.String():     true,
	atom.Col.String():        true,
	atom.Colgroup.String():   true,
	atom.Dd.String():         true,
	atom.Details.String():    true,
	atom.Dialog.String():     true,
	atom.Dir.String():        true,
	atom.Div.String():        true,
	atom.Dl.String():         true,
	atom.Dt.String():         true,
	atom.Fieldset.String():   true,
	atom.Figcaption.String(): true,
	atom.Figure.String():     true,
	atom.Footer.String():     true,
	atom.Form.String():       true,
	atom.Frame.String():      true,
	atom.Frameset.String():   true,
	atom.H1.String():         true,
	atom.H2.String():         true,
	atom.H3.String():         true,
	atom.H4.String():         true,
	atom.H5.String():         true,
	atom.H6.String():         true,
	atom.Head.String():       true,
	atom.Header.String():     true,
	atom.Hr.String():         true,
	atom.Html.String():       true,
	atom.Iframe.String():     true,
	atom.Legend.String():     true,
	atom.Li.String():         true,
	atom.Link.String():       true,
	atom.Main.String():       true,
	atom.Menu.String():       true,
	atom.Menuitem.String():   true,
	atom.Nav.String():        true,
	atom.Noframes.String():   true,
	atom.Ol.String():         true,
	atom.Optgroup.String():   true,
	atom.Option.String():     true,
	atom.P.String():          true,
	atom.Param.String():      true,
	atom.Section.String():    true,
	atom.Source.String():     true,
	atom.Summary.String():    true,
	atom.Table.String():      true,
	atom.Tbody.String():      true,
	atom.Td.String():         true,
	atom.Tfoot.String():      true,
	atom.Th.String():         true,
	atom.Thead.String():      true,
	atom.Title.String():      true,
	atom.Tr.String():         true,
	atom.Track.String():      true,
	atom.Ul.String():         true,
}

// IsBlockHTMLTagName reports whether name (already lowercased) is one
// of the tags that can open an HTML block per spec.md §4.4.2 rule 10.
func IsBlockHTMLTagName(name string) bool {
	return blockHTMLTagNames[name]
}

// DefaultDisallowedTags is the sanitizer's default tag blocklist per
// spec.md §4.2.
func DefaultDisallowedTags() map[string]bool {
	return map[string]bool{
		"iframe":    true,
		"noembed":   true,
		"noframes":  true,
		"plaintext": true,
		"script":    true,
		"style":     true,
		"svg":       true,
		"textarea":  true,
		"title":     true,
		"xmp":       true,
	}
}

// DefaultAttributePolicy is the sanitizer's default tag→allowed
// attribute-name mapping per spec.md §4.2.
func DefaultAttributePolicy() map[string][]string {
	return map[string][]string{
		"*":   {"align", "aria-hidden", "class", "id", "lang", "style", "title"},
		"img": {"width", "height", "src", "alt"},
		"a":   {"href"},
	}
}
