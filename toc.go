package markdown

import "github.com/aljedaxi/streamingMarkdown/html"

// renderTOC lowers a TableOfContents marker into a nested <ol> whose
// entries link to every Heading in the document, indented by
// relative heading level.
func (rs *renderState) renderTOC() *html.Node {
	return rs.renderList(buildTOCList(Headings(rs.doc.Blocks)))
}

// buildTOCList turns a flat, document-order heading list into a
// nested List tree. Levels are taken relative to the shallowest
// heading level present; a lone H1 is not special-cased (spec.md §9
// open question) and simply becomes the sole top-level entry, with
// every H2 nested one level beneath it.
func buildTOCList(headings []*Heading) *List {
	root := &List{Ordered: true, OrderedStart: 1}
	if len(headings) == 0 {
		return root
	}
	minLevel := headings[0].Level
	for _, h := range headings {
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}

	type frame struct {
		level int
		list  *List
	}
	stack := []frame{{level: minLevel, list: root}}

	for _, h := range headings {
		level := h.Level
		if level < minLevel {
			level = minLevel
		}
		for len(stack) > 1 && stack[len(stack)-1].level > level {
			stack = stack[:len(stack)-1]
		}
		top := &stack[len(stack)-1]
		if top.level < level {
			var parent *ListEntry
			if len(top.list.Entries) == 0 {
				parent = &ListEntry{}
				top.list.Entries = append(top.list.Entries, parent)
			} else {
				parent = top.list.Entries[len(top.list.Entries)-1]
			}
			sub := &List{Ordered: true, OrderedStart: 1}
			parent.Sublists = append(parent.Sublists, sub)
			stack = append(stack, frame{level: level, list: sub})
			top = &stack[len(stack)-1]
		}
		entry := &ListEntry{
			Inlines: []Inline{NewLink("#"+h.ID(), []Inline{&Text{Content: PlainText(h.Inlines)}}, "", false, "")},
		}
		top.list.Entries = append(top.list.Entries, entry)
	}
	return root
}
