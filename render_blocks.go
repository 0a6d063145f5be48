package markdown

import (
	"fmt"
	"strconv"

	"github.com/aljedaxi/streamingMarkdown/html"
)

// renderBlock lowers one block into parent. Grounded on
// html_renderer.go's per-kind AppendBlock switch in the teacher repo.
func (rs *renderState) renderBlock(parent *html.Node, b Block) {
	switch n := b.(type) {
	case *Paragraph:
		p := html.NewElement("p")
		rs.renderInlines(p, n.Inlines)
		parent.AppendChild(p)
	case *Heading:
		h := html.NewElement(fmt.Sprintf("h%d", n.Level))
		h.SetAttr("id", n.ID())
		rs.renderInlines(h, n.Inlines)
		parent.AppendChild(h)
	case *BlockCode:
		parent.AppendChild(rs.renderBlockCode(n))
	case *BlockQuote:
		bq := html.NewElement("blockquote")
		for _, c := range n.Children {
			rs.renderBlock(bq, c)
		}
		parent.AppendChild(bq)
	case *HorizontalRule:
		parent.AppendChild(html.NewElement("hr"))
	case *List:
		parent.AppendChild(rs.renderList(n))
	case *InlineHTML:
		rs.renderInlineHTMLBlock(parent, n)
	case *Table:
		parent.AppendChild(rs.renderTable(n))
	case *TableOfContents:
		parent.AppendChild(rs.renderTOC())
	case *LatexBlock:
		parent.AppendChild(rs.renderLatex(n.Raw, true))
	}
}

func (rs *renderState) renderBlockCode(n *BlockCode) *html.Node {
	code := html.NewElement("code")
	if n.HasLanguage {
		code.AddToken("class", "language-"+n.Language)
	}
	if rs.opts.BlockCode.Highlighter != nil {
		// Highlighter populates code's children itself; a panic here
		// propagates to the caller, matching every extension point
		// except Latex.Render (spec.md §7).
		rs.opts.BlockCode.Highlighter(n.Code, n.Language, code)
	} else {
		code.AppendChild(html.NewText(n.Code, html.ModeCode))
	}
	pre := html.NewElement("pre")
	pre.AppendChild(code)
	if rs.opts.BlockCode.ClassName == "" {
		return pre
	}
	wrapper := html.NewElement("div")
	wrapper.AddToken("class", rs.opts.BlockCode.ClassName)
	wrapper.AppendChild(pre)
	return wrapper
}

func (rs *renderState) renderList(n *List) *html.Node {
	tag := "ul"
	if n.Ordered {
		tag = "ol"
	}
	list := html.NewElement(tag)
	if n.Ordered && n.OrderedStart != 1 {
		list.SetAttr("start", strconv.Itoa(n.OrderedStart))
	}
	for _, e := range n.Entries {
		list.AppendChild(rs.renderListEntry(e))
	}
	return list
}

func (rs *renderState) renderListEntry(e *ListEntry) *html.Node {
	li := html.NewElement("li")
	if e.Checked != CheckboxNone && rs.opts.CheckboxEnable {
		cb := html.NewElement("input")
		cb.SetAttr("type", "checkbox")
		if e.Checked == CheckboxChecked {
			cb.SetAttr("checked", "checked")
		}
		if rs.opts.CheckboxDisabled {
			cb.SetAttr("disabled", "disabled")
		}
		li.AppendChild(cb)
	}
	rs.renderInlines(li, e.Inlines)
	for _, sub := range e.Sublists {
		li.AppendChild(rs.renderList(sub))
	}
	return li
}

func (rs *renderState) renderTable(n *Table) *html.Node {
	table := html.NewElement("table")
	if len(n.Rows) > 0 {
		thead := html.NewElement("thead")
		thead.AppendChild(rs.renderTableRow(n, n.Rows[0], "th"))
		table.AppendChild(thead)
	}
	if len(n.Rows) > 1 {
		tbody := html.NewElement("tbody")
		for _, row := range n.Rows[1:] {
			tbody.AppendChild(rs.renderTableRow(n, row, "td"))
		}
		table.AppendChild(tbody)
	}
	if rs.opts.Table.Process != nil {
		rs.opts.Table.Process(table)
	}
	return table
}

func (rs *renderState) renderTableRow(t *Table, row *TableRow, cellTag string) *html.Node {
	tr := html.NewElement("tr")
	for i, cell := range row.Entries {
		td := html.NewElement(cellTag)
		switch t.Alignment(i) {
		case AlignLeft:
			td.SetStyle("text-align", "left")
		case AlignCenter:
			td.SetStyle("text-align", "center")
		case AlignRight:
			td.SetStyle("text-align", "right")
		}
		rs.renderInlines(td, cell.Inlines)
		tr.AppendChild(td)
	}
	return tr
}

func (rs *renderState) renderInlineHTMLBlock(parent *html.Node, n *InlineHTML) {
	if !rs.opts.InlineHTMLEnable {
		return
	}
	raw := PlainText(n.Inlines)
	nodes := html.Parse(raw)
	nodes = html.SanitizeAll(nodes, rs.disallowedTags(), nil)
	parent.AppendChildren(nodes...)
}

func (rs *renderState) disallowedTags() map[string]bool {
	if len(rs.opts.InlineHTMLDisallowed) == 0 {
		return nil
	}
	m := make(map[string]bool, len(rs.opts.InlineHTMLDisallowed))
	for _, t := range rs.opts.InlineHTMLDisallowed {
		m[t] = true
	}
	return m
}

// renderLatex lowers a LaTeX span (inline when display is false,
// `$$...$$` block when true) through the Latex.Render extension
// point. A panic or error from Render is the one extension failure
// the renderer catches and converts to a fallback element carrying
// Latex.ErrorClasses (spec.md §7); every other extension point
// propagates.
func (rs *renderState) renderLatex(raw string, display bool) *html.Node {
	tag := "span"
	if display {
		tag = "div"
	}
	if rs.opts.Latex.Render == nil {
		el := html.NewElement(tag)
		el.AddToken("class", "latex")
		el.AppendChild(html.NewText(raw, html.ModeNormal))
		return el
	}

	var result any
	var err error
	func() {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("%w: %v", ErrExtensionFailed, p)
			}
		}()
		result, err = rs.opts.Latex.Render(raw, display)
	}()
	if err != nil {
		el := html.NewElement(tag)
		for _, c := range rs.opts.Latex.ErrorClasses {
			el.AddToken("class", c)
		}
		el.AppendChild(html.NewText(raw, html.ModeNormal))
		return el
	}

	switch v := result.(type) {
	case *html.Node:
		return v
	case string:
		el := html.NewElement(tag)
		el.AppendChild(html.NewText(v, html.ModeNormal))
		return el
	default:
		el := html.NewElement(tag)
		el.AddToken("class", "latex")
		el.AppendChild(html.NewText(raw, html.ModeNormal))
		return el
	}
}
