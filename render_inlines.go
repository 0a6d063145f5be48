package markdown

import "github.com/aljedaxi/streamingMarkdown/html"

// renderInlines lowers an inline sequence into parent's children.
func (rs *renderState) renderInlines(parent *html.Node, inlines []Inline) {
	for _, in := range inlines {
		rs.renderInline(parent, in)
	}
}

// renderInline lowers one inline node. Grounded on html_renderer.go's
// per-kind AppendInline switch in the teacher repo.
func (rs *renderState) renderInline(parent *html.Node, in Inline) {
	switch n := in.(type) {
	case *Text:
		parent.AppendChild(html.NewText(n.Content, html.ModeNormal))

	case *Linebreak:
		parent.AppendChild(html.NewElement("br"))

	case *Emoji:
		if rs.opts.Emoji != nil {
			if node := rs.opts.Emoji(n); node != nil {
				parent.AppendChild(node)
				return
			}
		}
		parent.AppendChild(html.NewText(":"+n.ID+":", html.ModeNormal))

	case *InlineCode:
		if rs.opts.Code.Process != nil {
			if node := rs.opts.Code.Process(n); node != nil {
				parent.AppendChild(node)
				return
			}
		}
		code := html.NewElement("code")
		code.AppendChild(html.NewText(n.Content, html.ModeCode))
		parent.AppendChild(code)

	case *InlineLink:
		a := html.NewElement("a")
		a.SetAttr("href", n.URL)
		a.AppendChild(html.NewText(n.URL, html.ModeNormal))
		parent.AppendChild(a)

	case *Link:
		a := html.NewElement("a")
		a.SetAttr("href", n.URL)
		if n.HasTooltip {
			a.SetAttr("title", n.Tooltip)
		}
		rs.renderInlines(a, n.Title)
		parent.AppendChild(a)

	case *Image:
		img := html.NewElement("img")
		img.SetAttr("src", n.URL)
		img.SetAttr("alt", PlainText(n.Title))
		if n.HasTooltip {
			img.SetAttr("title", n.Tooltip)
		}
		if rs.opts.Image.ClassName != "" {
			img.AddToken("class", rs.opts.Image.ClassName)
		}
		parent.AppendChild(img)

	case *Italic:
		em := html.NewElement("em")
		rs.renderInlines(em, n.Children)
		parent.AppendChild(em)

	case *Bold:
		b := html.NewElement("b")
		rs.renderInlines(b, n.Children)
		parent.AppendChild(b)

	case *Underline:
		// When the underline extension is disabled, Underline
		// flattens to Bold rather than being dropped (spec.md §9 open
		// question; the parser always emits Underline regardless).
		if !rs.opts.UnderlineEnable {
			b := html.NewElement("b")
			rs.renderInlines(b, n.Children)
			parent.AppendChild(b)
			return
		}
		u := html.NewElement("u")
		if rs.opts.UnderlineClassName != "" {
			u.AddToken("class", rs.opts.UnderlineClassName)
		}
		rs.renderInlines(u, n.Children)
		parent.AppendChild(u)

	case *Strikethrough:
		s := html.NewElement("s")
		if rs.opts.Strikethrough.ClassName != "" {
			s.AddToken("class", rs.opts.Strikethrough.ClassName)
		}
		rs.renderInlines(s, n.Children)
		parent.AppendChild(s)

	case *Highlight:
		if !rs.opts.HighlightEnable {
			rs.renderInlines(parent, n.Children)
			return
		}
		mark := html.NewElement("mark")
		rs.renderInlines(mark, n.Children)
		parent.AppendChild(mark)

	case *Spoiler:
		parent.AppendChild(rs.renderSpoiler(n))

	case *InlineLatex:
		parent.AppendChild(rs.renderLatex(n.Raw, false))

	case *Comment:
		// Carries no rendered output.
	}
}

// renderSpoiler lowers a Spoiler. A spoiler whose sole child is an
// Image renders as a reveal-gated wrapper div instead of a span, so
// that revealing the spoiler doesn't fight an inline element's
// display semantics (spec.md §9 open question).
func (rs *renderState) renderSpoiler(n *Spoiler) *html.Node {
	if !rs.opts.SpoilerEnable {
		wrap := html.NewElement("span")
		rs.renderInlines(wrap, n.Children)
		return wrap
	}
	if len(n.Children) == 1 {
		if _, ok := n.Children[0].(*Image); ok {
			div := html.NewElement("div")
			div.AddToken("class", "spoiler-reveal")
			if rs.opts.SpoilerRevealClassName != "" {
				div.AddToken("class", rs.opts.SpoilerRevealClassName)
			}
			rs.renderInlines(div, n.Children)
			return div
		}
	}
	span := html.NewElement("span")
	span.AddToken("class", "spoiler")
	if rs.opts.SpoilerClassName != "" {
		span.AddToken("class", rs.opts.SpoilerClassName)
	}
	rs.renderInlines(span, n.Children)
	return span
}
