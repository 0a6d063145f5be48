// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package markdown parses an extended, CommonMark-adjacent Markdown
// dialect into a structured document tree and lowers that tree to a
// sanitized HTML tree (see the html subpackage) suitable for
// embedding into an untrusted context.
package markdown

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Inline is implemented by every inline Markdown AST node variant
// (spec.md §3.2). The set of implementations is closed to the types
// declared in this file; callers type-switch rather than add new
// implementations.
type Inline interface {
	Kind() InlineKind
	inline()
}

// Block is implemented by every block Markdown AST node variant.
type Block interface {
	Kind() BlockKind
	block()
}

// Text is a run of literal inline text.
type Text struct {
	Content string
}

func (*Text) inline()            {}
func (*Text) Kind() InlineKind   { return TextKind }

// Linebreak is a hard line break: a distinguished Text node whose
// canonical Markdown content is always "  \n" (spec.md §3.2).
type Linebreak struct{}

func (*Linebreak) inline()          {}
func (*Linebreak) Kind() InlineKind { return LinebreakKind }

// Content returns the canonical source representation of a hard
// line break.
func (*Linebreak) Content() string { return "  \n" }

// Emoji is a `:name:` shortcode, optionally followed by a skin-tone
// modifier in 1..5.
type Emoji struct {
	ID       string
	SkinTone int
}

func (*Emoji) inline()          {}
func (*Emoji) Kind() InlineKind { return EmojiKind }

// InlineCode is a backtick code span.
type InlineCode struct {
	Content string
}

func (*InlineCode) inline()          {}
func (*InlineCode) Kind() InlineKind { return InlineCodeKind }

// InlineLink is a bare autolink, `<scheme://...>` or a recognized bare URL.
type InlineLink struct {
	URL string
}

func (*InlineLink) inline()          {}
func (*InlineLink) Kind() InlineKind { return InlineLinkKind }

// Link is `[text](url "title")`, `[text][ref]`, or `[ref][]`.
// RefName is stored lowercased; an empty RefName means an inline link.
type Link struct {
	URL        string
	Title      []Inline
	Tooltip    string
	HasTooltip bool
	RefName    string
}

func (*Link) inline()          {}
func (*Link) Kind() InlineKind { return LinkKind }

// NewLink builds a Link, dropping any Linebreak from title per
// spec.md §3.2 ("containers declared no linebreaks ... Link title").
func NewLink(url string, title []Inline, tooltip string, hasTooltip bool, refName string) *Link {
	return &Link{
		URL:        url,
		Title:      dropLinebreaks(title),
		Tooltip:    tooltip,
		HasTooltip: hasTooltip,
		RefName:    strings.ToLower(refName),
	}
}

// Image has the same shape as Link (`![alt](url "title")`).
type Image struct {
	URL        string
	Title      []Inline
	Tooltip    string
	HasTooltip bool
	RefName    string
}

func (*Image) inline()          {}
func (*Image) Kind() InlineKind { return ImageKind }

// NewImage builds an Image, dropping any Linebreak from title.
func NewImage(url string, title []Inline, tooltip string, hasTooltip bool, refName string) *Image {
	return &Image{
		URL:        url,
		Title:      dropLinebreaks(title),
		Tooltip:    tooltip,
		HasTooltip: hasTooltip,
		RefName:    strings.ToLower(refName),
	}
}

// Italic is `*text*` or `_text_`.
type Italic struct{ Children []Inline }

func (*Italic) inline()          {}
func (*Italic) Kind() InlineKind { return ItalicKind }

// Bold is `**text**`.
type Bold struct{ Children []Inline }

func (*Bold) inline()          {}
func (*Bold) Kind() InlineKind { return BoldKind }

// Underline is `__text__`. The parser always produces Underline for
// this delimiter; the renderer decides whether to flatten it to Bold
// when the underline extension is disabled (spec.md §9).
type Underline struct{ Children []Inline }

func (*Underline) inline()          {}
func (*Underline) Kind() InlineKind { return UnderlineKind }

// Strikethrough is `~~text~~`. Linebreaks are dropped on construction.
type Strikethrough struct{ Children []Inline }

func (*Strikethrough) inline()          {}
func (*Strikethrough) Kind() InlineKind { return StrikethroughKind }

// NewStrikethrough drops any Linebreak child per spec.md §3.2.
func NewStrikethrough(children []Inline) *Strikethrough {
	return &Strikethrough{Children: dropLinebreaks(children)}
}

// Highlight is `==text==`. Linebreaks are dropped on construction.
type Highlight struct{ Children []Inline }

func (*Highlight) inline()          {}
func (*Highlight) Kind() InlineKind { return HighlightKind }

// NewHighlight drops any Linebreak child per spec.md §3.2.
func NewHighlight(children []Inline) *Highlight {
	return &Highlight{Children: dropLinebreaks(children)}
}

// Spoiler is `||text||`. Linebreaks are dropped on construction.
type Spoiler struct{ Children []Inline }

func (*Spoiler) inline()          {}
func (*Spoiler) Kind() InlineKind { return SpoilerKind }

// NewSpoiler drops any Linebreak child per spec.md §3.2.
func NewSpoiler(children []Inline) *Spoiler {
	return &Spoiler{Children: dropLinebreaks(children)}
}

// InlineLatex is a `$...$` span. Display is always false for the
// inline variant; the block-level `$$...$$` form is represented by
// LatexBlock so that each Go type has one concrete shape, while both
// still serialize to the same "inline_latex" JSON kind (spec.md §6)
// distinguished by a "display" field.
type InlineLatex struct {
	Raw string
}

func (*InlineLatex) inline()          {}
func (*InlineLatex) Kind() InlineKind { return InlineLatexKind }

// Comment is an inline annotation that carries no rendered output.
type Comment struct {
	Content string
}

func (*Comment) inline()          {}
func (*Comment) Kind() InlineKind { return CommentKind }

func dropLinebreaks(children []Inline) []Inline {
	if children == nil {
		return nil
	}
	out := make([]Inline, 0, len(children))
	for _, c := range children {
		if _, ok := c.(*Linebreak); ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Paragraph is a run of inline content that allows linebreaks.
type Paragraph struct{ Inlines []Inline }

func (*Paragraph) block()          {}
func (*Paragraph) Kind() BlockKind { return ParagraphKind }

// Heading is an ATX heading, level 1 through 6. Linebreaks are
// dropped from Inlines on construction (spec.md §3.2).
type Heading struct {
	Level   int
	Inlines []Inline
}

func (*Heading) block()          {}
func (*Heading) Kind() BlockKind { return HeadingKind }

// NewHeading builds a Heading, dropping any Linebreak child.
func NewHeading(level int, inlines []Inline) *Heading {
	return &Heading{Level: level, Inlines: dropLinebreaks(inlines)}
}

// ID returns the heading's anchor identifier, computed as
// lowercase(replace(encodeURI(plainText), "%20", "-")) per spec.md
// §3.2. Calling ID twice on the same heading yields the same string;
// duplicate IDs across headings in a document are permitted.
func (h *Heading) ID() string {
	return HeadingID(PlainText(h.Inlines))
}

// BlockCode is a fenced or indented code block.
type BlockCode struct {
	Code        string
	Language    string
	HasLanguage bool
}

func (*BlockCode) block()          {}
func (*BlockCode) Kind() BlockKind { return BlockCodeKind }

// BlockQuote is a `>`-prefixed container of other blocks.
type BlockQuote struct{ Children []Block }

func (*BlockQuote) block()          {}
func (*BlockQuote) Kind() BlockKind { return BlockQuoteKind }

// HorizontalRule is a thematic break. It is a frozen singleton: all
// thematic breaks in a document share a single value with no state of
// their own (spec.md §9).
type HorizontalRule struct{}

var horizontalRuleSingleton = &HorizontalRule{}

// NewHorizontalRule returns the shared HorizontalRule value.
func NewHorizontalRule() *HorizontalRule { return horizontalRuleSingleton }

func (*HorizontalRule) block()          {}
func (*HorizontalRule) Kind() BlockKind { return HorizontalRuleKind }

// List is an ordered or unordered list of entries.
type List struct {
	Ordered      bool
	OrderedStart int // defaults to 1 when Ordered
	Entries      []*ListEntry
}

func (*List) block()          {}
func (*List) Kind() BlockKind { return ListKind }

// NewList builds a List, defaulting OrderedStart to 1.
func NewList(ordered bool, start int, entries []*ListEntry) *List {
	if start == 0 {
		start = 1
	}
	return &List{Ordered: ordered, OrderedStart: start, Entries: entries}
}

// ListEntry is one item of a List: inline content, any nested
// sublists, and an optional task checkbox state.
type ListEntry struct {
	Inlines  []Inline
	Sublists []*List
	Checked  Checkbox
}

func (*ListEntry) block()          {}
func (*ListEntry) Kind() BlockKind { return ListEntryKind }

// InlineHTML is a block of raw HTML passthrough content, captured as
// inline nodes (typically a single Text node holding the raw markup)
// so the renderer can feed it through the HTML micro-parser and
// sanitizer per spec.md §4.5.
type InlineHTML struct{ Inlines []Inline }

func (*InlineHTML) block()          {}
func (*InlineHTML) Kind() BlockKind { return InlineHTMLKind }

// TableEntry is a single table cell.
type TableEntry struct{ Inlines []Inline }

// TableRow is one row of a Table, header or body.
type TableRow struct{ Entries []*TableEntry }

// Table is a pipe table. Rows always includes the header row first;
// Alignments[i] applies to column i across every row, defaulting to
// AlignNone (spec.md §3.2). Per the cycle-breaking design note (§9),
// rows and cells carry no back-reference to Table or Alignments —
// alignment is threaded as a parameter during rendering instead.
type Table struct {
	Rows       []*TableRow
	Alignments []Alignment
}

func (*Table) block()          {}
func (*Table) Kind() BlockKind { return TableKind }

// Alignment returns the alignment for column i, defaulting to
// AlignNone for out-of-range columns.
func (t *Table) Alignment(i int) Alignment {
	if i < 0 || i >= len(t.Alignments) {
		return AlignNone
	}
	return t.Alignments[i]
}

// TableOfContents is a `[[ToC]]` directive marker. It is a frozen
// singleton like HorizontalRule.
type TableOfContents struct{}

var tocSingleton = &TableOfContents{}

// NewTableOfContents returns the shared TableOfContents value.
func NewTableOfContents() *TableOfContents { return tocSingleton }

func (*TableOfContents) block()          {}
func (*TableOfContents) Kind() BlockKind { return TableOfContentsKind }

// LatexBlock is a `$$...$$` display-mode LaTeX block: the block-level
// shape of InlineLatex with display_mode=true (spec.md §3.2).
type LatexBlock struct{ Raw string }

func (*LatexBlock) block()          {}
func (*LatexBlock) Kind() BlockKind { return LatexBlockKind }

// PlainText extracts the concatenated textual content of an inline
// sequence, descending into formatting containers and links/images
// but not into their destinations or tooltips. Used for heading IDs,
// the table of contents, and image alt text.
//
// Grounded on html.go's appendAltText stack-based walk in the teacher
// repo, reworked into a direct recursive descent since this project's
// Inline nodes own their children rather than referencing a shared
// source buffer.
func PlainText(inlines []Inline) string {
	var sb strings.Builder
	var walk func([]Inline)
	walk = func(nodes []Inline) {
		for _, n := range nodes {
			switch v := n.(type) {
			case *Text:
				sb.WriteString(v.Content)
			case *Linebreak:
				sb.WriteByte(' ')
			case *Emoji:
				sb.WriteByte(':')
				sb.WriteString(v.ID)
				sb.WriteByte(':')
			case *InlineCode:
				sb.WriteString(v.Content)
			case *InlineLink:
				sb.WriteString(v.URL)
			case *Link:
				walk(v.Title)
			case *Image:
				walk(v.Title)
			case *Italic:
				walk(v.Children)
			case *Bold:
				walk(v.Children)
			case *Underline:
				walk(v.Children)
			case *Strikethrough:
				walk(v.Children)
			case *Highlight:
				walk(v.Children)
			case *Spoiler:
				walk(v.Children)
			case *InlineLatex:
				sb.WriteString(v.Raw)
			case *Comment:
				// Carries no rendered output.
			}
		}
	}
	walk(inlines)
	return sb.String()
}

// uriSafeBytes is the set of ASCII bytes encodeURI leaves unescaped:
// unreserved characters plus the URI reserved characters that
// encodeURI (as opposed to encodeURIComponent) does not escape.
const uriSafeBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789;,/?:@&=+$-_.!~*'()#"

// HeadingID implements the anchor-id formula of spec.md §3.2:
// lowercase(replace(encodeURI(text), "%20", "-")).
func HeadingID(text string) string {
	var sb strings.Builder
	for _, r := range text {
		if r < utf8.RuneSelf && strings.ContainsRune(uriSafeBytes, r) {
			sb.WriteRune(r)
			continue
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		for _, b := range buf[:n] {
			fmt.Fprintf(&sb, "%%%02X", b)
		}
	}
	return strings.ToLower(strings.ReplaceAll(sb.String(), "%20", "-"))
}
