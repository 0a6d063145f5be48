package markdown

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ToMarkdown renders d back to its canonical Markdown source text.
// The result is semantically equivalent to, but not necessarily
// byte-identical with, whatever text originally parsed into d
// (spec.md §3.2, §4.6).
//
// Grounded on format/format.go's block/inline stack-walking writer in
// the teacher repo, adapted from byte-offset span slicing plus an
// io.Writer errWriter to direct recursion over owned-string AST
// nodes into a strings.Builder, which cannot fail to write.
func (d *Document) ToMarkdown() string {
	var sb strings.Builder
	writeBlocks(&sb, d.Blocks, 0)
	writeReferences(&sb, d)
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeBlocks(sb *strings.Builder, blocks []Block, indent int) {
	for i, b := range blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeBlock(sb, b, indent)
	}
}

func writeBlock(sb *strings.Builder, b Block, indent int) {
	pad := strings.Repeat(" ", indent)
	switch n := b.(type) {
	case *Paragraph:
		sb.WriteString(pad)
		writeInlines(sb, n.Inlines)
		sb.WriteByte('\n')
	case *Heading:
		sb.WriteString(pad)
		sb.WriteString(strings.Repeat("#", n.Level))
		sb.WriteByte(' ')
		writeInlines(sb, n.Inlines)
		sb.WriteByte('\n')
	case *BlockCode:
		fence := "```"
		sb.WriteString(pad)
		sb.WriteString(fence)
		sb.WriteString(n.Language)
		sb.WriteByte('\n')
		for _, line := range strings.Split(n.Code, "\n") {
			sb.WriteString(pad)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteString(pad)
		sb.WriteString(fence)
		sb.WriteByte('\n')
	case *BlockQuote:
		var inner strings.Builder
		writeBlocks(&inner, n.Children, 0)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			sb.WriteString(pad)
			sb.WriteString("> ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	case *HorizontalRule:
		sb.WriteString(pad)
		sb.WriteString("---\n")
	case *List:
		writeList(sb, n, indent)
	case *InlineHTML:
		sb.WriteString(pad)
		sb.WriteString(PlainText(n.Inlines))
		sb.WriteByte('\n')
	case *Table:
		writeTable(sb, n, indent)
	case *TableOfContents:
		sb.WriteString(pad)
		sb.WriteString("[[ToC]]\n")
	case *LatexBlock:
		sb.WriteString(pad)
		sb.WriteString("$$\n")
		sb.WriteString(n.Raw)
		sb.WriteString("\n$$\n")
	}
}

func writeList(sb *strings.Builder, l *List, indent int) {
	pad := strings.Repeat(" ", indent)
	n := l.OrderedStart
	for _, e := range l.Entries {
		var marker string
		if l.Ordered {
			marker = strconv.Itoa(n) + ". "
			n++
		} else {
			marker = "- "
		}
		sb.WriteString(pad)
		sb.WriteString(marker)
		switch e.Checked {
		case CheckboxUnchecked:
			sb.WriteString("[ ] ")
		case CheckboxChecked:
			sb.WriteString("[x] ")
		}
		writeInlines(sb, e.Inlines)
		sb.WriteByte('\n')
		for _, sub := range e.Sublists {
			writeList(sb, sub, indent+len(marker))
		}
	}
}

func writeTable(sb *strings.Builder, t *Table, indent int) {
	pad := strings.Repeat(" ", indent)
	if len(t.Rows) == 0 {
		return
	}
	writeTableRow(sb, pad, t.Rows[0])
	sb.WriteString(pad)
	sb.WriteByte('|')
	for i := range t.Rows[0].Entries {
		switch t.Alignment(i) {
		case AlignLeft:
			sb.WriteString(":---|")
		case AlignCenter:
			sb.WriteString(":---:|")
		case AlignRight:
			sb.WriteString("---:|")
		default:
			sb.WriteString("---|")
		}
	}
	sb.WriteByte('\n')
	for _, row := range t.Rows[1:] {
		writeTableRow(sb, pad, row)
	}
}

func writeTableRow(sb *strings.Builder, pad string, row *TableRow) {
	sb.WriteString(pad)
	sb.WriteByte('|')
	for _, cell := range row.Entries {
		sb.WriteByte(' ')
		writeInlines(sb, cell.Inlines)
		sb.WriteString(" |")
	}
	sb.WriteByte('\n')
}

func writeInlines(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		writeInline(sb, in)
	}
}

func writeInline(sb *strings.Builder, in Inline) {
	switch n := in.(type) {
	case *Text:
		sb.WriteString(n.Content)
	case *Linebreak:
		sb.WriteString(n.Content())
	case *Emoji:
		sb.WriteByte(':')
		sb.WriteString(n.ID)
		sb.WriteByte(':')
		if n.SkinTone != 0 {
			fmt.Fprintf(sb, ":skin-tone-%d:", n.SkinTone)
		}
	case *InlineCode:
		sb.WriteByte('`')
		sb.WriteString(n.Content)
		sb.WriteByte('`')
	case *InlineLink:
		sb.WriteByte('<')
		sb.WriteString(n.URL)
		sb.WriteByte('>')
	case *Link:
		sb.WriteByte('[')
		writeInlines(sb, n.Title)
		sb.WriteByte(']')
		writeLinkTail(sb, n.URL, n.Tooltip, n.HasTooltip, n.RefName)
	case *Image:
		sb.WriteString("![")
		writeInlines(sb, n.Title)
		sb.WriteByte(']')
		writeLinkTail(sb, n.URL, n.Tooltip, n.HasTooltip, n.RefName)
	case *Italic:
		sb.WriteByte('*')
		writeInlines(sb, n.Children)
		sb.WriteByte('*')
	case *Bold:
		sb.WriteString("**")
		writeInlines(sb, n.Children)
		sb.WriteString("**")
	case *Underline:
		sb.WriteString("__")
		writeInlines(sb, n.Children)
		sb.WriteString("__")
	case *Strikethrough:
		sb.WriteString("~~")
		writeInlines(sb, n.Children)
		sb.WriteString("~~")
	case *Highlight:
		sb.WriteString("==")
		writeInlines(sb, n.Children)
		sb.WriteString("==")
	case *Spoiler:
		sb.WriteString("||")
		writeInlines(sb, n.Children)
		sb.WriteString("||")
	case *InlineLatex:
		sb.WriteByte('$')
		sb.WriteString(n.Raw)
		sb.WriteByte('$')
	case *Comment:
		sb.WriteString("<!--")
		sb.WriteString(n.Content)
		sb.WriteString("-->")
	}
}

func writeLinkTail(sb *strings.Builder, url, tooltip string, hasTooltip bool, refName string) {
	if refName != "" {
		sb.WriteByte('[')
		sb.WriteString(refName)
		sb.WriteByte(']')
		return
	}
	if url == "" && !hasTooltip {
		return
	}
	sb.WriteByte('(')
	sb.WriteString(url)
	if hasTooltip {
		fmt.Fprintf(sb, " %q", tooltip)
	}
	sb.WriteByte(')')
}

func writeReferences(sb *strings.Builder, d *Document) {
	if len(d.References) == 0 {
		return
	}
	sb.WriteByte('\n')
	names := make([]string, 0, len(d.References))
	for name := range d.References {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := d.References[name]
		fmt.Fprintf(sb, "[%s]: %s", name, ref.URL)
		if ref.HasTooltip {
			fmt.Fprintf(sb, " %q", ref.Tooltip)
		}
		sb.WriteByte('\n')
	}
}
