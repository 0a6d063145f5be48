package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseParagraphAndEmphasis(t *testing.T) {
	doc := Parse("Hello *world*, this is **bold** and ***both***.", nil)
	if len(doc.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(doc.Blocks))
	}
	p, ok := doc.Blocks[0].(*Paragraph)
	if !ok {
		t.Fatalf("block 0 is %T, want *Paragraph", doc.Blocks[0])
	}
	var kinds []InlineKind
	for _, in := range p.Inlines {
		kinds = append(kinds, in.Kind())
	}
	want := []InlineKind{TextKind, ItalicKind, TextKind, BoldKind, TextKind, BoldKind, TextKind}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("inline kinds (-want +got):\n%s", diff)
	}
	bold := p.Inlines[5].(*Bold)
	if len(bold.Children) != 1 || bold.Children[0].Kind() != ItalicKind {
		t.Errorf("***both*** should lower to Bold containing Italic, got %+v", bold)
	}
}

func TestParseHeadingAndTOC(t *testing.T) {
	doc := Parse("[[ToC]]\n\n# Title\n\n## Section One\n\n## Section Two\n", nil)
	headings := Headings(doc.Blocks)
	if len(headings) != 3 {
		t.Fatalf("got %d headings, want 3", len(headings))
	}
	if headings[0].ID() != "title" {
		t.Errorf("heading ID = %q, want %q", headings[0].ID(), "title")
	}
	node, err := Render(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := node.InnerHTML()
	if !strings.Contains(out, `href="#title"`) {
		t.Errorf("rendered TOC missing link to heading id, got %s", out)
	}
}

func TestReferenceLinkResolution(t *testing.T) {
	src := "See [my site][ref].\n\n[ref]: https://example.com \"Example\"\n"
	doc := Parse(src, nil)
	p := doc.Blocks[0].(*Paragraph)
	var link *Link
	Walk(doc.Blocks, &Visitor{Inline: func(in Inline) bool {
		if l, ok := in.(*Link); ok {
			link = l
		}
		return true
	}})
	if link == nil {
		t.Fatal("no link found")
	}
	if link.URL != "https://example.com" || !link.HasTooltip || link.Tooltip != "Example" {
		t.Errorf("link = %+v, want resolved reference", link)
	}
	_ = p
}

func TestListItemKeepsInlineFormatting(t *testing.T) {
	doc := Parse("- hello *world*\n- see [site](https://example.com)\n", nil)
	list := doc.Blocks[0].(*List)
	if len(list.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(list.Entries))
	}
	var gotKinds []InlineKind
	for _, in := range list.Entries[0].Inlines {
		gotKinds = append(gotKinds, in.Kind())
	}
	wantKinds := []InlineKind{TextKind, ItalicKind}
	if diff := cmp.Diff(wantKinds, gotKinds); diff != "" {
		t.Errorf("entry 0 inline kinds (-want +got):\n%s", diff)
	}
	var link *Link
	for _, in := range list.Entries[1].Inlines {
		if l, ok := in.(*Link); ok {
			link = l
		}
	}
	if link == nil || link.URL != "https://example.com" {
		t.Errorf("entry 1 should keep its Link, got %+v", list.Entries[1].Inlines)
	}
}

func TestTaskList(t *testing.T) {
	src := "- [ ] todo\n- [x] done\n"
	doc := Parse(src, nil)
	list := doc.Blocks[0].(*List)
	if len(list.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(list.Entries))
	}
	if list.Entries[0].Checked != CheckboxUnchecked {
		t.Errorf("entry 0 checked = %v, want CheckboxUnchecked", list.Entries[0].Checked)
	}
	if list.Entries[1].Checked != CheckboxChecked {
		t.Errorf("entry 1 checked = %v, want CheckboxChecked", list.Entries[1].Checked)
	}
	node, err := Render(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := node.InnerHTML()
	if !strings.Contains(out, `checked="checked"`) || !strings.Contains(out, `disabled="disabled"`) {
		t.Errorf("rendered task list missing checked/disabled attrs, got %s", out)
	}
}

func TestTableWithAlignment(t *testing.T) {
	src := "| A | B | C |\n|:---|:---:|---:|\n| 1 | 2 | 3 |\n"
	doc := Parse(src, nil)
	table := doc.Blocks[0].(*Table)
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	wantAligns := []Alignment{AlignLeft, AlignCenter, AlignRight}
	if diff := cmp.Diff(wantAligns, table.Alignments); diff != "" {
		t.Errorf("alignments (-want +got):\n%s", diff)
	}
	node, err := Render(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := node.InnerHTML()
	if !strings.Contains(out, "text-align:center") && !strings.Contains(out, "text-align: center") {
		t.Errorf("rendered table missing center alignment style, got %s", out)
	}
}

func TestInlineHTMLSanitization(t *testing.T) {
	src := "<div class=\"ok\">hi<script>alert(1)</script></div>\n"
	doc := Parse(src, nil)
	node, err := Render(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := node.InnerHTML()
	if strings.Contains(out, "<script") {
		t.Errorf("sanitizer should have dropped <script>, got %s", out)
	}
	if !strings.Contains(out, `class="ok"`) {
		t.Errorf("sanitizer should have kept allowed class attribute, got %s", out)
	}
}

func TestLatexDollarDigitEdgeCase(t *testing.T) {
	opts := &ParseOptions{Latex: true}
	doc := Parse("$5 and $10", opts)
	p := doc.Blocks[0].(*Paragraph)
	for _, in := range p.Inlines {
		if in.Kind() == InlineLatexKind {
			t.Fatalf("\"$5 and $10\" should not produce InlineLatex, got %+v", p.Inlines)
		}
	}
}

func TestEmptyInputProducesNoBlocks(t *testing.T) {
	doc := Parse("", nil)
	if len(doc.Blocks) != 0 {
		t.Errorf("got %d blocks for empty input, want 0", len(doc.Blocks))
	}
}

func TestUnmatchedFenceRunsToEOF(t *testing.T) {
	doc := Parse("```go\nfmt.Println(1)\n", nil)
	code, ok := doc.Blocks[0].(*BlockCode)
	if !ok {
		t.Fatalf("block 0 is %T, want *BlockCode", doc.Blocks[0])
	}
	if code.Code != "fmt.Println(1)" {
		t.Errorf("code = %q", code.Code)
	}
}

func TestOrderedListStartNumbering(t *testing.T) {
	doc := Parse("5. five\n6. six\n", nil)
	list := doc.Blocks[0].(*List)
	if !list.Ordered || list.OrderedStart != 5 {
		t.Errorf("list = %+v, want Ordered with OrderedStart 5", list)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	src := "# Heading\n\nSome *text* with a [link](https://example.com).\n\n- one\n- two\n"
	doc := Parse(src, nil)
	again := Parse(doc.ToMarkdown(), nil)
	if diff := cmp.Diff(doc.Blocks, again.Blocks); diff != "" {
		t.Errorf("round trip through ToMarkdown changed the tree (-want +got):\n%s", diff)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	src := "# Title\n\nText with **bold** and a [link](https://example.com \"t\").\n"
	doc := Parse(src, nil)
	data, err := doc.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(doc.Blocks, back.Blocks); diff != "" {
		t.Errorf("json round trip changed the tree (-want +got):\n%s", diff)
	}
}

func TestUnderlineFlattensToBoldWhenDisabled(t *testing.T) {
	doc := Parse("__hi__", nil)
	opts := &RenderOptions{Underline: UnderlineOptions{Enable: Bool(false)}}
	node, err := Render(doc, opts)
	if err != nil {
		t.Fatal(err)
	}
	out := node.InnerHTML()
	if !strings.Contains(out, "<b>hi</b>") {
		t.Errorf("disabled underline should flatten to <b>, got %s", out)
	}
}

func TestHeadingIDCharset(t *testing.T) {
	h := NewHeading(1, []Inline{&Text{Content: "Hello, World! 100%"}})
	id := h.ID()
	if strings.Contains(id, " ") {
		t.Errorf("heading id %q must not contain spaces", id)
	}
	if id != strings.ToLower(id) {
		t.Errorf("heading id %q must be lowercase", id)
	}
}
