package markdown

import (
	"encoding/json"
	"fmt"
)

// ToJSON serializes d to the tagged-object JSON schema of spec.md §6:
// every block and inline node is an object carrying a "kind"
// discriminator, except Text, which serializes as a bare JSON string.
// InlineLatex and LatexBlock share the "inline_latex" kind,
// distinguished by a "display" field.
func (d *Document) ToJSON() ([]byte, error) {
	doc := map[string]any{
		"blocks":     blocksToJSON(d.Blocks),
		"references": referencesToJSON(d.References),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("markdown: encode json: %w", err)
	}
	return data, nil
}

// FromJSON parses data produced by ToJSON back into a Document.
func FromJSON(data []byte) (*Document, error) {
	var raw struct {
		Blocks     []json.RawMessage `json:"blocks"`
		References map[string]struct {
			URL        string `json:"url"`
			Tooltip    string `json:"tooltip"`
			HasTooltip bool   `json:"has_tooltip"`
		} `json:"references"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("markdown: decode json: %w", err)
	}
	doc := NewDocument()
	for name, r := range raw.References {
		doc.Ref(name, Reference{URL: r.URL, Tooltip: r.Tooltip, HasTooltip: r.HasTooltip})
	}
	blocks, err := blocksFromJSON(raw.Blocks)
	if err != nil {
		return nil, err
	}
	doc.Blocks = blocks
	return doc, nil
}

// --- encode ---

func referencesToJSON(refs map[string]Reference) map[string]any {
	out := make(map[string]any, len(refs))
	for name, r := range refs {
		out[name] = map[string]any{
			"url":         r.URL,
			"tooltip":     r.Tooltip,
			"has_tooltip": r.HasTooltip,
		}
	}
	return out
}

func blocksToJSON(blocks []Block) []any {
	out := make([]any, len(blocks))
	for i, b := range blocks {
		out[i] = blockToJSON(b)
	}
	return out
}

func inlinesToJSON(inlines []Inline) []any {
	out := make([]any, len(inlines))
	for i, in := range inlines {
		out[i] = inlineToJSON(in)
	}
	return out
}

func blockToJSON(b Block) any {
	switch n := b.(type) {
	case *Paragraph:
		return map[string]any{"kind": "paragraph", "inlines": inlinesToJSON(n.Inlines)}
	case *Heading:
		return map[string]any{"kind": "heading", "level": n.Level, "inlines": inlinesToJSON(n.Inlines), "id": n.ID()}
	case *BlockCode:
		return map[string]any{"kind": "block_code", "code": n.Code, "language": n.Language, "has_language": n.HasLanguage}
	case *BlockQuote:
		return map[string]any{"kind": "quote", "children": blocksToJSON(n.Children)}
	case *HorizontalRule:
		return map[string]any{"kind": "horizontal_rule"}
	case *List:
		return map[string]any{"kind": "list", "ordered": n.Ordered, "start": n.OrderedStart, "entries": listEntriesToJSON(n.Entries)}
	case *InlineHTML:
		return map[string]any{"kind": "inline_html", "inlines": inlinesToJSON(n.Inlines)}
	case *Table:
		aligns := make([]string, len(n.Alignments))
		for i, a := range n.Alignments {
			aligns[i] = a.String()
		}
		return map[string]any{"kind": "table", "alignments": aligns, "rows": tableRowsToJSON(n.Rows)}
	case *TableOfContents:
		return map[string]any{"kind": "table_of_contents"}
	case *LatexBlock:
		return map[string]any{"kind": "inline_latex", "raw": n.Raw, "display": true}
	}
	return nil
}

func listEntriesToJSON(entries []*ListEntry) []any {
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = listEntryToJSON(e)
	}
	return out
}

func listEntryToJSON(e *ListEntry) any {
	sublists := make([]any, len(e.Sublists))
	for i, s := range e.Sublists {
		sublists[i] = map[string]any{"kind": "list", "ordered": s.Ordered, "start": s.OrderedStart, "entries": listEntriesToJSON(s.Entries)}
	}
	return map[string]any{
		"kind":     "list_entry",
		"inlines":  inlinesToJSON(e.Inlines),
		"sublists": sublists,
		"checked":  int(e.Checked),
	}
}

func tableRowsToJSON(rows []*TableRow) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		entries := make([]any, len(r.Entries))
		for j, c := range r.Entries {
			entries[j] = map[string]any{"kind": "table_entry", "inlines": inlinesToJSON(c.Inlines)}
		}
		out[i] = map[string]any{"kind": "table_row", "entries": entries}
	}
	return out
}

func inlineToJSON(in Inline) any {
	switch n := in.(type) {
	case *Text:
		return n.Content
	case *Linebreak:
		return map[string]any{"kind": "linebreak"}
	case *Emoji:
		return map[string]any{"kind": "emoji", "id": n.ID, "skin_tone": n.SkinTone}
	case *InlineCode:
		return map[string]any{"kind": "inline_code", "content": n.Content}
	case *InlineLink:
		return map[string]any{"kind": "inline_link", "url": n.URL}
	case *Link:
		return map[string]any{"kind": "link", "url": n.URL, "title": inlinesToJSON(n.Title), "tooltip": n.Tooltip, "has_tooltip": n.HasTooltip, "ref_name": n.RefName}
	case *Image:
		return map[string]any{"kind": "image", "url": n.URL, "title": inlinesToJSON(n.Title), "tooltip": n.Tooltip, "has_tooltip": n.HasTooltip, "ref_name": n.RefName}
	case *Italic:
		return map[string]any{"kind": "italic", "children": inlinesToJSON(n.Children)}
	case *Bold:
		return map[string]any{"kind": "bold", "children": inlinesToJSON(n.Children)}
	case *Underline:
		return map[string]any{"kind": "underline", "children": inlinesToJSON(n.Children)}
	case *Strikethrough:
		return map[string]any{"kind": "strikethrough", "children": inlinesToJSON(n.Children)}
	case *Highlight:
		return map[string]any{"kind": "highlight", "children": inlinesToJSON(n.Children)}
	case *Spoiler:
		return map[string]any{"kind": "spoiler", "children": inlinesToJSON(n.Children)}
	case *InlineLatex:
		return map[string]any{"kind": "inline_latex", "raw": n.Raw, "display": false}
	case *Comment:
		return map[string]any{"kind": "comment", "content": n.Content}
	}
	return nil
}

// --- decode ---

type jsonEnvelope struct {
	Kind string `json:"kind"`
}

func blocksFromJSON(raws []json.RawMessage) ([]Block, error) {
	out := make([]Block, len(raws))
	for i, r := range raws {
		b, err := blockFromJSON(r)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func blockFromJSON(raw json.RawMessage) (Block, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("markdown: decode json block: %w", err)
	}
	switch env.Kind {
	case "paragraph":
		var v struct {
			Inlines []json.RawMessage `json:"inlines"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		inlines, err := inlinesFromJSON(v.Inlines)
		if err != nil {
			return nil, err
		}
		return &Paragraph{Inlines: inlines}, nil
	case "heading":
		var v struct {
			Level   int               `json:"level"`
			Inlines []json.RawMessage `json:"inlines"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		inlines, err := inlinesFromJSON(v.Inlines)
		if err != nil {
			return nil, err
		}
		return NewHeading(v.Level, inlines), nil
	case "block_code":
		var v struct {
			Code        string `json:"code"`
			Language    string `json:"language"`
			HasLanguage bool   `json:"has_language"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &BlockCode{Code: v.Code, Language: v.Language, HasLanguage: v.HasLanguage}, nil
	case "quote":
		var v struct {
			Children []json.RawMessage `json:"children"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		children, err := blocksFromJSON(v.Children)
		if err != nil {
			return nil, err
		}
		return &BlockQuote{Children: children}, nil
	case "horizontal_rule":
		return NewHorizontalRule(), nil
	case "list":
		list, err := listFromJSON(raw)
		if err != nil {
			return nil, err
		}
		return list, nil
	case "inline_html":
		var v struct {
			Inlines []json.RawMessage `json:"inlines"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		inlines, err := inlinesFromJSON(v.Inlines)
		if err != nil {
			return nil, err
		}
		return &InlineHTML{Inlines: inlines}, nil
	case "table":
		var v struct {
			Alignments []string          `json:"alignments"`
			Rows       []json.RawMessage `json:"rows"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		rows, err := tableRowsFromJSON(v.Rows)
		if err != nil {
			return nil, err
		}
		aligns := make([]Alignment, len(v.Alignments))
		for i, a := range v.Alignments {
			aligns[i] = alignmentFromString(a)
		}
		return &Table{Rows: rows, Alignments: aligns}, nil
	case "table_of_contents":
		return NewTableOfContents(), nil
	case "inline_latex":
		var v struct {
			Raw string `json:"raw"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &LatexBlock{Raw: v.Raw}, nil
	default:
		return nil, fmt.Errorf("markdown: unknown block kind %q", env.Kind)
	}
}

func listFromJSON(raw json.RawMessage) (*List, error) {
	var v struct {
		Ordered bool              `json:"ordered"`
		Start   int               `json:"start"`
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	entries, err := listEntriesFromJSON(v.Entries)
	if err != nil {
		return nil, err
	}
	return NewList(v.Ordered, v.Start, entries), nil
}

func listEntriesFromJSON(raws []json.RawMessage) ([]*ListEntry, error) {
	out := make([]*ListEntry, len(raws))
	for i, r := range raws {
		var v struct {
			Inlines  []json.RawMessage `json:"inlines"`
			Sublists []json.RawMessage `json:"sublists"`
			Checked  int               `json:"checked"`
		}
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, err
		}
		inlines, err := inlinesFromJSON(v.Inlines)
		if err != nil {
			return nil, err
		}
		sublists := make([]*List, len(v.Sublists))
		for j, s := range v.Sublists {
			list, err := listFromJSON(s)
			if err != nil {
				return nil, err
			}
			sublists[j] = list
		}
		out[i] = &ListEntry{Inlines: inlines, Sublists: sublists, Checked: Checkbox(v.Checked)}
	}
	return out, nil
}

func tableRowsFromJSON(raws []json.RawMessage) ([]*TableRow, error) {
	out := make([]*TableRow, len(raws))
	for i, r := range raws {
		var v struct {
			Entries []json.RawMessage `json:"entries"`
		}
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, err
		}
		entries := make([]*TableEntry, len(v.Entries))
		for j, e := range v.Entries {
			var ev struct {
				Inlines []json.RawMessage `json:"inlines"`
			}
			if err := json.Unmarshal(e, &ev); err != nil {
				return nil, err
			}
			inlines, err := inlinesFromJSON(ev.Inlines)
			if err != nil {
				return nil, err
			}
			entries[j] = &TableEntry{Inlines: inlines}
		}
		out[i] = &TableRow{Entries: entries}
	}
	return out, nil
}

func alignmentFromString(s string) Alignment {
	switch s {
	case "left":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignNone
	}
}

func inlinesFromJSON(raws []json.RawMessage) ([]Inline, error) {
	out := make([]Inline, len(raws))
	for i, r := range raws {
		in, err := inlineFromJSON(r)
		if err != nil {
			return nil, err
		}
		out[i] = in
	}
	return out, nil
}

func inlineFromJSON(raw json.RawMessage) (Inline, error) {
	// Plain text serializes as a bare string (spec.md §6).
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &Text{Content: s}, nil
	}
	var env jsonEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("markdown: decode json inline: %w", err)
	}
	switch env.Kind {
	case "linebreak":
		return &Linebreak{}, nil
	case "emoji":
		var v struct {
			ID       string `json:"id"`
			SkinTone int    `json:"skin_tone"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &Emoji{ID: v.ID, SkinTone: v.SkinTone}, nil
	case "inline_code":
		var v struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &InlineCode{Content: v.Content}, nil
	case "inline_link":
		var v struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &InlineLink{URL: v.URL}, nil
	case "link":
		url, title, tooltip, hasTooltip, refName, err := linkFieldsFromJSON(raw)
		if err != nil {
			return nil, err
		}
		return NewLink(url, title, tooltip, hasTooltip, refName), nil
	case "image":
		url, title, tooltip, hasTooltip, refName, err := linkFieldsFromJSON(raw)
		if err != nil {
			return nil, err
		}
		return NewImage(url, title, tooltip, hasTooltip, refName), nil
	case "italic":
		children, err := childrenFromJSON(raw)
		if err != nil {
			return nil, err
		}
		return &Italic{Children: children}, nil
	case "bold":
		children, err := childrenFromJSON(raw)
		if err != nil {
			return nil, err
		}
		return &Bold{Children: children}, nil
	case "underline":
		children, err := childrenFromJSON(raw)
		if err != nil {
			return nil, err
		}
		return &Underline{Children: children}, nil
	case "strikethrough":
		children, err := childrenFromJSON(raw)
		if err != nil {
			return nil, err
		}
		return NewStrikethrough(children), nil
	case "highlight":
		children, err := childrenFromJSON(raw)
		if err != nil {
			return nil, err
		}
		return NewHighlight(children), nil
	case "spoiler":
		children, err := childrenFromJSON(raw)
		if err != nil {
			return nil, err
		}
		return NewSpoiler(children), nil
	case "inline_latex":
		var v struct {
			Raw string `json:"raw"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &InlineLatex{Raw: v.Raw}, nil
	case "comment":
		var v struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &Comment{Content: v.Content}, nil
	default:
		return nil, fmt.Errorf("markdown: unknown inline kind %q", env.Kind)
	}
}

func childrenFromJSON(raw json.RawMessage) ([]Inline, error) {
	var v struct {
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return inlinesFromJSON(v.Children)
}

func linkFieldsFromJSON(raw json.RawMessage) (url string, title []Inline, tooltip string, hasTooltip bool, refName string, err error) {
	var v struct {
		URL        string            `json:"url"`
		Title      []json.RawMessage `json:"title"`
		Tooltip    string            `json:"tooltip"`
		HasTooltip bool              `json:"has_tooltip"`
		RefName    string            `json:"ref_name"`
	}
	if err = json.Unmarshal(raw, &v); err != nil {
		return "", nil, "", false, "", err
	}
	title, err = inlinesFromJSON(v.Title)
	if err != nil {
		return "", nil, "", false, "", err
	}
	return v.URL, title, v.Tooltip, v.HasTooltip, v.RefName, nil
}
