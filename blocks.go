package markdown

import (
	"strconv"
	"strings"

	"github.com/aljedaxi/streamingMarkdown/html"
)

// parseBlocks consumes lines into a sequence of top-level blocks,
// recording reference definitions into doc as they are found
// (spec.md §4.4.2-8: a reference definition may appear anywhere in
// the block stream and produces no block of its own).
//
// Grounded on blocks.go's priority-ordered block-start recognizer
// cascade in the teacher repo, adapted from byte-offset spans to
// slices of line strings.
func parseBlocks(lines []string, opts ParseOptions, doc *Document) []Block {
	var out []Block
	i := 0
	for i < len(lines) {
		if isBlankLine(lines[i]) {
			i++
			continue
		}
		var b Block
		b, i = parseOneBlock(lines, i, opts, doc)
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// parseOneBlock dispatches on the current line to one recognizer, in
// the priority order of spec.md §4.4.2.
func parseOneBlock(lines []string, i int, opts ParseOptions, doc *Document) (Block, int) {
	line := lines[i]
	switch {
	case fenceChar(line) != 0:
		return parseFencedCode(lines, i)
	case isATXHeading(line):
		return parseATXHeading(line, i+1)
	case isThematicBreak(line):
		return NewHorizontalRule(), i + 1
	case isBlockQuoteStart(line):
		return parseBlockQuote(lines, i, opts, doc)
	case isListItemStart(line) != 0:
		return parseList(lines, i, opts, doc)
	case isTOCDirective(line):
		return NewTableOfContents(), i + 1
	case strings.Contains(line, "|") && i+1 < len(lines) && isTableSeparator(lines[i+1]):
		return parseTable(lines, i)
	case opts.Latex && isLatexFence(line):
		return parseLatexBlock(lines, i)
	case isRefDefLine(line):
		if ok, next := parseRefDef(lines, i, doc); ok {
			return nil, next
		}
		return parseParagraph(lines, i, opts, doc)
	case isInlineHTMLStart(line):
		return parseInlineHTMLBlock(lines, i, opts, doc)
	case opts.CodeBlockFromIndent && indentWidth(line) >= 4:
		return parseIndentedCode(lines, i)
	default:
		return parseParagraph(lines, i, opts, doc)
	}
}

// --- thematic break, ATX heading ---

func isThematicBreak(line string) bool {
	s := strings.TrimSpace(line)
	if len(s) < 3 {
		return false
	}
	c := s[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	count := 0
	for _, r := range s {
		if byte(r) != c {
			if r == ' ' {
				continue
			}
			return false
		}
		count++
	}
	return count >= 3
}

func isATXHeading(line string) bool {
	s := strings.TrimLeft(line, " ")
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	return n == len(s) || s[n] == ' ' || s[n] == '\t'
}

func parseATXHeading(line string, next int) (Block, int) {
	s := strings.TrimLeft(line, " ")
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	content := strings.TrimSpace(s[n:])
	// Strip a closing sequence of '#' characters.
	content = strings.TrimRight(content, "#")
	content = strings.TrimRight(content, " ")
	return NewHeading(n, parseInlines(content, ParseOptions{})), next
}

// --- fenced code ---

func fenceChar(line string) byte {
	s := strings.TrimLeft(line, " ")
	if indentWidth(line)-indentWidth(s) > 3 {
		return 0
	}
	if len(s) < 3 {
		return 0
	}
	c := s[0]
	if c != '`' && c != '~' {
		return 0
	}
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	if n < 3 {
		return 0
	}
	return c
}

func parseFencedCode(lines []string, i int) (Block, int) {
	line := lines[i]
	s := strings.TrimLeft(line, " ")
	c := fenceChar(line)
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	info := strings.TrimSpace(s[n:])
	language := strings.Fields(info)
	lang := ""
	if len(language) > 0 {
		lang = language[0]
	}
	var body []string
	j := i + 1
	for ; j < len(lines); j++ {
		t := strings.TrimLeft(lines[j], " ")
		if len(t) >= n && strings.Count(t, string(c)) == len(t) && t[0] == c {
			j++
			break
		}
		body = append(body, lines[j])
	}
	return &BlockCode{Code: strings.Join(body, "\n"), Language: lang, HasLanguage: lang != ""}, j
}

// --- indented code ---

func parseIndentedCode(lines []string, i int) (Block, int) {
	var body []string
	j := i
	for ; j < len(lines); j++ {
		if isBlankLine(lines[j]) {
			// A run of indented-code blank lines continues the block
			// only if a further indented line follows; otherwise stop.
			k := j
			for k < len(lines) && isBlankLine(lines[k]) {
				k++
			}
			if k >= len(lines) || indentWidth(lines[k]) < 4 {
				break
			}
			for ; j < k; j++ {
				body = append(body, "")
			}
			j--
			continue
		}
		if indentWidth(lines[j]) < 4 {
			break
		}
		body = append(body, stripIndent(lines[j], 4))
	}
	return &BlockCode{Code: strings.Join(body, "\n")}, j
}

// --- block quote ---

func isBlockQuoteStart(line string) bool {
	s := strings.TrimLeft(line, " ")
	return indentWidth(line) < 4 && strings.HasPrefix(s, ">")
}

func dequote(line string) string {
	s := strings.TrimLeft(line, " ")
	s = s[1:] // drop '>'
	if strings.HasPrefix(s, " ") {
		s = s[1:]
	}
	return s
}

func parseBlockQuote(lines []string, i int, opts ParseOptions, doc *Document) (Block, int) {
	var body []string
	j := i
	for j < len(lines) && (isBlockQuoteStart(lines[j]) || (!isBlankLine(lines[j]) && j > i && isLazyContinuation(lines[j]))) {
		if isBlockQuoteStart(lines[j]) {
			body = append(body, dequote(lines[j]))
		} else {
			body = append(body, lines[j])
		}
		j++
	}
	return &BlockQuote{Children: parseBlocks(body, opts, doc)}, j
}

// isLazyContinuation reports whether a non-quoted line would extend a
// paragraph inside the preceding block quote (a permissive
// approximation of CommonMark's lazy-continuation rule).
func isLazyContinuation(line string) bool {
	return !isBlockQuoteStart(line) && !isATXHeading(line) && !isThematicBreak(line) &&
		isListItemStart(line) == 0 && fenceChar(line) == 0
}

// --- lists ---

// isListItemStart returns the byte width of the marker (including its
// leading indentation and the single space that follows it, unless the
// marker ends the line) if line starts a list item, or 0.
func isListItemStart(line string) int {
	s := strings.TrimLeft(line, " ")
	if indentWidth(line)-indentWidth(s) > 3 || s == "" {
		return 0
	}
	if s[0] == '-' || s[0] == '*' || s[0] == '+' {
		if len(s) >= 2 && (s[1] == ' ' || s[1] == '\t') {
			return len(line) - len(s) + 2
		}
		if len(s) == 1 {
			return len(line) - len(s) + 1
		}
		return 0
	}
	n := 0
	for n < len(s) && n < 9 && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 || n >= len(s) {
		return 0
	}
	if s[n] != '.' && s[n] != ')' {
		return 0
	}
	if n+1 == len(s) {
		return len(line) - len(s) + n + 1
	}
	if s[n+1] != ' ' && s[n+1] != '\t' {
		return 0
	}
	return len(line) - len(s) + n + 2
}

func listMarkerIsOrdered(line string) (ordered bool, start int, bullet byte) {
	s := strings.TrimLeft(line, " ")
	if s[0] == '-' || s[0] == '*' || s[0] == '+' {
		return false, 0, s[0]
	}
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	start, _ = strconv.Atoi(s[:n])
	return true, start, 0
}

func parseList(lines []string, i int, opts ParseOptions, doc *Document) (Block, int) {
	ordered, start, bullet := listMarkerIsOrdered(lines[i])
	var entries []*ListEntry
	j := i
	for j < len(lines) {
		w := isListItemStart(lines[j])
		if w == 0 {
			break
		}
		o2, _, b2 := listMarkerIsOrdered(lines[j])
		if o2 != ordered || (!ordered && b2 != bullet) {
			break
		}
		var entry *ListEntry
		entry, j = parseListItem(lines, j, w, opts, doc)
		entries = append(entries, entry)
	}
	return NewList(ordered, start, entries), j
}

func parseListItem(lines []string, i int, markerWidth int, opts ParseOptions, doc *Document) (*ListEntry, int) {
	first := lines[i][markerWidth:]
	body := []string{first}
	j := i + 1
	for j < len(lines) {
		if isBlankLine(lines[j]) {
			k := j
			for k < len(lines) && isBlankLine(lines[k]) {
				k++
			}
			if k >= len(lines) || indentWidth(lines[k]) < markerWidth || isListItemStart(lines[k]) != 0 {
				j = k
				break
			}
			for ; j < k; j++ {
				body = append(body, "")
			}
			continue
		}
		if indentWidth(lines[j]) < markerWidth {
			break
		}
		body = append(body, stripIndent(lines[j], markerWidth))
		j++
	}

	checked := CheckboxNone
	if len(body) > 0 {
		t := body[0]
		switch {
		case strings.HasPrefix(t, "[ ] "):
			checked, body[0] = CheckboxUnchecked, t[4:]
		case strings.HasPrefix(t, "[x] "), strings.HasPrefix(t, "[X] "):
			checked, body[0] = CheckboxChecked, t[4:]
		}
	}

	childBlocks := parseBlocks(body, opts, doc)
	var inlines []Inline
	var sublists []*List
	for _, b := range childBlocks {
		switch v := b.(type) {
		case *List:
			sublists = append(sublists, v)
		case *Paragraph:
			if len(inlines) > 0 {
				inlines = append(inlines, &Text{Content: " "})
			}
			inlines = append(inlines, v.Inlines...)
		}
	}
	return &ListEntry{Inlines: inlines, Sublists: sublists, Checked: checked}, j
}

// --- pipe tables ---

func isTableSeparator(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	cells := splitTableRow(s)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			return false
		}
		trimmed := strings.Trim(c, ":")
		if trimmed == "" {
			continue
		}
		for _, r := range trimmed {
			if r != '-' {
				return false
			}
		}
	}
	return true
}

func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	var cells []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			cur.WriteRune(r)
			escaped = true
		case r == '|':
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	cells = append(cells, cur.String())
	return cells
}

func parseAlignment(cell string) Alignment {
	cell = strings.TrimSpace(cell)
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return AlignCenter
	case left:
		return AlignLeft
	case right:
		return AlignRight
	default:
		return AlignNone
	}
}

func parseTable(lines []string, i int) (Block, int) {
	header := splitTableRow(lines[i])
	aligns := make([]Alignment, len(header))
	for idx, c := range splitTableRow(lines[i+1]) {
		if idx < len(aligns) {
			aligns[idx] = parseAlignment(c)
		}
	}
	rows := []*TableRow{tableRow(header)}
	j := i + 2
	for j < len(lines) && strings.Contains(lines[j], "|") && !isBlankLine(lines[j]) {
		rows = append(rows, tableRow(splitTableRow(lines[j])))
		j++
	}
	return &Table{Rows: rows, Alignments: aligns}, j
}

func tableRow(cells []string) *TableRow {
	entries := make([]*TableEntry, len(cells))
	for i, c := range cells {
		entries[i] = &TableEntry{Inlines: parseInlines(strings.TrimSpace(c), ParseOptions{})}
	}
	return &TableRow{Entries: entries}
}

// --- LaTeX display blocks ---

func isLatexFence(line string) bool {
	return strings.TrimSpace(line) == "$$"
}

func parseLatexBlock(lines []string, i int) (Block, int) {
	var body []string
	j := i + 1
	for j < len(lines) && !isLatexFence(lines[j]) {
		body = append(body, lines[j])
		j++
	}
	if j < len(lines) {
		j++
	}
	return &LatexBlock{Raw: strings.Join(body, "\n")}, j
}

// --- reference definitions ---

func isRefDefLine(line string) bool {
	s := strings.TrimSpace(line)
	return strings.HasPrefix(s, "[") && strings.Contains(s, "]:")
}

func parseRefDef(lines []string, i int, doc *Document) (bool, int) {
	s := strings.TrimSpace(lines[i])
	close := strings.Index(s, "]:")
	if !strings.HasPrefix(s, "[") || close < 0 {
		return false, i
	}
	name := s[1:close]
	rest := strings.TrimSpace(s[close+2:])
	if name == "" || rest == "" {
		return false, i
	}
	url := rest
	tooltip := ""
	hasTooltip := false
	if sp := strings.IndexByte(rest, ' '); sp >= 0 {
		url = rest[:sp]
		t := strings.TrimSpace(rest[sp+1:])
		t = strings.Trim(t, `"'()`)
		if t != "" {
			tooltip, hasTooltip = t, true
		}
	}
	if !doc.HasRef(name) {
		doc.Ref(name, Reference{URL: url, Tooltip: tooltip, HasTooltip: hasTooltip})
	}
	return true, i + 1
}

// --- table of contents directive ---

func isTOCDirective(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), "[[ToC]]")
}

// --- inline HTML blocks ---

// isInlineHTMLStart reports whether line opens an HTML block per
// spec.md §4.4.2 rule 10: an (optionally closing) tag whose name is
// one of the known block-level HTML elements, or an HTML comment.
// Reuses html.IsBlockHTMLTagName's atom-constant table so the block
// recognizer and the renderer's void/block tag knowledge stay in
// sync.
func isInlineHTMLStart(line string) bool {
	s := strings.TrimLeft(line, " ")
	if indentWidth(line) >= 4 || !strings.HasPrefix(s, "<") {
		return false
	}
	if strings.HasPrefix(s, "<!--") {
		return true
	}
	name := blockHTMLTagName(s)
	return name != "" && html.IsBlockHTMLTagName(name)
}

// blockHTMLTagName extracts the lowercase tag name from the start of
// s, which begins with '<', tolerating a leading '/' for close tags.
func blockHTMLTagName(s string) string {
	s = s[1:]
	s = strings.TrimPrefix(s, "/")
	n := 0
	for n < len(s) && (isAlphaNum(s[n]) || s[n] == '-') {
		n++
	}
	return strings.ToLower(s[:n])
}

func parseInlineHTMLBlock(lines []string, i int, opts ParseOptions, doc *Document) (Block, int) {
	var body []string
	j := i
	for j < len(lines) && !isBlankLine(lines[j]) {
		body = append(body, lines[j])
		j++
	}
	raw := strings.Join(body, "\n")
	return &InlineHTML{Inlines: []Inline{&Text{Content: raw}}}, j
}

// --- paragraphs ---

func parseParagraph(lines []string, i int, opts ParseOptions, doc *Document) (Block, int) {
	var body []string
	j := i
	for j < len(lines) && !isBlankLine(lines[j]) {
		if j > i {
			line := lines[j]
			if isATXHeading(line) || isThematicBreak(line) || fenceChar(line) != 0 ||
				isBlockQuoteStart(line) || isListItemStart(line) != 0 || isTOCDirective(line) {
				break
			}
		}
		body = append(body, strings.TrimLeft(lines[j], " "))
		j++
	}
	return &Paragraph{Inlines: parseInlines(strings.Join(body, "\n"), opts)}, j
}
