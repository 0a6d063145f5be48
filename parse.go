package markdown

import "strings"

// Parse parses source as the extended Markdown dialect (spec.md §4)
// into a Document. opts may be nil, in which case every extension is
// disabled.
//
// Grounded on parse.go's Parse/NewParser line-reading driver in the
// teacher repo: split into logical lines up front, then repeatedly
// dispatch to block recognizers, adapted from the teacher's streaming
// byte-offset reader to operating on an in-memory line slice since
// this project's Document owns no persistent source buffer once
// parsing completes (spec.md §3.2).
func Parse(source string, opts *ParseOptions) *Document {
	o := mergeParseOptions(opts)
	lines := splitLines(source)
	doc := NewDocument()
	doc.Blocks = parseBlocks(lines, o, doc)
	resolveReferences(doc.Blocks, doc)
	return doc
}

// splitLines splits source on line endings without retaining the
// terminators, treating \r\n, \r, and \n uniformly.
func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// resolveReferences walks every Link and Image in the document and,
// for those with a RefName but no URL, fills URL/Tooltip from the
// document's reference table. Links whose reference cannot be
// resolved are left with an empty URL (spec.md §4.4.2-8).
func resolveReferences(blocks []Block, doc *Document) {
	Walk(blocks, &Visitor{
		Inline: func(in Inline) bool {
			switch n := in.(type) {
			case *Link:
				resolveOne(&n.URL, &n.Tooltip, &n.HasTooltip, n.RefName, doc)
			case *Image:
				resolveOne(&n.URL, &n.Tooltip, &n.HasTooltip, n.RefName, doc)
			}
			return true
		},
	})
}

func resolveOne(url, tooltip *string, hasTooltip *bool, refName string, doc *Document) {
	if refName == "" || *url != "" {
		return
	}
	if ref, ok := doc.Lookup(refName); ok {
		*url = ref.URL
		*tooltip = ref.Tooltip
		*hasTooltip = ref.HasTooltip
	}
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentWidth returns the number of leading space columns, expanding
// tabs to the next multiple of 4 (spec.md §4.4.1, tabStopSize
// mirrored from the teacher's columnWidth helper).
func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w = (w + 4) &^ 3
		default:
			return w
		}
	}
	return w
}

// stripIndent removes up to n columns of leading whitespace from line.
func stripIndent(line string, n int) string {
	w := 0
	for i, r := range line {
		if w >= n {
			return line[i:]
		}
		switch r {
		case ' ':
			w++
		case '\t':
			w = (w + 4) &^ 3
		default:
			return line[i:]
		}
	}
	return ""
}
