package markdown

import "strings"

// parseInlines tokenizes s into an inline sequence (spec.md §4.4.3).
// Recognizers are tried in the priority order listed there: backslash
// escapes, code spans, autolinks/comments, images, links, emphasis
// delimiter runs, strikethrough/highlight/spoiler, LaTeX spans,
// emoji, and (when enabled) bare-URL autolinks.
//
// Grounded on inlines.go's recognizer-priority scanning loop in the
// teacher repo, adapted from a byte-offset scanner over a shared
// source buffer to a scanner that slices s directly and recurses on
// substrings, since this project's nodes own their text.
func parseInlines(s string, opts ParseOptions) []Inline {
	var out []Inline
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, &Text{Content: buf.String()})
			buf.Reset()
		}
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]):
			buf.WriteByte(s[i+1])
			i += 2

		case c == '\n':
			hard := opts.NewlineAsLinebreaks
			if !hard {
				bs := buf.String()
				if strings.HasSuffix(bs, "  ") {
					hard = true
					buf.Reset()
					buf.WriteString(strings.TrimRight(bs, " "))
				}
			}
			flush()
			if hard {
				out = append(out, &Linebreak{})
			} else {
				buf.WriteByte(' ')
			}
			i++

		case c == '`':
			if content, end, ok := scanCodeSpan(s, i); ok {
				flush()
				out = append(out, &InlineCode{Content: content})
				i = end
			} else {
				buf.WriteByte(c)
				i++
			}

		case c == '<':
			if in, end, ok := scanAutolinkOrComment(s, i); ok {
				flush()
				out = append(out, in)
				i = end
			} else {
				buf.WriteByte(c)
				i++
			}

		case c == '!' && i+1 < len(s) && s[i+1] == '[':
			if in, end, ok := scanImageOrLink(s, i, opts, true); ok {
				flush()
				out = append(out, in)
				i = end
			} else {
				buf.WriteByte(c)
				i++
			}

		case c == '[':
			if in, end, ok := scanImageOrLink(s, i, opts, false); ok {
				flush()
				out = append(out, in)
				i = end
			} else {
				buf.WriteByte(c)
				i++
			}

		case c == '*' || c == '_':
			if in, end, ok := scanEmphasis(s, i, opts); ok {
				flush()
				out = append(out, in)
				i = end
			} else {
				buf.WriteByte(c)
				i++
			}

		case c == '~' && i+1 < len(s) && s[i+1] == '~':
			if inner, end, ok := scanDelimited(s, i, "~~"); ok {
				flush()
				out = append(out, NewStrikethrough(parseInlines(inner, opts)))
				i = end
			} else {
				buf.WriteByte(c)
				i++
			}

		case c == '=' && i+1 < len(s) && s[i+1] == '=':
			if inner, end, ok := scanDelimited(s, i, "=="); ok {
				flush()
				out = append(out, NewHighlight(parseInlines(inner, opts)))
				i = end
			} else {
				buf.WriteByte(c)
				i++
			}

		case c == '|' && i+1 < len(s) && s[i+1] == '|':
			if inner, end, ok := scanDelimited(s, i, "||"); ok {
				flush()
				out = append(out, NewSpoiler(parseInlines(inner, opts)))
				i = end
			} else {
				buf.WriteByte(c)
				i++
			}

		case c == '$' && opts.Latex:
			if raw, end, ok := scanLatexSpan(s, i); ok {
				flush()
				out = append(out, &InlineLatex{Raw: raw})
				i = end
			} else {
				buf.WriteByte(c)
				i++
			}

		case c == ':':
			if em, end, ok := scanEmoji(s, i, opts); ok {
				flush()
				out = append(out, em)
				i = end
			} else {
				buf.WriteByte(c)
				i++
			}

		case opts.AutoLink && (strings.HasPrefix(s[i:], "http://") || strings.HasPrefix(s[i:], "https://")):
			url, end := scanBareURL(s, i)
			flush()
			out = append(out, &InlineLink{URL: url})
			i = end

		default:
			buf.WriteByte(c)
			i++
		}
	}
	flush()
	return out
}

func scanCodeSpan(s string, i int) (content string, end int, ok bool) {
	n := 0
	for i+n < len(s) && s[i+n] == '`' {
		n++
	}
	j := i + n
	for j < len(s) {
		if s[j] != '`' {
			j++
			continue
		}
		m := 0
		for j+m < len(s) && s[j+m] == '`' {
			m++
		}
		if m == n {
			return strings.TrimSpace(s[i+n : j]), j + m, true
		}
		j += m
	}
	return "", i, false
}

func scanAutolinkOrComment(s string, i int) (Inline, int, bool) {
	if strings.HasPrefix(s[i:], "<!--") {
		rest := strings.Index(s[i+4:], "-->")
		if rest < 0 {
			return nil, i, false
		}
		return &Comment{Content: s[i+4 : i+4+rest]}, i + 4 + rest + 3, true
	}
	j := i + 1
	for j < len(s) && s[j] != '>' && s[j] != ' ' && s[j] != '<' {
		j++
	}
	if j >= len(s) || s[j] != '>' {
		return nil, i, false
	}
	url := s[i+1 : j]
	if !looksLikeAutolinkURL(url) {
		return nil, i, false
	}
	return &InlineLink{URL: url}, j + 1, true
}

func looksLikeAutolinkURL(s string) bool {
	idx := strings.IndexByte(s, ':')
	if idx <= 0 {
		return false
	}
	if !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < idx; i++ {
		b := s[i]
		if !isAlphaNum(b) && b != '+' && b != '-' && b != '.' {
			return false
		}
	}
	return true
}

// scanImageOrLink parses `![alt](url "title")`/`![alt][ref]`/`![alt]`
// or the Link equivalent without the leading '!'.
func scanImageOrLink(s string, i int, opts ParseOptions, isImage bool) (Inline, int, bool) {
	start := i
	if isImage {
		i++
	}
	if i >= len(s) || s[i] != '[' {
		return nil, start, false
	}
	depth := 1
	j := i + 1
	for j < len(s) && depth > 0 {
		switch s[j] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				goto found
			}
		}
		j++
	}
	return nil, start, false
found:
	text := s[i+1 : j]
	title := parseInlines(text, opts)
	k := j + 1

	if k < len(s) && s[k] == '(' {
		end := strings.IndexByte(s[k:], ')')
		if end < 0 {
			return nil, start, false
		}
		inner := strings.TrimSpace(s[k+1 : k+end])
		url, tooltip, hasTooltip := splitURLTitle(inner)
		if isImage {
			return NewImage(url, title, tooltip, hasTooltip, ""), k + end + 1, true
		}
		return NewLink(url, title, tooltip, hasTooltip, ""), k + end + 1, true
	}
	if k < len(s) && s[k] == '[' {
		end := strings.IndexByte(s[k:], ']')
		if end < 0 {
			return nil, start, false
		}
		ref := s[k+1 : k+end]
		if ref == "" {
			ref = text
		}
		if isImage {
			return NewImage("", title, "", false, ref), k + end + 1, true
		}
		return NewLink("", title, "", false, ref), k + end + 1, true
	}
	if isImage {
		return NewImage("", title, "", false, text), j + 1, true
	}
	return NewLink("", title, "", false, text), j + 1, true
}

func splitURLTitle(s string) (url, title string, hasTitle bool) {
	sp := strings.IndexAny(s, " \t")
	if sp < 0 {
		return s, "", false
	}
	url = s[:sp]
	t := strings.TrimSpace(s[sp+1:])
	t = strings.Trim(t, `"'()`)
	if t == "" {
		return url, "", false
	}
	return url, t, true
}

func scanDelimited(s string, i int, delim string) (inner string, end int, ok bool) {
	start := i + len(delim)
	idx := strings.Index(s[start:], delim)
	if idx <= 0 {
		return "", i, false
	}
	return s[start : start+idx], start + idx + len(delim), true
}

// scanEmphasis matches a run of '*' or '_' against the next run of at
// least the same length, mapping run-length 1/2/3+ to Italic/Bold/
// Bold-wrapping-Italic per spec.md §4.4.3, except that a run of two
// '_' maps to Underline.
func scanEmphasis(s string, i int, opts ParseOptions) (Inline, int, bool) {
	c := s[i]
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	j := i + n
	for j < len(s) {
		if s[j] != c {
			j++
			continue
		}
		m := 0
		for j+m < len(s) && s[j+m] == c {
			m++
		}
		if m >= n {
			inner := s[i+n : j]
			if inner == "" {
				return nil, i, false
			}
			children := parseInlines(inner, opts)
			end := j + n
			switch {
			case n >= 3:
				return &Bold{Children: []Inline{&Italic{Children: children}}}, end, true
			case n == 2:
				if c == '_' {
					return &Underline{Children: children}, end, true
				}
				return &Bold{Children: children}, end, true
			default:
				return &Italic{Children: children}, end, true
			}
		}
		j += m
	}
	return nil, i, false
}

// scanLatexSpan matches an inline `$...$` span. An opening '$'
// immediately followed by whitespace or a digit is treated as a
// literal dollar sign rather than math, so "$5 and $10" never
// triggers (spec.md §4.4.3 edge case).
func scanLatexSpan(s string, i int) (raw string, end int, ok bool) {
	if strings.HasPrefix(s[i:], "$$") {
		return "", i, false
	}
	if i+1 >= len(s) {
		return "", i, false
	}
	next := s[i+1]
	if next == ' ' || next == '\t' || (next >= '0' && next <= '9') {
		return "", i, false
	}
	j := strings.IndexByte(s[i+1:], '$')
	if j < 0 {
		return "", i, false
	}
	closeAt := i + 1 + j
	if closeAt == i+1 || s[closeAt-1] == ' ' {
		return "", i, false
	}
	return s[i+1 : closeAt], closeAt + 1, true
}

func scanEmoji(s string, i int, opts ParseOptions) (*Emoji, int, bool) {
	if len(opts.EmojiDictionary) == 0 {
		return nil, i, false
	}
	j := i + 1
	for j < len(s) && isEmojiNameByte(s[j]) {
		j++
	}
	if j == i+1 || j >= len(s) || s[j] != ':' {
		return nil, i, false
	}
	name := s[i+1 : j]
	if !opts.EmojiDictionary[name] {
		return nil, i, false
	}
	end := j + 1
	tone := 0
	// spec.md §4.4.3: the skin-tone modifier is written
	// ":skin-tone-N:" immediately after the closing colon of the name.
	const tonePrefix = ":skin-tone-"
	if strings.HasPrefix(s[end:], tonePrefix) {
		k := end + len(tonePrefix)
		if k+1 < len(s) && s[k] >= '1' && s[k] <= '5' && s[k+1] == ':' {
			tone = int(s[k] - '0')
			end = k + 2
		}
	}
	return &Emoji{ID: name, SkinTone: tone}, end, true
}

func isEmojiNameByte(b byte) bool {
	return b == '_' || b == '+' || b == '-' || isAlphaNum(b)
}

func scanBareURL(s string, i int) (string, int) {
	j := i
	for j < len(s) && !isASCIISpace(s[j]) && s[j] != '<' && s[j] != '>' {
		j++
	}
	end := j
	for end > i && strings.ContainsRune(".,;:!?)", rune(s[end-1])) {
		end--
	}
	return s[i:end], end
}

func isASCIIPunct(b byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", b) >= 0
}

func isASCIISpace(b byte) bool { return b == ' ' || b == '\t' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphaNum(b byte) bool {
	return isAlpha(b) || (b >= '0' && b <= '9')
}
