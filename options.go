package markdown

import "github.com/aljedaxi/streamingMarkdown/html"

// ParseOptions configures the Markdown parser (spec.md §4.4.1).
// The zero value is the all-defaults-off configuration.
type ParseOptions struct {
	// AutoLink enables recognition of bare URLs, not just
	// <scheme://...> autolinks.
	AutoLink bool
	// EmojiDictionary is the set of recognized `:name:` shortcodes.
	// A nil or empty dictionary disables emoji recognition entirely.
	EmojiDictionary map[string]bool
	// Latex enables `$...$` and `$$...$$` recognition.
	Latex bool
	// NewlineAsLinebreaks treats every '\n' inside a paragraph as a
	// hard linebreak instead of a soft line join.
	NewlineAsLinebreaks bool
	// CodeBlockFromIndent enables 4-space-indented code blocks.
	CodeBlockFromIndent bool
	// DisallowedInlineHTMLTags is accepted but not read by the parser
	// or the renderer: inline HTML is stored unparsed, and the renderer
	// sanitizes it with RenderOptions.InlineHTML.DisallowedTags (or the
	// sanitizer's default blocklist when that is empty).
	DisallowedInlineHTMLTags []string
}

// mergeParseOptions returns a ParseOptions with every field defaulted
// from opts, which may be nil. There is no ambiguous "unset vs.
// explicit zero value" leaf here (every ParseOptions field's zero
// value is already its documented default per spec.md §4.4.1), so a
// value copy suffices.
func mergeParseOptions(opts *ParseOptions) ParseOptions {
	if opts == nil {
		return ParseOptions{}
	}
	return *opts
}

// BlockCodeOptions configures fenced/indented code block rendering.
type BlockCodeOptions struct {
	// ClassName wraps <pre><code> in a div of this class; empty
	// disables the wrapper.
	ClassName string
	// Highlighter, if set, populates the <code> element's children
	// with syntax-highlighted nodes.
	Highlighter func(code, language string, parent *html.Node)
}

// CheckboxOptions configures task-list checkbox rendering. Enable and
// DisabledProperty default to true (spec.md §4.5); a caller wanting
// to turn either off must pass an explicit false pointer, per the
// strongly-typed options-builder design note in spec.md §9.
type CheckboxOptions struct {
	Enable           *bool
	DisabledProperty *bool
}

// CodeOptions configures inline code span rendering.
type CodeOptions struct {
	// Process maps an InlineCode node to its rendered HTML. The
	// default wraps content in <code> with CODE text mode.
	Process func(node *InlineCode) *html.Node
}

// LatexOptions configures LaTeX rendering.
type LatexOptions struct {
	// Render renders a LaTeX node; its return value is either a
	// string (wrapped verbatim as escaped text) or an *html.Node.
	// Absent means raw passthrough of the source text.
	Render func(raw string, display bool) (any, error)
	// ErrorClasses are applied to the fallback element emitted when
	// Render returns an error.
	ErrorClasses []string
}

// UnderlineOptions configures Underline rendering. Enable defaults to
// true.
type UnderlineOptions struct {
	Enable    *bool
	ClassName string
}

// SpoilerOptions configures Spoiler rendering. Enable defaults to true.
type SpoilerOptions struct {
	Enable          *bool
	ClassName       string
	RevealClassName string
}

// ImageOptions configures <img> rendering.
type ImageOptions struct {
	ClassName string
}

// StrikethroughOptions configures Strikethrough rendering.
type StrikethroughOptions struct {
	ClassName string
}

// InlineHTMLOptions configures raw-HTML passthrough rendering. Enable
// defaults to true.
type InlineHTMLOptions struct {
	Enable         *bool
	DisallowedTags []string
}

// TableOptions configures table post-processing.
type TableOptions struct {
	// Process is invoked with the rendered <table> element after
	// construction, for caller-side post-processing.
	Process func(table *html.Node)
}

// RenderOptions configures the Markdown-AST-to-HTML-AST renderer
// (spec.md §4.5).
type RenderOptions struct {
	BlockCode     BlockCodeOptions
	Checkbox      CheckboxOptions
	Code          CodeOptions
	Emoji         func(node *Emoji) *html.Node
	Highlight     struct{ Enable *bool }
	InlineHTML    InlineHTMLOptions
	Image         ImageOptions
	Latex         LatexOptions
	Strikethrough StrikethroughOptions
	Underline     UnderlineOptions
	Spoiler       SpoilerOptions
	Table         TableOptions
	// Parent, if non-nil, is the element new content is appended
	// into. It must be an element node; Render returns
	// ErrNotAnElement otherwise. When nil, a fresh <div> is used.
	Parent *html.Node
}

// boolOr resolves an optional leaf to its default when unset.
func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Bool is a convenience constructor for the *bool option leaves
// (Checkbox.Enable and friends), since Go has no address-of-literal
// operator.
func Bool(b bool) *bool { return &b }

// resolvedOptions is RenderOptions with every leaf's default/override
// ambiguity already settled, used internally by the renderer so its
// code reads plain bools instead of re-deriving defaults at every use
// site. Grounded on spec.md §9's "strongly-typed options builder"
// design note.
type resolvedOptions struct {
	BlockCode               BlockCodeOptions
	CheckboxEnable          bool
	CheckboxDisabled        bool
	Code                    CodeOptions
	Emoji                   func(*Emoji) *html.Node
	HighlightEnable         bool
	InlineHTMLEnable        bool
	InlineHTMLDisallowed    []string
	Image                   ImageOptions
	Latex                   LatexOptions
	Strikethrough           StrikethroughOptions
	UnderlineEnable         bool
	UnderlineClassName      string
	SpoilerEnable           bool
	SpoilerClassName        string
	SpoilerRevealClassName  string
	Table                   TableOptions
	Parent                  *html.Node
}

func mergeRenderOptions(opts *RenderOptions) resolvedOptions {
	if opts == nil {
		opts = &RenderOptions{}
	}
	return resolvedOptions{
		BlockCode:             opts.BlockCode,
		CheckboxEnable:        boolOr(opts.Checkbox.Enable, true),
		CheckboxDisabled:      boolOr(opts.Checkbox.DisabledProperty, true),
		Code:                  opts.Code,
		Emoji:                 opts.Emoji,
		HighlightEnable:       boolOr(opts.Highlight.Enable, true),
		InlineHTMLEnable:      boolOr(opts.InlineHTML.Enable, true),
		InlineHTMLDisallowed:  opts.InlineHTML.DisallowedTags,
		Image:                 opts.Image,
		Latex:                 opts.Latex,
		Strikethrough:         opts.Strikethrough,
		UnderlineEnable:       boolOr(opts.Underline.Enable, true),
		UnderlineClassName:    opts.Underline.ClassName,
		SpoilerEnable:         boolOr(opts.Spoiler.Enable, true),
		SpoilerClassName:      opts.Spoiler.ClassName,
		SpoilerRevealClassName: opts.Spoiler.RevealClassName,
		Table:                 opts.Table,
		Parent:                opts.Parent,
	}
}
