package markdown

import "github.com/aljedaxi/streamingMarkdown/html"

// Render lowers a Document's Markdown AST into an HTML AST (spec.md
// §4.5). If opts.Parent is set, rendered content is appended to it
// and Parent itself is returned; otherwise a fresh <div> is created
// and returned. Render returns ErrNotAnElement if opts.Parent is set
// but is not an element node.
//
// Grounded on html_renderer.go's Render/AppendBlock driver in the
// teacher repo, adapted from writing bytes directly to a buffer to
// building the html subpackage's node tree, since this project's
// renderer output is a structured, sanitizable HTML AST rather than
// a direct byte stream.
func Render(doc *Document, opts *RenderOptions) (*html.Node, error) {
	o := mergeRenderOptions(opts)
	parent := o.Parent
	if parent == nil {
		parent = html.NewElement("div")
	} else if parent.Kind() != html.ElementNode {
		return nil, ErrNotAnElement
	}
	rs := &renderState{opts: o, doc: doc}
	for _, b := range doc.Blocks {
		rs.renderBlock(parent, b)
	}
	return parent, nil
}

// RenderToString renders doc and serializes the result to an HTML
// string in one step.
func RenderToString(doc *Document, opts *RenderOptions) (string, error) {
	node, err := Render(doc, opts)
	if err != nil {
		return "", err
	}
	return html.Serialize(node.Children()), nil
}

// renderState carries the resolved options and source document
// through a single Render call.
type renderState struct {
	opts resolvedOptions
	doc  *Document
}
