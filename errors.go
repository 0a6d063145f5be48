package markdown

import "errors"

// ErrNotAnElement is returned by Render when RenderOptions.Parent is
// set but is not an element node (spec.md §4.5, §7).
var ErrNotAnElement = errors.New("markdown: render parent is not an element node")

// ErrExtensionFailed wraps a panic recovered from RenderOptions.Latex.Render,
// the only callback the renderer guards. That failure, like an error
// returned by Latex.Render, is converted into a fallback element and is
// not returned from Render. Panics from BlockCode.Highlighter,
// Code.Process, Emoji and Table.Process are not recovered and propagate
// to the caller of Render.
var ErrExtensionFailed = errors.New("markdown: renderer extension failed")
