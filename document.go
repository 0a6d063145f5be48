package markdown

import "strings"

// Reference is a link reference definition: a URL and an optional
// tooltip, keyed by a case-insensitive name in a Document.
type Reference struct {
	URL        string
	Tooltip    string
	HasTooltip bool
}

// Document owns an ordered sequence of top-level blocks and a table
// of link reference definitions, keyed case-insensitively (spec.md
// §3.2). Grounded on references.go's ReferenceMap in the teacher
// repo, generalized from a parse-time-only span extraction into a
// mutable table the Document itself owns.
type Document struct {
	Blocks     []Block
	References map[string]Reference
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{References: make(map[string]Reference)}
}

// Push appends a block to the document.
func (d *Document) Push(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// Ref stores a reference definition under name, case-insensitively.
// A later call with the same normalized name overwrites the earlier
// one (the block pass instead keeps first-in-source-order by simply
// not calling Ref again for a name it has already defined).
func (d *Document) Ref(name string, r Reference) {
	if d.References == nil {
		d.References = make(map[string]Reference)
	}
	d.References[strings.ToLower(name)] = r
}

// HasRef reports whether name (compared case-insensitively) has a
// reference definition.
func (d *Document) HasRef(name string) bool {
	_, ok := d.References[strings.ToLower(name)]
	return ok
}

// Lookup returns the reference definition for name, if any.
func (d *Document) Lookup(name string) (Reference, bool) {
	r, ok := d.References[strings.ToLower(name)]
	return r, ok
}

// Clear empties the document's blocks and reference table in place.
func (d *Document) Clear() {
	d.Blocks = nil
	d.References = make(map[string]Reference)
}
