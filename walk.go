// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package markdown

// Visitor holds the callbacks invoked by Walk. Either field may be
// nil. Returning false from Block or Inline skips that node's
// children.
//
// Grounded on walk.go's Cursor/WalkOptions in the teacher repo,
// adapted from the teacher's unsafe-pointer Node union (needed there
// because *Block and *Inline are disjoint concrete types sharing no
// interface) to a plain type switch, since this project's Block and
// Inline are already interfaces.
type Visitor struct {
	Block  func(b Block) bool
	Inline func(in Inline) bool
}

// Walk traverses every block in blocks and their descendants,
// pre-order, calling v's callbacks.
func Walk(blocks []Block, v *Visitor) {
	for _, b := range blocks {
		walkBlock(b, v)
	}
}

func walkBlock(b Block, v *Visitor) {
	if b == nil {
		return
	}
	if v.Block != nil && !v.Block(b) {
		return
	}
	switch n := b.(type) {
	case *Paragraph:
		walkInlines(n.Inlines, v)
	case *Heading:
		walkInlines(n.Inlines, v)
	case *BlockQuote:
		for _, c := range n.Children {
			walkBlock(c, v)
		}
	case *List:
		for _, e := range n.Entries {
			walkBlock(e, v)
		}
	case *ListEntry:
		walkInlines(n.Inlines, v)
		for _, s := range n.Sublists {
			walkBlock(s, v)
		}
	case *InlineHTML:
		walkInlines(n.Inlines, v)
	case *Table:
		for _, row := range n.Rows {
			for _, cell := range row.Entries {
				walkInlines(cell.Inlines, v)
			}
		}
	}
}

func walkInlines(inlines []Inline, v *Visitor) {
	for _, in := range inlines {
		walkInline(in, v)
	}
}

func walkInline(in Inline, v *Visitor) {
	if in == nil {
		return
	}
	if v.Inline != nil && !v.Inline(in) {
		return
	}
	switch n := in.(type) {
	case *Link:
		walkInlines(n.Title, v)
	case *Image:
		walkInlines(n.Title, v)
	case *Italic:
		walkInlines(n.Children, v)
	case *Bold:
		walkInlines(n.Children, v)
	case *Underline:
		walkInlines(n.Children, v)
	case *Strikethrough:
		walkInlines(n.Children, v)
	case *Highlight:
		walkInlines(n.Children, v)
	case *Spoiler:
		walkInlines(n.Children, v)
	}
}

// Headings returns every Heading block in document order, including
// those nested inside block quotes. List entries hold no Heading
// blocks (the parser keeps only their paragraphs and sublists).
func Headings(blocks []Block) []*Heading {
	var out []*Heading
	Walk(blocks, &Visitor{
		Block: func(b Block) bool {
			if h, ok := b.(*Heading); ok {
				out = append(out, h)
			}
			return true
		},
	})
	return out
}
