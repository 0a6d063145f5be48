package html

import "testing"

func TestSerializeEscaping(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "normal text escapes amp lt gt",
			node: NewText(`a & b < c > d`, ModeNormal),
			want: "a &amp; b &lt; c &gt; d",
		},
		{
			name: "code mode leaves ampersand alone",
			node: NewText(`&amp; <tag>`, ModeCode),
			want: "&amp; &lt;tag&gt;",
		},
		{
			name: "raw mode passes through",
			node: NewText(`<b>raw</b>`, ModeRaw),
			want: "<b>raw</b>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Serialize([]*Node{tt.node}); got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeVoidElement(t *testing.T) {
	br := NewElement("br")
	if got, want := Serialize([]*Node{br}), "<br>"; got != want {
		t.Errorf("Serialize(br) = %q, want %q", got, want)
	}
}

func TestSerializeAttributeEscaping(t *testing.T) {
	a := NewElement("a")
	a.SetAttr("title", `say "hi" & bye`)
	a.AppendChild("link")
	got := Serialize([]*Node{a})
	want := `<a title="say &quot;hi&quot; &amp; bye">link</a>`
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeTokenAndStyleAttrs(t *testing.T) {
	td := NewElement("td")
	td.AddToken("class", "num")
	td.SetStyle("text-align", "right")
	td.AppendChild("3")
	got := Serialize([]*Node{td})
	want := `<td class="num" style="text-align:right;">3</td>`
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeEmptyTokenAttrOmitted(t *testing.T) {
	el := NewElement("div")
	el.attrs = append(el.attrs, Attribute{Name: "class", Kind: AttrTokens})
	got := Serialize([]*Node{el})
	if got != "<div></div>" {
		t.Errorf("Serialize() = %q, want %q", got, "<div></div>")
	}
}
