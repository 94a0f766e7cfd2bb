package markup

import (
	"testing"
)

func TestApplyFormatWrapsSelection(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		text   string
		start  int
		end    int
		want   string
	}{
		{"bold", FormatBold, "hello world", 0, 5, "**hello** world"},
		{"italic", FormatItalic, "hello world", 6, 11, "hello *world*"},
		{"underline", FormatUnderline, "hello world", 0, 11, "__hello world__"},
		{"empty selection", FormatBold, "hello", 2, 2, "he****llo"},
		{"out of range clamps", FormatBold, "hi", 0, 99, "**hi**"},
		{"inverted range clamps", FormatItalic, "hello", 4, 1, "hell**o"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyFormat(tc.format, tc.start, tc.end, tc.text)
			if got != tc.want {
				t.Fatalf("ApplyFormat(%q, %d, %d, %q) = %q, want %q", tc.format, tc.start, tc.end, tc.text, got, tc.want)
			}
		})
	}
}

func TestInsertLinkReplacesSelection(t *testing.T) {
	got, err := InsertLink(6, 11, "hello world", "docs", "example.com")
	if err != nil {
		t.Fatalf("InsertLink: %v", err)
	}
	if got != "hello [docs](example.com)" {
		t.Fatalf("got %q", got)
	}
}

func TestInsertLinkValidation(t *testing.T) {
	if _, err := InsertLink(0, 0, "text", "   ", "example.com"); err != ErrLinkTextRequired {
		t.Fatalf("blank display text: err = %v", err)
	}
	if _, err := InsertLink(0, 0, "text", "docs", ""); err != ErrLinkURLRequired {
		t.Fatalf("blank url: err = %v", err)
	}
}

func TestExpandPlainText(t *testing.T) {
	nodes := Expand("just plain text")
	if len(nodes) != 1 || nodes[0].Kind != NodeText || nodes[0].Text != "just plain text" {
		t.Fatalf("got %+v", nodes)
	}
}

func TestExpandMixedMarkup(t *testing.T) {
	nodes := Expand("a **b** c *d* e __f__ g [h](i)")
	want := []Node{
		{Kind: NodeText, Text: "a "},
		{Kind: NodeBold, Text: "b"},
		{Kind: NodeText, Text: " c "},
		{Kind: NodeItalic, Text: "d"},
		{Kind: NodeText, Text: " e "},
		{Kind: NodeUnderline, Text: "f"},
		{Kind: NodeText, Text: " g "},
		{Kind: NodeLink, Text: "h", Href: "https://i"},
	}
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes %+v, want %d", len(nodes), nodes, len(want))
	}
	for i := range want {
		if nodes[i] != want[i] {
			t.Errorf("node %d = %+v, want %+v", i, nodes[i], want[i])
		}
	}
}

func TestExpandUnmatchedDelimitersStayLiteral(t *testing.T) {
	cases := []struct{ in, visible string }{
		{"half*way", "half*way"},
		{"[text](", "[text]("},
		{"*", "*"},
		{"a __ b", "a __ b"},
	}
	for _, tc := range cases {
		nodes := Expand(tc.in)
		if len(nodes) != 1 || nodes[0].Kind != NodeText {
			t.Errorf("Expand(%q) = %+v, want single literal text node", tc.in, nodes)
			continue
		}
		if nodes[0].Text != tc.visible {
			t.Errorf("Expand(%q) text = %q", tc.in, nodes[0].Text)
		}
	}
}

func TestExpandStripsNulBytes(t *testing.T) {
	// JSON 的 u0000 转义会把 NUL 混进文本，不能被当成替换哨兵。
	cases := []struct {
		in   string
		want []Node
	}{
		{"\x0042\x00", []Node{{Kind: NodeText, Text: "42"}}},
		{"a\x00b **c**", []Node{
			{Kind: NodeText, Text: "ab "},
			{Kind: NodeBold, Text: "c"},
		}},
		{"\x00", nil},
	}
	for _, tc := range cases {
		nodes := Expand(tc.in)
		if len(nodes) != len(tc.want) {
			t.Errorf("Expand(%q) = %+v, want %+v", tc.in, nodes, tc.want)
			continue
		}
		for i := range tc.want {
			if nodes[i] != tc.want[i] {
				t.Errorf("Expand(%q) node %d = %+v, want %+v", tc.in, i, nodes[i], tc.want[i])
			}
		}
	}
}

func TestFormatThenExpandRoundTrip(t *testing.T) {
	text := ApplyFormat(FormatBold, 0, 4, "fast services")
	nodes := Expand(text)
	if len(nodes) != 2 {
		t.Fatalf("got %+v", nodes)
	}
	if nodes[0].Kind != NodeBold || nodes[0].Text != "fast" {
		t.Fatalf("bold node = %+v", nodes[0])
	}
	if nodes[1].Text != " services" {
		t.Fatalf("tail node = %+v", nodes[1])
	}
}

func TestExpandIsDeterministic(t *testing.T) {
	text := "mix **b** and *i* and __u__ and [l](u)"
	a := Expand(text)
	b := Expand(text)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic expansion")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("node %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeURL(tc.in); got != tc.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
