package mdhtml

import (
	"bytes"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func TestDumpOutline(t *testing.T) {
	t.Parallel()
	doc, err := Parse(string(readSample(t, "basic.md")))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	if err := Dump(&out, doc, 0); err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := `Heading(1) "Title"
Paragraph "A paragraph\nwith two lines."
BlockQuote
  Paragraph "Quote line one\nQuote line two"
List(Dash, tight)
  ListItem
    Paragraph "item one"
  ListItem
    Paragraph "item two"
    List(Dash, tight)
      ListItem
        Paragraph "nested one"
List(Number(1), tight)
  ListItem
    Paragraph "ordered one"
  ListItem
    Paragraph "ordered two"
Paragraph "Closing paragraph."
CodeBlock "code block"
ThematicBreak
`
	if got := out.String(); got != want {
		t.Fatalf("dump mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestDumpTruncatesToWidth(t *testing.T) {
	t.Parallel()
	doc, err := Parse("Closing paragraph.\n\n- 3. deep\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	if err := Dump(&out, doc, 10); err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := "Paragraph…\nList(Dash…\n  ListItem\n    List(…\n      Lis…\n        P…\n"
	if got := out.String(); got != want {
		t.Fatalf("dump mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"truncate me", 5, "trun…"},
		{"x", 0, ""},
		{"xy", 1, "…"},
		{"世界世界", 3, "世…"},
		{"世界世界", 5, "世界…"},
		{"a世界", 4, "a世…"},
	}
	for _, tc := range tests {
		got := truncateWithEllipsis(tc.in, tc.limit)
		if got != tc.want {
			t.Fatalf("truncateWithEllipsis(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
		if w := ansi.PrintableRuneWidth(got); w > max(tc.limit, 0) {
			t.Fatalf("truncateWithEllipsis(%q, %d) is %d columns wide", tc.in, tc.limit, w)
		}
	}
}
