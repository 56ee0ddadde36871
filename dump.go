package mdhtml

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
)

// Dump writes an outline of the block tree, one block per line, children
// indented by two spaces. Lines wider than width are cut with an ellipsis;
// width <= 0 disables cutting.
func Dump(w io.Writer, doc *Document, width int) error {
	bw := bufio.NewWriter(w)
	d := dumper{w: bw, width: width}
	for _, b := range doc.Blocks {
		d.block(b, 0)
	}
	if d.err != nil {
		return d.err
	}
	return bw.Flush()
}

type dumper struct {
	w     *bufio.Writer
	width int
	err   error
}

func (d *dumper) line(depth int, label string) {
	if d.err != nil {
		return
	}
	text := indent.String(label, uint(2*depth))
	if d.width > 0 {
		text = truncateWithEllipsis(text, d.width)
	}
	if _, err := d.w.WriteString(text + "\n"); err != nil {
		d.err = err
	}
}

func (d *dumper) block(b Block, depth int) {
	switch b := b.(type) {
	case *Paragraph:
		d.line(depth, "Paragraph "+preview(b.Inlines))
	case *Heading:
		d.line(depth, "Heading("+strconv.Itoa(b.Level)+") "+preview(b.Inlines))
	case *ThematicBreak:
		d.line(depth, "ThematicBreak")
	case *CodeBlock:
		d.line(depth, "CodeBlock "+strconv.Quote(b.Literal))
	case *BlockQuote:
		d.line(depth, "BlockQuote")
		for _, c := range b.Children {
			d.block(c, depth+1)
		}
	case *List:
		spacing := "tight"
		if b.Loose {
			spacing = "loose"
		}
		d.line(depth, "List("+b.Type.String()+", "+spacing+")")
		for _, item := range b.Items {
			d.block(item, depth+1)
		}
	case *ListItem:
		d.line(depth, "ListItem")
		for _, c := range b.Children {
			d.block(c, depth+1)
		}
	}
}

func preview(inlines []Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		if t, ok := in.(*Text); ok {
			sb.WriteString(t.Value)
		}
	}
	return strconv.Quote(sb.String())
}

// truncateWithEllipsis cuts text to at most limit display columns, counting
// wide runes as two, and marks the cut with an ellipsis.
func truncateWithEllipsis(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	return truncate.StringWithTail(text, uint(limit), "…")
}
