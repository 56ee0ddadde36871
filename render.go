package mdhtml

import (
	"io"
	"strconv"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// RenderHTML writes the HTML rendering of doc to w, ending with a newline
// unless the document is empty.
func RenderHTML(w io.Writer, doc *Document) error {
	var r htmlWriter
	r.blocks(doc.Blocks)
	_, err := w.Write(r.buf)
	return err
}

// HTML returns the rendering of d with blocks separated by newlines and no
// trailing newline.
func (d *Document) HTML() string {
	var r htmlWriter
	r.blocks(d.Blocks)
	return strings.TrimSuffix(string(r.buf), "\n")
}

type htmlWriter struct {
	buf []byte
}

func (r *htmlWriter) str(s string) {
	r.buf = append(r.buf, s...)
}

// cr starts a new line unless the output already ends with one.
func (r *htmlWriter) cr() {
	if n := len(r.buf); n > 0 && r.buf[n-1] != '\n' {
		r.buf = append(r.buf, '\n')
	}
}

func (r *htmlWriter) text(s string) {
	r.str(htmlEscaper.Replace(s))
}

func (r *htmlWriter) blocks(blocks []Block) {
	for _, b := range blocks {
		r.block(b, false)
	}
}

// block renders b. tight is set for the children of items in a tight list,
// whose paragraphs are written without <p>.
func (r *htmlWriter) block(b Block, tight bool) {
	switch b := b.(type) {
	case *Paragraph:
		if tight {
			r.inlines(b.Inlines)
			return
		}
		r.cr()
		r.str("<p>")
		r.inlines(b.Inlines)
		r.str("</p>")
		r.cr()
	case *Heading:
		level := strconv.Itoa(b.Level)
		r.cr()
		r.str("<h" + level + ">")
		r.inlines(b.Inlines)
		r.str("</h" + level + ">")
		r.cr()
	case *ThematicBreak:
		r.cr()
		r.str("<hr />")
		r.cr()
	case *CodeBlock:
		r.cr()
		r.str("<pre><code>")
		r.text(b.Literal)
		r.str("\n</code></pre>")
		r.cr()
	case *BlockQuote:
		r.cr()
		r.str("<blockquote>")
		r.cr()
		r.blocks(b.Children)
		r.cr()
		r.str("</blockquote>")
		r.cr()
	case *List:
		r.list(b)
	case *ListItem:
		r.item(b, tight)
	}
}

func (r *htmlWriter) list(l *List) {
	tag := "ul"
	if l.Type.Ordered() {
		tag = "ol"
	}
	r.cr()
	r.str("<" + tag)
	if l.Type.Ordered() && l.Type.Start != 1 {
		r.str(` start="` + strconv.FormatUint(l.Type.Start, 10) + `"`)
	}
	r.str(">")
	r.cr()
	for _, item := range l.Items {
		r.item(item, !l.Loose)
	}
	r.cr()
	r.str("</" + tag + ">")
	r.cr()
}

func (r *htmlWriter) item(item *ListItem, tight bool) {
	r.str("<li>")
	for _, child := range item.Children {
		r.block(child, tight)
	}
	r.str("</li>")
	r.cr()
}

func (r *htmlWriter) inlines(inlines []Inline) {
	for _, in := range inlines {
		if t, ok := in.(*Text); ok {
			r.text(t.Value)
		}
	}
}
