// Package conformance compares mdhtml output with goldmark's CommonMark
// rendering. Both sides are normalized with an HTML tokenizer so that
// differences in inter-block whitespace and attribute quoting do not count.
//
// goldmark implements inline markup that mdhtml leaves to an InlineProcessor,
// so only documents without inline syntax are expected to agree.
package conformance

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"pkt.systems/mdhtml"
)

var reference = goldmark.New()

// Result holds the normalized renderings of one document.
type Result struct {
	Got  string
	Want string
}

// Equal reports whether both renderings agree.
func (r Result) Equal() bool {
	return r.Got == r.Want
}

// Diff returns a line diff from Want to Got, empty when they agree.
func (r Result) Diff() string {
	if r.Equal() {
		return ""
	}
	return cmp.Diff(strings.Split(r.Want, "\n"), strings.Split(r.Got, "\n"))
}

// Check renders src with mdhtml and goldmark and normalizes both.
func Check(src string, opts ...mdhtml.Option) (Result, error) {
	doc, err := mdhtml.Parse(src, opts...)
	if err != nil {
		return Result{}, err
	}
	want, err := Reference(src)
	if err != nil {
		return Result{}, err
	}
	var res Result
	if res.Got, err = Normalize(doc.HTML()); err != nil {
		return Result{}, fmt.Errorf("normalize mdhtml output: %w", err)
	}
	if res.Want, err = Normalize(want); err != nil {
		return Result{}, fmt.Errorf("normalize reference output: %w", err)
	}
	return res, nil
}

// Reference renders src with goldmark's default CommonMark configuration.
func Reference(src string) (string, error) {
	var buf bytes.Buffer
	if err := reference.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("goldmark: %w", err)
	}
	return buf.String(), nil
}

var blockTags = map[atom.Atom]bool{
	atom.P:          true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Li:         true,
	atom.Blockquote: true,
	atom.Pre:        true,
	atom.Hr:         true,
}

// Normalize re-serializes an HTML fragment with every block-level tag on
// its own line and whitespace-only text between tags removed. Text inside
// <pre> is kept as is.
func Normalize(fragment string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	pre := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return strings.TrimPrefix(b.String(), "\n"), nil
			}
			return "", z.Err()
		}
		tok := z.Token()
		switch tt {
		case html.TextToken:
			if pre == 0 && strings.TrimSpace(tok.Data) == "" {
				continue
			}
			b.WriteString(tok.String())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// <hr /> and <hr> are the same element.
			if tt == html.SelfClosingTagToken {
				tok.Type = html.StartTagToken
			}
			if tok.DataAtom == atom.Pre {
				if tt == html.StartTagToken {
					pre++
				} else if tt == html.EndTagToken && pre > 0 {
					pre--
				}
			}
			if blockTags[tok.DataAtom] {
				b.WriteByte('\n')
			}
			b.WriteString(tok.String())
		default:
			b.WriteString(tok.String())
		}
	}
}
