package conformance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/mdhtml"
)

func TestCheckBlockDocuments(t *testing.T) {
	docs := []string{
		"# Title\n\nText\nmore text\n\n---\n",
		"> quote\nlazy\n\n> > nested\n",
		"- a\n- b\n\n1. one\n2. two\n",
		"- a\n\n- b\n  continued\n",
		"    code\n      more\n\nafter\n",
		"Setext\n======\n\nTwo\n---\n",
		"10) start\n11) next\n",
		"- foo\n  - bar\n    - baz\n\n\n      bim\n",
		">> z\n>     c\na\n",
		"- > w\nb\n      d\na\n",
		"-\n\n  foo\n",
		"- y\n-\n\n  r\n",
	}
	for _, src := range docs {
		res, err := Check(src)
		if err != nil {
			t.Fatalf("check %q: %v", src, err)
		}
		if !res.Equal() {
			t.Fatalf("mismatch for %q (-reference +mdhtml):\n%s", src, res.Diff())
		}
	}
}

func TestCheckGoldenInputs(t *testing.T) {
	paths, err := filepath.Glob("../../testdata/*.md")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	for _, path := range paths {
		if strings.Contains(filepath.Base(path), "frontmatter") {
			continue
		}
		src, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		res, err := Check(string(src))
		if err != nil {
			t.Fatalf("check %s: %v", path, err)
		}
		if !res.Equal() {
			t.Fatalf("mismatch for %s (-reference +mdhtml):\n%s", path, res.Diff())
		}
	}
}

func TestCheckReportsInlineDifferences(t *testing.T) {
	res, err := Check("some *emphasis* here\n")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.Equal() {
		t.Fatalf("expected inline markup to differ")
	}
	if !strings.Contains(res.Diff(), "<em>") {
		t.Fatalf("expected diff to show reference markup, got:\n%s", res.Diff())
	}
}

func TestCheckPropagatesParseErrors(t *testing.T) {
	if _, err := Check("> > > x", mdhtml.WithMaxDepth(1)); err == nil {
		t.Fatalf("expected nesting error")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"<hr />", "<hr>"},
		{"<ul>\n<li>a</li>\n</ul>\n", "<ul><li>a</li></ul>"},
		{"<ol start=\"3\">\n<li>x</li>\n</ol>", "<ol start=3><li>x</li></ol>"},
		{"<p>a &amp; b</p>", "<p>a &amp; b</p>\n"},
	}
	for _, tc := range tests {
		a, err := Normalize(tc.a)
		if err != nil {
			t.Fatalf("normalize %q: %v", tc.a, err)
		}
		b, err := Normalize(tc.b)
		if err != nil {
			t.Fatalf("normalize %q: %v", tc.b, err)
		}
		if a != b {
			t.Fatalf("normalized forms differ\n%q\n%q", a, b)
		}
	}
	got, err := Normalize("<pre><code>a\n\n  b\n</code></pre>")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != "<pre><code>a\n\n  b\n</code>\n</pre>" {
		t.Fatalf("pre content changed: %q", got)
	}
}
