package mdhtml

import (
	"os"
	"testing"
)

func renderString(t *testing.T, src string, opts ...Option) string {
	t.Helper()
	doc, err := Parse(src, opts...)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return doc.HTML()
}

func readSample(t testing.TB, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}
