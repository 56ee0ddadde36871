package mdhtml

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := Convert(ConvertRequest{
		Reader: strings.NewReader("# Hi\n\n> quoted\n"),
		Writer: &out,
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := "<h1>Hi</h1>\n<blockquote>\n<p>quoted</p>\n</blockquote>\n"
	if got := out.String(); got != want {
		t.Fatalf("convert mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := Convert(ConvertRequest{Writer: &out}); err == nil {
		t.Fatalf("expected error for nil reader")
	}
	if err := Convert(ConvertRequest{Reader: strings.NewReader("x")}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	err := Convert(ConvertRequest{Reader: strings.NewReader("\xff"), Writer: &out})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	err = Convert(ConvertRequest{
		Reader:  strings.NewReader("> > > x"),
		Writer:  &out,
		Options: []Option{WithMaxDepth(1)},
	})
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("expected ErrNestingTooDeep, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on error, got %q", out.String())
	}
}

func TestHTTPConvert(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/doc.md" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("- one\n- two\n"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := HTTPConvert(context.Background(), HTTPConvertRequest{
		URL:    srv.URL + "/doc.md",
		Client: srv.Client(),
		Writer: &out,
	})
	if err != nil {
		t.Fatalf("http convert: %v", err)
	}
	if got, want := out.String(), "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n"; got != want {
		t.Fatalf("convert mismatch\nwant: %q\n got: %q", want, got)
	}

	out.Reset()
	err = HTTPConvert(context.Background(), HTTPConvertRequest{
		URL:    srv.URL + "/missing.md",
		Client: srv.Client(),
		Writer: &out,
	})
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}

func TestHTTPConvertRejectsScheme(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := HTTPConvert(context.Background(), HTTPConvertRequest{
		URL:    "ftp://example.com/doc.md",
		Writer: &out,
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported scheme") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

func TestOpenURL(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone.md" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		_, _ = w.Write([]byte("body"))
	}))
	defer srv.Close()

	body, err := OpenURL(context.Background(), srv.Client(), srv.URL+"/doc.md")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	buf, err := io.ReadAll(body)
	_ = body.Close()
	if err != nil || string(buf) != "body" {
		t.Fatalf("unexpected body %q (%v)", buf, err)
	}

	if _, err := OpenURL(context.Background(), srv.Client(), srv.URL+"/gone.md"); err == nil || !strings.Contains(err.Error(), "410") {
		t.Fatalf("expected 410 error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := OpenURL(ctx, srv.Client(), srv.URL+"/doc.md"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
