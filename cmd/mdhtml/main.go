package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdhtml"
	"pkt.systems/mdhtml/internal/conformance"
	"pkt.systems/version"
)

const defaultTimeout = 30 * time.Second

func init() {
	version.SetDefaultModule("pkt.systems/mdhtml")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		outPath     string
		maxDepth    int
		frontMatter bool
		tree        bool
		widthFlag   int
		check       bool
		debug       bool
		timeout     time.Duration
		showVersion bool
	)

	flags := pflag.NewFlagSet("mdhtml", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.IntVar(&maxDepth, "max-depth", mdhtml.DefaultMaxDepth, "Maximum nesting of block quotes and list items")
	flags.BoolVar(&frontMatter, "front-matter", false, "Strip leading YAML/TOML/JSON front matter")
	flags.BoolVar(&tree, "tree", false, "Print the block tree instead of HTML")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Line width for --tree (0 uses terminal width if available)")
	flags.BoolVar(&check, "check", false, "Compare the HTML with the goldmark CommonMark rendering")
	flags.BoolVar(&debug, "debug", false, "Log parser diagnostics to stderr")
	flags.DurationVar(&timeout, "timeout", defaultTimeout, "Timeout for http(s) inputs")
	flags.BoolVarP(&showVersion, "version", "v", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdhtml [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nInputs are files, file:// or http(s):// URLs, or - for stdin.")
		fmt.Fprintln(stderr, "If no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(argv); err != nil {
		return 2
	}
	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	args := flags.Args()
	if len(args) == 0 && isTerminal(stdin) {
		fmt.Fprintln(stderr, "refusing to read Markdown from a terminal")
		flags.Usage()
		return 2
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	client := &http.Client{Timeout: timeout}
	reader, closer, err := openInputs(args, stdin, client)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	src, err := io.ReadAll(reader)
	if err != nil {
		fmt.Fprintf(stderr, "read input: %v\n", err)
		return 1
	}
	if err := mdhtml.ValidateInput(src); err != nil {
		fmt.Fprintf(stderr, "mdhtml: %v\n", err)
		return 1
	}

	opts := []mdhtml.Option{
		mdhtml.WithMaxDepth(maxDepth),
		mdhtml.WithLogger(logger),
		mdhtml.WithFrontMatter(frontMatter),
	}

	if check {
		res, err := conformance.Check(string(src), opts...)
		if err != nil {
			fmt.Fprintf(stderr, "mdhtml: %v\n", err)
			return 1
		}
		if !res.Equal() {
			fmt.Fprintf(stderr, "mdhtml: output differs from reference (-reference +mdhtml):\n%s", res.Diff())
			return 1
		}
		fmt.Fprintln(stdout, "conformance: ok")
		return 0
	}

	doc, err := mdhtml.Parse(string(src), opts...)
	if err != nil {
		fmt.Fprintf(stderr, "mdhtml: %v\n", err)
		return 1
	}

	writer, closeOut, err := resolveOutput(outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	if tree {
		err = mdhtml.Dump(writer, doc, resolveWidth(widthFlag, writer))
	} else {
		err = mdhtml.RenderHTML(writer, doc)
	}
	if err != nil {
		fmt.Fprintf(stderr, "write: %v\n", err)
		return 1
	}
	return 0
}

func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	return terminalWidth(w, 0)
}

func terminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if width, _, err := term.GetSize(fd); err == nil && width > 0 {
				return width
			}
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if width, err := strconv.Atoi(value); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

// multiInputReader reads its sources one after another and separates them
// with a newline when a source does not end in one.
type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
	last      byte
	pendingNL bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if len(p) == 0 {
			return 0, nil
		}
		if m.pendingNL {
			m.pendingNL = false
			m.last = '\n'
			p[0] = '\n'
			return 1, nil
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			m.last = p[n-1]
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			if m.last != 0 && m.last != '\n' && m.idx < len(m.sources) {
				m.pendingNL = true
			}
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string, stdin io.Reader, client *http.Client) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw, stdin, client)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string, stdin io.Reader, client *http.Client) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return inputSource{open: func() (io.Reader, io.Closer, error) {
			return stdin, nil, nil
		}}, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw, client)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string, client *http.Client) (io.Reader, io.Closer, error) {
	body, err := mdhtml.OpenURL(context.Background(), client, raw)
	if err != nil {
		return nil, nil, err
	}
	return body, body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" || path == "-" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
