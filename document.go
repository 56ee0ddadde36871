package mdhtml

import (
	"fmt"
	"strings"
)

// Context is parse-wide state shared with the inline processor. It is
// written before block parsing starts and only read afterwards.
type Context struct {
	// FrontMatter holds decoded front matter when WithFrontMatter is set
	// and the document starts with a front matter block.
	FrontMatter map[string]any
}

// Document is the root of a parsed block tree.
type Document struct {
	Blocks  []Block
	Context Context
}

// Parse converts Markdown text into a block tree. Parsing only fails when
// containers nest deeper than the configured limit (ErrNestingTooDeep).
func Parse(text string, opts ...Option) (*Document, error) {
	cfg := newConfig(opts)
	text = normalizeNewlines(text)
	doc := &Document{}
	if cfg.frontMatter {
		if fm, ok := splitFrontMatter(text); ok {
			text = fm.body
			meta, err := fm.decode()
			if err != nil {
				cfg.logger.Warn("front matter not decoded", "format", fm.format, "error", err)
			} else {
				doc.Context.FrontMatter = meta
			}
		}
	}
	return parseDocument(doc, Tokenize(text), cfg)
}

// ParseTokens builds a block tree from tokens produced by Tokenize.
func ParseTokens(tokens []Token, opts ...Option) (*Document, error) {
	return parseDocument(&Document{}, tokens, newConfig(opts))
}

func parseDocument(doc *Document, tokens []Token, cfg *config) (*Document, error) {
	blocks, _, err := parseBlocks(tokens, cfg, &doc.Context, 0)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	doc.Blocks = blocks
	return doc, nil
}

func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
