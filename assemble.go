package mdhtml

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrNestingTooDeep is returned when block quotes and list items nest deeper
// than the configured maximum.
var ErrNestingTooDeep = errors.New("nesting too deep")

type lineMode uint8

const (
	modeNormal lineMode = iota
	// modeItem marks the first line of a list item.
	modeItem
	// modeLazy marks a paragraph continuation line without container markers.
	modeLazy
	// modeSplit marks a list marker that closes the open list and starts
	// another one, even when both have the same type.
	modeSplit
)

// assembler groups the lines of one container level into blocks. Nested
// containers run their own assembler over their content.
type assembler struct {
	cfg   *config
	ctx   *Context
	depth int

	open BlockType
	acc  []Token

	// count is the number of items after the first in an open numbered list.
	count uint64
	// contentCol is the content column of the open list item.
	contentCol int
	// inner holds the blocks open inside the current container; lazy
	// continuation requires a paragraph at its bottom.
	inner openChain
	// emptyItem is set while the open list item has no content; a blank line
	// then closes the item.
	emptyItem  bool
	itemClosed bool
	lastBlank  bool
	// gap records a blank line between two blocks of this level.
	gap bool

	blocks []Block
	err    error
}

// parseBlocks runs the assembler over tokens at the given nesting depth. It
// reports whether blank lines separated any two of the resulting blocks.
func parseBlocks(tokens []Token, cfg *config, ctx *Context, depth int) ([]Block, bool, error) {
	if depth > cfg.maxDepth {
		return nil, false, fmt.Errorf("%w: limit %d", ErrNestingTooDeep, cfg.maxDepth)
	}
	a := &assembler{cfg: cfg, ctx: ctx, depth: depth}
	for _, line := range ToLines(tokens) {
		a.feed(line)
		if a.err != nil {
			return nil, false, a.err
		}
	}
	a.flush()
	if a.err != nil {
		return nil, false, a.err
	}
	return a.blocks, a.gap, nil
}

func (a *assembler) feed(line Line) {
	blank := line.IsBlank()
	if a.open.Kind == KindParagraph && len(a.acc) == 0 {
		a.reset()
	}

	typ, mode := a.resolve(line, blank)
	if a.open.Kind != KindNone && (mode == modeSplit || a.terminates(typ, blank)) {
		a.flush()
		if a.err != nil {
			return
		}
		typ, mode = Classify(line, BlockType{}), modeNormal
	}
	if len(a.acc) == 0 && typ.Kind == KindSetextHeader {
		typ = degradeSetext(line, typ)
	}
	if blank && typ.endsOnBlank() {
		a.lastBlank = true
		return
	}
	if typ != a.open {
		a.begin(typ)
		if typ.Kind == KindList {
			mode = modeItem
		}
	}
	a.add(line, typ, mode, blank)
	if typ.singleLine() {
		a.flush()
	}
	a.lastBlank = blank
}

// resolve classifies line against the open block. Lists and block quotes
// decide their own continuation.
func (a *assembler) resolve(line Line, blank bool) (BlockType, lineMode) {
	switch a.open.Kind {
	case KindList:
		return a.resolveList(line, blank)
	case KindBlockQuote:
		return a.resolveQuote(line, blank)
	}
	typ := Classify(line, a.open)
	if a.open.Kind == KindParagraph && typ.Kind == KindList && !interruptsParagraph(line) {
		typ = a.open
	}
	return typ, modeNormal
}

func (a *assembler) resolveList(line Line, blank bool) (BlockType, lineMode) {
	if blank {
		return a.open, modeNormal
	}
	if indent, _ := line.Indent(); indent >= a.contentCol && !a.itemClosed {
		return a.open, modeNormal
	}
	typ := classifyUnmarked(line)
	if typ.Kind == KindList && typ.List.Kind == a.open.List.Kind {
		if !typ.List.Ordered() || typ.List.Start == a.open.List.Start+a.count+1 {
			a.count++
			return a.open, modeItem
		}
		return typ, modeSplit
	}
	if !a.lastBlank && a.lazyAllowed(typ) {
		return a.open, modeLazy
	}
	return typ, modeNormal
}

func (a *assembler) resolveQuote(line Line, blank bool) (BlockType, lineMode) {
	if blank {
		return a.open, modeNormal
	}
	typ := classifyUnmarked(line)
	if typ.Kind == KindBlockQuote {
		return a.open, modeNormal
	}
	if a.lazyAllowed(typ) {
		return a.open, modeLazy
	}
	return typ, modeNormal
}

// lazyAllowed reports whether a line of unmarked type typ continues a
// paragraph open somewhere inside the current container.
func (a *assembler) lazyAllowed(typ BlockType) bool {
	return a.inner.paragraphOpen() && lazyType(typ)
}

func lazyType(typ BlockType) bool {
	return typ.Kind == KindParagraph || typ.Kind == KindIndentedCode
}

// classifyUnmarked classifies a line that lacks the open container's
// markers. Such a line has no paragraph above it to underline.
func classifyUnmarked(line Line) BlockType {
	typ := Classify(line, BlockType{})
	if typ.Kind == KindSetextHeader {
		typ = degradeSetext(line, typ)
	}
	return typ
}

func (a *assembler) terminates(typ BlockType, blank bool) bool {
	if blank && a.open.endsOnBlank() {
		return true
	}
	return typ != a.open && !typ.TakesOver(a.open)
}

// degradeSetext resolves an underline with nothing above it: '=' lines are
// paragraph text, '-' lines are whatever they are without setext rules.
func degradeSetext(line Line, typ BlockType) BlockType {
	if typ.Level == 1 {
		return paragraphType
	}
	_, idx := line.Indent()
	return classifyMarker(line[idx:], paragraphType, false)
}

func (a *assembler) begin(typ BlockType) {
	if a.lastBlank && len(a.blocks) > 0 {
		a.gap = true
	}
	a.open = typ
	a.count = 0
	a.contentCol = 0
	a.inner = nil
	a.emptyItem = false
	a.itemClosed = false
}

// add strips the markers of typ from line and appends the rest.
func (a *assembler) add(line Line, typ BlockType, mode lineMode, blank bool) {
	if mode == modeLazy {
		a.push(line.flatten())
		return
	}
	switch typ.Kind {
	case KindParagraph:
		a.push(line.TrimLeft())
	case KindHeader:
		a.push(headingContent(line))
	case KindSetextHeader:
		a.push(nil)
	case KindIndentedCode:
		a.push(line.TrimColumns(tabStop))
	case KindBlockQuote:
		content := stripQuoteMarker(line)
		a.push(content)
		a.inner = a.inner.next(content, a.cfg.maxDepth)
	case KindList:
		a.push(line)
		switch {
		case mode == modeItem:
			st, _ := listItemStart(line)
			a.contentCol = st.contentCol
			a.emptyItem = st.content.IsBlank()
			a.itemClosed = false
			a.inner = startChain(st.content, nil, a.cfg.maxDepth)
		case blank:
			if a.emptyItem {
				a.itemClosed = true
			}
			a.inner = a.inner.next(line, a.cfg.maxDepth)
		default:
			a.emptyItem = false
			a.inner = a.inner.next(line.TrimColumns(a.contentCol), a.cfg.maxDepth)
		}
	}
}

func (a *assembler) push(content Line) {
	if len(a.acc) > 0 {
		a.acc = append(a.acc, newlineToken)
	}
	a.acc = append(a.acc, content...)
}

func (a *assembler) reset() {
	a.open = BlockType{}
	a.acc = nil
	a.count = 0
	a.contentCol = 0
	a.inner = nil
	a.emptyItem = false
	a.itemClosed = false
}

func (a *assembler) flush() {
	if a.open.Kind != KindNone && (len(a.acc) > 0 || a.open.AllowsEmpty()) {
		if a.cfg.logger.Enabled(context.Background(), slog.LevelDebug) {
			a.cfg.logger.Debug("block closed",
				slog.String("kind", a.open.String()),
				slog.Int("depth", a.depth),
				slog.Int("tokens", len(a.acc)),
			)
		}
		b, err := a.build(a.open, a.acc)
		if err != nil {
			a.err = err
		} else {
			a.blocks = append(a.blocks, b)
		}
	}
	a.reset()
}

// build turns a closed accumulation into a block, recursing into containers.
func (a *assembler) build(typ BlockType, tokens []Token) (Block, error) {
	switch typ.Kind {
	case KindParagraph:
		return &Paragraph{Inlines: a.inlines(Line(tokens).TrimRight())}, nil
	case KindHeader:
		return &Heading{Level: typ.Level, Inlines: a.inlines(tokens)}, nil
	case KindSetextHeader:
		content := Line(tokens)
		if n := len(content); n > 0 && content[n-1].Kind == TokenNewLine {
			content = content[:n-1]
		}
		content = content.TrimRight()
		if len(content) == 0 {
			return &ThematicBreak{}, nil
		}
		return &Heading{Level: typ.Level, Inlines: a.inlines(content)}, nil
	case KindThematicBreak:
		return &ThematicBreak{}, nil
	case KindIndentedCode:
		return &CodeBlock{Literal: codeLiteral(tokens)}, nil
	case KindBlockQuote:
		children, _, err := parseBlocks(tokens, a.cfg, a.ctx, a.depth+1)
		if err != nil {
			return nil, err
		}
		return &BlockQuote{Children: children}, nil
	case KindList:
		list, err := splitList(tokens, typ.List, a.cfg, a.ctx, a.depth+1)
		if err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, fmt.Errorf("unexpected block kind %s", typ.Kind)
}

func (a *assembler) inlines(tokens []Token) []Inline {
	return a.cfg.inline.ProcessInlines(tokens, a.ctx)
}

// openBlock is one block left open by the lines seen so far.
type openBlock struct {
	typ BlockType
	// col is the content column of an open list item.
	col int
}

// openChain lists the blocks open inside a container, outermost first. It
// follows nested containers far enough to tell whether a paragraph is still
// open at the bottom.
type openChain []openBlock

func (c openChain) paragraphOpen() bool {
	return len(c) > 0 && c[len(c)-1].typ.Kind == KindParagraph
}

// lazy reports whether line, which lacks the markers of the containers in c,
// continues the paragraph at the bottom of c.
func (c openChain) lazy(line Line) bool {
	return c.paragraphOpen() && lazyType(classifyUnmarked(line))
}

// next returns the chain after content, a line with the markers of the
// enclosing containers removed, is added. Chains stop growing at limit.
func (c openChain) next(content Line, limit int) openChain {
	return c.advance(content, make(openChain, 0, len(c)+1), limit)
}

// advance appends to out the blocks of c that line keeps open, followed by
// any blocks it starts.
func (c openChain) advance(line Line, out openChain, limit int) openChain {
	if len(c) == 0 {
		return startChain(line, out, limit)
	}
	top := c[0]
	blank := line.IsBlank()
	switch top.typ.Kind {
	case KindBlockQuote:
		switch {
		case blank:
			return out
		case classifyUnmarked(line).Kind == KindBlockQuote:
			return c[1:].advance(stripQuoteMarker(line), append(out, top), limit)
		case c.lazy(line):
			return append(out, c...)
		}
	case KindList:
		if blank {
			return append(out, top)
		}
		if indent, _ := line.Indent(); indent >= top.col {
			return c[1:].advance(line.TrimColumns(top.col), append(out, top), limit)
		}
		if c.lazy(line) {
			return append(out, c...)
		}
	case KindIndentedCode:
		if blank || Classify(line, top.typ) == top.typ {
			return append(out, top)
		}
	case KindParagraph:
		if blank {
			return out
		}
		typ := Classify(line, top.typ)
		switch {
		case typ.Kind == KindParagraph, typ.Kind == KindList && !interruptsParagraph(line):
			return append(out, top)
		case typ.Kind == KindSetextHeader:
			return out
		}
	}
	return startChain(line, out, limit)
}

// startChain appends to out the blocks line opens when nothing is open.
func startChain(line Line, out openChain, limit int) openChain {
	if line.IsBlank() || len(out) >= limit {
		return out
	}
	typ := classifyUnmarked(line)
	switch typ.Kind {
	case KindBlockQuote:
		return startChain(stripQuoteMarker(line), append(out, openBlock{typ: typ}), limit)
	case KindList:
		st, _ := listItemStart(line)
		return startChain(st.content, append(out, openBlock{typ: typ, col: st.contentCol}), limit)
	}
	if typ.singleLine() {
		return out
	}
	return append(out, openBlock{typ: typ})
}

// headingContent removes the opening '#' run of an ATX heading, surrounding
// whitespace and a closing '#' run that is preceded by whitespace.
func headingContent(line Line) Line {
	_, i := line.Indent()
	for i < len(line) && line[i].Kind == TokenHash {
		i++
	}
	content := line[i:].TrimLeft().TrimRight()
	j := len(content)
	for j > 0 && content[j-1].Kind == TokenHash {
		j--
	}
	switch {
	case j == len(content):
		return content
	case j == 0:
		return content[:0]
	case content[j-1].isWhitespace():
		return content[:j].TrimRight()
	}
	return content
}

// stripQuoteMarker removes up to three columns of indentation, the '>' and
// one following column of whitespace.
func stripQuoteMarker(line Line) Line {
	indent, idx := line.Indent()
	if indent >= tabStop || idx >= len(line) || !line[idx].isQuoteMarker() {
		return line
	}
	return trimIndent(line[idx+1:], 1, indent+1)
}

// codeLiteral joins the lines of an indented code block without its leading
// and trailing blank lines.
func codeLiteral(tokens []Token) string {
	lines := ToLines(tokens)
	for len(lines) > 0 && lines[0].IsBlank() {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1].IsBlank() {
		lines = lines[:len(lines)-1]
	}
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, tok := range l {
			b.WriteString(tok.Surface())
		}
	}
	return b.String()
}
