package mdhtml

const tabStop = 4

// Line is one logical line of tokens without its terminating newline.
type Line []Token

// ToLines splits tokens on newlines. The newline tokens are dropped. An empty
// final line is kept only when the input ended in a newline that followed a
// non-blank line.
func ToLines(tokens []Token) []Line {
	var lines []Line
	start := 0
	for i, tok := range tokens {
		if tok.Kind != TokenNewLine {
			continue
		}
		lines = append(lines, Line(tokens[start:i:i]))
		start = i + 1
	}
	rest := Line(tokens[start:len(tokens):len(tokens)])
	if len(rest) > 0 || (len(lines) > 0 && !lines[len(lines)-1].IsBlank()) {
		lines = append(lines, rest)
	}
	return lines
}

// IsBlank reports whether the line holds only spaces and tabs.
func (l Line) IsBlank() bool {
	for _, tok := range l {
		if !tok.isWhitespace() {
			return false
		}
	}
	return true
}

// Indent returns the width in columns of the leading whitespace, expanding
// tabs to the next multiple of four, and the index of the first other token.
func (l Line) Indent() (cols int, idx int) {
	return leadingIndentCount(l, 0)
}

// LeadingSpaces returns the indentation in columns and the same value capped
// for marker recognition: up to three columns are allowed before a block
// marker, four or more yield ok=false.
func (l Line) LeadingSpaces() (cols int, ok bool) {
	cols, _ = l.Indent()
	return cols, cols < tabStop
}

// TrimColumns removes n columns of leading whitespace. A tab that straddles
// the boundary leaves the remainder of its width as spaces.
func (l Line) TrimColumns(n int) Line {
	return trimIndent(l, n, 0)
}

// TrimLeft drops all leading whitespace.
func (l Line) TrimLeft() Line {
	_, idx := l.Indent()
	return l[idx:]
}

// TrimRight drops all trailing whitespace.
func (l Line) TrimRight() Line {
	end := len(l)
	for end > 0 && l[end-1].isWhitespace() {
		end--
	}
	return l[:end]
}

func (l Line) String() string {
	return surfaceOf(l)
}

// leadingIndentCount measures leading whitespace of l as if l started at
// column col.
func leadingIndentCount(l Line, col int) (int, int) {
	start := col
	i := 0
	for i < len(l) {
		switch l[i].Kind {
		case TokenSpace:
			col++
		case TokenTab:
			col += tabStop - col%tabStop
		default:
			return col - start, i
		}
		i++
	}
	return col - start, i
}

// trimIndent removes count columns of whitespace from l, which starts at
// column col. When the cut does not land on a tab stop, leading tabs of the
// remainder are rewritten as spaces so they keep their original width.
func trimIndent(l Line, count int, col int) Line {
	i, pad := 0, 0
loop:
	for i < len(l) && count > 0 {
		switch l[i].Kind {
		case TokenSpace:
			count--
			col++
		case TokenTab:
			width := tabStop - col%tabStop
			col += width
			if width > count {
				pad = width - count
				count = 0
			} else {
				count -= width
			}
		default:
			break loop
		}
		i++
	}
	rest := l[i:]
	if pad == 0 && (col%tabStop == 0 || !hasLeadingTab(rest)) {
		return rest
	}
	return expandLeading(rest, pad, col)
}

// expandLeading returns rest prefixed by pad spaces with its leading tabs
// replaced by spaces, measuring tab stops from column col.
func expandLeading(rest Line, pad int, col int) Line {
	out := make(Line, 0, pad+len(rest)+tabStop)
	for j := 0; j < pad; j++ {
		out = append(out, spaceToken)
	}
	j := 0
	for ; j < len(rest); j++ {
		width := 1
		switch rest[j].Kind {
		case TokenSpace:
		case TokenTab:
			width = tabStop - col%tabStop
		default:
			return append(out, rest[j:]...)
		}
		for k := 0; k < width; k++ {
			out = append(out, spaceToken)
		}
		col += width
	}
	return out
}

func hasLeadingTab(l Line) bool {
	for _, tok := range l {
		switch tok.Kind {
		case TokenTab:
			return true
		case TokenSpace:
		default:
			return false
		}
	}
	return false
}

// flatten keeps leading whitespace and folds the rest of the line into a
// single text token so it can no longer be read as a block marker.
func (l Line) flatten() Line {
	_, idx := l.Indent()
	if idx >= len(l) {
		return l
	}
	out := make(Line, 0, idx+1)
	out = append(out, l[:idx]...)
	return append(out, Token{Kind: TokenText, Text: surfaceOf(l[idx:])})
}
