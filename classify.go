package mdhtml

import "strconv"

// BlockKind identifies the structural role of a run of lines.
type BlockKind uint8

const (
	KindNone BlockKind = iota
	KindParagraph
	KindBlockQuote
	KindList
	KindListItem
	KindThematicBreak
	KindHeader
	KindSetextHeader
	KindIndentedCode
)

var blockKindNames = [...]string{
	KindNone:          "None",
	KindParagraph:     "Paragraph",
	KindBlockQuote:    "BlockQuote",
	KindList:          "List",
	KindListItem:      "ListItem",
	KindThematicBreak: "ThematicBreak",
	KindHeader:        "Header",
	KindSetextHeader:  "SetextHeader",
	KindIndentedCode:  "IndentedCode",
}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "BlockKind(" + strconv.Itoa(int(k)) + ")"
}

// ListKind identifies the marker style of a list.
type ListKind uint8

const (
	ListNone ListKind = iota
	// ListNumber is "1." style.
	ListNumber
	// ListBracketedNumber is "1)" style.
	ListBracketedNumber
	ListDash
	ListStar
	ListPlus
)

var listKindNames = [...]string{
	ListNone:            "None",
	ListNumber:          "Number",
	ListBracketedNumber: "BracketedNumber",
	ListDash:            "Dash",
	ListStar:            "Star",
	ListPlus:            "Plus",
}

func (k ListKind) String() string {
	if int(k) < len(listKindNames) {
		return listKindNames[k]
	}
	return "ListKind(" + strconv.Itoa(int(k)) + ")"
}

// ListType is a list marker style plus, for ordered lists, the counter of
// the first item. Lists continue while the Kind matches; Start is compared
// separately against the expected counter.
type ListType struct {
	Kind  ListKind
	Start uint64
}

// Ordered reports whether the list uses numbered markers.
func (t ListType) Ordered() bool {
	return t.Kind == ListNumber || t.Kind == ListBracketedNumber
}

func (t ListType) String() string {
	if t.Ordered() {
		return t.Kind.String() + "(" + strconv.FormatUint(t.Start, 10) + ")"
	}
	return t.Kind.String()
}

// BlockType is the classification of a line or an open block. It is
// comparable with ==; the zero value means no block is open.
type BlockType struct {
	Kind  BlockKind
	Level int
	List  ListType
}

// AllowsEmpty reports whether a block of this type is emitted without
// content.
func (b BlockType) AllowsEmpty() bool {
	switch b.Kind {
	case KindHeader, KindThematicBreak, KindBlockQuote:
		return true
	}
	return false
}

// TakesOver reports whether a line of type b may adopt the content of the
// open block instead of terminating it. Only a setext underline taking over
// a paragraph qualifies.
func (b BlockType) TakesOver(open BlockType) bool {
	return b.Kind == KindSetextHeader && open.Kind == KindParagraph
}

func (b BlockType) endsOnBlank() bool {
	return b.Kind != KindList && b.Kind != KindIndentedCode
}

func (b BlockType) singleLine() bool {
	switch b.Kind {
	case KindHeader, KindThematicBreak, KindSetextHeader:
		return true
	}
	return false
}

func (b BlockType) String() string {
	switch b.Kind {
	case KindHeader, KindSetextHeader:
		return b.Kind.String() + "(" + strconv.Itoa(b.Level) + ")"
	case KindList:
		return "List(" + b.List.String() + ")"
	}
	return b.Kind.String()
}

var (
	paragraphType     = BlockType{Kind: KindParagraph}
	blockQuoteType    = BlockType{Kind: KindBlockQuote}
	thematicBreakType = BlockType{Kind: KindThematicBreak}
	indentedCodeType  = BlockType{Kind: KindIndentedCode}
)

// maxListDigits bounds ordered list markers; longer digit runs are text.
const maxListDigits = 9

// Classify returns the block type line would start given the open block
// type, or the fallback when the line starts nothing: an open list or block
// quote propagates, an open indented code block propagates for blank lines
// only, anything else falls back to a paragraph.
func Classify(line Line, open BlockType) BlockType {
	blank := line.IsBlank()
	fallback := fallbackType(open, blank)
	if blank {
		return fallback
	}
	indent, idx := line.Indent()
	if indent >= tabStop {
		if open.Kind != KindList && open.Kind != KindParagraph {
			return indentedCodeType
		}
		return fallback
	}
	return classifyMarker(line[idx:], fallback, fallback.Kind == KindParagraph)
}

func fallbackType(open BlockType, blank bool) BlockType {
	switch open.Kind {
	case KindList, KindBlockQuote:
		return open
	case KindIndentedCode:
		if blank {
			return open
		}
	}
	return paragraphType
}

// classifyMarker matches block markers at the start of rest, which has had
// its indentation removed and is not blank. Setext underlines are only
// considered when setext is set.
func classifyMarker(rest Line, fallback BlockType, setext bool) BlockType {
	if setext {
		if level, ok := setextUnderline(rest); ok {
			return BlockType{Kind: KindSetextHeader, Level: level}
		}
	}
	if isThematicBreak(rest) {
		return thematicBreakType
	}
	if level, ok := parseHeading(rest); ok {
		return BlockType{Kind: KindHeader, Level: level}
	}
	if rest[0].isQuoteMarker() {
		return blockQuoteType
	}
	if lt, _, ok := parseListMarker(rest); ok {
		return BlockType{Kind: KindList, List: lt}
	}
	return fallback
}

// setextUnderline matches a single run of '=' (level 1) or '-' (level 2)
// followed only by whitespace.
func setextUnderline(rest Line) (int, bool) {
	if len(rest) == 0 {
		return 0, false
	}
	var level int
	switch rest[0].Kind {
	case TokenEquals:
		level = 1
	case TokenDash:
		level = 2
	default:
		return 0, false
	}
	i := 1
	for i < len(rest) && rest[i].Kind == rest[0].Kind {
		i++
	}
	if !Line(rest[i:]).IsBlank() {
		return 0, false
	}
	return level, true
}

// isThematicBreak matches three or more of the same '-', '_' or '*' with
// optional spaces and tabs between them.
func isThematicBreak(rest Line) bool {
	if len(rest) == 0 {
		return false
	}
	ch := rest[0].Kind
	if ch != TokenDash && ch != TokenUnderscore && ch != TokenStar {
		return false
	}
	count := 0
	for _, tok := range rest {
		switch {
		case tok.Kind == ch:
			count++
		case tok.isWhitespace():
		default:
			return false
		}
	}
	return count >= 3
}

// parseHeading matches an ATX opening sequence of one to six '#' followed by
// whitespace or the end of the line.
func parseHeading(rest Line) (int, bool) {
	level := 0
	for level < len(rest) && rest[level].Kind == TokenHash {
		level++
	}
	if level == 0 || level > 6 {
		return 0, false
	}
	if level < len(rest) && !rest[level].isWhitespace() {
		return 0, false
	}
	return level, true
}

// parseListMarker matches a bullet or ordered list marker at the start of
// rest and returns the list type and the number of marker tokens.
func parseListMarker(rest Line) (ListType, int, bool) {
	if len(rest) == 0 {
		return ListType{}, 0, false
	}
	var lt ListType
	n := 1
	switch rest[0].Kind {
	case TokenDash:
		lt.Kind = ListDash
	case TokenStar:
		lt.Kind = ListStar
	case TokenPlus:
		lt.Kind = ListPlus
	case TokenNumber:
		if len(rest[0].Text) > maxListDigits || len(rest) < 2 {
			return ListType{}, 0, false
		}
		start, ok := rest[0].Value()
		if !ok {
			return ListType{}, 0, false
		}
		switch {
		case rest[1].Kind == TokenDot:
			lt.Kind = ListNumber
		case rest[1].Kind == TokenCloseBracket && rest[1].Bracket == BracketParen:
			lt.Kind = ListBracketedNumber
		default:
			return ListType{}, 0, false
		}
		lt.Start = start
		n = 2
	default:
		return ListType{}, 0, false
	}
	if n < len(rest) && !rest[n].isWhitespace() {
		return ListType{}, 0, false
	}
	return lt, n, true
}

// markerWidth returns the width in columns of the first n tokens of rest.
func markerWidth(rest Line, n int) int {
	w := 0
	for i := 0; i < n && i < len(rest); i++ {
		w += len(rest[i].Surface())
	}
	return w
}

// itemStart describes the first line of a list item.
type itemStart struct {
	list       ListType
	indent     int
	contentCol int
	content    Line
	empty      bool
}

// listItemStart parses line as the first line of a list item. The content
// column is the column after the marker and the spaces that follow it; when
// those spaces are five or more, or the item has no content, it is one
// column past the marker.
func listItemStart(line Line) (itemStart, bool) {
	indent, idx := line.Indent()
	if indent >= tabStop {
		return itemStart{}, false
	}
	rest := line[idx:]
	lt, n, ok := parseListMarker(rest)
	if !ok {
		return itemStart{}, false
	}
	markerEnd := indent + markerWidth(rest, n)
	after := rest[n:]
	st := itemStart{list: lt, indent: indent}
	spaces, sidx := leadingIndentCount(after, markerEnd)
	switch {
	case sidx >= len(after):
		st.contentCol = markerEnd + 1
		st.empty = true
	case spaces > tabStop:
		st.contentCol = markerEnd + 1
		st.content = trimIndent(after, 1, markerEnd)
	default:
		st.contentCol = markerEnd + spaces
		st.content = after[sidx:]
	}
	return st, true
}

// interruptsParagraph reports whether a list item starting on line may end
// an open paragraph: it must have content and, when ordered, start at 1.
func interruptsParagraph(line Line) bool {
	st, ok := listItemStart(line)
	if !ok || st.empty {
		return false
	}
	return !st.list.Ordered() || st.list.Start == 1
}
