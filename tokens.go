package mdhtml

import (
	"strconv"
	"strings"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind uint8

const (
	// TokenText is a run of literal text. Adjacent text merges.
	TokenText TokenKind = iota
	// TokenNumber is a run of ASCII digits. Adjacent digits merge.
	TokenNumber
	// TokenHash is '#'.
	TokenHash
	// TokenBang is '!'.
	TokenBang
	// TokenOpenBracket is one of '(' '[' '{' '<'; see Token.Bracket.
	TokenOpenBracket
	// TokenCloseBracket is one of ')' ']' '}' '>'; see Token.Bracket.
	TokenCloseBracket
	// TokenStar is '*'.
	TokenStar
	// TokenDash is '-'.
	TokenDash
	// TokenPlus is '+'.
	TokenPlus
	// TokenEquals is '='.
	TokenEquals
	// TokenDot is '.'.
	TokenDot
	// TokenUnderscore is '_'.
	TokenUnderscore
	// TokenBackTick is '`'.
	TokenBackTick
	// TokenTilde is '~'.
	TokenTilde
	// TokenEscape is a backslash that did not escape the following character.
	TokenEscape
	// TokenSpace is a single space.
	TokenSpace
	// TokenTab is a single horizontal tab.
	TokenTab
	// TokenNewLine separates lines.
	TokenNewLine
)

// Bracket distinguishes the four bracket pairs carried by bracket tokens.
type Bracket uint8

const (
	BracketNone Bracket = iota
	BracketParen
	BracketSquare
	BracketBrace
	BracketAngle
)

// Token is a lexical unit of Markdown source. Text and Number tokens carry
// their literal run in Text; every other kind stands for a single character.
type Token struct {
	Kind    TokenKind
	Bracket Bracket
	Text    string
}

var kindSurface = [...]string{
	TokenHash:       "#",
	TokenBang:       "!",
	TokenStar:       "*",
	TokenDash:       "-",
	TokenPlus:       "+",
	TokenEquals:     "=",
	TokenDot:        ".",
	TokenUnderscore: "_",
	TokenBackTick:   "`",
	TokenTilde:      "~",
	TokenEscape:     `\`,
	TokenSpace:      " ",
	TokenTab:        "\t",
	TokenNewLine:    "\n",
}

var (
	openSurface  = [...]string{BracketParen: "(", BracketSquare: "[", BracketBrace: "{", BracketAngle: "<"}
	closeSurface = [...]string{BracketParen: ")", BracketSquare: "]", BracketBrace: "}", BracketAngle: ">"}
)

var kindNames = [...]string{
	TokenText:         "Text",
	TokenNumber:       "Number",
	TokenHash:         "Hash",
	TokenBang:         "Bang",
	TokenOpenBracket:  "OpenBracket",
	TokenCloseBracket: "CloseBracket",
	TokenStar:         "Star",
	TokenDash:         "Dash",
	TokenPlus:         "Plus",
	TokenEquals:       "Equals",
	TokenDot:          "Dot",
	TokenUnderscore:   "Underscore",
	TokenBackTick:     "BackTick",
	TokenTilde:        "Tilde",
	TokenEscape:       "Escape",
	TokenSpace:        "Space",
	TokenTab:          "Tab",
	TokenNewLine:      "NewLine",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Surface returns the source text the token was produced from. Feeding the
// concatenated surfaces back through Tokenize yields the same tokens, modulo
// escapes that were consumed.
func (t Token) Surface() string {
	switch t.Kind {
	case TokenText, TokenNumber:
		return t.Text
	case TokenOpenBracket:
		if int(t.Bracket) < len(openSurface) {
			return openSurface[t.Bracket]
		}
		return ""
	case TokenCloseBracket:
		if int(t.Bracket) < len(closeSurface) {
			return closeSurface[t.Bracket]
		}
		return ""
	}
	if int(t.Kind) < len(kindSurface) {
		return kindSurface[t.Kind]
	}
	return ""
}

// Digits returns the digit values of a Number token, most significant first.
func (t Token) Digits() []uint8 {
	if t.Kind != TokenNumber {
		return nil
	}
	out := make([]uint8, 0, len(t.Text))
	for i := 0; i < len(t.Text); i++ {
		out = append(out, t.Text[i]-'0')
	}
	return out
}

// Value returns the numeric value of a Number token. ok is false for other
// kinds and for values that do not fit in a uint64.
func (t Token) Value() (v uint64, ok bool) {
	if t.Kind != TokenNumber || t.Text == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(t.Text, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (t Token) String() string {
	switch t.Kind {
	case TokenText, TokenNumber:
		return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
	case TokenOpenBracket, TokenCloseBracket:
		return t.Kind.String() + "(" + t.Surface() + ")"
	}
	return t.Kind.String()
}

func (t Token) isWhitespace() bool {
	return t.Kind == TokenSpace || t.Kind == TokenTab
}

func (t Token) isQuoteMarker() bool {
	return t.Kind == TokenCloseBracket && t.Bracket == BracketAngle
}

var (
	spaceToken   = Token{Kind: TokenSpace}
	newlineToken = Token{Kind: TokenNewLine}
)

func surfaceOf(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Surface())
	}
	return b.String()
}
