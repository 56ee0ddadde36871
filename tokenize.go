package mdhtml

import (
	"strings"
	"unicode/utf8"
)

const escapable = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Tokenize converts Markdown source into tokens. It never fails: every rune
// produces output, NUL becomes U+FFFD and adjacent text or digit runs merge.
func Tokenize(text string) []Token {
	z := tokenizer{tokens: make([]Token, 0, len(text)/3+1)}
	for _, r := range text {
		z.add(r)
	}
	z.closeRun()
	return z.tokens
}

// tokenizer keeps the literal of a trailing Text or Number token in run so
// long runs grow without reallocating a string per rune.
type tokenizer struct {
	tokens []Token
	run    []byte
	inRun  bool
}

func (z *tokenizer) add(r rune) {
	escaped := false
	if n := len(z.tokens); n > 0 && z.tokens[n-1].Kind == TokenEscape && isEscapable(r) {
		z.tokens = z.tokens[:n-1]
		z.reopenRun()
		escaped = true
	}

	switch {
	case escaped:
		z.appendRun(TokenText, r)
	case r >= '0' && r <= '9':
		if z.lastIs(TokenText) {
			z.appendRun(TokenText, r)
		} else {
			z.appendRun(TokenNumber, r)
		}
	case r == 0:
		z.appendRun(TokenText, '\uFFFD')
	default:
		tok, ok := runeToken(r)
		if !ok {
			z.appendRun(TokenText, r)
			return
		}
		z.closeRun()
		z.tokens = append(z.tokens, tok)
	}
}

func (z *tokenizer) lastIs(kind TokenKind) bool {
	n := len(z.tokens)
	return n > 0 && z.tokens[n-1].Kind == kind
}

func (z *tokenizer) appendRun(kind TokenKind, r rune) {
	if !z.inRun || !z.lastIs(kind) {
		z.closeRun()
		z.tokens = append(z.tokens, Token{Kind: kind})
		z.inRun = true
	}
	z.run = utf8.AppendRune(z.run, r)
}

func (z *tokenizer) closeRun() {
	if !z.inRun {
		return
	}
	z.tokens[len(z.tokens)-1].Text = string(z.run)
	z.run = z.run[:0]
	z.inRun = false
}

// reopenRun makes a Text or Number token exposed by removing an Escape
// mergeable again.
func (z *tokenizer) reopenRun() {
	n := len(z.tokens)
	if n == 0 {
		return
	}
	last := z.tokens[n-1]
	if last.Kind != TokenText && last.Kind != TokenNumber {
		return
	}
	z.run = append(z.run[:0], last.Text...)
	z.inRun = true
}

func isEscapable(r rune) bool {
	return r < 0x80 && strings.IndexByte(escapable, byte(r)) >= 0
}

func runeToken(r rune) (Token, bool) {
	switch r {
	case '#':
		return Token{Kind: TokenHash}, true
	case '!':
		return Token{Kind: TokenBang}, true
	case '(':
		return Token{Kind: TokenOpenBracket, Bracket: BracketParen}, true
	case '[':
		return Token{Kind: TokenOpenBracket, Bracket: BracketSquare}, true
	case '{':
		return Token{Kind: TokenOpenBracket, Bracket: BracketBrace}, true
	case '<':
		return Token{Kind: TokenOpenBracket, Bracket: BracketAngle}, true
	case ')':
		return Token{Kind: TokenCloseBracket, Bracket: BracketParen}, true
	case ']':
		return Token{Kind: TokenCloseBracket, Bracket: BracketSquare}, true
	case '}':
		return Token{Kind: TokenCloseBracket, Bracket: BracketBrace}, true
	case '>':
		return Token{Kind: TokenCloseBracket, Bracket: BracketAngle}, true
	case '*':
		return Token{Kind: TokenStar}, true
	case '-':
		return Token{Kind: TokenDash}, true
	case '+':
		return Token{Kind: TokenPlus}, true
	case '=':
		return Token{Kind: TokenEquals}, true
	case '.':
		return Token{Kind: TokenDot}, true
	case '_':
		return Token{Kind: TokenUnderscore}, true
	case '`':
		return Token{Kind: TokenBackTick}, true
	case '~':
		return Token{Kind: TokenTilde}, true
	case '\\':
		return Token{Kind: TokenEscape}, true
	case ' ':
		return Token{Kind: TokenSpace}, true
	case '\t':
		return Token{Kind: TokenTab}, true
	case '\n':
		return Token{Kind: TokenNewLine}, true
	}
	return Token{}, false
}
