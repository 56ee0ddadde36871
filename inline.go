package mdhtml

// Inline is a node of inline content.
type Inline interface {
	inline()
}

// Text is literal inline text. Renderers escape it.
type Text struct {
	Value string
}

func (*Text) inline() {}

// InlineProcessor turns the token run of a paragraph or heading into inline
// nodes. Implementations must not retain tokens.
type InlineProcessor interface {
	ProcessInlines(tokens []Token, ctx *Context) []Inline
}

// InlineProcessorFunc adapts a function to InlineProcessor.
type InlineProcessorFunc func(tokens []Token, ctx *Context) []Inline

// ProcessInlines calls f(tokens, ctx).
func (f InlineProcessorFunc) ProcessInlines(tokens []Token, ctx *Context) []Inline {
	return f(tokens, ctx)
}

// LiteralInlines is the default inline processor: one Text node holding the
// concatenated surface of every token.
var LiteralInlines InlineProcessor = InlineProcessorFunc(literalInlines)

func literalInlines(tokens []Token, _ *Context) []Inline {
	return []Inline{&Text{Value: surfaceOf(tokens)}}
}
