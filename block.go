package mdhtml

// Block is a node of the block tree. The set of implementations is closed.
type Block interface {
	block()
}

// Paragraph is a run of text lines.
type Paragraph struct {
	Inlines []Inline
}

// Heading is an ATX or setext heading.
type Heading struct {
	Level   int
	Inlines []Inline
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// CodeBlock is an indented code block. Literal has no trailing newline.
type CodeBlock struct {
	Literal string
}

// BlockQuote holds the blocks parsed from its content with markers removed.
type BlockQuote struct {
	Children []Block
}

// List is a bullet or ordered list. Loose lists wrap item paragraphs in <p>.
type List struct {
	Type  ListType
	Items []*ListItem
	Loose bool
}

// ListItem holds the blocks of one list item.
type ListItem struct {
	Children []Block
}

func (*Paragraph) block()     {}
func (*Heading) block()       {}
func (*ThematicBreak) block() {}
func (*CodeBlock) block()     {}
func (*BlockQuote) block()    {}
func (*List) block()          {}
func (*ListItem) block()      {}
