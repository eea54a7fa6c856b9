package minidom

// NodeType discriminates the Node variants.
type NodeType int

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
)

// Node is a node in an element tree: an *Element, a *Text, or a
// *Comment. Children of an element are an ordered sequence of Node, and
// order is significant.
type Node interface {
	Type() NodeType
}

// Text is a run of character data. Adjacent text tokens from a source
// document are coalesced into a single Text node during parsing.
type Text struct {
	content string
}

func NewText(s string) *Text {
	return &Text{content: s}
}

func (t *Text) Type() NodeType {
	return TextNode
}

func (t *Text) Content() string {
	return t.content
}

func (t *Text) SetContent(s string) {
	t.content = s
}

// Comment is an XML comment. Comments are stored by default; parsing
// with WithRejectComments(true) makes them a fatal error instead.
type Comment struct {
	content string
}

func NewComment(s string) *Comment {
	return &Comment{content: s}
}

func (c *Comment) Type() NodeType {
	return CommentNode
}

func (c *Comment) Content() string {
	return c.content
}
