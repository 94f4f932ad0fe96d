package entities

// BlockType identifies the variant of a Block
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockQuote     BlockType = "quote"
	BlockCode      BlockType = "code"
	BlockImage     BlockType = "image"
	BlockLink      BlockType = "link"
)

// Block is one structural unit of slide content
type Block interface {
	Type() BlockType
}

// Heading is an ATX or setext heading
type Heading struct {
	// Level is 1-6
	Level int
	// Text is the raw inline markdown of the heading
	Text string
}

// Paragraph holds raw inline markdown, kept verbatim
type Paragraph struct {
	Text string
}

// List is an ordered or bullet list
type List struct {
	Ordered bool
	// Start is the first item number of an ordered list
	Start int
	// Marker is the bullet character ('-', '*', '+') or the ordered
	// delimiter ('.', ')')
	Marker byte
	// Tight lists have no blank lines between items
	Tight bool
	Items []ListItem
}

// ListItem is a single list entry with its nested blocks
type ListItem struct {
	Blocks []Block
}

// Quote is a block quote containing nested blocks
type Quote struct {
	Blocks []Block
}

// CodeSnippet is literal code text tagged with a language.
// Code is inert: it is stored and serialized, never evaluated.
type CodeSnippet struct {
	Language string
	Code     string
}

// Image is a paragraph consisting of a single image reference
type Image struct {
	Alt   string
	URL   string
	Title string
}

// Link is a paragraph consisting of a single link
type Link struct {
	Text  string
	URL   string
	Title string
}

func (h *Heading) Type() BlockType     { return BlockHeading }
func (p *Paragraph) Type() BlockType   { return BlockParagraph }
func (l *List) Type() BlockType        { return BlockList }
func (q *Quote) Type() BlockType       { return BlockQuote }
func (c *CodeSnippet) Type() BlockType { return BlockCode }
func (i *Image) Type() BlockType       { return BlockImage }
func (l *Link) Type() BlockType        { return BlockLink }

// Children returns the blocks nested directly inside b, flattening list items
func Children(b Block) []Block {
	switch v := b.(type) {
	case *Quote:
		return v.Blocks
	case *List:
		var out []Block
		for _, item := range v.Items {
			out = append(out, item.Blocks...)
		}
		return out
	default:
		return nil
	}
}

// WalkBlocks visits blocks depth-first in document order. Returning false
// from fn stops the walk.
func WalkBlocks(blocks []Block, fn func(Block) bool) bool {
	for _, b := range blocks {
		if !fn(b) {
			return false
		}
		if !WalkBlocks(Children(b), fn) {
			return false
		}
	}
	return true
}
