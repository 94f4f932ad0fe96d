package export

import (
	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

// Document is the hand-off shape of a deck for the presentation engine.
// Blocks carry their variant in Type.
type Document struct {
	FrontMatter map[string]string `json:"frontMatter" yaml:"front_matter"`
	Sections    int               `json:"sections" yaml:"sections"`
	Slides      []SlideDocument   `json:"slides" yaml:"slides"`
}

// SlideDocument is a slide in a Document
type SlideDocument struct {
	ID      string          `json:"id" yaml:"id"`
	Index   int             `json:"index" yaml:"index"`
	Section int             `json:"section" yaml:"section"`
	Title   string          `json:"title" yaml:"title"`
	Notes   string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	Blocks  []BlockDocument `json:"blocks" yaml:"blocks"`
}

// BlockDocument is a tagged block in a Document
type BlockDocument struct {
	Type     entities.BlockType `json:"type" yaml:"type"`
	Level    int                `json:"level,omitempty" yaml:"level,omitempty"`
	Text     string             `json:"text,omitempty" yaml:"text,omitempty"`
	Language string             `json:"language,omitempty" yaml:"language,omitempty"`
	Code     string             `json:"code,omitempty" yaml:"code,omitempty"`
	Alt      string             `json:"alt,omitempty" yaml:"alt,omitempty"`
	URL      string             `json:"url,omitempty" yaml:"url,omitempty"`
	Title    string             `json:"title,omitempty" yaml:"title,omitempty"`
	Ordered  bool               `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Start    int                `json:"start,omitempty" yaml:"start,omitempty"`
	Tight    bool               `json:"tight,omitempty" yaml:"tight,omitempty"`
	Items    []ItemDocument     `json:"items,omitempty" yaml:"items,omitempty"`
	Blocks   []BlockDocument    `json:"blocks,omitempty" yaml:"blocks,omitempty"`
}

// ItemDocument is a list item in a Document
type ItemDocument struct {
	Blocks []BlockDocument `json:"blocks" yaml:"blocks"`
}

// NewDocument converts a deck into its hand-off document
func NewDocument(deck *entities.Deck) *Document {
	doc := &Document{
		FrontMatter: deck.FrontMatter.ToMap(),
		Sections:    deck.SectionCount(),
		Slides:      make([]SlideDocument, 0, len(deck.Slides)),
	}

	for _, s := range deck.Slides {
		doc.Slides = append(doc.Slides, SlideDocument{
			ID:      s.ID,
			Index:   s.Index,
			Section: s.Section,
			Title:   s.Title,
			Notes:   s.Notes,
			Blocks:  blockDocuments(s.Blocks),
		})
	}

	return doc
}

func blockDocuments(blocks []entities.Block) []BlockDocument {
	out := make([]BlockDocument, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockDocument(b))
	}
	return out
}

func blockDocument(b entities.Block) BlockDocument {
	doc := BlockDocument{Type: b.Type()}

	switch v := b.(type) {
	case *entities.Heading:
		doc.Level = v.Level
		doc.Text = v.Text
	case *entities.Paragraph:
		doc.Text = v.Text
	case *entities.CodeSnippet:
		doc.Language = v.Language
		doc.Code = v.Code
	case *entities.Image:
		doc.Alt = v.Alt
		doc.URL = v.URL
		doc.Title = v.Title
	case *entities.Link:
		doc.Text = v.Text
		doc.URL = v.URL
		doc.Title = v.Title
	case *entities.Quote:
		doc.Blocks = blockDocuments(v.Blocks)
	case *entities.List:
		doc.Ordered = v.Ordered
		doc.Start = v.Start
		doc.Tight = v.Tight
		doc.Items = make([]ItemDocument, 0, len(v.Items))
		for _, item := range v.Items {
			doc.Items = append(doc.Items, ItemDocument{Blocks: blockDocuments(item.Blocks)})
		}
	}

	return doc
}
