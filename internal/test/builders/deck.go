package builders

import (
	"strconv"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

// SampleDeck is a small deck source exercising front-matter, notes,
// sections and code
const SampleDeck = `---
title: Sample Deck
author: Test Author
theme: dark
---

# Welcome

Intro paragraph

Note: greet the audience

---

## Agenda

- parsing
- exporting

***

# Code

` + "```go\nfmt.Println(\"---\")\n```" + `

*Note: the separator inside the fence is code*
`

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck    *entities.Deck
	section int
}

// NewDeckBuilder creates a new deck builder with sensible defaults
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		deck: &entities.Deck{
			FrontMatter: entities.FrontMatter{
				Title:  "Test Deck",
				Author: "Test Author",
			},
		},
	}
}

// WithTitle sets the deck title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.deck.FrontMatter.Title = title
	return b
}

// WithAuthor sets the deck author
func (b *DeckBuilder) WithAuthor(author string) *DeckBuilder {
	b.deck.FrontMatter.Author = author
	return b
}

// WithTheme sets the deck theme
func (b *DeckBuilder) WithTheme(theme string) *DeckBuilder {
	b.deck.FrontMatter.Theme = theme
	return b
}

// WithTransition sets the deck transition
func (b *DeckBuilder) WithTransition(transition string) *DeckBuilder {
	b.deck.FrontMatter.Transition = transition
	return b
}

// WithFrontMatter sets any front-matter key
func (b *DeckBuilder) WithFrontMatter(key, value string) *DeckBuilder {
	b.deck.FrontMatter.Set(key, value)
	return b
}

// WithoutFrontMatter clears all front-matter
func (b *DeckBuilder) WithoutFrontMatter() *DeckBuilder {
	b.deck.FrontMatter = entities.FrontMatter{}
	return b
}

// WithSlide appends a slide to the current section
func (b *DeckBuilder) WithSlide(slide entities.Slide) *DeckBuilder {
	slide.Index = len(b.deck.Slides)
	slide.Section = b.section
	b.deck.Slides = append(b.deck.Slides, slide)
	return b
}

// WithSlideCount appends count titled slides to the current section
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	for i := 0; i < count; i++ {
		n := len(b.deck.Slides) + 1
		b.WithSlide(NewSlideBuilder().
			WithID("slide-" + strconv.Itoa(n)).
			WithTitle("Slide " + strconv.Itoa(n)).
			WithParagraph("Test content").
			Build())
	}
	return b
}

// NextSection starts a new section for the slides added after it
func (b *DeckBuilder) NextSection() *DeckBuilder {
	if len(b.deck.Slides) > 0 {
		b.section++
	}
	return b
}

// Build creates the final Deck entity
func (b *DeckBuilder) Build() *entities.Deck {
	fm := b.deck.FrontMatter
	if fm.Extra != nil {
		fm.Extra = make(map[string]string, len(b.deck.FrontMatter.Extra))
		for k, v := range b.deck.FrontMatter.Extra {
			fm.Extra[k] = v
		}
	}

	return &entities.Deck{
		FrontMatter: fm,
		Slides:      append([]entities.Slide{}, b.deck.Slides...),
	}
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide *entities.Slide
}

// NewSlideBuilder creates a new slide builder with an empty body
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: &entities.Slide{
			ID:    "slide-1",
			Title: "Slide 1",
		},
	}
}

// WithID sets the slide ID
func (b *SlideBuilder) WithID(id string) *SlideBuilder {
	b.slide.ID = id
	return b
}

// WithIndex sets the slide index
func (b *SlideBuilder) WithIndex(index int) *SlideBuilder {
	b.slide.Index = index
	return b
}

// WithSection sets the slide section
func (b *SlideBuilder) WithSection(section int) *SlideBuilder {
	b.slide.Section = section
	return b
}

// WithTitle adds a level 1 heading and uses it as the title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	b.slide.Blocks = append(b.slide.Blocks, &entities.Heading{Level: 1, Text: title})
	return b
}

// WithParagraph adds a paragraph
func (b *SlideBuilder) WithParagraph(text string) *SlideBuilder {
	b.slide.Blocks = append(b.slide.Blocks, &entities.Paragraph{Text: text})
	return b
}

// WithCode adds a fenced code snippet
func (b *SlideBuilder) WithCode(language, code string) *SlideBuilder {
	b.slide.Blocks = append(b.slide.Blocks, &entities.CodeSnippet{Language: language, Code: code})
	return b
}

// WithBulletList adds a tight "-" list with one paragraph per item
func (b *SlideBuilder) WithBulletList(items ...string) *SlideBuilder {
	list := &entities.List{Marker: '-', Tight: true}
	for _, item := range items {
		list.Items = append(list.Items, entities.ListItem{
			Blocks: []entities.Block{&entities.Paragraph{Text: item}},
		})
	}
	b.slide.Blocks = append(b.slide.Blocks, list)
	return b
}

// WithBlock adds any block
func (b *SlideBuilder) WithBlock(block entities.Block) *SlideBuilder {
	b.slide.Blocks = append(b.slide.Blocks, block)
	return b
}

// WithNotes sets the slide speaker notes
func (b *SlideBuilder) WithNotes(notes string) *SlideBuilder {
	b.slide.Notes = notes
	return b
}

// Build creates the final Slide entity
func (b *SlideBuilder) Build() entities.Slide {
	slide := *b.slide
	slide.Blocks = append([]entities.Block(nil), b.slide.Blocks...)
	return slide
}

// Common decks for testing

// MinimalDeck creates a single slide deck for basic tests
func MinimalDeck() *entities.Deck {
	return NewDeckBuilder().
		WithTitle("Minimal").
		WithSlideCount(1).
		Build()
}

// LargeDeck creates a deck with many slides across sections for performance tests
func LargeDeck() *entities.Deck {
	b := NewDeckBuilder().WithTitle("Large Deck")
	for i := 0; i < 5; i++ {
		b.NextSection().WithSlideCount(10)
	}
	return b.Build()
}
