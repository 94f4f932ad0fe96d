// Package parser converts markdown slide decks into the deck model.
//
// A deck is a front-matter block followed by slides. "---" on its own line
// starts a new slide, "***" starts a new section. Slide bodies are
// classified into blocks with goldmark's CommonMark parser; fenced code is
// captured verbatim and never interpreted.
package parser

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/domain/ports"
)

// Option configures a DeckParser
type Option func(*DeckParser)

// WithNotePrefix sets the speaker note line prefix
func WithNotePrefix(prefix string) Option {
	return func(p *DeckParser) {
		p.notes = NewNotesExtractor(prefix)
	}
}

// DeckParser implements the DeckParser port. It holds no per-parse state
// and is safe for concurrent use.
type DeckParser struct {
	md     goldmark.Markdown
	notes  *NotesExtractor
	titles *titleRenderer
}

// NewDeckParser creates a new deck parser
func NewDeckParser(opts ...Option) *DeckParser {
	p := &DeckParser{
		md:     newBlockMarkdown(),
		notes:  NewNotesExtractor(DefaultNotePrefix),
		titles: newTitleRenderer(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse converts deck source text into a Deck. On failure it returns a
// *entities.ParseError and no deck.
func (p *DeckParser) Parse(ctx context.Context, content []byte) (*entities.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := decodeSource(content)
	if err != nil {
		return nil, err
	}

	lines := splitLines(src)

	fm, rest, hasYAML, err := extractYAMLFrontMatter(lines)
	if err != nil {
		return nil, err
	}

	if err := scanLines(rest); err != nil {
		return nil, err
	}
	segments := splitSegments(rest)

	deck := &entities.Deck{}
	if hasYAML {
		deck.FrontMatter = *fm
	} else if len(segments) > 1 {
		bare, ok, err := p.extractBareFrontMatter(segments[0])
		if err != nil {
			return nil, err
		}
		if ok {
			deck.FrontMatter = *bare
			segments = segments[1:]
		}
	}

	slides, err := p.buildSlides(ctx, segments)
	if err != nil {
		return nil, err
	}
	deck.Slides = slides

	return deck, nil
}

// buildSlides turns segments into slides. Blank segments are skipped; a
// section break in front of one carries over to the next slide.
func (p *DeckParser) buildSlides(ctx context.Context, segments []segment) ([]entities.Slide, error) {
	slides := make([]entities.Slide, 0, len(segments))
	section := 0
	pendingBreak := false

	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if seg.brk == sectionSeparator {
			pendingBreak = true
		}

		p.markProse(seg.lines)
		body, notes := p.notes.ExtractNotes(seg.lines)
		if isBlank(body) && len(notes) == 0 {
			continue
		}

		if pendingBreak && len(slides) > 0 {
			section++
		}
		pendingBreak = false

		blocks, err := p.classify(body)
		if err != nil {
			return nil, err
		}

		slides = append(slides, p.newSlide(len(slides), section, blocks, notes))
	}

	if len(slides) == 0 {
		slides = append(slides, p.newSlide(0, 0, nil, nil))
	}

	return slides, nil
}

func (p *DeckParser) newSlide(index, section int, blocks []entities.Block, notes []string) entities.Slide {
	slide := entities.Slide{
		Index:   index,
		Section: section,
		Blocks:  blocks,
		Notes:   strings.Join(notes, "\n"),
	}
	slide.Title = p.titles.Title(&slide)
	slide.ID = slideID(&slide)
	return slide
}

// Ensure DeckParser implements ports.DeckParser
var _ ports.DeckParser = (*DeckParser)(nil)
