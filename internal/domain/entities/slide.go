package entities

import (
	"errors"
	"strconv"
	"strings"
)

// Slide represents one navigable screen of a deck
type Slide struct {
	// ID is derived from the slide position and title, stable across parses
	ID string

	// Index is the slide position in the deck (0-based)
	Index int

	// Section is the 0-based section the slide belongs to
	Section int

	// Title is the plain text of the first heading, or "Slide N"
	Title string

	// Blocks is the slide body in source order
	Blocks []Block

	// Notes contains speaker notes, one line per note
	Notes string
}

// Validate ensures the slide is well formed
func (s *Slide) Validate() error {
	if s.Index < 0 {
		return errors.New("slide index must be non-negative")
	}

	if s.Section < 0 {
		return errors.New("slide section must be non-negative")
	}

	for _, b := range s.Blocks {
		if b == nil {
			return errors.New("slide contains a nil block")
		}
	}

	return nil
}

// FirstHeading returns the first top-level heading of the slide
func (s *Slide) FirstHeading() *Heading {
	for _, b := range s.Blocks {
		if h, ok := b.(*Heading); ok {
			return h
		}
	}
	return nil
}

// FallbackTitle is the generated title for slides without a heading
func (s *Slide) FallbackTitle() string {
	return "Slide " + strconv.Itoa(s.Index+1)
}

// HasNotes returns true if the slide has speaker notes
func (s *Slide) HasNotes() bool {
	return strings.TrimSpace(s.Notes) != ""
}

// IsEmpty reports whether the slide has neither blocks nor notes
func (s *Slide) IsEmpty() bool {
	return len(s.Blocks) == 0 && !s.HasNotes()
}

// CodeSnippets returns every code snippet on the slide, including nested ones
func (s *Slide) CodeSnippets() []*CodeSnippet {
	var out []*CodeSnippet
	WalkBlocks(s.Blocks, func(b Block) bool {
		if c, ok := b.(*CodeSnippet); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}
