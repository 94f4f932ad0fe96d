package ports

import (
	"context"
	"io"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

// OutlineEntry summarizes one slide for listings
type OutlineEntry struct {
	Section  int
	Index    int
	ID       string
	Title    string
	Blocks   int
	Snippets int
	HasNotes bool
}

// CheckResult is the outcome of validating one deck file
type CheckResult struct {
	Path     string
	Slides   int
	Sections int
	Err      error
}

// OK reports whether the file parsed cleanly
func (r CheckResult) OK() bool {
	return r.Err == nil
}

// DeckService defines the main service interface for decks
type DeckService interface {
	// LoadDeck loads and parses a deck from a file path
	LoadDeck(ctx context.Context, path string) (*entities.Deck, error)

	// ParseDeck parses deck source text
	ParseDeck(ctx context.Context, content []byte) (*entities.Deck, error)

	// LoadDeckFromReader parses a deck read from r
	LoadDeckFromReader(ctx context.Context, r io.Reader) (*entities.Deck, error)

	// Export writes deck to w in the given format, applying configured defaults
	Export(ctx context.Context, deck *entities.Deck, format entities.Format, w io.Writer) error

	// FormatFile re-serializes the deck at path as canonical markdown,
	// replacing the file when write is true
	FormatFile(ctx context.Context, path string, write bool) ([]byte, error)

	// Outline lists the slides of a deck
	Outline(deck *entities.Deck) []OutlineEntry

	// CheckFiles parses every path and reports per-file results
	CheckFiles(ctx context.Context, paths []string) []CheckResult

	// SupportedFormats returns the formats Export accepts
	SupportedFormats() []entities.Format
}
