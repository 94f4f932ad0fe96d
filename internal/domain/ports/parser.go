package ports

import (
	"context"
	"io"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

// DeckParser converts deck source text into the Deck model
type DeckParser interface {
	// Parse returns a complete Deck or a *entities.ParseError, never a partial deck
	Parse(ctx context.Context, content []byte) (*entities.Deck, error)
}

// DeckEncoder serializes a Deck in one format
type DeckEncoder interface {
	// Format returns the format produced by this encoder
	Format() entities.Format

	// Encode writes deck to w
	Encode(ctx context.Context, deck *entities.Deck, w io.Writer) error
}

// DeckExporter routes a deck to the encoder for a format
type DeckExporter interface {
	// Export writes deck to w in format
	Export(ctx context.Context, deck *entities.Deck, format entities.Format, w io.Writer) error

	// SupportedFormats returns the formats with a registered encoder
	SupportedFormats() []entities.Format
}
