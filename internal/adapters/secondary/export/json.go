package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/domain/ports"
)

// JSONEncoder writes the deck hand-off document as JSON
type JSONEncoder struct {
	indent int
}

// NewJSONEncoder creates a JSON encoder; indent 0 writes compact JSON
func NewJSONEncoder(indent int) *JSONEncoder {
	return &JSONEncoder{indent: indent}
}

// Format returns FormatJSON
func (e *JSONEncoder) Format() entities.Format {
	return entities.FormatJSON
}

// Encode writes deck as JSON
func (e *JSONEncoder) Encode(ctx context.Context, deck *entities.Deck, w io.Writer) error {
	if deck == nil {
		return ErrNilDeck
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if e.indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", e.indent))
	}

	if err := enc.Encode(NewDocument(deck)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// Ensure JSONEncoder implements ports.DeckEncoder
var _ ports.DeckEncoder = (*JSONEncoder)(nil)
