package export

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/domain/ports"
)

// YAMLEncoder writes the deck hand-off document as YAML
type YAMLEncoder struct {
	indent int
}

// NewYAMLEncoder creates a YAML encoder
func NewYAMLEncoder(indent int) *YAMLEncoder {
	if indent <= 0 {
		indent = 2
	}
	return &YAMLEncoder{indent: indent}
}

// Format returns FormatYAML
func (e *YAMLEncoder) Format() entities.Format {
	return entities.FormatYAML
}

// Encode writes deck as YAML
func (e *YAMLEncoder) Encode(ctx context.Context, deck *entities.Deck, w io.Writer) error {
	if deck == nil {
		return ErrNilDeck
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(e.indent)

	if err := enc.Encode(NewDocument(deck)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing yaml: %w", err)
	}
	return nil
}

// Ensure YAMLEncoder implements ports.DeckEncoder
var _ ports.DeckEncoder = (*YAMLEncoder)(nil)
