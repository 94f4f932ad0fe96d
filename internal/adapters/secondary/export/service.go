package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/domain/ports"
)

// ErrNilDeck is returned when an encoder is handed no deck
var ErrNilDeck = errors.New("deck cannot be nil")

// ExportErrorType categorizes different types of export errors
type ExportErrorType string

const (
	ErrorTypeValidation    ExportErrorType = "validation"
	ErrorTypeEncoder       ExportErrorType = "encoder"
	ErrorTypeConfiguration ExportErrorType = "configuration"
)

// ExportError provides detailed error information with categorization
type ExportError struct {
	Type    ExportErrorType
	Message string
	Details string
	Cause   error
}

func (e *ExportError) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Type, e.Message)
	if e.Details != "" {
		msg += " - " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Options configures the default encoders
type Options struct {
	NotePrefix string
	Indent     int
}

// Service routes decks to the encoder registered for a format
type Service struct {
	mu       sync.RWMutex
	encoders map[entities.Format]ports.DeckEncoder
}

// NewService creates an export service with the markdown, JSON and YAML
// encoders registered
func NewService(opts Options) *Service {
	s := &Service{
		encoders: make(map[entities.Format]ports.DeckEncoder),
	}

	s.Register(NewMarkdownEncoder(opts.NotePrefix))
	s.Register(NewJSONEncoder(opts.Indent))
	s.Register(NewYAMLEncoder(opts.Indent))

	return s
}

// Register adds or replaces the encoder for its format
func (s *Service) Register(encoder ports.DeckEncoder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.encoders[encoder.Format()] = encoder
}

// Encoder returns the encoder registered for format
func (s *Service) Encoder(format entities.Format) (ports.DeckEncoder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enc, ok := s.encoders[format]
	return enc, ok
}

// Export validates deck and writes it to w in format
func (s *Service) Export(ctx context.Context, deck *entities.Deck, format entities.Format, w io.Writer) error {
	if deck == nil {
		return &ExportError{Type: ErrorTypeValidation, Message: "nothing to export", Cause: ErrNilDeck}
	}

	if err := deck.Validate(); err != nil {
		return &ExportError{Type: ErrorTypeValidation, Message: "invalid deck", Cause: err}
	}

	encoder, ok := s.Encoder(format)
	if !ok {
		return &ExportError{
			Type:    ErrorTypeConfiguration,
			Message: "unsupported export format",
			Details: string(format),
		}
	}

	if err := encoder.Encode(ctx, deck, w); err != nil {
		return &ExportError{
			Type:    ErrorTypeEncoder,
			Message: "encoding failed",
			Details: string(format),
			Cause:   err,
		}
	}

	return nil
}

// SupportedFormats returns the registered formats in name order
func (s *Service) SupportedFormats() []entities.Format {
	s.mu.RLock()
	defer s.mu.RUnlock()

	formats := make([]entities.Format, 0, len(s.encoders))
	for f := range s.encoders {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Ensure Service implements ports.DeckExporter
var _ ports.DeckExporter = (*Service)(nil)
