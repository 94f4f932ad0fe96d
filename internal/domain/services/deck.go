package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/domain/ports"
)

// ErrNilDeck is returned when an operation is handed no deck
var ErrNilDeck = errors.New("deck cannot be nil")

// DeckService implements the business logic for decks
type DeckService struct {
	repo     ports.DeckRepository
	parser   ports.DeckParser
	exporter ports.DeckExporter
	defaults entities.DefaultsConfig
	logger   *slog.Logger
	workers  int
}

// DeckServiceOption configures a DeckService
type DeckServiceOption func(*DeckService)

// WithDefaults sets the front-matter defaults applied on export
func WithDefaults(defaults entities.DefaultsConfig) DeckServiceOption {
	return func(s *DeckService) {
		s.defaults = defaults
	}
}

// WithLogger sets the service logger
func WithLogger(logger *slog.Logger) DeckServiceOption {
	return func(s *DeckService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkers bounds the number of files checked concurrently
func WithWorkers(n int) DeckServiceOption {
	return func(s *DeckService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewDeckService creates a new deck service instance
func NewDeckService(
	repo ports.DeckRepository,
	parser ports.DeckParser,
	exporter ports.DeckExporter,
	opts ...DeckServiceOption,
) *DeckService {
	s := &DeckService{
		repo:     repo,
		parser:   parser,
		exporter: exporter,
		logger:   slog.Default(),
		workers:  runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LoadDeck loads and parses a deck from a file path
func (s *DeckService) LoadDeck(ctx context.Context, path string) (*entities.Deck, error) {
	if path == "" {
		return nil, errors.New("deck path cannot be empty")
	}

	content, err := s.repo.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	deck, err := s.ParseDeck(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.logger.Debug("Loaded deck",
		slog.String("path", path),
		slog.Int("slides", deck.SlideCount()),
		slog.Int("sections", deck.SectionCount()),
	)

	return deck, nil
}

// ParseDeck parses deck source text
func (s *DeckService) ParseDeck(ctx context.Context, content []byte) (*entities.Deck, error) {
	deck, err := s.parser.Parse(ctx, content)
	if err != nil {
		if pe, ok := entities.AsParseError(err); ok {
			s.logger.Debug("Deck rejected",
				slog.String("kind", pe.Kind.String()),
				slog.Int("line", pe.Line),
			)
		}
		return nil, err
	}

	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}

	return deck, nil
}

// LoadDeckFromReader parses a deck read from r
func (s *DeckService) LoadDeckFromReader(ctx context.Context, r io.Reader) (*entities.Deck, error) {
	if r == nil {
		return nil, errors.New("reader cannot be nil")
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}

	return s.ParseDeck(ctx, content)
}

// Export writes deck to w in format with the configured defaults filled in
func (s *DeckService) Export(ctx context.Context, deck *entities.Deck, format entities.Format, w io.Writer) error {
	if deck == nil {
		return ErrNilDeck
	}

	if err := s.exporter.Export(ctx, deck.WithDefaults(s.defaults), format, w); err != nil {
		return fmt.Errorf("exporting deck as %s: %w", format, err)
	}

	return nil
}

// FormatFile re-serializes the deck at path as canonical markdown. When
// write is true and the output differs, the file is replaced.
func (s *DeckService) FormatFile(ctx context.Context, path string, write bool) ([]byte, error) {
	original, err := s.repo.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	deck, err := s.ParseDeck(ctx, original)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := s.exporter.Export(ctx, deck, entities.FormatMarkdown, &buf); err != nil {
		return nil, fmt.Errorf("formatting %s: %w", path, err)
	}
	formatted := buf.Bytes()

	if !write {
		return formatted, nil
	}

	if bytes.Equal(original, formatted) {
		s.logger.Debug("Deck already formatted", slog.String("path", path))
		return formatted, nil
	}

	if err := s.repo.Save(ctx, path, formatted); err != nil {
		return nil, fmt.Errorf("saving deck: %w", err)
	}

	s.logger.Info("Formatted deck", slog.String("path", path))
	return formatted, nil
}

// Outline lists the slides of a deck
func (s *DeckService) Outline(deck *entities.Deck) []ports.OutlineEntry {
	if deck == nil {
		return nil
	}

	entries := make([]ports.OutlineEntry, 0, len(deck.Slides))
	for i := range deck.Slides {
		slide := &deck.Slides[i]
		entries = append(entries, ports.OutlineEntry{
			Section:  slide.Section,
			Index:    slide.Index,
			ID:       slide.ID,
			Title:    slide.Title,
			Blocks:   len(slide.Blocks),
			Snippets: len(slide.CodeSnippets()),
			HasNotes: slide.HasNotes(),
		})
	}

	return entries
}

// CheckFiles parses every path concurrently. Results keep the order of
// paths; a failing file does not stop the others.
func (s *DeckService) CheckFiles(ctx context.Context, paths []string) []ports.CheckResult {
	results := make([]ports.CheckResult, len(paths))

	var g errgroup.Group
	g.SetLimit(s.workers)

	for i, path := range paths {
		g.Go(func() error {
			result := ports.CheckResult{Path: path}

			deck, err := s.LoadDeck(ctx, path)
			if err != nil {
				result.Err = err
				s.logger.Debug("Check failed", slog.String("path", path), slog.String("error", err.Error()))
			} else {
				result.Slides = deck.SlideCount()
				result.Sections = deck.SectionCount()
			}

			results[i] = result
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// SupportedFormats returns the formats Export accepts
func (s *DeckService) SupportedFormats() []entities.Format {
	return s.exporter.SupportedFormats()
}

// Ensure DeckService implements ports.DeckService
var _ ports.DeckService = (*DeckService)(nil)
