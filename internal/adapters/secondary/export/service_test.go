package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/test/builders"
)

// MockEncoder implements the DeckEncoder interface for testing
type MockEncoder struct {
	mock.Mock
}

func (m *MockEncoder) Format() entities.Format {
	return m.Called().Get(0).(entities.Format)
}

func (m *MockEncoder) Encode(ctx context.Context, deck *entities.Deck, w io.Writer) error {
	return m.Called(ctx, deck, w).Error(0)
}

func TestNewService(t *testing.T) {
	service := NewService(Options{NotePrefix: "Note:", Indent: 2})

	assert.Equal(t, []entities.Format{entities.FormatJSON, entities.FormatMarkdown, entities.FormatYAML}, service.SupportedFormats())

	for _, f := range entities.Formats {
		enc, ok := service.Encoder(f)
		require.True(t, ok, f)
		assert.Equal(t, f, enc.Format())
	}
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("routes to the format encoder", func(t *testing.T) {
		service := NewService(Options{})

		var buf bytes.Buffer
		require.NoError(t, service.Export(ctx, builders.MinimalDeck(), entities.FormatMarkdown, &buf))
		assert.Contains(t, buf.String(), "# Slide 1")
	})

	t.Run("registered encoder replaces default", func(t *testing.T) {
		service := NewService(Options{})
		deck := builders.MinimalDeck()

		enc := &MockEncoder{}
		enc.On("Format").Return(entities.FormatJSON)
		enc.On("Encode", ctx, deck, mock.Anything).Return(nil)
		service.Register(enc)

		require.NoError(t, service.Export(ctx, deck, entities.FormatJSON, io.Discard))
		enc.AssertExpectations(t)
	})

	t.Run("encoder failure is categorized", func(t *testing.T) {
		service := NewService(Options{})
		cause := errors.New("write failed")

		enc := &MockEncoder{}
		enc.On("Format").Return(entities.FormatYAML)
		enc.On("Encode", ctx, mock.Anything, mock.Anything).Return(cause)
		service.Register(enc)

		err := service.Export(ctx, builders.MinimalDeck(), entities.FormatYAML, io.Discard)

		var exportErr *ExportError
		require.ErrorAs(t, err, &exportErr)
		assert.Equal(t, ErrorTypeEncoder, exportErr.Type)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("unsupported format", func(t *testing.T) {
		err := NewService(Options{}).Export(ctx, builders.MinimalDeck(), entities.Format("pdf"), io.Discard)

		var exportErr *ExportError
		require.ErrorAs(t, err, &exportErr)
		assert.Equal(t, ErrorTypeConfiguration, exportErr.Type)
		assert.Contains(t, err.Error(), "pdf")
	})

	t.Run("invalid deck", func(t *testing.T) {
		err := NewService(Options{}).Export(ctx, &entities.Deck{}, entities.FormatJSON, io.Discard)

		var exportErr *ExportError
		require.ErrorAs(t, err, &exportErr)
		assert.Equal(t, ErrorTypeValidation, exportErr.Type)
	})

	t.Run("nil deck", func(t *testing.T) {
		err := NewService(Options{}).Export(ctx, nil, entities.FormatJSON, io.Discard)
		assert.ErrorIs(t, err, ErrNilDeck)
	})
}
