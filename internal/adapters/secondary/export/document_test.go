package export

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/test/builders"
)

func richDeck() *entities.Deck {
	return builders.NewDeckBuilder().
		WithTheme("dark").
		WithSlide(builders.NewSlideBuilder().
			WithID("intro").
			WithTitle("Intro").
			WithBlock(&entities.Quote{Blocks: []entities.Block{&entities.Paragraph{Text: "<quoted> & co"}}}).
			WithBlock(&entities.Image{Alt: "logo", URL: "logo.png"}).
			WithNotes("hello").
			Build()).
		NextSection().
		WithSlide(builders.NewSlideBuilder().
			WithID("code").
			WithBlock(&entities.List{Ordered: true, Start: 2, Marker: '.', Items: []entities.ListItem{
				{Blocks: []entities.Block{&entities.Link{Text: "site", URL: "https://example.com"}}},
			}}).
			WithCode("go", "fmt.Println(1)\n").
			Build()).
		Build()
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(richDeck())

	assert.Equal(t, map[string]string{"title": "Test Deck", "author": "Test Author", "theme": "dark"}, doc.FrontMatter)
	assert.Equal(t, 2, doc.Sections)
	require.Len(t, doc.Slides, 2)

	intro := doc.Slides[0]
	assert.Equal(t, "intro", intro.ID)
	assert.Equal(t, "hello", intro.Notes)
	require.Len(t, intro.Blocks, 3)
	assert.Equal(t, BlockDocument{Type: entities.BlockHeading, Level: 1, Text: "Intro"}, intro.Blocks[0])
	assert.Equal(t, entities.BlockQuote, intro.Blocks[1].Type)
	assert.Equal(t, "<quoted> & co", intro.Blocks[1].Blocks[0].Text)
	assert.Equal(t, BlockDocument{Type: entities.BlockImage, Alt: "logo", URL: "logo.png"}, intro.Blocks[2])

	code := doc.Slides[1]
	assert.Equal(t, 1, code.Section)
	list := code.Blocks[0]
	assert.True(t, list.Ordered)
	assert.Equal(t, 2, list.Start)
	require.Len(t, list.Items, 1)
	assert.Equal(t, BlockDocument{Type: entities.BlockLink, Text: "site", URL: "https://example.com"}, list.Items[0].Blocks[0])
	assert.Equal(t, BlockDocument{Type: entities.BlockCode, Language: "go", Code: "fmt.Println(1)\n"}, code.Blocks[1])
}

func TestJSONEncoder_Encode(t *testing.T) {
	t.Run("indented output decodes back", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewJSONEncoder(2).Encode(context.Background(), richDeck(), &buf))

		assert.Contains(t, buf.String(), "\n  \"frontMatter\"")
		assert.Contains(t, buf.String(), "<quoted> & co", "html is not escaped")

		var doc Document
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		assert.Equal(t, NewDocument(richDeck()), &doc)
	})

	t.Run("compact output", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewJSONEncoder(0).Encode(context.Background(), builders.MinimalDeck(), &buf))

		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
		slides := raw["slides"].([]interface{})
		first := slides[0].(map[string]interface{})
		assert.Equal(t, "Minimal", raw["frontMatter"].(map[string]interface{})["title"])
		assert.Equal(t, "heading", first["blocks"].([]interface{})[0].(map[string]interface{})["type"])
		assert.NotContains(t, first, "notes")
	})

	t.Run("nil deck", func(t *testing.T) {
		assert.ErrorIs(t, NewJSONEncoder(2).Encode(context.Background(), nil, &bytes.Buffer{}), ErrNilDeck)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, NewJSONEncoder(2).Encode(ctx, richDeck(), &bytes.Buffer{}), context.Canceled)
	})
}

func TestYAMLEncoder_Encode(t *testing.T) {
	t.Run("output decodes back", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewYAMLEncoder(4).Encode(context.Background(), richDeck(), &buf))

		assert.Contains(t, buf.String(), "front_matter:\n    author: Test Author\n")

		var doc Document
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
		assert.Equal(t, NewDocument(richDeck()), &doc)
	})

	t.Run("default indent", func(t *testing.T) {
		assert.Equal(t, 2, NewYAMLEncoder(0).indent)
	})

	t.Run("nil deck", func(t *testing.T) {
		assert.ErrorIs(t, NewYAMLEncoder(2).Encode(context.Background(), nil, &bytes.Buffer{}), ErrNilDeck)
	})
}
