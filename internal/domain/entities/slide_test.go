package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlide_Validate(t *testing.T) {
	tests := []struct {
		name    string
		slide   Slide
		wantErr bool
		errMsg  string
	}{
		{
			name:  "valid slide",
			slide: Slide{Blocks: []Block{&Heading{Level: 1, Text: "Hello"}}},
		},
		{
			name:  "empty slide is valid",
			slide: Slide{Index: 3, Section: 1},
		},
		{
			name:    "negative index",
			slide:   Slide{Index: -1},
			wantErr: true,
			errMsg:  "slide index must be non-negative",
		},
		{
			name:    "negative section",
			slide:   Slide{Section: -1},
			wantErr: true,
			errMsg:  "slide section must be non-negative",
		},
		{
			name:    "nil block",
			slide:   Slide{Blocks: []Block{nil}},
			wantErr: true,
			errMsg:  "nil block",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slide.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlide_FirstHeading(t *testing.T) {
	t.Run("first top-level heading wins", func(t *testing.T) {
		slide := Slide{Blocks: []Block{
			&Paragraph{Text: "intro"},
			&Quote{Blocks: []Block{&Heading{Level: 1, Text: "Quoted"}}},
			&Heading{Level: 2, Text: "Second"},
			&Heading{Level: 1, Text: "Third"},
		}}

		h := slide.FirstHeading()
		require.NotNil(t, h)
		assert.Equal(t, "Second", h.Text)
	})

	t.Run("no heading", func(t *testing.T) {
		slide := Slide{Blocks: []Block{&Paragraph{Text: "intro"}}}
		assert.Nil(t, slide.FirstHeading())
	})
}

func TestSlide_FallbackTitle(t *testing.T) {
	assert.Equal(t, "Slide 1", (&Slide{Index: 0}).FallbackTitle())
	assert.Equal(t, "Slide 12", (&Slide{Index: 11}).FallbackTitle())
}

func TestSlide_NotesAndEmptiness(t *testing.T) {
	tests := []struct {
		name      string
		slide     Slide
		wantNotes bool
		wantEmpty bool
	}{
		{name: "empty", slide: Slide{}, wantEmpty: true},
		{name: "whitespace notes", slide: Slide{Notes: "  \n"}, wantEmpty: true},
		{name: "notes only", slide: Slide{Notes: "hello"}, wantNotes: true},
		{name: "blocks only", slide: Slide{Blocks: []Block{&Paragraph{Text: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantNotes, tt.slide.HasNotes())
			assert.Equal(t, tt.wantEmpty, tt.slide.IsEmpty())
		})
	}
}

func TestSlide_CodeSnippets(t *testing.T) {
	slide := Slide{Blocks: []Block{
		&CodeSnippet{Language: "go", Code: "a\n"},
		&List{Items: []ListItem{
			{Blocks: []Block{&Paragraph{Text: "item"}, &CodeSnippet{Language: "sh", Code: "b\n"}}},
		}},
		&Quote{Blocks: []Block{&CodeSnippet{Code: "c\n"}}},
	}}

	snippets := slide.CodeSnippets()
	require.Len(t, snippets, 3)
	assert.Equal(t, "go", snippets[0].Language)
	assert.Equal(t, "sh", snippets[1].Language)
	assert.Equal(t, "c\n", snippets[2].Code)
}
