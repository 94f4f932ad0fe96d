package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontMatter_GetSet(t *testing.T) {
	var fm FrontMatter

	fm.Set(KeyTitle, "Talk")
	fm.Set(KeyTheme, "dark")
	fm.Set("venue", "Hall A")
	fm.Set("empty", "")

	v, ok := fm.Get(KeyTitle)
	assert.True(t, ok)
	assert.Equal(t, "Talk", v)

	_, ok = fm.Get(KeyAuthor)
	assert.False(t, ok, "unset known keys are absent")

	v, ok = fm.Get("empty")
	assert.True(t, ok, "extras are present even when empty")
	assert.Empty(t, v)

	assert.Equal(t, []string{KeyTitle, KeyTheme, "empty", "venue"}, fm.Keys())
	assert.Equal(t, map[string]string{
		"title": "Talk", "theme": "dark", "venue": "Hall A", "empty": "",
	}, fm.ToMap())
	assert.False(t, fm.IsZero())
	assert.True(t, (&FrontMatter{}).IsZero())
}

func TestFrontMatter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fm      FrontMatter
		wantErr string
	}{
		{name: "empty", fm: FrontMatter{}},
		{name: "valid", fm: FrontMatter{Theme: "night-owl_2", Transition: "fade"}},
		{name: "bad theme", fm: FrontMatter{Theme: "Dark Mode"}, wantErr: "lowercase slug"},
		{name: "bad transition", fm: FrontMatter{Transition: "spin"}, wantErr: "Transition"},
		{name: "extras are free form", fm: FrontMatter{Extra: map[string]string{"x": "Anything Goes"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fm.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsKnownFrontMatterKey(t *testing.T) {
	for _, k := range KnownFrontMatterKeys {
		assert.True(t, IsKnownFrontMatterKey(k), k)
	}
	assert.False(t, IsKnownFrontMatterKey("Title"))
	assert.False(t, IsKnownFrontMatterKey("date"))
}

func TestDeck_Validate(t *testing.T) {
	tests := []struct {
		name    string
		slides  []Slide
		wantErr string
	}{
		{
			name:   "single slide",
			slides: []Slide{{Index: 0}},
		},
		{
			name:   "sections advance by one",
			slides: []Slide{{Index: 0}, {Index: 1, Section: 1}, {Index: 2, Section: 1}, {Index: 3, Section: 2}},
		},
		{
			name:    "no slides",
			wantErr: "at least one slide",
		},
		{
			name:    "index gap",
			slides:  []Slide{{Index: 0}, {Index: 2}},
			wantErr: "has index 2",
		},
		{
			name:    "first slide outside section 0",
			slides:  []Slide{{Index: 0, Section: 1}},
			wantErr: "section 0",
		},
		{
			name:    "section jump",
			slides:  []Slide{{Index: 0}, {Index: 1, Section: 2}},
			wantErr: "jumps from section 0 to 2",
		},
		{
			name:    "section goes back",
			slides:  []Slide{{Index: 0}, {Index: 1, Section: 1}, {Index: 2, Section: 0}},
			wantErr: "jumps from section 1 to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := &Deck{Slides: tt.slides}
			err := deck.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("invalid front-matter", func(t *testing.T) {
		deck := &Deck{FrontMatter: FrontMatter{Theme: "BAD"}, Slides: []Slide{{}}}
		err := deck.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "front-matter")
	})
}

func TestDeck_Accessors(t *testing.T) {
	deck := &Deck{Slides: []Slide{
		{Index: 0, Title: "a"},
		{Index: 1, Section: 1, Title: "b"},
		{Index: 2, Section: 1, Title: "c"},
	}}

	assert.Equal(t, 3, deck.SlideCount())
	assert.Equal(t, 2, deck.SectionCount())
	assert.Equal(t, 0, (&Deck{}).SectionCount())

	section := deck.Section(1)
	require.Len(t, section, 2)
	assert.Equal(t, "b", section[0].Title)
	assert.Empty(t, deck.Section(5))

	slide, err := deck.GetSlideByIndex(2)
	require.NoError(t, err)
	assert.Equal(t, "c", slide.Title)

	_, err = deck.GetSlideByIndex(3)
	assert.Error(t, err)
	_, err = deck.GetSlideByIndex(-1)
	assert.Error(t, err)
}

func TestDeck_WithDefaults(t *testing.T) {
	deck := &Deck{
		FrontMatter: FrontMatter{Author: "Ada", Extra: map[string]string{"venue": "Hall"}},
		Slides:      []Slide{{Title: "x"}},
	}

	out := deck.WithDefaults(DefaultsConfig{Theme: "dark", Transition: "zoom", Author: "Bob"})

	assert.Equal(t, "dark", out.FrontMatter.Theme)
	assert.Equal(t, "zoom", out.FrontMatter.Transition)
	assert.Equal(t, "Ada", out.FrontMatter.Author, "explicit values win")
	assert.Equal(t, deck.Slides, out.Slides)

	out.FrontMatter.Extra["venue"] = "Changed"
	assert.Equal(t, "Hall", deck.FrontMatter.Extra["venue"])
	assert.Empty(t, deck.FrontMatter.Theme)
}
