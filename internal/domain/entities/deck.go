package entities

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Known front-matter keys
const (
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyAuthor      = "author"
	KeyTheme       = "theme"
	KeyTransition  = "transition"
)

// KnownFrontMatterKeys lists the typed front-matter keys in serialization order
var KnownFrontMatterKeys = []string{KeyTitle, KeyDescription, KeyAuthor, KeyTheme, KeyTransition}

// Transitions accepted by the presentation engine
var Transitions = []interface{}{"none", "fade", "slide", "convex", "concave", "zoom"}

var themePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// FrontMatter is the deck metadata preceding the first slide
type FrontMatter struct {
	Title       string
	Description string
	Author      string
	Theme       string
	Transition  string

	// Extra holds keys other than the known ones
	Extra map[string]string
}

// IsKnownFrontMatterKey reports whether key maps to a typed FrontMatter field
func IsKnownFrontMatterKey(key string) bool {
	for _, k := range KnownFrontMatterKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value stored under key
func (f *FrontMatter) Get(key string) (string, bool) {
	var v string
	switch key {
	case KeyTitle:
		v = f.Title
	case KeyDescription:
		v = f.Description
	case KeyAuthor:
		v = f.Author
	case KeyTheme:
		v = f.Theme
	case KeyTransition:
		v = f.Transition
	default:
		val, ok := f.Extra[key]
		return val, ok
	}
	return v, v != ""
}

// Set stores value under key
func (f *FrontMatter) Set(key, value string) {
	switch key {
	case KeyTitle:
		f.Title = value
	case KeyDescription:
		f.Description = value
	case KeyAuthor:
		f.Author = value
	case KeyTheme:
		f.Theme = value
	case KeyTransition:
		f.Transition = value
	default:
		if f.Extra == nil {
			f.Extra = make(map[string]string)
		}
		f.Extra[key] = value
	}
}

// Keys returns the populated keys: known keys first, then extras sorted
func (f *FrontMatter) Keys() []string {
	var keys []string
	for _, k := range KnownFrontMatterKeys {
		if _, ok := f.Get(k); ok {
			keys = append(keys, k)
		}
	}

	extras := make([]string, 0, len(f.Extra))
	for k := range f.Extra {
		extras = append(extras, k)
	}
	sort.Strings(extras)

	return append(keys, extras...)
}

// ToMap flattens the front-matter into a key/value map
func (f *FrontMatter) ToMap() map[string]string {
	m := make(map[string]string)
	for _, k := range f.Keys() {
		v, _ := f.Get(k)
		m[k] = v
	}
	return m
}

// IsZero reports whether no key is set
func (f *FrontMatter) IsZero() bool {
	return len(f.Keys()) == 0
}

// Validate checks the values of the known keys
func (f *FrontMatter) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Theme, validation.Match(themePattern).Error("must be a lowercase slug")),
		validation.Field(&f.Transition, validation.In(Transitions...)),
	)
}

// Deck is the full ordered slide collection for one presentation
type Deck struct {
	FrontMatter FrontMatter
	Slides      []Slide
}

// Validate ensures slide ordering and section numbering are consistent
func (d *Deck) Validate() error {
	if len(d.Slides) == 0 {
		return errors.New("deck must have at least one slide")
	}

	if err := d.FrontMatter.Validate(); err != nil {
		return fmt.Errorf("front-matter: %w", err)
	}

	for i, slide := range d.Slides {
		if slide.Index != i {
			return fmt.Errorf("slide %d has index %d", i+1, slide.Index)
		}
		if i == 0 && slide.Section != 0 {
			return errors.New("first slide must open section 0")
		}
		if i > 0 {
			prev := d.Slides[i-1].Section
			if slide.Section != prev && slide.Section != prev+1 {
				return fmt.Errorf("slide %d jumps from section %d to %d", i+1, prev, slide.Section)
			}
		}
	}

	return nil
}

// SlideCount returns the total number of slides
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// SectionCount returns the number of sections
func (d *Deck) SectionCount() int {
	if len(d.Slides) == 0 {
		return 0
	}
	return d.Slides[len(d.Slides)-1].Section + 1
}

// Section returns the slides belonging to section n, in order
func (d *Deck) Section(n int) []Slide {
	var out []Slide
	for _, s := range d.Slides {
		if s.Section == n {
			out = append(out, s)
		}
	}
	return out
}

// GetSlideByIndex returns a slide by its index (0-based)
func (d *Deck) GetSlideByIndex(index int) (*Slide, error) {
	if index < 0 || index >= len(d.Slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(d.Slides)-1)
	}
	return &d.Slides[index], nil
}

// WithDefaults returns a copy of the deck where empty theme, transition and
// author are filled from defaults. Slides are shared with the receiver.
func (d *Deck) WithDefaults(defaults DefaultsConfig) *Deck {
	out := *d
	fm := d.FrontMatter
	if d.FrontMatter.Extra != nil {
		fm.Extra = make(map[string]string, len(d.FrontMatter.Extra))
		for k, v := range d.FrontMatter.Extra {
			fm.Extra[k] = v
		}
	}

	if fm.Theme == "" {
		fm.Theme = defaults.Theme
	}
	if fm.Transition == "" {
		fm.Transition = defaults.Transition
	}
	if fm.Author == "" {
		fm.Author = defaults.Author
	}

	out.FrontMatter = fm
	return &out
}
