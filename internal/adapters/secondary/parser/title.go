package parser

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

// slideNamespace seeds the name-based slide IDs
var slideNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/fredcamaral/deckmark/slide"))

// titleRenderer turns heading markdown into plain text titles
type titleRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newTitleRenderer() *titleRenderer {
	return &titleRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Typographer,
			),
		),
		policy: bluemonday.StrictPolicy(),
	}
}

// Title returns the plain text of the slide's first heading, or the
// generated "Slide N" title
func (r *titleRenderer) Title(slide *entities.Slide) string {
	h := slide.FirstHeading()
	if h == nil || strings.TrimSpace(h.Text) == "" {
		return slide.FallbackTitle()
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte("# "+h.Text), &buf); err != nil {
		return h.Text
	}

	plain := strings.TrimSpace(html.UnescapeString(r.policy.Sanitize(buf.String())))
	if plain == "" {
		return slide.FallbackTitle()
	}
	return plain
}

// slideID derives a stable identifier from the slide position and title
func slideID(slide *entities.Slide) string {
	name := fmt.Sprintf("%d/%d/%s", slide.Section, slide.Index, slide.Title)
	return uuid.NewSHA1(slideNamespace, []byte(name)).String()
}
