package export

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/domain/ports"
)

// MarkdownEncoder writes a deck back to canonical deck markdown. Parsing
// the output yields a deck equal to the input.
type MarkdownEncoder struct {
	notePrefix string
}

// NewMarkdownEncoder creates a markdown encoder writing notes with notePrefix
func NewMarkdownEncoder(notePrefix string) *MarkdownEncoder {
	if notePrefix == "" {
		notePrefix = "Note:"
	}
	return &MarkdownEncoder{notePrefix: notePrefix}
}

// Format returns FormatMarkdown
func (e *MarkdownEncoder) Format() entities.Format {
	return entities.FormatMarkdown
}

// Encode writes deck as markdown
func (e *MarkdownEncoder) Encode(ctx context.Context, deck *entities.Deck, w io.Writer) error {
	if deck == nil {
		return ErrNilDeck
	}

	var sb strings.Builder

	// Always emit the fenced block so the first slide is never read as
	// bare front-matter
	fm, err := encodeFrontMatter(&deck.FrontMatter)
	if err != nil {
		return fmt.Errorf("encoding front-matter: %w", err)
	}
	sb.WriteString("---\n")
	sb.WriteString(fm)
	sb.WriteString("---\n")

	for i := range deck.Slides {
		if err := ctx.Err(); err != nil {
			return err
		}

		slide := &deck.Slides[i]
		if i > 0 {
			marker := "---"
			if slide.Section != deck.Slides[i-1].Section {
				marker = "***"
			}
			sb.WriteString("\n" + marker + "\n")
		}

		body := e.slideLines(slide)
		if len(body) > 0 {
			sb.WriteString("\n")
			sb.WriteString(strings.Join(body, "\n"))
			sb.WriteString("\n")
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

func (e *MarkdownEncoder) slideLines(slide *entities.Slide) []string {
	lines := blocksLines(slide.Blocks, false)

	var notes []string
	for _, note := range strings.Split(slide.Notes, "\n") {
		if note = strings.TrimSpace(note); note != "" {
			notes = append(notes, e.notePrefix+" "+note)
		}
	}

	if len(notes) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, notes...)
	}

	return lines
}

// encodeFrontMatter renders known keys first, then extras sorted
func encodeFrontMatter(fm *entities.FrontMatter) (string, error) {
	keys := fm.Keys()
	if len(keys) == 0 {
		return "", nil
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		v, _ := fm.Get(k)
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
		)
	}

	out, err := yaml.Marshal(mapping)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// blocksLines renders blocks separated by blank lines, or back to back when
// tight (inside tight list items)
func blocksLines(blocks []entities.Block, tight bool) []string {
	var lines []string
	for i, b := range blocks {
		if i > 0 && !tight {
			lines = append(lines, "")
		}
		lines = append(lines, blockLines(b)...)
	}
	return lines
}

func blockLines(b entities.Block) []string {
	switch v := b.(type) {
	case *entities.Heading:
		level := v.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		marker := strings.Repeat("#", level)
		if v.Text == "" {
			return []string{marker}
		}
		return []string{marker + " " + v.Text}

	case *entities.Paragraph:
		return strings.Split(v.Text, "\n")

	case *entities.CodeSnippet:
		return codeLines(v)

	case *entities.Image:
		return []string{"!" + linkMarkdown(v.Alt, v.URL, v.Title)}

	case *entities.Link:
		return []string{linkMarkdown(v.Text, v.URL, v.Title)}

	case *entities.Quote:
		inner := blocksLines(v.Blocks, false)
		if len(inner) == 0 {
			return []string{">"}
		}
		return prefixLines(inner, "> ", "> ")

	case *entities.List:
		return listLines(v)

	default:
		return nil
	}
}

func codeLines(c *entities.CodeSnippet) []string {
	fence := strings.Repeat("`", longestBacktickRun(c.Code)+1)
	if len(fence) < 3 {
		fence = "```"
	}

	lines := []string{fence + c.Language}
	if c.Code != "" {
		lines = append(lines, strings.Split(strings.TrimSuffix(c.Code, "\n"), "\n")...)
	}
	return append(lines, fence)
}

// longestBacktickRun returns the longest run of backticks opening a code line
func longestBacktickRun(code string) int {
	longest := 0
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		n := len(trimmed) - len(strings.TrimLeft(trimmed, "`"))
		if n > longest {
			longest = n
		}
	}
	return longest
}

func listLines(l *entities.List) []string {
	var lines []string

	for i, item := range l.Items {
		marker := string(l.Marker) + " "
		if l.Ordered {
			marker = strconv.Itoa(l.Start+i) + string(l.Marker) + " "
		}

		if i > 0 && !l.Tight {
			lines = append(lines, "")
		}

		inner := blocksLines(item.Blocks, l.Tight)
		if len(inner) == 0 {
			lines = append(lines, strings.TrimRight(marker, " "))
			continue
		}
		lines = append(lines, prefixLines(inner, marker, strings.Repeat(" ", len(marker)))...)
	}

	return lines
}

// prefixLines prefixes the first line with first and the rest with rest.
// Blank lines stay blank unless the prefix carries a marker.
func prefixLines(lines []string, first, rest string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		if line == "" {
			out[i] = strings.TrimRight(prefix, " ")
			continue
		}
		out[i] = prefix + line
	}
	return out
}

func linkMarkdown(text, url, title string) string {
	dest := url
	if dest == "" || strings.ContainsAny(dest, " ()") {
		dest = "<" + dest + ">"
	}

	if title == "" {
		return fmt.Sprintf("[%s](%s)", text, dest)
	}
	return fmt.Sprintf("[%s](%s \"%s\")", text, dest, titleEscaper.Replace(title))
}

// titleEscaper backslash-escapes what would end or alter a quoted link title
var titleEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Ensure MarkdownEncoder implements ports.DeckEncoder
var _ ports.DeckEncoder = (*MarkdownEncoder)(nil)
