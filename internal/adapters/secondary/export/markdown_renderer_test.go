package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckmark/internal/adapters/secondary/parser"
	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/test/builders"
)

func encodeMarkdown(t *testing.T, deck *entities.Deck) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownEncoder("").Encode(context.Background(), deck, &buf))
	return buf.String()
}

func TestMarkdownEncoder_Encode(t *testing.T) {
	deck := builders.NewDeckBuilder().
		WithTitle("Talk").
		WithTheme("dark").
		WithFrontMatter("venue", "Hall: 2").
		WithSlide(builders.NewSlideBuilder().
			WithTitle("Intro").
			WithParagraph("Hello").
			WithNotes("wave\nsmile").
			Build()).
		WithSlide(builders.NewSlideBuilder().
			WithBulletList("a", "b").
			Build()).
		NextSection().
		WithSlide(builders.NewSlideBuilder().
			WithCode("go", "x := \"```\"\n```\n").
			Build()).
		Build()

	want := "---\n" +
		"title: Talk\n" +
		"author: Test Author\n" +
		"theme: dark\n" +
		"venue: 'Hall: 2'\n" +
		"---\n" +
		"\n# Intro\n\nHello\n\nNote: wave\nNote: smile\n" +
		"\n---\n" +
		"\n- a\n- b\n" +
		"\n***\n" +
		"\n````go\nx := \"```\"\n```\n````\n"

	assert.Equal(t, want, encodeMarkdown(t, deck))
}

func TestMarkdownEncoder_EmptyFrontMatter(t *testing.T) {
	deck := builders.NewDeckBuilder().WithoutFrontMatter().WithSlideCount(1).Build()

	assert.Equal(t, "---\n---\n\n# Slide 1\n\nTest content\n", encodeMarkdown(t, deck))
}

func TestMarkdownEncoder_NilDeck(t *testing.T) {
	err := NewMarkdownEncoder("").Encode(context.Background(), nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNilDeck)
}

func TestMarkdownEncoder_CustomNotePrefix(t *testing.T) {
	deck := builders.NewDeckBuilder().
		WithoutFrontMatter().
		WithSlide(builders.NewSlideBuilder().WithNotes("hello").Build()).
		Build()

	var buf bytes.Buffer
	require.NoError(t, NewMarkdownEncoder("Speaker:").Encode(context.Background(), deck, &buf))
	assert.Equal(t, "---\n---\n\nSpeaker: hello\n", buf.String())
}

func TestMarkdownEncoder_RoundTrip(t *testing.T) {
	sources := map[string]string{
		"sample deck": builders.SampleDeck,
		"empty deck":  "",
		"bare front-matter": "title: Bare\ntransition: zoom\n***\n# One\n---\nNote: only notes\n",
		"nested structures": "# Structures\n\n" +
			"- outer\n  - inner\n    1. deep\n- second\n\n" +
			"3) three\n4) four\n\n" +
			"* loose a\n\n  continued\n\n* loose b\n\n" +
			"> quoted text\n>\n> - in quote\n> - list\n>\n> ```sh\n> echo hi\n> ```\n",
		"media and links": "## Media\n\n" +
			"![alt text](img/a.png \"A title\")\n\n" +
			"[docs](https://example.com/docs)\n\n" +
			"[spaced](<path with space.md>)\n\n" +
			"Prose with [inline](x.md) link\n",
		"code fences": "```\nplain\n```\n\n" +
			"````markdown\n```go\nfmt.Println()\n```\n````\n\n" +
			"~~~python\nprint('~~~')\n~~~\n\n" +
			"    indented code\n",
		"escaped titles": "[x](https://x.y \"t\\ty\")\n\n" +
			"[q](a.md \"a \\\"q\\\" \\\\ b\")\n\n" +
			"![i](b.png 'single \"quoted\"')\n",
		"front-matter values": "---\ntitle: \"Yes: No\"\nauthor: '#1 fan'\nflag: \"true\"\nnumber: 42\n---\n# X\n",
		"sections": "# A\n***\n# B\n---\n# C\n***\n\n---\n# D\n",
	}

	p := parser.NewDeckParser()
	ctx := context.Background()

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			original, err := p.Parse(ctx, []byte(src))
			require.NoError(t, err)

			encoded := encodeMarkdown(t, original)

			reparsed, err := p.Parse(ctx, []byte(encoded))
			require.NoError(t, err, encoded)
			assert.Equal(t, original, reparsed, encoded)

			// canonical output is a fixed point
			assert.Equal(t, encoded, encodeMarkdown(t, reparsed))
		})
	}
}

func TestLongestBacktickRun(t *testing.T) {
	assert.Equal(t, 0, longestBacktickRun("plain\n"))
	assert.Equal(t, 3, longestBacktickRun("```go\nx\n```\n"))
	assert.Equal(t, 5, longestBacktickRun("  `````\n"))
	assert.Equal(t, 0, longestBacktickRun("inline `code` only\n"))
}

func TestLinkMarkdown(t *testing.T) {
	assert.Equal(t, "[a](b.md)", linkMarkdown("a", "b.md", ""))
	assert.Equal(t, "[a](<b c.md>)", linkMarkdown("a", "b c.md", ""))
	assert.Equal(t, "[a](<>)", linkMarkdown("a", "", ""))
	assert.Equal(t, `[a](b.md "T \"q\"")`, linkMarkdown("a", "b.md", `T "q"`))
	assert.Equal(t, `[x](https://x.y "t\\ty")`, linkMarkdown("x", "https://x.y", `t\ty`))
	assert.Equal(t, "[x](y \"tab\there\")", linkMarkdown("x", "y", "tab\there"))
}
