package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

var (
	overlongHeading = regexp.MustCompile(`^#{7,}(?:[ \t]|$)`)
	thematicBreak   = regexp.MustCompile(`^ {0,3}([-*_])(?:[ \t]*[-*_]){2,}[ \t]*$`)
)

// newBlockMarkdown creates the goldmark instance used to classify slide bodies
func newBlockMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough, // ~~strikethrough~~
			extension.Linkify,       // bare URLs become links
		),
	)
}

// blockBuilder converts a goldmark AST into deck blocks
type blockBuilder struct {
	source      []byte
	lineStarts  []int
	lineNumbers []int
}

func newBlockBuilder(lines []sourceLine) *blockBuilder {
	var sb strings.Builder
	b := &blockBuilder{
		lineStarts:  make([]int, len(lines)),
		lineNumbers: make([]int, len(lines)),
	}

	for i, l := range lines {
		b.lineStarts[i] = sb.Len()
		b.lineNumbers[i] = l.number
		sb.WriteString(l.text)
		sb.WriteByte('\n')
	}

	b.source = []byte(sb.String())
	return b
}

// classify parses the slide body and returns its blocks
func (p *DeckParser) classify(lines []sourceLine) ([]entities.Block, error) {
	b := newBlockBuilder(lines)
	doc := p.md.Parser().Parse(text.NewReader(b.source))
	return b.convertChildren(doc, 0)
}

// markProse flags the lines of paragraphs sitting directly in the slide
// body, the only place speaker notes are read from
func (p *DeckParser) markProse(lines []sourceLine) {
	b := newBlockBuilder(lines)
	doc := p.md.Parser().Parse(text.NewReader(b.source))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() != ast.KindParagraph {
			continue
		}
		segs := n.Lines()
		for i := 0; i < segs.Len(); i++ {
			lines[b.lineIndex(segs.At(i).Start)].prose = true
		}
	}
}

// convertChildren converts the children of parent. from is the body line
// index where parent starts.
func (b *blockBuilder) convertChildren(parent ast.Node, from int) ([]entities.Block, error) {
	var blocks []entities.Block
	cursor := from

	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		block, err := b.convert(n, cursor)
		if err != nil {
			return nil, err
		}
		if block != nil {
			blocks = append(blocks, block)
		}
		if _, last, ok := b.span(n); ok {
			cursor = last + 1
		}
	}

	return blocks, nil
}

func (b *blockBuilder) convert(n ast.Node, cursor int) (entities.Block, error) {
	switch node := n.(type) {
	case *ast.Heading:
		return &entities.Heading{
			Level: node.Level,
			Text:  strings.TrimSpace(b.linesText(node.Lines(), " ")),
		}, nil

	case *ast.Paragraph, *ast.TextBlock:
		return b.convertParagraph(n)

	case *ast.FencedCodeBlock:
		return &entities.CodeSnippet{
			Language: string(node.Language(b.source)),
			Code:     b.codeText(node.Lines()),
		}, nil

	case *ast.CodeBlock:
		return &entities.CodeSnippet{Code: b.codeText(node.Lines())}, nil

	case *ast.List:
		return b.convertList(node, cursor)

	case *ast.Blockquote:
		children, err := b.convertChildren(node, b.startLine(node, cursor))
		if err != nil {
			return nil, err
		}
		return &entities.Quote{Blocks: children}, nil

	case *ast.HTMLBlock:
		return nil, b.unrecognized(n, cursor, "raw HTML block")

	case *ast.ThematicBreak:
		line := b.findLine(cursor, thematicBreak.MatchString)
		return nil, entities.NewParseError(
			entities.UnrecognizedBlockMarker, b.sourceLine(line), b.lineText(line),
			fmt.Errorf("only %q and %q divide slides", slideMarker, sectionMarker),
		)

	default:
		return nil, b.unrecognized(n, cursor, n.Kind().String())
	}
}

func (b *blockBuilder) convertParagraph(n ast.Node) (entities.Block, error) {
	raw := strings.TrimRight(b.linesText(n.Lines(), "\n"), " \t\n")

	if overlongHeading.MatchString(raw) {
		first, _, _ := b.span(n)
		return nil, entities.NewParseError(
			entities.UnrecognizedBlockMarker, b.sourceLine(first), strings.SplitN(raw, "\n", 2)[0],
			fmt.Errorf("heading level exceeds 6"),
		)
	}

	if n.ChildCount() == 1 {
		switch child := n.FirstChild().(type) {
		case *ast.Image:
			return &entities.Image{
				Alt:   plainText(child, b.source),
				URL:   string(child.Destination),
				Title: linkTitle(child.Title),
			}, nil
		case *ast.Link:
			return &entities.Link{
				Text:  plainText(child, b.source),
				URL:   string(child.Destination),
				Title: linkTitle(child.Title),
			}, nil
		case *ast.AutoLink:
			return &entities.Link{
				Text: string(child.Label(b.source)),
				URL:  string(child.URL(b.source)),
			}, nil
		}
	}

	return &entities.Paragraph{Text: raw}, nil
}

func (b *blockBuilder) convertList(node *ast.List, cursor int) (entities.Block, error) {
	list := &entities.List{
		Ordered: node.IsOrdered(),
		Marker:  node.Marker,
		Tight:   node.IsTight,
	}
	if list.Ordered {
		list.Start = node.Start
	}

	itemCursor := b.startLine(node, cursor)
	for item := node.FirstChild(); item != nil; item = item.NextSibling() {
		children, err := b.convertChildren(item, itemCursor)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, entities.ListItem{Blocks: children})
		if _, last, ok := b.span(item); ok {
			itemCursor = last + 1
		}
	}

	return list, nil
}

func (b *blockBuilder) unrecognized(n ast.Node, cursor int, construct string) error {
	line := b.startLine(n, cursor)
	return entities.NewParseError(
		entities.UnrecognizedBlockMarker, b.sourceLine(line), construct,
		fmt.Errorf("%q has no slide block equivalent", strings.TrimSpace(b.lineText(line))),
	)
}

// linesText joins the raw text of block lines
func (b *blockBuilder) linesText(lines *text.Segments, sep string) string {
	parts := make([]string, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts[i] = strings.TrimRight(string(seg.Value(b.source)), "\n")
	}
	return strings.Join(parts, sep)
}

// codeText concatenates code lines verbatim, each keeping its newline
func (b *blockBuilder) codeText(lines *text.Segments) string {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(b.source))
	}
	return sb.String()
}

// span returns the first and last body line index covered by n
func (b *blockBuilder) span(n ast.Node) (first, last int, ok bool) {
	first, last = -1, -1

	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := c.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		start := b.lineIndex(lines.At(0).Start)
		end := b.lineIndex(lines.At(lines.Len() - 1).Start)
		if first == -1 || start < first {
			first = start
		}
		if end > last {
			last = end
		}
		return ast.WalkContinue, nil
	})

	return first, last, first != -1
}

func (b *blockBuilder) startLine(n ast.Node, cursor int) int {
	if first, _, ok := b.span(n); ok {
		return first
	}
	return cursor
}

// findLine returns the first body line at or after from that satisfies match
func (b *blockBuilder) findLine(from int, match func(string) bool) int {
	for i := from; i < len(b.lineStarts); i++ {
		if match(b.lineText(i)) {
			return i
		}
	}
	return from
}

func (b *blockBuilder) lineIndex(offset int) int {
	i := sort.SearchInts(b.lineStarts, offset+1) - 1
	if i < 0 {
		return 0
	}
	return i
}

func (b *blockBuilder) lineText(i int) string {
	if i < 0 || i >= len(b.lineStarts) {
		return ""
	}
	end := len(b.source)
	if i+1 < len(b.lineStarts) {
		end = b.lineStarts[i+1]
	}
	return strings.TrimRight(string(b.source[b.lineStarts[i]:end]), "\n")
}

// sourceLine maps a body line index to its 1-based line in the deck file
func (b *blockBuilder) sourceLine(i int) int {
	if len(b.lineNumbers) == 0 {
		return 1
	}
	if i < 0 {
		i = 0
	}
	if i >= len(b.lineNumbers) {
		i = len(b.lineNumbers) - 1
	}
	return b.lineNumbers[i]
}

// linkTitle decodes the backslash escapes goldmark leaves in link titles
func linkTitle(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	return string(util.UnescapePunctuations(raw))
}

// plainText collects the literal text under an inline node
func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder

	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})

	return sb.String()
}
