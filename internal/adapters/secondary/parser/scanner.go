package parser

import (
	"regexp"
	"strings"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

// separator is the kind of marker line dividing slides
type separator int

const (
	noSeparator separator = iota
	slideSeparator
	sectionSeparator
)

const (
	slideMarker   = "---"
	sectionMarker = "***"
)

// listMarker matches a bullet or ordered list item marker
var listMarker = regexp.MustCompile(`^(?:[-*+]|\d{1,9}[.)])(?:[ ]|$)`)

// sourceLine is one line of decoded deck text
type sourceLine struct {
	text   string
	number int
	// inFence marks fence delimiters and fenced content
	inFence bool
	// prose marks lines of top-level paragraphs
	prose bool
	sep   separator
}

// segment is the run of lines between two separators
type segment struct {
	lines []sourceLine
	// brk is the separator that opened this segment
	brk separator
}

func (s segment) isBlank() bool {
	return isBlank(s.lines)
}

func isBlank(lines []sourceLine) bool {
	for _, l := range lines {
		if strings.TrimSpace(l.text) != "" {
			return false
		}
	}
	return true
}

// splitLines breaks decoded text into numbered lines
func splitLines(src string) []sourceLine {
	if src == "" {
		return nil
	}

	raw := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	lines := make([]sourceLine, len(raw))
	for i, text := range raw {
		lines[i] = sourceLine{text: text, number: i + 1}
	}
	return lines
}

// classifySeparator recognises the slide and section marker lines
func classifySeparator(text string) separator {
	indent := len(text) - len(strings.TrimLeft(text, " "))
	if indent > 3 {
		return noSeparator
	}

	switch strings.TrimSpace(text) {
	case slideMarker:
		return slideSeparator
	case sectionMarker:
		return sectionSeparator
	default:
		return noSeparator
	}
}

// fence is an open fenced code block
type fence struct {
	char   byte
	length int
	line   int
	opener string
}

// container is an open block quote or list item. Fences inside a container
// end with it.
type container struct {
	quote bool
	// width is the list item content indent
	width int
}

// parseFenceOpen reports whether text, past any container markers, opens a
// fenced code block
func parseFenceOpen(text string) (fence, bool) {
	rest, _ := openContainers(detab(text))
	return fenceAt(rest)
}

// fenceAt recognises a fence opener indented at most three columns
func fenceAt(s string) (fence, bool) {
	ind := indentOf(s)
	if ind > 3 {
		return fence{}, false
	}
	s = s[ind:]

	if len(s) < 3 || (s[0] != '`' && s[0] != '~') {
		return fence{}, false
	}

	n := leadingRun(s, s[0])
	if n < 3 {
		return fence{}, false
	}

	// backtick fences may not carry backticks in their info string
	if s[0] == '`' && strings.ContainsRune(s[n:], '`') {
		return fence{}, false
	}

	return fence{char: s[0], length: n}, true
}

// closedBy reports whether text, with container markers already stripped,
// closes the fence
func (f fence) closedBy(text string) bool {
	ind := indentOf(text)
	if ind > 3 {
		return false
	}
	s := text[ind:]
	n := leadingRun(s, f.char)
	return n >= f.length && strings.TrimSpace(s[n:]) == ""
}

func leadingRun(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

func indentOf(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}

// detab expands tabs to four column stops
func detab(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := 4 - col%4
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}

// matchContainers strips the markers of the open containers that text
// continues. It returns the remainder and how many containers matched.
func matchContainers(text string, stack []container) (string, int) {
	s := text
	for i, c := range stack {
		if c.quote {
			ind := indentOf(s)
			if ind > 3 || ind >= len(s) || s[ind] != '>' {
				return s, i
			}
			s = strings.TrimPrefix(s[ind+1:], " ")
			continue
		}

		if strings.TrimSpace(s) == "" {
			s = ""
			continue
		}
		if indentOf(s) < c.width {
			return s, i
		}
		s = s[c.width:]
	}
	return s, len(stack)
}

// openContainers strips block quote and list item markers starting on this
// line and returns the containers they open
func openContainers(s string) (string, []container) {
	var opened []container

	for {
		ind := indentOf(s)
		if ind > 3 {
			return s, opened
		}
		t := s[ind:]

		if strings.HasPrefix(t, ">") {
			opened = append(opened, container{quote: true})
			s = strings.TrimPrefix(t[1:], " ")
			continue
		}

		m := listMarker.FindString(t)
		if m == "" {
			return s, opened
		}
		marker := strings.TrimRight(m, " ")
		after := t[len(marker):]
		spaces := indentOf(after)

		switch {
		case strings.TrimSpace(after) == "":
			// item opening with a blank line
			opened = append(opened, container{width: ind + len(marker) + 1})
			return "", opened
		case spaces > 4:
			// content is indented code; it starts one column past the marker
			opened = append(opened, container{width: ind + len(marker) + 1})
			s = after[1:]
		default:
			opened = append(opened, container{width: ind + len(marker) + spaces})
			s = after[spaces:]
		}
	}
}

// continuesParagraph reports whether rest is a lazy continuation line,
// which keeps unmatched containers open
func continuesParagraph(rest string, prevText bool) bool {
	if !prevText || strings.TrimSpace(rest) == "" {
		return false
	}
	if _, opened := openContainers(rest); len(opened) > 0 {
		return false
	}
	_, isFence := parseFenceOpen(rest)
	return !isFence
}

// scanLines marks fenced lines and separators in place. Fences follow the
// block quotes and list items they open in: a line that leaves the
// container ends the fence as well. A fence left open at the end of input
// is an error; its content is never truncated.
func scanLines(lines []sourceLine) error {
	var (
		stack    []container
		open     *fence
		prevText bool
	)

	for i := range lines {
		rest, matched := matchContainers(detab(lines[i].text), stack)

		if open != nil {
			if matched == len(stack) {
				lines[i].inFence = true
				if open.closedBy(rest) {
					open = nil
				}
				continue
			}
			open = nil
		}

		if matched < len(stack) && !continuesParagraph(rest, prevText) {
			stack = stack[:matched]
		}
		if matched == len(stack) {
			var opened []container
			rest, opened = openContainers(rest)
			stack = append(stack, opened...)
		}

		if f, ok := fenceAt(rest); ok {
			f.line = lines[i].number
			f.opener = strings.TrimSpace(lines[i].text)
			open = &f
			lines[i].inFence = true
			prevText = false
			continue
		}

		lines[i].sep = classifySeparator(lines[i].text)
		if lines[i].sep != noSeparator {
			stack, prevText = nil, false
			continue
		}

		blank := strings.TrimSpace(rest) == ""
		prevText = !blank && (prevText || indentOf(rest) < 4)
	}

	if open != nil {
		return entities.NewParseError(entities.UnterminatedCodeBlock, open.line, open.opener, nil)
	}

	return nil
}

// splitSegments cuts scanned lines on separators outside fences
func splitSegments(lines []sourceLine) []segment {
	segments := []segment{{brk: noSeparator}}

	for _, l := range lines {
		if !l.inFence && l.sep != noSeparator {
			segments = append(segments, segment{brk: l.sep})
			continue
		}
		cur := &segments[len(segments)-1]
		cur.lines = append(cur.lines, l)
	}

	return segments
}
