package parser

import (
	"regexp"
	"strings"
)

// DefaultNotePrefix marks a speaker note line
const DefaultNotePrefix = "Note:"

// NotesExtractor handles extraction of speaker notes from slide content
type NotesExtractor struct {
	notePrefix  string
	italicRegex *regexp.Regexp
}

// NewNotesExtractor creates a notes extractor for the given line prefix
func NewNotesExtractor(prefix string) *NotesExtractor {
	if prefix == "" {
		prefix = DefaultNotePrefix
	}

	return &NotesExtractor{
		notePrefix:  prefix,
		italicRegex: regexp.MustCompile(`^([*_])` + regexp.QuoteMeta(prefix) + `\s*(.*?)([*_])$`),
	}
}

// NoteText returns the note carried by line, if line is a note.
// Both "Note: text" and the italicised "*Note: text*" / "_Note: text_" count.
func (e *NotesExtractor) NoteText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, e.notePrefix) {
		return strings.TrimSpace(strings.TrimPrefix(trimmed, e.notePrefix)), true
	}

	if m := e.italicRegex.FindStringSubmatch(trimmed); m != nil && m[1] == m[3] {
		return strings.TrimSpace(m[2]), true
	}

	return "", false
}

// ExtractNotes separates speaker notes from the slide body. Only prose
// lines can be notes; code, list items and quotes keep theirs. Empty notes
// are dropped.
func (e *NotesExtractor) ExtractNotes(lines []sourceLine) (body []sourceLine, notes []string) {
	body = make([]sourceLine, 0, len(lines))

	for _, l := range lines {
		if !l.prose || l.inFence {
			body = append(body, l)
			continue
		}

		note, ok := e.NoteText(l.text)
		if !ok {
			body = append(body, l)
			continue
		}
		if note != "" {
			notes = append(notes, note)
		}
	}

	return body, notes
}
