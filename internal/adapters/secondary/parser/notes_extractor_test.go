package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotesExtractor_NoteText(t *testing.T) {
	extractor := NewNotesExtractor(DefaultNotePrefix)

	tests := []struct {
		line   string
		want   string
		isNote bool
	}{
		{line: "Note: plain", want: "plain", isNote: true},
		{line: "  Note:   padded  ", want: "padded", isNote: true},
		{line: "*Note: italic*", want: "italic", isNote: true},
		{line: "_Note: underscored_", want: "underscored", isNote: true},
		{line: "Note:", want: "", isNote: true},
		{line: "*Note: mismatched_", isNote: false},
		{line: "A Note: inline", isNote: false},
		{line: "note: lowercase", isNote: false},
		{line: "# Note: heading", isNote: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := extractor.NoteText(tt.line)
			assert.Equal(t, tt.isNote, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotesExtractor_ExtractNotes(t *testing.T) {
	extractor := NewNotesExtractor("")

	lines := []sourceLine{
		{text: "# Title", number: 1},
		{text: "Note: first", number: 2, prose: true},
		{text: "```", number: 3, inFence: true},
		{text: "Note: in code", number: 4, inFence: true},
		{text: "```", number: 5, inFence: true},
		{text: "Note:", number: 6, prose: true},
		{text: "*Note: last*", number: 7, prose: true},
		{text: "    Note: indented code", number: 8},
		{text: "  Note: list continuation", number: 9},
	}

	body, notes := extractor.ExtractNotes(lines)

	assert.Equal(t, []string{"first", "last"}, notes)
	assert.Equal(t, []int{1, 3, 4, 5, 8, 9}, lineNumbers(body))
}

func TestNotesExtractor_CustomPrefix(t *testing.T) {
	extractor := NewNotesExtractor("Speaker:")

	got, ok := extractor.NoteText("_Speaker: hi_")
	assert.True(t, ok)
	assert.Equal(t, "hi", got)

	_, ok = extractor.NoteText("Note: other")
	assert.False(t, ok)
}

func lineNumbers(lines []sourceLine) []int {
	out := make([]int, len(lines))
	for i, l := range lines {
		out[i] = l.number
	}
	return out
}
