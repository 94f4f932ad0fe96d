package entities

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "line only",
			err:  NewParseError(InvalidEncoding, 3, "", nil),
			want: "line 3: invalid encoding",
		},
		{
			name: "with construct",
			err:  NewParseError(UnterminatedCodeBlock, 12, "```go", nil),
			want: "line 12: unterminated code block \"```go\"",
		},
		{
			name: "with cause",
			err:  NewParseError(MalformedFrontMatter, 2, "theme: Dark", errors.New("must be a lowercase slug")),
			want: "line 2: malformed front-matter \"theme: Dark\": must be a lowercase slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestParseError_Is(t *testing.T) {
	cause := errors.New("yaml: line 1: did not find expected key")
	err := fmt.Errorf("talk.md: %w", NewParseError(MalformedFrontMatter, 1, "", cause))

	assert.ErrorIs(t, err, ErrMalformedFrontMatter)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUnterminatedCodeBlock)

	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, MalformedFrontMatter, pe.Kind)
	assert.Equal(t, 1, pe.Line)

	_, ok = AsParseError(errors.New("plain"))
	assert.False(t, ok)
}

func TestParseErrorKind_String(t *testing.T) {
	assert.Equal(t, "MalformedFrontMatter", MalformedFrontMatter.String())
	assert.Equal(t, "UnterminatedCodeBlock", UnterminatedCodeBlock.String())
	assert.Equal(t, "UnrecognizedBlockMarker", UnrecognizedBlockMarker.String())
	assert.Equal(t, "InvalidEncoding", InvalidEncoding.String())
	assert.Equal(t, "Unknown", ParseErrorKind(0).String())
}
