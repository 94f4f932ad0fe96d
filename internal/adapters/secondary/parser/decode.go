package parser

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// decodeSource turns raw file bytes into NFC normalised, LF delimited UTF-8.
// A UTF-8 BOM is stripped; UTF-16 input is accepted only with a BOM.
func decodeSource(content []byte) (string, error) {
	hasUTF16BOM := bytes.HasPrefix(content, bomUTF16BE) || bytes.HasPrefix(content, bomUTF16LE)

	if !hasUTF16BOM && !utf8.Valid(content) {
		line := 1 + bytes.Count(content[:firstInvalidRune(content)], []byte("\n"))
		return "", entities.NewParseError(entities.InvalidEncoding, line, "", nil)
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
	if err != nil {
		return "", entities.NewParseError(entities.InvalidEncoding, 1, "", err)
	}

	decoded = norm.NFC.Bytes(decoded)
	decoded = bytes.ReplaceAll(decoded, []byte("\r\n"), []byte("\n"))
	decoded = bytes.ReplaceAll(decoded, []byte("\r"), []byte("\n"))

	return string(decoded), nil
}

// firstInvalidRune returns the byte offset of the first invalid UTF-8 sequence
func firstInvalidRune(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
