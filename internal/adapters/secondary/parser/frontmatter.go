package parser

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

// yamlKeyRest continues a plain key: colons only when not followed by
// whitespace, and no comment
const yamlKeyRest = `(?:[^:\s]|:\S|[ \t]+[^\s#])*`

var (
	errNotMapping = errors.New("front-matter must be a mapping of key: value pairs")

	// frontMatterLine matches "key: value" and "key : value"; the colon must
	// be followed by whitespace or end the line so URLs never match
	frontMatterLine = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*)[ \t]*:(?:[ \t]+(.*?))?[ \t]*$`)

	// yamlKeyLine matches the first line of a YAML mapping, quoted keys included
	yamlKeyLine = regexp.MustCompile(`^(?:[^\s#"'\-\[\]{}>|*&!%@` + "`" + `,?:]` + yamlKeyRest +
		`|-[^\s:#]` + yamlKeyRest + `|"[^"]*"|'[^']*')[ \t]*:(?:[ \t]|$)`)

	orderedItem = regexp.MustCompile(`^\d{1,9}[.)][ \t]`)
)

// extractYAMLFrontMatter handles a deck opening with a "---" fenced YAML
// block. The closing fence doubles as the first separator. A block that is
// blank is empty front-matter; a block whose first content line is not a
// "key:" line is not front-matter at all, and the opening "---" is then an
// ordinary slide separator.
func extractYAMLFrontMatter(lines []sourceLine) (*entities.FrontMatter, []sourceLine, bool, error) {
	if len(lines) == 0 || strings.TrimRight(lines[0].text, " \t") != slideMarker {
		return nil, lines, false, nil
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i].text, " \t") == slideMarker {
			closing = i
			break
		}
	}

	body := lines[1:]
	if closing != -1 {
		body = lines[1:closing]
	}

	first := firstContentLine(body)
	switch {
	case first == nil && closing != -1:
		return &entities.FrontMatter{}, lines[closing+1:], true, nil
	case first == nil || !looksLikeYAMLKey(first.text):
		return nil, lines, false, nil
	case closing == -1:
		return nil, nil, true, entities.NewParseError(
			entities.MalformedFrontMatter, lines[0].number, slideMarker, errors.New("front-matter block is not closed"),
		)
	}

	fm, err := decodeYAMLFrontMatter(body, lines[0].number)
	if err != nil {
		return nil, nil, true, err
	}
	return fm, lines[closing+1:], true, nil
}

// looksLikeYAMLKey reports whether text can open a YAML mapping rather than
// a slide body
func looksLikeYAMLKey(text string) bool {
	return yamlKeyLine.MatchString(text) && !orderedItem.MatchString(text)
}

// firstContentLine returns the first non-blank line, or nil
func firstContentLine(lines []sourceLine) *sourceLine {
	for i := range lines {
		if strings.TrimSpace(lines[i].text) != "" {
			return &lines[i]
		}
	}
	return nil
}

func decodeYAMLFrontMatter(lines []sourceLine, openLine int) (*entities.FrontMatter, error) {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.text
	}
	content := strings.Join(texts, "\n")

	fm := &entities.FrontMatter{}
	if strings.TrimSpace(content) == "" {
		return fm, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, entities.NewParseError(entities.MalformedFrontMatter, openLine+1, "", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, entities.NewParseError(entities.MalformedFrontMatter, openLine+1, "", errNotMapping)
	}

	mapping := doc.Content[0]
	keyLines := make(map[string]int, len(mapping.Content)/2)

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		line := openLine + key.Line

		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, entities.NewParseError(entities.MalformedFrontMatter, line, "", errNotMapping)
		}
		if _, dup := keyLines[key.Value]; dup {
			return nil, entities.NewParseError(entities.MalformedFrontMatter, line, key.Value, errors.New("duplicate key"))
		}
		if value.Kind != yaml.ScalarNode {
			return nil, entities.NewParseError(entities.MalformedFrontMatter, line, key.Value, errors.New("value must be a scalar"))
		}

		keyLines[key.Value] = line
		if value.Tag == "!!null" {
			fm.Set(key.Value, "")
			continue
		}
		fm.Set(key.Value, value.Value)
	}

	if err := validateFrontMatter(fm, keyLines, openLine); err != nil {
		return nil, err
	}

	return fm, nil
}

// extractBareFrontMatter reads a first segment of "key: value" lines. The
// segment counts as front-matter only when it opens with a known key; from
// then on every non-blank line must be a key/value pair.
func (p *DeckParser) extractBareFrontMatter(seg segment) (*entities.FrontMatter, bool, error) {
	var lines []sourceLine
	for _, l := range seg.lines {
		if strings.TrimSpace(l.text) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, false, nil
	}

	first := frontMatterLine.FindStringSubmatch(lines[0].text)
	if first == nil || lines[0].inFence || !entities.IsKnownFrontMatterKey(first[1]) {
		return nil, false, nil
	}

	fm := &entities.FrontMatter{}
	keyLines := make(map[string]int, len(lines))

	for _, l := range lines {
		m := frontMatterLine.FindStringSubmatch(l.text)
		if m == nil || l.inFence {
			return nil, false, entities.NewParseError(
				entities.MalformedFrontMatter, l.number, strings.TrimSpace(l.text), errors.New("expected key: value"),
			)
		}
		if _, dup := keyLines[m[1]]; dup {
			return nil, false, entities.NewParseError(
				entities.MalformedFrontMatter, l.number, m[1], errors.New("duplicate key"),
			)
		}
		keyLines[m[1]] = l.number
		fm.Set(m[1], unquote(m[2]))
	}

	if err := validateFrontMatter(fm, keyLines, lines[0].number); err != nil {
		return nil, false, err
	}

	return fm, true, nil
}

// validateFrontMatter reports the first invalid key at its source line
func validateFrontMatter(fm *entities.FrontMatter, keyLines map[string]int, fallback int) error {
	err := fm.Validate()
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for field := range verrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		key := strings.ToLower(fields[0])
		line, ok := keyLines[key]
		if !ok {
			line = fallback
		}
		value, _ := fm.Get(key)
		return entities.NewParseError(
			entities.MalformedFrontMatter, line, fmt.Sprintf("%s: %s", key, value), verrs[fields[0]],
		)
	}

	return entities.NewParseError(entities.MalformedFrontMatter, fallback, "", err)
}

// unquote strips one level of matching quotes from a bare value
func unquote(v string) string {
	if len(v) < 2 {
		return v
	}

	switch {
	case v[0] == '"' && v[len(v)-1] == '"':
		if s, err := strconv.Unquote(v); err == nil {
			return s
		}
		return v[1 : len(v)-1]
	case v[0] == '\'' && v[len(v)-1] == '\'':
		return v[1 : len(v)-1]
	default:
		return v
	}
}
