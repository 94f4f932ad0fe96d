package entities

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Format is a deck serialization format
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported serialization format
var Formats = []Format{FormatMarkdown, FormatJSON, FormatYAML}

// ParseFormat converts a user supplied name into a Format
func ParseFormat(name string) (Format, error) {
	switch name {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (must be markdown, json, or yaml)", name)
	}
}

// Config represents the complete application configuration
type Config struct {
	Parser   ParserConfig   `toml:"parser"`
	Export   ExportConfig   `toml:"export"`
	Defaults DefaultsConfig `toml:"defaults"`
	Logging  LoggingConfig  `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Parser.Validate(); err != nil {
		return fmt.Errorf("parser config: %w", err)
	}

	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export config: %w", err)
	}

	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ParserConfig contains deck parser configuration
type ParserConfig struct {
	NotePrefix string `toml:"note_prefix"`
}

// Validate validates parser configuration
func (p *ParserConfig) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.NotePrefix, validation.Length(1, 32)),
	)
}

// GetNotePrefix returns the speaker note prefix with default ("Note:")
func (p *ParserConfig) GetNotePrefix() string {
	if p.NotePrefix == "" {
		return "Note:"
	}
	return p.NotePrefix
}

// ExportConfig contains serialization configuration
type ExportConfig struct {
	Format string `toml:"format"`
	// Indent is nil when unset; 0 selects compact JSON
	Indent *int `toml:"indent,omitempty"`
}

// Validate validates export configuration
func (e *ExportConfig) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.Format, validation.In("markdown", "md", "json", "yaml", "yml")),
		validation.Field(&e.Indent, validation.Min(0), validation.Max(8)),
	)
}

// GetFormat returns the configured format, markdown when unset
func (e *ExportConfig) GetFormat() Format {
	if e.Format == "" {
		return FormatMarkdown
	}
	f, err := ParseFormat(e.Format)
	if err != nil {
		return FormatMarkdown
	}
	return f
}

// GetIndent returns the indent width, 2 when unset
func (e *ExportConfig) GetIndent() int {
	if e.Indent == nil {
		return 2
	}
	return *e.Indent
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// DefaultsConfig holds front-matter defaults applied on export
type DefaultsConfig struct {
	Theme      string `toml:"theme"`
	Transition string `toml:"transition"`
	Author     string `toml:"author"`
}

// Validate validates the defaults with the same rules as deck front-matter
func (d *DefaultsConfig) Validate() error {
	fm := FrontMatter{Theme: d.Theme, Transition: d.Transition}
	return fm.Validate()
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Level, validation.In(
			string(LogLevelDebug), string(LogLevelInfo), string(LogLevelWarn), string(LogLevelError),
		).Error("must be debug, info, warn, or error")),
	)
}

// GetLevel returns the log level with default
func (l *LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}

// SlogLevel maps the configured level onto slog
func (l *LoggingConfig) SlogLevel() slog.Level {
	switch l.GetLevel() {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
