package config

import (
	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

// GetDefaultConfig returns the built-in configuration
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Parser: entities.ParserConfig{
			NotePrefix: "Note:",
		},
		Export: entities.ExportConfig{
			Format: string(entities.FormatMarkdown),
			Indent: entities.IntPtr(2),
		},
		Defaults: entities.DefaultsConfig{},
		Logging: entities.LoggingConfig{
			Level:      string(entities.LogLevelInfo),
			JSONFormat: false,
		},
	}
}
