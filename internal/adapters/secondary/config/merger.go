package config

import (
	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence.
// Nil configs are skipped.
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	var result *entities.Config

	for _, c := range configs {
		if c == nil {
			continue
		}
		if result == nil {
			result = deepCopy(c)
			continue
		}
		m.mergeInto(result, c)
	}

	if result == nil {
		return GetDefaultConfig()
	}
	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if format, ok := flags["format"].(string); ok && format != "" {
		result.Export.Format = format
	}

	if indent, ok := flags["indent"].(int); ok {
		result.Export.Indent = entities.IntPtr(indent)
	}

	if prefix, ok := flags["note-prefix"].(string); ok && prefix != "" {
		result.Parser.NotePrefix = prefix
	}

	if theme, ok := flags["theme"].(string); ok && theme != "" {
		result.Defaults.Theme = theme
	}

	if transition, ok := flags["transition"].(string); ok && transition != "" {
		result.Defaults.Transition = transition
	}

	if level, ok := flags["log-level"].(string); ok && level != "" {
		result.Logging.Level = level
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	return result
}

func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Parser config
	if source.Parser.NotePrefix != "" {
		target.Parser.NotePrefix = source.Parser.NotePrefix
	}

	// Export config
	if source.Export.Format != "" {
		target.Export.Format = source.Export.Format
	}
	if source.Export.Indent != nil {
		target.Export.Indent = entities.IntPtr(*source.Export.Indent)
	}

	// Defaults config
	if source.Defaults.Theme != "" {
		target.Defaults.Theme = source.Defaults.Theme
	}
	if source.Defaults.Transition != "" {
		target.Defaults.Transition = source.Defaults.Transition
	}
	if source.Defaults.Author != "" {
		target.Defaults.Author = source.Defaults.Author
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	// TOML cannot tell false from unset, so a later file can only switch JSON on
	if source.Logging.JSONFormat {
		target.Logging.JSONFormat = true
	}
}

// deepCopy creates a copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := *src
	if src.Export.Indent != nil {
		dst.Export.Indent = entities.IntPtr(*src.Export.Indent)
	}
	return &dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
