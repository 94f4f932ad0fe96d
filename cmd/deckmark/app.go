package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/deckmark/internal/adapters/secondary/config"
	"github.com/fredcamaral/deckmark/internal/adapters/secondary/export"
	"github.com/fredcamaral/deckmark/internal/adapters/secondary/parser"
	"github.com/fredcamaral/deckmark/internal/adapters/secondary/repository"
	"github.com/fredcamaral/deckmark/internal/domain/entities"
	"github.com/fredcamaral/deckmark/internal/domain/services"
)

// app is the wired set of services a command runs against
type app struct {
	config *entities.Config
	logger *slog.Logger
	loader *config.TOMLLoader
	repo   *repository.FileRepository
	decks  *services.DeckService
}

// newApp loads the configuration and wires the deck service.
// Precedence: flags > local or --config file > global config > defaults.
func newApp(cmd *cobra.Command, opts *rootOptions, flags map[string]interface{}) (*app, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	if flags == nil {
		flags = make(map[string]interface{})
	}
	flags["verbose"] = opts.verbose
	flags["log-level"] = opts.logLevel
	flags["note-prefix"] = opts.notePrefix

	loader := config.NewTOMLLoader()
	configService := services.NewConfigService(loader, config.NewConfigMerger())

	cfg, err := configService.LoadConfig(ctx, workingDir, opts.configPath, flags)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), &cfg.Logging)

	repo := repository.NewFileRepository(nil)
	deckParser := parser.NewDeckParser(parser.WithNotePrefix(cfg.Parser.GetNotePrefix()))
	exporter := export.NewService(export.Options{
		NotePrefix: cfg.Parser.GetNotePrefix(),
		Indent:     cfg.Export.GetIndent(),
	})

	decks := services.NewDeckService(repo, deckParser, exporter,
		services.WithDefaults(cfg.Defaults),
		services.WithLogger(logger),
	)

	logger.Debug("Configuration loaded",
		slog.String("format", string(cfg.Export.GetFormat())),
		slog.String("note_prefix", cfg.Parser.GetNotePrefix()),
		slog.String("global_config", loader.GetGlobalPath()),
	)

	return &app{
		config: cfg,
		logger: logger,
		loader: loader,
		repo:   repo,
		decks:  decks,
	}, nil
}

// newLogger creates the structured logger for the configured level and format
func newLogger(w io.Writer, cfg *entities.LoggingConfig) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

// loadDeck parses the deck at path, or standard input when path is "-" or empty
func (a *app) loadDeck(cmd *cobra.Command, path string) (*entities.Deck, error) {
	if path == "" || path == "-" {
		return a.decks.LoadDeckFromReader(cmd.Context(), cmd.InOrStdin())
	}
	return a.decks.LoadDeck(cmd.Context(), path)
}
