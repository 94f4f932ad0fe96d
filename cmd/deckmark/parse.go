package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/deckmark/internal/domain/entities"
)

type parseOptions struct {
	format     string
	indent     int
	theme      string
	transition string
	output     string
}

func newParseCmd(root *rootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a deck and export it",
		Long: `Parse a markdown deck and write it as markdown, JSON or YAML.
Reads standard input when no file or "-" is given. Theme, transition
and author defaults from the configuration fill in missing front-matter.

Example:
  deckmark parse talk.md --format json
  cat talk.md | deckmark parse - -f yaml -o talk.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: markdown, json, yaml (overrides config)")
	cmd.Flags().IntVar(&opts.indent, "indent", 0, "Indent width for JSON and YAML, 0 for compact JSON (overrides config)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "Default theme (overrides config)")
	cmd.Flags().StringVar(&opts.transition, "transition", "", "Default transition (overrides config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to file instead of standard output")

	return cmd
}

func runParse(cmd *cobra.Command, root *rootOptions, opts *parseOptions, args []string) error {
	if opts.format != "" {
		if _, err := entities.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	flags := map[string]interface{}{
		"format":     opts.format,
		"theme":      opts.theme,
		"transition": opts.transition,
	}
	// 0 is a real width (compact JSON), so only an explicit flag overrides
	if cmd.Flags().Changed("indent") {
		flags["indent"] = opts.indent
	}

	a, err := newApp(cmd, root, flags)
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	deck, err := a.loadDeck(cmd, path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := a.decks.Export(cmd.Context(), deck, a.config.Export.GetFormat(), &buf); err != nil {
		return err
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if err := a.repo.Save(cmd.Context(), opts.output, buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}
	a.logger.Info("Deck exported",
		"output", opts.output,
		"format", a.config.Export.GetFormat(),
		"slides", deck.SlideCount(),
	)

	return nil
}
