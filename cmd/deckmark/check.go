package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate decks",
		Long: `Parse every file and report the first error in each.
Exits with a non-zero status when any file fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, args)
		},
	}
}

func runCheck(cmd *cobra.Command, root *rootOptions, paths []string) error {
	a, err := newApp(cmd, root, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0

	for _, result := range a.decks.CheckFiles(cmd.Context(), paths) {
		if !result.OK() {
			failed++
			fmt.Fprintln(out, result.Err)
			continue
		}
		fmt.Fprintf(out, "%s: ok (%d slides, %d sections)\n", result.Path, result.Slides, result.Sections)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d decks failed", failed, len(paths))
	}
	return nil
}
