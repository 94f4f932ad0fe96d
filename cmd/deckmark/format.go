package main

import (
	"github.com/spf13/cobra"
)

func newFmtCmd(root *rootOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Rewrite decks in canonical form",
		Long: `Print each deck re-serialized as canonical markdown. With --write the
files are replaced instead; files already in canonical form are left alone.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, root, nil)
			if err != nil {
				return err
			}

			for _, path := range args {
				formatted, err := a.decks.FormatFile(cmd.Context(), path, write)
				if err != nil {
					return err
				}
				if !write {
					if _, err := cmd.OutOrStdout().Write(formatted); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write result to the source file instead of standard output")

	return cmd
}
