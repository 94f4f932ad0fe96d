package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newOutlineCmd(root *rootOptions) *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "outline [file]",
		Short: "List the slides of a deck",
		Long:  `Print one row per slide with its section, title and contents. Reads standard input when no file or "-" is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, root, nil)
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

			if deck.FrontMatter.Title != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", deck.FrontMatter.Title)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			header := "#\tSECTION\tTITLE\tBLOCKS\tCODE\tNOTES"
			if showIDs {
				header += "\tID"
			}
			fmt.Fprintln(w, header)

			for _, e := range a.decks.Outline(deck) {
				notes := "-"
				if e.HasNotes {
					notes = "yes"
				}
				row := fmt.Sprintf("%d\t%d\t%s\t%d\t%d\t%s", e.Index+1, e.Section+1, e.Title, e.Blocks, e.Snippets, notes)
				if showIDs {
					row += "\t" + e.ID
				}
				fmt.Fprintln(w, row)
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "Include slide IDs")

	return cmd
}
