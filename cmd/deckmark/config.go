package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/fredcamaral/deckmark/internal/adapters/secondary/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
	}

	var local bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Long: `Write the default configuration to the global config file, or with
--local to ./deckmark.toml. Existing files are never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewTOMLLoader()

			path := loader.GetGlobalPath()
			if local {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				path = loader.GetLocalPath(wd)
			}

			if err := loader.CreateDefaults(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&local, "local", false, "Create ./deckmark.toml instead of the global file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewTOMLLoader()
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolving working directory: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "global: %s\n", loader.GetGlobalPath())
			fmt.Fprintf(cmd.OutOrStdout(), "local:  %s\n", loader.GetLocalPath(wd))
			if root.configPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "file:   %s\n", root.configPath)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, root, nil)
			if err != nil {
				return err
			}

			encoder := toml.NewEncoder(cmd.OutOrStdout())
			encoder.Indent = "  "
			return encoder.Encode(a.config)
		},
	}

	cmd.AddCommand(initCmd, pathCmd, showCmd)
	return cmd
}
