package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"snapsort/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())

	return configCmd
}

func newConfigShowCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:         "show",
		Short:       "Print the resolved configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, resolved, exists, err := config.Load(strings.TrimSpace(configPath))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "# from %s\n", resolved)
			} else {
				fmt.Fprintln(out, "# built-in defaults (no configuration file found)")
			}
			fmt.Fprintf(out, "output_dir = %q\n", cfg.Paths.OutputDir)
			fmt.Fprintf(out, "log_dir = %q\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "albums_dir = %q\n", cfg.Paths.AlbumsDir)
			fmt.Fprintf(out, "album_names_file = %q\n", cfg.Paths.AlbumNamesFile)
			fmt.Fprintf(out, "layout = %q\n", cfg.Organize.Layout)
			fmt.Fprintf(out, "pictures_dir = %q\n", cfg.Organize.PicturesDir)
			fmt.Fprintf(out, "movies_dir = %q\n", cfg.Organize.MoviesDir)
			fmt.Fprintf(out, "process_workers = %d\n", cfg.Workers.Process)
			fmt.Fprintf(out, "extract_workers = %d\n", cfg.Workers.Extract)
			fmt.Fprintf(out, "exiftool = %q (timeout %ds)\n", cfg.ExiftoolBinary(), cfg.Exiftool.TimeoutSeconds)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "path", "p", "", "Configuration file to show")
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit output_dir and album settings before running snapsort.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:         "validate",
		Short:       "Check a configuration file for problems",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, resolved, exists, err := config.Load(strings.TrimSpace(configPath))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !exists {
				fmt.Fprintln(out, "No configuration file found; built-in defaults are valid.")
				return nil
			}
			fmt.Fprintf(out, "Configuration at %s is valid.\n", resolved)
			fmt.Fprintf(out, "  layout: %s\n", cfg.Organize.Layout)
			fmt.Fprintf(out, "  output: %s\n", cfg.Paths.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "path", "p", "", "Configuration file to validate")
	return cmd
}
