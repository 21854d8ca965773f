package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"snapsort/internal/album"
	"snapsort/internal/config"
	"snapsort/internal/logging"
)

func newAlbumsCommand(ctx *commandContext) *cobra.Command {
	albumsCmd := &cobra.Command{
		Use:   "albums",
		Short: "Album manifest utilities",
	}

	albumsCmd.AddCommand(newAlbumsInitCommand(ctx))
	albumsCmd.AddCommand(newAlbumsListCommand(ctx))

	return albumsCmd
}

func newAlbumsInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init [name-file]",
		Short: "Create empty manifests for every listed album",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			namesFile := cfg.Paths.AlbumNamesFile
			if len(args) == 1 {
				namesFile, err = config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve name file: %w", err)
				}
			}
			if namesFile == "" {
				return fmt.Errorf("no album names file given (argument or paths.album_names_file)")
			}
			catalog, err := album.LoadCatalog(namesFile)
			if err != nil {
				return fmt.Errorf("load album names: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("create directories: %w", err)
			}
			store := album.NewStore(cfg.Paths.AlbumsDir, logging.NewNop())
			if err := store.InitManifests(catalog); err != nil {
				return fmt.Errorf("initialize manifests: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %d manifest(s) in %s\n", catalog.Len(), cfg.Paths.AlbumsDir)
			return nil
		},
	}
}

func newAlbumsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured albums and their manifest sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Paths.AlbumNamesFile == "" {
				return fmt.Errorf("no album names file configured (set paths.album_names_file)")
			}
			catalog, err := album.LoadCatalog(cfg.Paths.AlbumNamesFile)
			if err != nil {
				return fmt.Errorf("load album names: %w", err)
			}
			store := album.NewStore(cfg.Paths.AlbumsDir, logging.NewNop())
			names := catalog.Keys()
			sort.Strings(names)
			out := cmd.OutOrStdout()
			for _, name := range names {
				items, err := store.Load(name)
				if err != nil {
					fmt.Fprintf(out, "%s\t(unreadable: %v)\n", name, err)
					continue
				}
				fmt.Fprintf(out, "%s\t%d item(s)\n", name, len(items))
			}
			return nil
		},
	}
}
