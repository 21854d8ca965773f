package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"snapsort/internal/config"
	"snapsort/internal/extract"
	"snapsort/internal/logging"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var destFlag string

	cmd := &cobra.Command{
		Use:   "extract <archive>...",
		Short: "Unpack exported archives into a working directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			dest := destFlag
			if dest == "" {
				dest = cfg.Paths.OutputDir
			}
			dest, err = config.ExpandPath(dest)
			if err != nil {
				return fmt.Errorf("resolve destination: %w", err)
			}

			archives := make([]string, 0, len(args))
			for _, arg := range args {
				archive, err := config.ExpandPath(arg)
				if err != nil {
					return fmt.Errorf("resolve archive path %q: %w", arg, err)
				}
				archives = append(archives, archive)
			}

			logger, err := logging.New(logging.Options{
				Level:       cfg.Logging.Level,
				Format:      cfg.Logging.Format,
				OutputPaths: []string{"stderr"},
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := extract.Unpack(signalCtx, archives, dest, cfg.Workers.Extract, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d archive(s) into %s\n", len(archives), dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&destFlag, "dest", "d", "", "Destination directory (defaults to the configured output directory)")
	return cmd
}
