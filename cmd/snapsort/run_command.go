package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"snapsort/internal/config"
	"snapsort/internal/logging"
	"snapsort/internal/services"
	"snapsort/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var layoutFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "run <source-dir>",
		Short: "Fix metadata and organize every media file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if layout := strings.TrimSpace(layoutFlag); layout != "" {
				if layout != config.LayoutFlat && layout != config.LayoutYear {
					return fmt.Errorf("unknown layout %q (expected %q or %q)", layout, config.LayoutFlat, config.LayoutYear)
				}
				cfg.Organize.Layout = layout
			}
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve source directory: %w", err)
			}
			return runPipeline(cmd, cfg, source, jsonFlag)
		},
	}

	cmd.Flags().StringVar(&layoutFlag, "layout", "", "Destination layout: flat or year (overrides configuration)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the run summary as JSON")
	return cmd
}

func runPipeline(cmd *cobra.Command, cfg *config.Config, source string, jsonOut bool) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	logPath := filepath.Join(cfg.Paths.LogDir,
		fmt.Sprintf("snapsort-%s.log", time.Now().UTC().Format("20060102T150405Z")))
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr", logPath},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	manager, err := workflow.NewManager(cfg, logger)
	if err != nil {
		return err
	}
	summary, err := manager.Run(signalCtx, source)
	if err != nil {
		if services.IsFatal(err) {
			return fmt.Errorf("run aborted: %w", err)
		}
		return err
	}

	if jsonOut {
		return writeJSON(cmd, summary)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderSummary(summary))
	fmt.Fprintln(out, "Error logs:")
	for _, path := range summary.LogPaths {
		fmt.Fprintf(out, "  %s\n", path)
	}
	if summary.MetadataErrors > 0 || summary.RelocationErrors > 0 {
		fmt.Fprintf(out, "Completed with %d metadata and %d relocation errors.\n",
			summary.MetadataErrors, summary.RelocationErrors)
	}
	return nil
}
