package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapsort/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required external tools are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			statuses := deps.Check(deps.Requirements(cfg))
			out := cmd.OutOrStdout()
			for _, status := range statuses {
				mark := "ok"
				if !status.Available {
					mark = "missing"
					if status.Optional {
						mark = "missing (optional)"
					}
				}
				fmt.Fprintf(out, "%-10s %-24s %s\n", mark, status.Name, status.Detail)
			}
			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required tool(s) missing", len(missing))
			}
			return nil
		},
	}
}
