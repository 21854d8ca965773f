package main

import (
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"snapsort/internal/workflow"
)

const timePrecision = 10 * time.Millisecond

func renderSummary(summary *workflow.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if stdoutIsTerminal() {
		tw.Style().Color.Header = text.Colors{text.Bold}
		tw.Style().Color.Footer = text.Colors{text.Bold}
	}
	tw.AppendHeader(table.Row{"Metric", "Count"})
	rows := []struct {
		label string
		value int
	}{
		{"Files discovered", summary.Discovered},
		{"Extensions corrected", summary.Renamed},
		{"Timestamps written", summary.TimestampsFixed},
		{"Files relocated", summary.Relocated},
		{"Files skipped", summary.Skipped},
		{"Album entries merged", summary.MergedItems},
		{"Metadata errors", summary.MetadataErrors},
		{"Relocation errors", summary.RelocationErrors},
		{"Duplicates renamed", summary.DuplicateNotices},
	}
	for _, row := range rows {
		tw.AppendRow(table.Row{row.label, strconv.Itoa(row.value)})
	}
	tw.AppendFooter(table.Row{"Duration", summary.Duration.Round(timePrecision).String()})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
