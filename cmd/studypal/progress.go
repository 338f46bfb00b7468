package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmatsui/studypal/internal/report"
)

func newProgressCommand() *cobra.Command {
	progressCommand := &cobra.Command{
		Use:   "progress",
		Short: "Show the progress report",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if _, err := app.requireProfile(); err != nil {
				return err
			}

			summary, _ := report.Build(app.profiles, app.log, app.plans)
			fmt.Print(report.RenderMarkdown(summary))
			return nil
		},
	}

	progressCommand.AddCommand(newProgressExportCommand())
	return progressCommand
}

func newProgressExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the progress report as PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if _, err := app.requireProfile(); err != nil {
				return err
			}

			summary, _ := report.Build(app.profiles, app.log, app.plans)
			pdfPath, err := report.Export(summary, app.cfg.Data.ReportsDirectory())
			if err != nil {
				return fmt.Errorf("report.Export() > %w", err)
			}
			fmt.Printf("Report exported to %s\n", pdfPath)
			return nil
		},
	}
}
