package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerforge/internal/export"
	"github.com/jonathan/careerforge/internal/observability"
)

var exportInputFile string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render both formats and publish them",
	Long: "Renders the LaTeX source and PDF concurrently and stores them in the export " +
		"directory, or in MinIO when MINIO_ENDPOINT is set.",
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportInputFile, "input", "i", "", "Path to a resume JSON file (defaults to the stored resume)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) (err error) {
	ctx := context.Background()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(ctx, app, &err)

	doc := app.Editor.Snapshot()
	if exportInputFile != "" {
		if doc, err = readDocumentFile(exportInputFile); err != nil {
			return err
		}
	}

	pub, err := app.Publisher(ctx)
	if err != nil {
		return err
	}
	bundle, err := export.Build(ctx, doc, app.Metrics)
	if err != nil {
		return err
	}
	objects, err := export.Publish(ctx, pub, bundle)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintPublished(objects, bundle.Pages)
	return nil
}
