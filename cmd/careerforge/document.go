package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerforge/internal/observability"
	"github.com/jonathan/careerforge/internal/schemas"
	"github.com/jonathan/careerforge/internal/types"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted resume",
	Long:  "Loads the resume from the configured store and prints a summary, or the full document with --json.",
	RunE:  runShow,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the persisted resume",
	Long:  "Removes the stored document. The next load starts again from the sample resume.",
	RunE:  runClear,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the document as JSON")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(clearCmd)
}

func runShow(cmd *cobra.Command, _ []string) (err error) {
	ctx := context.Background()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(ctx, app, &err)

	doc := app.Editor.Snapshot()
	if showJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	saved, err := app.Saver.HasSaved(ctx)
	if err != nil {
		return err
	}
	p := observability.NewPrinter(cmd.OutOrStdout())
	p.PrintDocument(doc)
	p.PrintStatus(string(app.Saver.Status()), saved, app.Saver.Key())
	return nil
}

func runClear(cmd *cobra.Command, _ []string) (err error) {
	ctx := context.Background()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(ctx, app, &err)

	if err := app.Reset(ctx); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", app.Saver.Key())
	return err
}

// loadDocument reads the document from a JSON file when input is set and
// from the configured store otherwise.
func loadDocument(ctx context.Context, input string) (_ *types.ResumeDocument, err error) {
	if input != "" {
		return readDocumentFile(input)
	}

	app, err := openApp(ctx)
	if err != nil {
		return nil, err
	}
	defer closeApp(ctx, app, &err)
	return app.Editor.Snapshot(), nil
}

func readDocumentFile(path string) (*types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	if err := schemas.ValidateResume(data); err != nil {
		return nil, err
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse resume file: %w", err)
	}
	return doc.Clone(), nil
}
