// Package main provides the careerforge command line: the HTTP server plus
// offline commands for inspecting, rendering and exporting the resume.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/careerforge/internal/bootstrap"
	"github.com/jonathan/careerforge/internal/config"
	"github.com/jonathan/careerforge/internal/logging"
)

var (
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "careerforge",
	Short: "Resume builder with autosave, LaTeX and PDF export",
	Long: "careerforge edits a single resume document, persists it with debounced autosave, " +
		"renders it to LaTeX and PDF, and drafts LinkedIn profile content via Gemini.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}

	l, err := logging.New(c.Log.Level, c.Log.Development)
	if err != nil {
		return err
	}

	cfg, logger = c, l
	return nil
}

// openApp assembles the application from the loaded configuration
func openApp(ctx context.Context) (*bootstrap.App, error) {
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return app, nil
}

// closeApp flushes pending writes, folding any failure into err
func closeApp(ctx context.Context, app *bootstrap.App, err *error) {
	if closeErr := app.Close(ctx); closeErr != nil && *err == nil {
		*err = fmt.Errorf("failed to close: %w", closeErr)
	}
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
