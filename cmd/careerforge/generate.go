package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerforge/internal/generate"
	"github.com/jonathan/careerforge/internal/observability"
)

var (
	generateData    string
	generateTimeout time.Duration
	generateRaw     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <headline|summary|experience>",
	Short: "Draft LinkedIn profile content with Gemini",
	Long: `Sends a headline, summary or experience request to Gemini and prints the result.

Examples:
  careerforge generate headline --data '{"role":"Backend Engineer","skills":"Go, Postgres"}'
  careerforge generate summary --data '{"background":"Eight years building payment systems"}'
  careerforge generate experience --data '{"jobTitle":"SRE","description":"Ran the on-call rotation"}'`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE:      runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateData, "data", "d", "", "Request fields as a JSON object (required)")
	generateCmd.Flags().DurationVar(&generateTimeout, "timeout", time.Minute, "Upstream request timeout")
	generateCmd.Flags().BoolVar(&generateRaw, "raw", false, "Print only the generated text")
	_ = generateCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(generateCmd)
}

func kindNames() []string {
	var names []string
	for _, k := range generate.Kinds() {
		names = append(names, string(k))
	}
	return names
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	if !json.Valid([]byte(generateData)) {
		return fmt.Errorf("--data must be a JSON object")
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(context.Background(), app, &err)

	content, err := app.Generator.Generate(ctx, args[0], json.RawMessage(generateData))
	if err != nil {
		if errors.Is(err, generate.ErrNotConfigured) {
			return fmt.Errorf("GEMINI_API_KEY is not set: %w", err)
		}
		return err
	}

	if generateRaw {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(content))
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintGenerated(args[0], content)
	return nil
}
