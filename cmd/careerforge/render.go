package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerforge/internal/rendering"
)

var (
	renderInputFile  string
	renderOutputFile string
)

var renderLaTeXCmd = &cobra.Command{
	Use:   "render-latex",
	Short: "Render the resume as LaTeX source",
	Long:  "Renders the stored resume (or --input) to a .tex file. Use --out - to write to stdout.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRender(cmd, rendering.ExtLaTeX)
	},
}

var renderPDFCmd = &cobra.Command{
	Use:   "render-pdf",
	Short: "Render the resume as a PDF",
	Long:  "Lays out the stored resume (or --input) directly as a paginated PDF.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRender(cmd, rendering.ExtPDF)
	},
}

func init() {
	for _, c := range []*cobra.Command{renderLaTeXCmd, renderPDFCmd} {
		c.Flags().StringVarP(&renderInputFile, "input", "i", "", "Path to a resume JSON file (defaults to the stored resume)")
		c.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Output path (defaults to <Name>_Resume.<ext>)")
		rootCmd.AddCommand(c)
	}
}

func runRender(cmd *cobra.Command, ext string) error {
	doc, err := loadDocument(context.Background(), renderInputFile)
	if err != nil {
		return err
	}

	out := renderOutputFile
	if out == "" {
		out = rendering.ArtifactName(doc.PersonalInfo.Name, ext)
	}
	if out == "-" && ext == rendering.ExtPDF {
		return rendering.WritePDF(cmd.OutOrStdout(), doc)
	}

	var data []byte
	switch ext {
	case rendering.ExtLaTeX:
		tex, err := rendering.RenderLaTeX(doc)
		if err != nil {
			return err
		}
		data = []byte(tex)
	default:
		result, err := rendering.RenderPDF(doc)
		if err != nil {
			return err
		}
		data = result.Data
	}
	return writeOutput(cmd.OutOrStdout(), out, data)
}

// writeOutput writes data to path, or to stdout when path is "-"
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	_, err := fmt.Fprintf(stdout, "Wrote %s (%d bytes)\n", path, len(data))
	return err
}
