package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerforge/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume editor, exports and LinkedIn generation.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	port := cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	app, err := openApp(context.Background())
	if err != nil {
		return err
	}

	// Start closes the app once the listener has drained
	srv := server.New(app, server.Config{Port: port})
	return srv.Start()
}
