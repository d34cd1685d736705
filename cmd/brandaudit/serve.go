package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mockhotels/brandaudit/internal/config"
	"github.com/mockhotels/brandaudit/internal/server"
)

var (
	servePort      int
	serveModel     string
	extendedPrompt bool
	verbose        bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start the HTTP server that serves the analyzer page and runs the extraction and audit calls.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Override the standard-tier Gemini model")
	serveCmd.Flags().BoolVar(&extendedPrompt, "extended-prompt", false, "Use the free-form extraction prompt instead of the strict-keys one")
	serveCmd.Flags().BoolVar(&verbose, "verbose", false, "Print extraction and verdict summaries to stdout")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	appCfg, err := config.Load()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           servePort,
		App:            appCfg,
		Model:          serveModel,
		ExtendedPrompt: extendedPrompt,
		Verbose:        verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
