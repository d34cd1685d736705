// Package main provides the entry point for the brand standards analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brandaudit",
	Short: "Brand standards compliance analyzer",
	Long:  "brandaudit serves a single-page web app that extracts structured requirements from a brand standards PDF and judges uploaded photos against them using a multimodal LLM.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
