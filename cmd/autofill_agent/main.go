// Package main provides the entry point for the job application autofill agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autofill_agent",
	Short: "Job application form autofill agent",
	Long:  "Autofill agent classifies job application form fields, fills them from a saved candidate profile and learned answers, and validates structured work history sections against resume data.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
