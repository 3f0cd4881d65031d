// Package main provides the analyzer CLI: the HTTP server, one-off analysis
// of a local PDF, database migrations and admin token issuing.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "analyzer",
	Short:         "Resume analyzer",
	Long:          "Scores PDF resumes with a random-forest model and reports detected skills, metrics and suggestions.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
