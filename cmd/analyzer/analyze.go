package main

import (
	"encoding/json"
	"fmt"

	"resume-analyzer/internal/app"
	"resume-analyzer/internal/config"
	"resume-analyzer/internal/domain/scoring"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.pdf>",
	Short: "Analyze a local PDF resume and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var (
	analyzeLegacy bool
	analyzeTrees  int
	analyzeSeed   uint64
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeLegacy, "legacy", false, "Print the result or an error string instead of failing")
	analyzeCmd.Flags().IntVar(&analyzeTrees, "trees", scoring.DefaultOptions().Trees, "Number of trees in the forest")
	analyzeCmd.Flags().Uint64Var(&analyzeSeed, "seed", 0, "Training seed; 0 derives one from the clock")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	core, err := app.NewCore(cmd.Context(), config.ModelConfig{
		Trees:   analyzeTrees,
		Seed:    analyzeSeed,
		Workers: scoring.DefaultOptions().Workers,
	}, newLogger())
	if err != nil {
		return err
	}

	out := core.Analyzer.Analyze(cmd.Context(), args[0])

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if analyzeLegacy {
		return enc.Encode(out.Legacy())
	}
	if !out.OK() {
		return fmt.Errorf("analysis failed kind=%s: %w", out.Err.Kind, out.Err)
	}
	return enc.Encode(out.Result)
}
