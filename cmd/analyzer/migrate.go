package main

import (
	"errors"
	"fmt"

	"resume-analyzer/internal/app"
	"resume-analyzer/internal/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Database.Enabled() {
		return errors.New("DB_HOST is not configured")
	}

	db, err := app.ConnectDatabase(cmd.Context(), cfg.Database, newLogger())
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintln(cmd.OutOrStdout(), "migrations up to date")
	return nil
}
