package main

import (
	"fmt"
	"time"

	"resume-analyzer/internal/app"
	"resume-analyzer/internal/config"
	"resume-analyzer/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin token for the analysis history endpoints",
	RunE:  runToken,
}

var tokenSubject string

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", jwt.RoleAdmin, "Token subject")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	svc := jwt.NewHMACService(cfg.Auth.AdminJWTSecret, cfg.Auth.TokenTTL, app.TokenIssuer)
	token, exp, err := svc.GenerateAdminToken(tokenSubject)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\nexpires_at=%s\n", token, exp.UTC().Format(time.RFC3339))
	return nil
}
