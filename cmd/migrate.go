package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/voxnotes/scribe-api/internal/database"
	"github.com/voxnotes/scribe-api/internal/models"
	"github.com/voxnotes/scribe-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply the database schema for the Scribe API.

Runs GORM auto-migration for the user, transcription result and
title suggestion models against the configured SQLite database.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("dry-run", false, "show what would be migrated without making changes")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "Dry run mode - no changes will be made")
		fmt.Fprintf(cmd.OutOrStdout(), "Would migrate models: users, transcription_results, title_suggestions (database: %s)\n", cfg.Database.Path)
		return nil
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.User{}, &models.TranscriptionResult{}, &models.TitleSuggestion{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied successfully")
	return nil
}
