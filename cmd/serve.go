package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/voxnotes/scribe-api/api"
	"github.com/voxnotes/scribe-api/internal/database"
	"github.com/voxnotes/scribe-api/internal/models"
	"github.com/voxnotes/scribe-api/internal/services/cleanup"
	"github.com/voxnotes/scribe-api/pkg/config"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Scribe API server with the configured settings.

The server exposes audio transcription, title suggestion, user
registration/login and transcription history endpoints.

Example:
  scribe-api serve
  scribe-api serve --port 9090
  scribe-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	// Initialize database and run migrations
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.User{}, &models.TranscriptionResult{}, &models.TitleSuggestion{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	logrus.WithField("address", address).Info("Starting Scribe API server")

	server := api.NewServer(address)
	server.SetDatabase(db)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Sweep the upload directory for files leaked by a crashed pass
	sweeper := cleanup.NewService(cfg.Storage.TempDir, cfg.Storage.MaxFileAge, cfg.Storage.CleanupInterval)
	sweeper.Start(context.Background())
	defer sweeper.Stop()

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	logrus.WithField("address", address).Info("Server is ready to handle requests")

	select {
	case <-stop:
		logrus.Info("Shutting down server...")
	case err := <-serverErr:
		logrus.WithError(err).Error("Server failed")
		logrus.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
		return err
	}

	logrus.Info("Server gracefully stopped")
	return nil
}
