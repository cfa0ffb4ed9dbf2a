package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/voxnotes/scribe-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe-api",
	Short: "Scribe transcription API server",
	Long: `Scribe API - speech transcription with speaker attribution

This API accepts uploaded audio recordings, transcribes them with a
speech-to-text engine, attributes each transcript segment to a speaker
using an independent diarization pass, and stores the result per user.

Features:
  • Audio upload and transcription with word-level timestamps
  • Speaker diarization and segment-speaker alignment
  • Per-user transcription history
  • Blog title suggestions from transcribed content`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// initConfig loads the configuration for commands that need it.
// Version and help output must work without a config file present.
func initConfig() {
	setupLogging()

	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging applies the persistent logging flags
func setupLogging() {
	levelName, _ := rootCmd.PersistentFlags().GetString("log-level")
	if level, err := logrus.ParseLevel(levelName); err == nil {
		logrus.SetLevel(level)
	}

	if jsonLogs, _ := rootCmd.PersistentFlags().GetBool("json-logs"); jsonLogs {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
