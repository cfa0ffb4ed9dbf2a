package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system.
// This should be called once at application startup.
func Init() error {
	once.Do(func() {
		// Load .env first so viper's AutomaticEnv sees its values
		_ = godotenv.Load()

		setDefaults()

		viper.SetEnvPrefix("SCRIBE")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// Missing config file is fine - defaults and env vars apply
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct.
// Init() must be called before using this.
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		logrus.Warn("No database path configured")
	}

	return validateSecrets()
}

// validateSecrets rejects placeholder credentials in production
func validateSecrets() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_SECRET_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	whisperKey := viper.GetString("whisper.api_key")
	for _, placeholder := range placeholders {
		if whisperKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid whisper API key: cannot use placeholder values in production")
			}
			logrus.Warn("Whisper API key is using a placeholder value")
			break
		}
	}

	// Diarization is optional; a missing token only disables the feature
	if viper.GetString("diarization.auth_token") == "" {
		logrus.Warn("No diarization auth token configured - diarization will be unavailable")
	}

	jwtSecret := viper.GetString("auth.jwt_secret")
	for _, placeholder := range placeholders {
		if jwtSecret == placeholder {
			if isProduction {
				return fmt.Errorf("invalid JWT secret: cannot use placeholder values in production")
			}
			logrus.Warn("JWT secret is using a placeholder value - this is insecure!")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 5*time.Minute)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/scribe.db")
	viper.SetDefault("database.verbose", false)

	// Storage defaults
	viper.SetDefault("storage.temp_dir", "./tmp")
	viper.SetDefault("storage.max_upload_size", 26214400)
	viper.SetDefault("storage.cleanup_interval", "15m")
	viper.SetDefault("storage.max_file_age", "1h")

	// Whisper (ASR engine) defaults
	viper.SetDefault("whisper.api_url", "https://api.openai.com/v1/audio/transcriptions")
	viper.SetDefault("whisper.model", "whisper-1")
	viper.SetDefault("whisper.language", "en")
	viper.SetDefault("whisper.temperature", 0)
	viper.SetDefault("whisper.timeout", 5*time.Minute)

	// Diarization engine defaults
	viper.SetDefault("diarization.api_url", "")
	viper.SetDefault("diarization.auth_token", "")
	viper.SetDefault("diarization.model", "pyannote/speaker-diarization-3.1")
	viper.SetDefault("diarization.timeout", 5*time.Minute)

	// Title suggestion defaults
	viper.SetDefault("suggest.api_url", "")
	viper.SetDefault("suggest.api_key", "")
	viper.SetDefault("suggest.model", "t5-large-generation-tldr")
	viper.SetDefault("suggest.count", 3)
	viper.SetDefault("suggest.timeout", 1*time.Minute)

	// Auth defaults
	viper.SetDefault("auth.jwt_secret", "changeme")
	viper.SetDefault("auth.token_ttl", 24*time.Hour)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.transcribe_rps", 1)
	viper.SetDefault("rate_limiting.transcribe_burst", 2)
	viper.SetDefault("rate_limiting.default_rps", 10)
	viper.SetDefault("rate_limiting.default_burst", 20)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Features defaults
	viper.SetDefault("features.enable_diarization", true)
	viper.SetDefault("features.enable_suggestions", true)
	viper.SetDefault("features.strict_persistence", false)
}
