package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string            `mapstructure:"environment"`
	Server       ServerConfig      `mapstructure:"server"`
	Database     DatabaseConfig    `mapstructure:"database"`
	Storage      StorageConfig     `mapstructure:"storage"`
	Whisper      WhisperConfig     `mapstructure:"whisper"`
	Diarization  DiarizationConfig `mapstructure:"diarization"`
	Suggest      SuggestConfig     `mapstructure:"suggest"`
	Auth         AuthConfig        `mapstructure:"auth"`
	RateLimiting RateLimitConfig   `mapstructure:"rate_limiting"`
	Security     SecurityConfig    `mapstructure:"security"`
	Logging      LoggingConfig     `mapstructure:"logging"`
	Features     FeaturesConfig    `mapstructure:"features"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// StorageConfig contains transient upload storage settings
type StorageConfig struct {
	TempDir       string `mapstructure:"temp_dir"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
	// CleanupInterval and MaxFileAge drive the background sweeper that
	// reclaims upload files leaked by a crashed pass.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MaxFileAge      time.Duration `mapstructure:"max_file_age"`
}

// WhisperConfig contains speech-to-text engine settings
type WhisperConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	APIURL      string        `mapstructure:"api_url"`
	Model       string        `mapstructure:"model"`
	Language    string        `mapstructure:"language"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// DiarizationConfig contains speaker diarization engine settings.
// Diarization is optional: an empty APIURL or AuthToken leaves the
// engine unconfigured and transcription proceeds without speakers.
type DiarizationConfig struct {
	APIURL    string        `mapstructure:"api_url"`
	AuthToken string        `mapstructure:"auth_token"`
	Model     string        `mapstructure:"model"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SuggestConfig contains title suggestion settings
type SuggestConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Count   int           `mapstructure:"count"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AuthConfig contains authentication settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TranscribeRPS   int  `mapstructure:"transcribe_rps"`
	TranscribeBurst int  `mapstructure:"transcribe_burst"`
	DefaultRPS      int  `mapstructure:"default_rps"`
	DefaultBurst    int  `mapstructure:"default_burst"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FeaturesConfig contains feature flags
type FeaturesConfig struct {
	EnableDiarization bool `mapstructure:"enable_diarization"`
	EnableSuggestions bool `mapstructure:"enable_suggestions"`
	// StrictPersistence fails the whole transcription request when the
	// result cannot be stored. Off by default: delivery takes precedence
	// over durability.
	StrictPersistence bool `mapstructure:"strict_persistence"`
}
