package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAppliesDefaults(t *testing.T) {
	require.NoError(t, Init())

	assert.Equal(t, 8080, viper.GetInt("server.port"))
	assert.Equal(t, "0.0.0.0", viper.GetString("server.host"))
	assert.Equal(t, "whisper-1", viper.GetString("whisper.model"))
	assert.Equal(t, "en", viper.GetString("whisper.language"))
	assert.Equal(t, 3, viper.GetInt("suggest.count"))
	assert.Equal(t, 24*time.Hour, viper.GetDuration("auth.token_ttl"))
	assert.False(t, viper.GetBool("features.strict_persistence"))
}

func TestGetConfigUnmarshals(t *testing.T) {
	require.NoError(t, Init())

	cfg, err := GetConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./data/scribe.db", cfg.Database.Path)
	assert.Equal(t, "./tmp", cfg.Storage.TempDir)
	assert.Equal(t, int64(26214400), cfg.Storage.MaxUploadSize)
	assert.True(t, cfg.Features.EnableDiarization)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid port",
			config:  Config{Server: ServerConfig{Port: 8080}},
			wantErr: false,
		},
		{
			name:    "zero port",
			config:  Config{Server: ServerConfig{Port: 0}},
			wantErr: true,
		},
		{
			name:    "port out of range",
			config:  Config{Server: ServerConfig{Port: 70000}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
