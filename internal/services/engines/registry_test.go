package engines_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxnotes/scribe-api/internal/services/engines"
	"github.com/voxnotes/scribe-api/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Whisper: config.WhisperConfig{
			APIKey:  "test-key",
			APIURL:  "https://api.openai.com/v1/audio/transcriptions",
			Model:   "whisper-1",
			Timeout: time.Minute,
		},
		Diarization: config.DiarizationConfig{
			APIURL:    "https://diarize.example.com/v1",
			AuthToken: "test-token",
			Model:     "pyannote/speaker-diarization-3.1",
			Timeout:   time.Minute,
		},
		Features: config.FeaturesConfig{
			EnableDiarization: true,
		},
	}
}

func TestASR_ConstructedOnce(t *testing.T) {
	registry := engines.NewRegistry(testConfig())

	first, err := registry.ASR()
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := registry.ASR()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestASR_ConstructionFailureIsCached(t *testing.T) {
	cfg := testConfig()
	cfg.Whisper.APIKey = ""
	registry := engines.NewRegistry(cfg)

	_, firstErr := registry.ASR()
	require.Error(t, firstErr)

	// A later fix to the config must not revive the registry; the cached
	// failure is returned for the life of the process.
	cfg.Whisper.APIKey = "late-key"
	_, secondErr := registry.ASR()
	require.Error(t, secondErr)
	assert.Equal(t, firstErr, secondErr)
}

func TestASR_ConcurrentFirstTouch(t *testing.T) {
	registry := engines.NewRegistry(testConfig())

	const callers = 16
	results := make([]interface{}, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			engine, err := registry.ASR()
			if err == nil {
				results[i] = engine
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestDiarization_Available(t *testing.T) {
	registry := engines.NewRegistry(testConfig())

	engine, ok := registry.Diarization()
	require.True(t, ok)
	require.NotNil(t, engine)

	again, ok := registry.Diarization()
	require.True(t, ok)
	assert.Same(t, engine, again)
}

func TestDiarization_UnconfiguredIsUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.Diarization.APIURL = ""
	registry := engines.NewRegistry(cfg)

	engine, ok := registry.Diarization()
	assert.False(t, ok)
	assert.Nil(t, engine)
}

func TestDiarization_MissingTokenIsUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.Diarization.AuthToken = ""
	registry := engines.NewRegistry(cfg)

	_, ok := registry.Diarization()
	assert.False(t, ok)
}

func TestDiarization_DisabledByFeatureFlag(t *testing.T) {
	cfg := testConfig()
	cfg.Features.EnableDiarization = false
	registry := engines.NewRegistry(cfg)

	_, ok := registry.Diarization()
	assert.False(t, ok)
}
