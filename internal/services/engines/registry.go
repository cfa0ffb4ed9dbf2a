package engines

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/voxnotes/scribe-api/internal/services/asr"
	"github.com/voxnotes/scribe-api/internal/services/diarize"
	"github.com/voxnotes/scribe-api/pkg/config"
)

// Registry lazily constructs and caches the inference engines. Capabilities
// are shared, read-only after construction, and live until process exit.
// Construction is guarded so concurrent first-touch requests wait for a
// single initialization instead of racing.
type Registry struct {
	cfg *config.Config

	asrOnce   sync.Once
	asrEngine asr.Engine
	asrErr    error

	diarOnce   sync.Once
	diarEngine diarize.Engine
}

// NewRegistry creates a registry over the given configuration
func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{cfg: cfg}
}

// ASR returns the shared speech-to-text engine. Construction happens at most
// once; a construction failure is cached and returned to every caller, which
// fails the requests that need ASR without taking the process down.
func (r *Registry) ASR() (asr.Engine, error) {
	r.asrOnce.Do(func() {
		r.asrEngine, r.asrErr = asr.NewWhisperEngine(asr.WhisperConfig{
			APIKey:      r.cfg.Whisper.APIKey,
			APIURL:      r.cfg.Whisper.APIURL,
			Model:       r.cfg.Whisper.Model,
			Temperature: r.cfg.Whisper.Temperature,
			Timeout:     r.cfg.Whisper.Timeout,
		})
		if r.asrErr != nil {
			logrus.WithError(r.asrErr).Error("Failed to initialize ASR engine")
		}
	})
	return r.asrEngine, r.asrErr
}

// Diarization returns the shared diarization engine, or ok=false when no
// engine is configured or construction failed. Diarization is an optional
// enhancement: initialization failure degrades to "unavailable" rather than
// failing transcription.
func (r *Registry) Diarization() (diarize.Engine, bool) {
	r.diarOnce.Do(func() {
		if !r.cfg.Features.EnableDiarization {
			logrus.Info("Diarization disabled by configuration")
			return
		}
		if r.cfg.Diarization.APIURL == "" || r.cfg.Diarization.AuthToken == "" {
			logrus.Warn("Diarization engine not configured - transcriptions will have no speaker labels")
			return
		}

		engine, err := diarize.NewPyannoteEngine(diarize.PyannoteConfig{
			APIURL:    r.cfg.Diarization.APIURL,
			AuthToken: r.cfg.Diarization.AuthToken,
			Model:     r.cfg.Diarization.Model,
			Timeout:   r.cfg.Diarization.Timeout,
		})
		if err != nil {
			logrus.WithError(err).Error("Failed to initialize diarization engine - continuing without diarization")
			return
		}
		r.diarEngine = engine
	})

	if r.diarEngine == nil {
		return nil, false
	}
	return r.diarEngine, true
}
