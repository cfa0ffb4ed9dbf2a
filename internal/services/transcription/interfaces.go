package transcription

import (
	"context"
	"io"

	"github.com/voxnotes/scribe-api/internal/models"
	"github.com/voxnotes/scribe-api/internal/services/align"
	"github.com/voxnotes/scribe-api/internal/services/asr"
	"github.com/voxnotes/scribe-api/internal/services/diarize"
)

// Result is the outcome of one orchestration pass
type Result struct {
	RecordID uint
	Text     string
	Segments []align.AlignedSegment
}

// TranscriptionService defines the interface for transcription operations
type TranscriptionService interface {
	// Transcribe runs one full orchestration pass over an uploaded audio
	// stream: ingestion, speech-to-text, diarization (when available),
	// segment-speaker alignment and persistence.
	Transcribe(ctx context.Context, audio io.Reader, fileName string, userID *uint) (*Result, error)

	// ListByUser returns a user's stored transcription records, newest first
	ListByUser(ctx context.Context, userID uint) ([]models.TranscriptionResult, error)
}

// EngineProvider exposes the shared inference engines. The diarization
// capability may be absent; ok=false means transcription proceeds without
// speaker labels.
type EngineProvider interface {
	ASR() (asr.Engine, error)
	Diarization() (diarize.Engine, bool)
}

// Repository defines the interface for transcription persistence
type Repository interface {
	// Create stores a new transcription record
	Create(ctx context.Context, record *models.TranscriptionResult) error

	// GetByID retrieves a transcription record by ID
	GetByID(ctx context.Context, id uint) (*models.TranscriptionResult, error)

	// ListByUser returns a user's records, newest first
	ListByUser(ctx context.Context, userID uint) ([]models.TranscriptionResult, error)
}
