package transcription

import (
	"context"
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/voxnotes/scribe-api/internal/models"
	"github.com/voxnotes/scribe-api/internal/services/align"
	"github.com/voxnotes/scribe-api/internal/services/ingest"
	apperrors "github.com/voxnotes/scribe-api/pkg/errors"
)

// Service implements the TranscriptionService interface. One call to
// Transcribe is one synchronous orchestration pass; there is no internal
// parallelism because both engines are heavyweight and diarization follows
// transcription.
type Service struct {
	engines           EngineProvider
	store             *ingest.Store
	repo              Repository
	language          string
	strictPersistence bool
}

// Option configures the service
type Option func(*Service)

// WithLanguage sets the transcription language hint
func WithLanguage(language string) Option {
	return func(s *Service) {
		s.language = language
	}
}

// WithStrictPersistence makes a failed store fail the whole request instead
// of being logged and swallowed.
func WithStrictPersistence(strict bool) Option {
	return func(s *Service) {
		s.strictPersistence = strict
	}
}

// NewService creates a new transcription service
func NewService(engines EngineProvider, store *ingest.Store, repo Repository, opts ...Option) TranscriptionService {
	s := &Service{
		engines:  engines,
		store:    store,
		repo:     repo,
		language: "en",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transcribe runs one full orchestration pass. The transient audio file is
// released on every exit path, including engine faults and panics unwound
// by the recovery middleware.
func (s *Service) Transcribe(ctx context.Context, audio io.Reader, fileName string, userID *uint) (*Result, error) {
	upload, err := s.store.Save(audio, fileName)
	if err != nil {
		return nil, err
	}
	defer upload.Remove()

	engine, err := s.engines.ASR()
	if err != nil {
		return nil, apperrors.InferenceError("transcription", err)
	}

	asrResult, err := engine.Transcribe(ctx, upload.Path, s.language)
	if err != nil {
		return nil, s.classifyEngineFault("transcription", upload, err)
	}

	var aligned []align.AlignedSegment
	if diarizer, ok := s.engines.Diarization(); ok {
		turns, err := diarizer.Diarize(ctx, upload.Path)
		if err != nil {
			return nil, s.classifyEngineFault("diarization", upload, err)
		}
		aligned = align.Align(asrResult.Segments, turns)
	} else {
		aligned = align.AlignWithoutDiarization(asrResult.Segments)
	}

	record, err := s.assemble(ctx, aligned, asrResult.Text, fileName, userID)
	if err != nil {
		return nil, err
	}

	return &Result{
		RecordID: record.ID,
		Text:     asrResult.Text,
		Segments: aligned,
	}, nil
}

// assemble packages the aligned segments into the persistence shape and
// hands it to the repository. Persistence failures do not override a
// successful transcription unless strict persistence is enabled.
func (s *Service) assemble(ctx context.Context, aligned []align.AlignedSegment, text, fileName string, userID *uint) (*models.TranscriptionResult, error) {
	payload, err := json.Marshal(aligned)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to serialize aligned segments")
	}

	record := &models.TranscriptionResult{
		UserID:        userID,
		AudioFileName: fileName,
		Text:          text,
		Language:      s.language,
		SegmentsJSON:  string(payload),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if s.strictPersistence {
			return nil, apperrors.DatabaseError("create transcription", err)
		}
		logrus.WithError(err).WithField("audio_file", fileName).
			Warn("Failed to store transcription result - returning transcription anyway")
	}

	return record, nil
}

// classifyEngineFault distinguishes a vanished transient resource from a
// genuine inference fault. The upload disappearing mid-pass indicates a race
// or platform temp cleanup, which callers should answer with a re-upload.
func (s *Service) classifyEngineFault(engine string, upload *ingest.Upload, cause error) error {
	if statErr := upload.Stat(); apperrors.Is(statErr, apperrors.ErrCodeTransientResource) {
		return statErr
	}
	return apperrors.InferenceError(engine, cause)
}

// ListByUser returns a user's stored transcription records, newest first
func (s *Service) ListByUser(ctx context.Context, userID uint) ([]models.TranscriptionResult, error) {
	return s.repo.ListByUser(ctx, userID)
}

// DecodeSegments deserializes a stored record's aligned-segment list
func DecodeSegments(record *models.TranscriptionResult) []align.AlignedSegment {
	if record == nil || record.SegmentsJSON == "" {
		return nil
	}
	var segments []align.AlignedSegment
	if err := json.Unmarshal([]byte(record.SegmentsJSON), &segments); err != nil {
		logrus.WithError(err).WithField("record_id", record.ID).
			Warn("Failed to decode stored segments")
		return nil
	}
	return segments
}
