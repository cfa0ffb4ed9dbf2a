package suggest

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/voxnotes/scribe-api/internal/models"
	apperrors "github.com/voxnotes/scribe-api/pkg/errors"
	"gorm.io/gorm"
)

// SuggestionService defines the interface for title suggestion operations
type SuggestionService interface {
	// SuggestTitles generates title candidates for the content and records
	// the request for the user's history
	SuggestTitles(ctx context.Context, content string, userID *uint) ([]string, error)

	// ListByUser returns a user's stored suggestions, newest first
	ListByUser(ctx context.Context, userID uint) ([]models.TitleSuggestion, error)
}

// Service implements SuggestionService around the Suggester collaborator
type Service struct {
	suggester Suggester
	db        *gorm.DB
}

// NewService creates a new suggestion service
func NewService(suggester Suggester, db *gorm.DB) SuggestionService {
	return &Service{suggester: suggester, db: db}
}

// SuggestTitles generates title candidates and persists the outcome.
// As with transcriptions, a failed store does not fail the request.
func (s *Service) SuggestTitles(ctx context.Context, content string, userID *uint) ([]string, error) {
	if content == "" {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "No blog post content provided.")
	}

	suggestions, err := s.suggester.Suggest(ctx, content)
	if err != nil {
		return nil, apperrors.ExternalServiceError("title suggestion", err)
	}

	payload, err := json.Marshal(suggestions)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to serialize suggestions")
	}

	record := &models.TitleSuggestion{
		UserID:          userID,
		OriginalContent: content,
		SuggestionsJSON: string(payload),
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		logrus.WithError(err).Warn("Failed to store title suggestions - returning suggestions anyway")
	}

	return suggestions, nil
}

// ListByUser returns a user's stored suggestions, newest first
func (s *Service) ListByUser(ctx context.Context, userID uint) ([]models.TitleSuggestion, error) {
	var records []models.TitleSuggestion
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeSuggestions deserializes a stored record's suggestion list
func DecodeSuggestions(record *models.TitleSuggestion) []string {
	if record == nil || record.SuggestionsJSON == "" {
		return nil
	}
	var suggestions []string
	if err := json.Unmarshal([]byte(record.SuggestionsJSON), &suggestions); err != nil {
		logrus.WithError(err).WithField("record_id", record.ID).
			Warn("Failed to decode stored suggestions")
		return nil
	}
	return suggestions
}
