package transcription

import (
	"context"
	"errors"

	"github.com/voxnotes/scribe-api/internal/models"
	"gorm.io/gorm"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new transcription repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create stores a new transcription record
func (r *repository) Create(ctx context.Context, record *models.TranscriptionResult) error {
	if record == nil {
		return errors.New("transcription record cannot be nil")
	}

	result := r.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// GetByID retrieves a transcription record by ID
func (r *repository) GetByID(ctx context.Context, id uint) (*models.TranscriptionResult, error) {
	var record models.TranscriptionResult

	result := r.db.WithContext(ctx).First(&record, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &record, nil
}

// ListByUser returns a user's records, newest first
func (r *repository) ListByUser(ctx context.Context, userID uint) ([]models.TranscriptionResult, error) {
	var records []models.TranscriptionResult

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}
