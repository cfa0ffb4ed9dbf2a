package models

import (
	"gorm.io/gorm"
)

// User represents a registered account
type User struct {
	gorm.Model
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
}

// TranscriptionResult is the persisted aggregate of one transcription
// request. Rows are append-only: a record is written once per request and
// never mutated afterwards.
type TranscriptionResult struct {
	gorm.Model
	UserID        *uint  `json:"user_id" gorm:"index"`
	AudioFileName string `json:"audio_file_name"`
	Text          string `json:"text" gorm:"type:text"`
	Language      string `json:"language"`
	// SegmentsJSON holds the serialized speaker-attributed segment list
	SegmentsJSON string `json:"-" gorm:"type:text"`
	User         *User  `json:"-" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for TranscriptionResult
func (TranscriptionResult) TableName() string {
	return "transcription_results"
}

// TitleSuggestion records one title-suggestion request and its output
type TitleSuggestion struct {
	gorm.Model
	UserID          *uint  `json:"user_id" gorm:"index"`
	OriginalContent string `json:"original_content" gorm:"type:text"`
	SuggestionsJSON string `json:"-" gorm:"type:text"`
	User            *User  `json:"-" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for TitleSuggestion
func (TitleSuggestion) TableName() string {
	return "title_suggestions"
}
