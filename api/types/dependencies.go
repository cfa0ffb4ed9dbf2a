package types

import (
	"github.com/voxnotes/scribe-api/internal/database"
	"github.com/voxnotes/scribe-api/internal/services/auth"
	"github.com/voxnotes/scribe-api/internal/services/suggest"
	"github.com/voxnotes/scribe-api/internal/services/transcription"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                   *database.DB
	AuthService          *auth.Service
	TranscriptionService transcription.TranscriptionService
	SuggestionService    suggest.SuggestionService
}
