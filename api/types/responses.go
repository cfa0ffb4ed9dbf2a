package types

import "github.com/voxnotes/scribe-api/internal/services/align"

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// TranscriptionResponse is the successful transcription payload: one
// speaker-attributed entry per transcript segment, in transcript order.
type TranscriptionResponse struct {
	Transcription []align.AlignedSegment `json:"transcription"`
}

// SuggestionsResponse carries generated title candidates
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// TokenResponse is returned on successful login
type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// UserResponse is returned on successful registration
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// HistoryTranscription is one stored transcription in a history listing
type HistoryTranscription struct {
	ID            uint                   `json:"id"`
	AudioFileName string                 `json:"audio_file_name"`
	Text          string                 `json:"text"`
	Transcription []align.AlignedSegment `json:"transcription"`
	CreatedAt     string                 `json:"created_at"`
}

// HistoryTitleSuggestion is one stored suggestion request in a history listing
type HistoryTitleSuggestion struct {
	ID              uint     `json:"id"`
	OriginalContent string   `json:"original_content"`
	Suggestions     []string `json:"suggestions"`
	CreatedAt       string   `json:"created_at"`
}

// HistoryResponse aggregates a user's stored activity, newest first
type HistoryResponse struct {
	Transcriptions   []HistoryTranscription   `json:"transcriptions"`
	TitleSuggestions []HistoryTitleSuggestion `json:"title_suggestions"`
}
