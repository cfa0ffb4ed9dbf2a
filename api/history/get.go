package history

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	authapi "github.com/voxnotes/scribe-api/api/auth"
	"github.com/voxnotes/scribe-api/api/types"
	"github.com/voxnotes/scribe-api/internal/services/suggest"
	"github.com/voxnotes/scribe-api/internal/services/transcription"
)

// Get handles history listing requests
// @Summary      List stored activity
// @Description  Return the authenticated user's transcriptions and title suggestions, newest first
// @Tags         history
// @Produce      json
// @Success      200 {object} types.HistoryResponse
// @Failure      401 {object} types.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} types.ErrorResponse "Lookup failure"
// @Security     BearerAuth
// @Router       /history/ [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authapi.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authentication required"})
			return
		}

		response := types.HistoryResponse{
			Transcriptions:   []types.HistoryTranscription{},
			TitleSuggestions: []types.HistoryTitleSuggestion{},
		}

		if deps.TranscriptionService != nil {
			records, err := deps.TranscriptionService.ListByUser(c.Request.Context(), userID)
			if err != nil {
				logrus.WithError(err).Error("Failed to list transcriptions")
				c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to load history."})
				return
			}
			for i := range records {
				record := &records[i]
				response.Transcriptions = append(response.Transcriptions, types.HistoryTranscription{
					ID:            record.ID,
					AudioFileName: record.AudioFileName,
					Text:          record.Text,
					Transcription: transcription.DecodeSegments(record),
					CreatedAt:     record.CreatedAt.Format(time.RFC3339),
				})
			}
		}

		if deps.SuggestionService != nil {
			records, err := deps.SuggestionService.ListByUser(c.Request.Context(), userID)
			if err != nil {
				logrus.WithError(err).Error("Failed to list title suggestions")
				c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to load history."})
				return
			}
			for i := range records {
				record := &records[i]
				response.TitleSuggestions = append(response.TitleSuggestions, types.HistoryTitleSuggestion{
					ID:              record.ID,
					OriginalContent: record.OriginalContent,
					Suggestions:     suggest.DecodeSuggestions(record),
					CreatedAt:       record.CreatedAt.Format(time.RFC3339),
				})
			}
		}

		c.JSON(http.StatusOK, response)
	}
}
