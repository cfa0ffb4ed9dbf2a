package suggest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	authapi "github.com/voxnotes/scribe-api/api/auth"
	"github.com/voxnotes/scribe-api/api/types"
	apperrors "github.com/voxnotes/scribe-api/pkg/errors"
)

type suggestRequest struct {
	Content string `json:"content"`
}

// Post handles title suggestion requests
// @Summary      Suggest titles
// @Description  Generate title candidates for a block of text
// @Tags         suggest
// @Accept       json
// @Produce      json
// @Param        body body suggestRequest true "Content to title"
// @Success      200 {object} types.SuggestionsResponse
// @Failure      400 {object} types.ErrorResponse "No content provided"
// @Failure      401 {object} types.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} types.ErrorResponse "Generation failure"
// @Security     BearerAuth
// @Router       /suggest-titles/ [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.SuggestionService == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: "Title suggestions are not available."})
			return
		}

		var req suggestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "No blog post content provided."})
			return
		}

		var userID *uint
		if id, ok := authapi.UserID(c); ok {
			userID = &id
		}

		suggestions, err := deps.SuggestionService.SuggestTitles(c.Request.Context(), req.Content, userID)
		if err != nil {
			logrus.WithError(err).Error("Title suggestion request failed")
			if appErr, ok := err.(*apperrors.AppError); ok {
				c.JSON(appErr.GetHTTPCode(), types.ErrorResponse{Error: appErr.Message})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.SuggestionsResponse{Suggestions: suggestions})
	}
}
