package transcribe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	authapi "github.com/voxnotes/scribe-api/api/auth"
	"github.com/voxnotes/scribe-api/api/types"
	apperrors "github.com/voxnotes/scribe-api/pkg/errors"
)

// Post handles audio transcription requests
// @Summary      Transcribe an audio file
// @Description  Run speech-to-text and speaker diarization over an uploaded audio file and return speaker-attributed transcript segments
// @Tags         transcribe
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio_file formData file true "Audio file to transcribe"
// @Success      200 {object} types.TranscriptionResponse
// @Failure      400 {object} types.ErrorResponse "No audio file provided"
// @Failure      401 {object} types.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} types.ErrorResponse "Inference or resource failure"
// @Security     BearerAuth
// @Router       /transcribe/ [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.TranscriptionService == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: "Transcription service is not available."})
			return
		}

		fileHeader, err := c.FormFile("audio_file")
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "No audio file provided."})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "No audio file provided."})
			return
		}
		defer file.Close()

		var userID *uint
		if id, ok := authapi.UserID(c); ok {
			userID = &id
		}

		result, err := deps.TranscriptionService.Transcribe(c.Request.Context(), file, fileHeader.Filename, userID)
		if err != nil {
			respondTranscribeError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.TranscriptionResponse{Transcription: result.Segments})
	}
}

// respondTranscribeError maps pipeline failures onto the endpoint's error
// contract. A vanished working file gets a distinguished message so callers
// know a retry with a fresh upload can succeed.
func respondTranscribeError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)

	logrus.WithFields(logrus.Fields{
		"code":  code,
		"error": err.Error(),
	}).Error("Transcription request failed")

	switch code {
	case apperrors.ErrCodeTransientResource:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "Audio file is no longer available. Please upload the file again.",
		})
	case apperrors.ErrCodeValidation, apperrors.ErrCodeMissingField:
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: errorMessage(err)})
	default:
		c.JSON(apperrors.GetHTTPCode(err), types.ErrorResponse{Error: errorMessage(err)})
	}
}

func errorMessage(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.Message
	}
	return err.Error()
}
