package transcribe

import (
	"github.com/gin-gonic/gin"
	"github.com/voxnotes/scribe-api/api/types"
)

// RegisterRoutes registers transcription routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Post(deps))
	router.POST("/", Post(deps))
}
