package history

import (
	"github.com/gin-gonic/gin"
	"github.com/voxnotes/scribe-api/api/types"
)

// RegisterRoutes registers history routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
	router.GET("/", Get(deps))
}
