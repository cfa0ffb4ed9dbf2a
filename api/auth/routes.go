package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/voxnotes/scribe-api/api/types"
)

// RegisterRoutes registers registration and login routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/register/", Register(deps))
	router.POST("/login/", Login(deps))
}
