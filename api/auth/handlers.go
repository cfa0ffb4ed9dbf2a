package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/voxnotes/scribe-api/api/types"
	"github.com/voxnotes/scribe-api/internal/models"
	"github.com/voxnotes/scribe-api/internal/services/auth"
	"gorm.io/gorm"
)

// registerRequest is the registration payload
type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
}

// loginRequest is the login payload
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
// @Summary      Register a new user
// @Description  Create a user account with email, username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body registerRequest true "Registration payload"
// @Success      201 {object} types.UserResponse
// @Failure      400 {object} types.ErrorResponse "Invalid payload"
// @Failure      409 {object} types.ErrorResponse "Email or username taken"
// @Router       /register/ [post]
func Register(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid registration payload."})
			return
		}

		hash, err := deps.AuthService.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to register user."})
			return
		}

		user := models.User{
			Email:        req.Email,
			Username:     req.Username,
			PasswordHash: hash,
			IsActive:     true,
		}

		if err := deps.DB.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
				c.JSON(http.StatusConflict, types.ErrorResponse{Error: "Email or username already in use."})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to register user."})
			return
		}

		c.JSON(http.StatusCreated, types.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
		})
	}
}

// Login verifies credentials and issues a JWT
// @Summary      Log in
// @Description  Verify username and password and return a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body loginRequest true "Login payload"
// @Success      200 {object} types.TokenResponse
// @Failure      400 {object} types.ErrorResponse "Invalid payload"
// @Failure      401 {object} types.ErrorResponse "Invalid credentials"
// @Router       /login/ [post]
func Login(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid login payload."})
			return
		}

		var user models.User
		err := deps.DB.DB.WithContext(c.Request.Context()).
			Where("username = ?", req.Username).
			First(&user).Error
		if err != nil {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Invalid credentials."})
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Account is disabled."})
			return
		}

		if err := deps.AuthService.CheckPassword(user.PasswordHash, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Invalid credentials."})
			return
		}

		token, err := deps.AuthService.IssueToken(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to issue token."})
			return
		}

		c.JSON(http.StatusOK, types.TokenResponse{
			Token:    token,
			Username: user.Username,
		})
	}
}

// AuthMiddleware validates bearer tokens and stores the caller's identity
// in the request context.
func AuthMiddleware(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := deps.AuthService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Token expired"})
			} else {
				c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}

// UserID extracts the authenticated user's ID from the request context.
// ok=false means the request was not authenticated.
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
