package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxnotes/scribe-api/api/types"
	"github.com/voxnotes/scribe-api/internal/database"
	"github.com/voxnotes/scribe-api/internal/models"
	authService "github.com/voxnotes/scribe-api/internal/services/auth"
)

func setupTestDeps(t *testing.T) *types.Dependencies {
	t.Helper()

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	svc, err := authService.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	return &types.Dependencies{DB: db, AuthService: svc}
}

func setupTestRouter(deps *types.Dependencies) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/")
	RegisterRoutes(group, deps)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	deps := setupTestDeps(t)
	router := setupTestRouter(deps)

	t.Run("creates user", func(t *testing.T) {
		w := postJSON(t, router, "/register/", gin.H{
			"email":    "jamie@example.com",
			"username": "jamie",
			"password": "correct-horse",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response types.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "jamie", response.Username)
		assert.Equal(t, "jamie@example.com", response.Email)
		assert.NotZero(t, response.ID)

		var stored models.User
		require.NoError(t, deps.DB.DB.Where("username = ?", "jamie").First(&stored).Error)
		assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		w := postJSON(t, router, "/register/", gin.H{
			"email":    "other@example.com",
			"username": "jamie",
			"password": "correct-horse",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid payload rejected", func(t *testing.T) {
		w := postJSON(t, router, "/register/", gin.H{
			"email":    "not-an-email",
			"username": "x",
			"password": "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	deps := setupTestDeps(t)
	router := setupTestRouter(deps)

	w := postJSON(t, router, "/register/", gin.H{
		"email":    "jamie@example.com",
		"username": "jamie",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("valid credentials", func(t *testing.T) {
		w := postJSON(t, router, "/login/", gin.H{
			"username": "jamie",
			"password": "correct-horse",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var response types.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, "jamie", response.Username)

		claims, err := deps.AuthService.ValidateToken(response.Token)
		require.NoError(t, err)
		assert.Equal(t, "jamie", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(t, router, "/login/", gin.H{
			"username": "jamie",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := postJSON(t, router, "/login/", gin.H{
			"username": "nobody",
			"password": "correct-horse",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("disabled account", func(t *testing.T) {
		require.NoError(t, deps.DB.DB.Model(&models.User{}).
			Where("username = ?", "jamie").
			Update("is_active", false).Error)
		defer deps.DB.DB.Model(&models.User{}).
			Where("username = ?", "jamie").
			Update("is_active", true)

		w := postJSON(t, router, "/login/", gin.H{
			"username": "jamie",
			"password": "correct-horse",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	deps := setupTestDeps(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(deps), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	user := &models.User{Email: "jamie@example.com", Username: "jamie", PasswordHash: "x", IsActive: true}
	require.NoError(t, deps.DB.DB.Create(user).Error)

	token, err := deps.AuthService.IssueToken(user)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(user.ID), response["user_id"])
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
