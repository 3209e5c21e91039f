package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nikhpete/devconnect/internal/accounts"
	"github.com/nikhpete/devconnect/internal/config"
	"github.com/nikhpete/devconnect/internal/githubapi"
	"github.com/nikhpete/devconnect/internal/posts"
	"github.com/nikhpete/devconnect/internal/profiles"
)

// newTestRouter builds the full API router on in-memory repositories.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", TokenTTL: time.Hour},
	}
	userRepo := accounts.NewMemoryRepository()
	accountSvc := accounts.NewService(userRepo)
	profileSvc := profiles.NewService(profiles.NewMemoryRepository(), userRepo)
	postSvc := posts.NewService(posts.NewMemoryRepository(), userRepo)

	r := gin.New()
	api := r.Group("/api")
	NewAuthHandler(cfg, accountSvc, nil).Register(api)
	NewProfileHandler(cfg, profileSvc, githubapi.NewClient("", "")).Register(api)
	NewPostHandler(cfg, postSvc).Register(api)
	return r
}

// doJSON performs a request with an optional auth token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser registers an account through the API and returns its token.
func registerUser(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/users", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
