package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nikhpete/devconnect/internal/accounts"
	"github.com/nikhpete/devconnect/internal/config"
	"github.com/nikhpete/devconnect/internal/storage"
	"github.com/nikhpete/devconnect/internal/tokens"
	"github.com/nikhpete/devconnect/pkg/logger"
	"github.com/nikhpete/devconnect/pkg/metrics"
	"github.com/nikhpete/devconnect/pkg/middleware"
)

// RegisterRequest is the POST /api/users body.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the POST /api/auth body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler serves registration, login, and current-account lookup.
type AuthHandler struct {
	cfg      *config.Config
	accounts *accounts.Service
	avatars  *storage.AvatarStore // optional; nil disables avatar upload
}

func NewAuthHandler(cfg *config.Config, a *accounts.Service, avatars *storage.AvatarStore) *AuthHandler {
	return &AuthHandler{cfg: cfg, accounts: a, avatars: avatars}
}

// Register mounts the auth routes on the /api group.
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	auth := middleware.Auth(h.cfg.JWT.Secret)
	rg.GET("/auth", auth, h.Current)
	rg.POST("/auth", h.Login)
	rg.POST("/users", h.RegisterAccount)
	if h.avatars != nil {
		rg.POST("/users/avatar", auth, h.UploadAvatar)
	}
}

// RegisterAccount creates an account and returns a bearer token.
func (h *AuthHandler) RegisterAccount(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		metrics.Registrations.WithLabelValues("failure").Inc()
		abortWithServiceError(c, err)
		return
	}
	tok, err := tokens.Issue(u.ID.Hex(), h.cfg.JWT.Secret, h.cfg.JWT.TokenTTL)
	if err != nil {
		logger.Errorf("token issue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
		return
	}
	metrics.Registrations.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// Login authenticates an existing account and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		abortWithServiceError(c, err)
		return
	}
	tok, err := tokens.Issue(u.ID.Hex(), h.cfg.JWT.Secret, h.cfg.JWT.TokenTTL)
	if err != nil {
		logger.Errorf("token issue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
		return
	}
	metrics.Logins.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// Current returns the caller's account without the password hash.
func (h *AuthHandler) Current(c *gin.Context) {
	u, err := h.accounts.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UploadAvatar stores an uploaded image and points the account's avatar at
// it, replacing the gravatar-derived URL.
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"msg": "avatar file is required"}}})
		return
	}
	defer file.Close()

	key, err := h.avatars.Upload(c.Request.Context(), file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		logger.Errorf("avatar upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
		return
	}
	url, err := h.avatars.PresignedURL(c.Request.Context(), key, 7*24*time.Hour)
	if err != nil {
		logger.Errorf("avatar url failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
		return
	}
	u, err := h.accounts.SetAvatar(c.Request.Context(), middleware.UserID(c), url)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
