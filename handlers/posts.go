package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikhpete/devconnect/internal/config"
	"github.com/nikhpete/devconnect/internal/posts"
	"github.com/nikhpete/devconnect/pkg/middleware"
)

// PostRequest is the body for creating a post or a comment.
type PostRequest struct {
	Text string `json:"text" binding:"required"`
}

// PostHandler serves the post feed: creation, listing, likes, and comments.
// Every route is private.
type PostHandler struct {
	cfg   *config.Config
	posts *posts.Service
}

func NewPostHandler(cfg *config.Config, p *posts.Service) *PostHandler {
	return &PostHandler{cfg: cfg, posts: p}
}

// Register mounts the post routes on the /api group.
func (h *PostHandler) Register(rg *gin.RouterGroup) {
	p := rg.Group("/posts", middleware.Auth(h.cfg.JWT.Secret))
	p.POST("", h.Create)
	p.GET("", h.List)
	p.GET("/:post_id", h.Get)
	p.DELETE("/:post_id", h.Delete)
	p.PUT("/like/:post_id", h.Like)
	p.PUT("/unlike/:post_id", h.Unlike)
	p.PUT("/comment/:post_id", h.Comment)
	p.PUT("/uncomment/:post_id/:comment_id", h.Uncomment)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req PostRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.posts.Create(c.Request.Context(), middleware.UserID(c), req.Text)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) List(c *gin.Context) {
	ps, err := h.posts.List(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.posts.Get(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), middleware.UserID(c), c.Param("post_id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "post removed"})
}

func (h *PostHandler) Like(c *gin.Context) {
	likes, err := h.posts.Like(c.Request.Context(), middleware.UserID(c), c.Param("post_id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	likes, err := h.posts.Unlike(c.Request.Context(), middleware.UserID(c), c.Param("post_id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) Comment(c *gin.Context) {
	var req PostRequest
	if !bindJSON(c, &req) {
		return
	}
	comments, err := h.posts.AddComment(c.Request.Context(), middleware.UserID(c), c.Param("post_id"), req.Text)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) Uncomment(c *gin.Context) {
	comments, err := h.posts.RemoveComment(c.Request.Context(), middleware.UserID(c), c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
