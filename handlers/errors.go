package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikhpete/devconnect/internal/accounts"
	"github.com/nikhpete/devconnect/internal/githubapi"
	"github.com/nikhpete/devconnect/internal/posts"
	"github.com/nikhpete/devconnect/internal/profiles"
	"github.com/nikhpete/devconnect/pkg/logger"
)

// abortWithServiceError maps service errors onto the HTTP taxonomy:
// 400 for rejected requests, 403 for ownership violations, 404 for missing
// entities, 500 for everything unexpected.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, accounts.ErrDuplicateEmail),
		errors.Is(err, accounts.ErrInvalidCredentials),
		errors.Is(err, posts.ErrAlreadyLiked),
		errors.Is(err, posts.ErrNotLiked):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"msg": err.Error()}}})
	case errors.Is(err, posts.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, accounts.ErrNotFound),
		errors.Is(err, profiles.ErrNotFound),
		errors.Is(err, profiles.ErrEntryNotFound),
		errors.Is(err, posts.ErrNotFound),
		errors.Is(err, posts.ErrCommentNotFound),
		errors.Is(err, githubapi.ErrNoProfile):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	default:
		logger.Errorf("unhandled service error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
	}
}

// bindJSON binds the request body and writes a 400 validation response on
// failure. Returns false when the request was rejected.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"msg": err.Error()}}})
		return false
	}
	return true
}
