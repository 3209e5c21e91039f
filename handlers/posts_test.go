package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhpete/devconnect/internal/models"
)

func TestPostRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/posts", "", gin.H{"text": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostLifecycle(t *testing.T) {
	r := newTestRouter(t)
	tok := registerUser(t, r, "Alice", "alice@example.com")

	// create: author name and avatar are copied onto the post
	w := doJSON(t, r, http.MethodPost, "/api/posts", tok, gin.H{"text": "hi"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "hi", p.Text)
	assert.Equal(t, "Alice", p.Name)
	assert.Contains(t, p.Avatar, "gravatar.com")
	require.NotNil(t, p.Likes)
	require.NotNil(t, p.Comments)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)

	postID := p.ID.Hex()

	// like
	w = doJSON(t, r, http.MethodPut, "/api/posts/like/"+postID, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var likes []models.Like
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likes))
	assert.Len(t, likes, 1)

	// liking twice is rejected and the state is unchanged
	w = doJSON(t, r, http.MethodPut, "/api/posts/like/"+postID, tok, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already liked")

	// unlike brings it back to empty
	w = doJSON(t, r, http.MethodPut, "/api/posts/unlike/"+postID, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	likes = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likes))
	assert.Empty(t, likes)

	// unliking an unliked post is rejected
	w = doJSON(t, r, http.MethodPut, "/api/posts/unlike/"+postID, tok, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not yet liked")
}

func TestPostValidationAndLookup(t *testing.T) {
	r := newTestRouter(t)
	tok := registerUser(t, r, "Alice", "alice@example.com")

	// missing text
	w := doJSON(t, r, http.MethodPost, "/api/posts", tok, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown and malformed ids both read as missing posts
	w = doJSON(t, r, http.MethodGet, "/api/posts/64d2f8a1b3c4d5e6f7a8b9c0", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/posts/not-hex", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostDeleteOwnership(t *testing.T) {
	r := newTestRouter(t)
	alice := registerUser(t, r, "Alice", "alice@example.com")
	bob := registerUser(t, r, "Bob", "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/posts", alice, gin.H{"text": "mine"})
	require.Equal(t, http.StatusOK, w.Code)
	var p models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	postID := p.ID.Hex()

	// someone else cannot delete it
	w = doJSON(t, r, http.MethodDelete, "/api/posts/"+postID, bob, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// still there
	w = doJSON(t, r, http.MethodGet, "/api/posts/"+postID, bob, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// the author can
	w = doJSON(t, r, http.MethodDelete, "/api/posts/"+postID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "post removed")

	w = doJSON(t, r, http.MethodGet, "/api/posts/"+postID, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostComments(t *testing.T) {
	r := newTestRouter(t)
	alice := registerUser(t, r, "Alice", "alice@example.com")
	bob := registerUser(t, r, "Bob", "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/posts", alice, gin.H{"text": "post"})
	require.Equal(t, http.StatusOK, w.Code)
	var p models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	postID := p.ID.Hex()

	w = doJSON(t, r, http.MethodPut, "/api/posts/comment/"+postID, bob, gin.H{"text": "first"})
	require.Equal(t, http.StatusOK, w.Code)
	var comments []models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "Bob", comments[0].Name)

	// newest comment goes to the front
	w = doJSON(t, r, http.MethodPut, "/api/posts/comment/"+postID, bob, gin.H{"text": "second"})
	require.Equal(t, http.StatusOK, w.Code)
	comments = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)

	commentID := comments[0].ID.Hex()

	// only the comment author can remove it
	w = doJSON(t, r, http.MethodPut, "/api/posts/uncomment/"+postID+"/"+commentID, alice, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/posts/uncomment/"+postID+"/"+commentID, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Text)
}

func TestPostList(t *testing.T) {
	r := newTestRouter(t)
	tok := registerUser(t, r, "Alice", "alice@example.com")

	for _, text := range []string{"one", "two", "three"} {
		w := doJSON(t, r, http.MethodPost, "/api/posts", tok, gin.H{"text": text})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/posts", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ps []models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ps))
	assert.Len(t, ps, 3)
}
