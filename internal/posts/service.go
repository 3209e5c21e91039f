package posts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nikhpete/devconnect/internal/accounts"
	"github.com/nikhpete/devconnect/internal/models"
)

var (
	// ErrForbidden is returned when the caller does not own the post or
	// comment being removed.
	ErrForbidden = errors.New("user not authorized")
	// ErrAlreadyLiked is returned when a user likes a post twice.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrNotLiked is returned when unliking a post the user never liked.
	ErrNotLiked = errors.New("post not yet liked")
	// ErrCommentNotFound is returned when removing a comment whose id is
	// not on the post.
	ErrCommentNotFound = errors.New("comment not found")
)

// Service manages the post feed with its embedded likes and comments.
type Service struct {
	repo  Repository
	users accounts.Repository
}

func NewService(r Repository, users accounts.Repository) *Service {
	return &Service{repo: r, users: users}
}

// Create stores a new post, denormalizing the author's current name and
// avatar into it. Those fields are not kept in sync with later edits.
func (s *Service) Create(ctx context.Context, userID, text string) (*models.Post, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, accounts.ErrNotFound
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	p := &models.Post{
		ID:       primitive.NewObjectID(),
		User:     uid,
		Text:     text,
		Name:     u.Name,
		Avatar:   u.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all posts, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Post, error) {
	return s.repo.List(ctx)
}

// Get returns a single post by id.
func (s *Service) Get(ctx context.Context, postID string) (*models.Post, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, pid)
}

// Delete removes a post. Only the author may delete it.
func (s *Service) Delete(ctx context.Context, userID, postID string) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.User.Hex() != userID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, p.ID)
}

// Like records the caller's like at the head of the like list. A user can
// hold at most one like per post.
func (s *Service) Like(ctx context.Context, userID, postID string) ([]models.Like, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	for _, l := range p.Likes {
		if l.User == uid {
			return nil, ErrAlreadyLiked
		}
	}
	like := models.Like{ID: primitive.NewObjectID(), User: uid}
	p.Likes = append([]models.Like{like}, p.Likes...)
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// Unlike removes the caller's like, preserving the order of the rest.
func (s *Service) Unlike(ctx context.Context, userID, postID string) ([]models.Like, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, l := range p.Likes {
		if l.User == uid {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotLiked
	}
	p.Likes = append(p.Likes[:idx], p.Likes[idx+1:]...)
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// AddComment inserts a new comment at the head of the comment list,
// denormalizing the commenter's display fields.
func (s *Service) AddComment(ctx context.Context, userID, postID, text string) ([]models.Comment, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, accounts.ErrNotFound
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	c := models.Comment{
		ID:     primitive.NewObjectID(),
		User:   uid,
		Text:   text,
		Name:   u.Name,
		Avatar: u.Avatar,
		Date:   time.Now().UTC(),
	}
	p.Comments = append([]models.Comment{c}, p.Comments...)
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// RemoveComment removes a comment by id. Only the comment's author may
// remove it.
func (s *Service) RemoveComment(ctx context.Context, userID, postID, commentID string) ([]models.Comment, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, c := range p.Comments {
		if c.ID.Hex() == commentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrCommentNotFound
	}
	if p.Comments[idx].User.Hex() != userID {
		return nil, ErrForbidden
	}
	p.Comments = append(p.Comments[:idx], p.Comments[idx+1:]...)
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}
