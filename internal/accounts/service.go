package accounts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/nikhpete/devconnect/internal/gravatar"
	"github.com/nikhpete/devconnect/internal/models"
)

var (
	// ErrDuplicateEmail is returned when registering an email that already
	// has an account.
	ErrDuplicateEmail = errors.New("user already exists")
	// ErrInvalidCredentials is deliberately undifferentiated: callers learn
	// neither whether the email exists nor that the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service encapsulates account registration and authentication.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Register creates a new account: checks email uniqueness, derives the
// avatar from the email, and stores a salted bcrypt hash of the password.
// Input validation (email syntax, password length) happens at the handler.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Avatar:   gravatar.URL(email),
		Date:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies email+password and returns the account.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get resolves a verified token identity back to the stored account.
func (s *Service) Get(ctx context.Context, userID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, oid)
}

// SetAvatar replaces the account's avatar URL.
func (s *Service) SetAvatar(ctx context.Context, userID, avatar string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.repo.UpdateAvatar(ctx, oid, avatar); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}
