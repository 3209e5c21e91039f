package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nikhpete/devconnect/internal/accounts"
	"github.com/nikhpete/devconnect/internal/models"
)

// ErrEntryNotFound is returned when removing an experience or education
// entry whose id is not in the list.
var ErrEntryNotFound = errors.New("entry not found")

// ProfileInput carries the upsert fields. Empty fields are skipped: left
// untouched on update, omitted on create.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         string // comma-delimited, split and trimmed
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// ExperienceInput carries a new work-history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

// EducationInput carries a new schooling entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

// Service manages profile documents and their embedded lists.
type Service struct {
	repo  Repository
	users accounts.Repository
}

func NewService(r Repository, users accounts.Repository) *Service {
	return &Service{repo: r, users: users}
}

// Upsert creates the user's profile if none exists, otherwise applies the
// supplied fields in place and returns the post-update state.
func (s *Service) Upsert(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	p, err := s.repo.GetByUser(ctx, uid)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		p = &models.Profile{
			ID:         primitive.NewObjectID(),
			User:       uid,
			Experience: []models.Experience{},
			Education:  []models.Education{},
			Date:       time.Now().UTC(),
		}
		applyInput(p, in)
		if err := s.repo.Create(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	applyInput(p, in)
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func applyInput(p *models.Profile, in ProfileInput) {
	if in.Company != "" {
		p.Company = in.Company
	}
	if in.Website != "" {
		p.Website = in.Website
	}
	if in.Location != "" {
		p.Location = in.Location
	}
	if in.Bio != "" {
		p.Bio = in.Bio
	}
	if in.Status != "" {
		p.Status = in.Status
	}
	if in.GithubUsername != "" {
		p.GithubUsername = in.GithubUsername
	}
	if in.Skills != "" {
		p.Skills = splitSkills(in.Skills)
	}
	if in.Youtube != "" {
		p.Social.Youtube = in.Youtube
	}
	if in.Twitter != "" {
		p.Social.Twitter = in.Twitter
	}
	if in.Facebook != "" {
		p.Social.Facebook = in.Facebook
	}
	if in.Linkedin != "" {
		p.Social.Linkedin = in.Linkedin
	}
	if in.Instagram != "" {
		p.Social.Instagram = in.Instagram
	}
}

func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// GetOwn returns the caller's profile with the owner display fields joined in.
func (s *Service) GetOwn(ctx context.Context, userID string) (*models.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.getWithOwner(ctx, uid)
}

// GetByUser returns any user's profile with the owner display fields joined in.
func (s *Service) GetByUser(ctx context.Context, targetUserID string) (*models.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(targetUserID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.getWithOwner(ctx, uid)
}

func (s *Service) getWithOwner(ctx context.Context, uid primitive.ObjectID) (*models.Profile, error) {
	p, err := s.repo.GetByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.attachOwner(ctx, p)
	return p, nil
}

// List returns all profiles with owner display fields joined in. An empty
// result is not an error.
func (s *Service) List(ctx context.Context) ([]*models.Profile, error) {
	ps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range ps {
		s.attachOwner(ctx, p)
	}
	return ps, nil
}

func (s *Service) attachOwner(ctx context.Context, p *models.Profile) {
	u, err := s.users.GetByID(ctx, p.User)
	if err != nil {
		// orphaned profile; leave display fields empty
		return
	}
	p.Owner = &models.ProfileOwner{Name: u.Name, Avatar: u.Avatar}
}

// DeleteAccount removes the user's profile and the user record itself.
// The user's posts are intentionally left in place.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	if err := s.repo.DeleteByUser(ctx, uid); err != nil {
		return err
	}
	return s.users.Delete(ctx, uid)
}

// AddExperience inserts a new entry at the head of the experience list and
// returns the updated profile.
func (s *Service) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*models.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.repo.GetByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	exp := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	p.Experience = append([]models.Experience{exp}, p.Experience...)
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveExperience splices the entry with the given id out of the list,
// preserving the order of the remainder.
func (s *Service) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.repo.GetByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, e := range p.Experience {
		if e.ID.Hex() == entryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrEntryNotFound
	}
	p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddEducation inserts a new entry at the head of the education list and
// returns the updated profile.
func (s *Service) AddEducation(ctx context.Context, userID string, in EducationInput) (*models.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.repo.GetByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	ed := models.Education{
		ID:           primitive.NewObjectID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	p.Education = append([]models.Education{ed}, p.Education...)
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveEducation splices the entry with the given id out of the list,
// preserving the order of the remainder.
func (s *Service) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.repo.GetByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, e := range p.Education {
		if e.ID.Hex() == entryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrEntryNotFound
	}
	p.Education = append(p.Education[:idx], p.Education[idx+1:]...)
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
