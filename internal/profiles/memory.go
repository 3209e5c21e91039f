package profiles

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nikhpete/devconnect/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]*models.Profile // keyed by profile id
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[primitive.ObjectID]*models.Profile)}
}

func (m *MemoryRepository) Create(ctx context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := clone(p)
	m.profiles[p.ID] = cp
	return nil
}

func (m *MemoryRepository) Replace(ctx context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.ID]; !ok {
		return ErrNotFound
	}
	m.profiles[p.ID] = clone(p)
	return nil
}

func (m *MemoryRepository) GetByUser(ctx context.Context, user primitive.ObjectID) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.User == user {
			return clone(p), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) List(ctx context.Context) ([]*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, clone(p))
	}
	return out, nil
}

func (m *MemoryRepository) DeleteByUser(ctx context.Context, user primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.profiles {
		if p.User == user {
			delete(m.profiles, id)
			return nil
		}
	}
	return nil
}

func clone(p *models.Profile) *models.Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	cp.Experience = append([]models.Experience(nil), p.Experience...)
	cp.Education = append([]models.Education(nil), p.Education...)
	return &cp
}
