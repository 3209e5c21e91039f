package posts

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nikhpete/devconnect/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]*models.Post
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (m *MemoryRepository) Create(ctx context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.posts[p.ID] = clone(p)
	return nil
}

func (m *MemoryRepository) Replace(ctx context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[p.ID]; !ok {
		return ErrNotFound
	}
	m.posts[p.ID] = clone(p)
	return nil
}

func (m *MemoryRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func clone(p *models.Post) *models.Post {
	cp := *p
	cp.Likes = append([]models.Like(nil), p.Likes...)
	cp.Comments = append([]models.Comment(nil), p.Comments...)
	return &cp
}
