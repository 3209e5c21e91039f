package profiles

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nikhpete/devconnect/internal/models"
)

// ErrNotFound is returned when no profile exists for the lookup.
var ErrNotFound = errors.New("profile not found")

// Repository defines persistence operations for profiles. Writes replace the
// whole document: embedded-list mutations are read-modify-write cycles with
// last-write-wins semantics, matching the store's behavior.
type Repository interface {
	Create(ctx context.Context, p *models.Profile) error
	Replace(ctx context.Context, p *models.Profile) error
	GetByUser(ctx context.Context, user primitive.ObjectID) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	DeleteByUser(ctx context.Context, user primitive.ObjectID) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, p *models.Profile) error {
	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *MongoRepository) Replace(ctx context.Context, p *models.Profile) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) GetByUser(ctx context.Context, user primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	if err := r.col.FindOne(ctx, bson.M{"user": user}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.Profile, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Profile{}
	for cur.Next(ctx) {
		var p models.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoRepository) DeleteByUser(ctx context.Context, user primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user": user})
	return err
}
