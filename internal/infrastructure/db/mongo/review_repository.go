package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// ReviewRepository implements ports.ReviewRepository using MongoDB.
type ReviewRepository struct {
	col *mongo.Collection
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Target    string             `bson:"user_username"`
	Author    string             `bson:"author"`
	Text      string             `bson:"review"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d reviewDocument) toDomain() (domain.Review, error) {
	if d.Target == "" || d.Author == "" || d.Text == "" {
		return domain.Review{}, fmt.Errorf("review %s: %w", d.ID.Hex(), domain.ErrMalformedDocument)
	}
	return domain.Review{
		ID:             d.ID.Hex(),
		TargetUsername: d.Target,
		AuthorUsername: d.Author,
		Text:           d.Text,
		CreatedAt:      d.CreatedAt,
	}, nil
}

// Create appends a review and sets r.ID.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := reviewDocument{
		ID:        primitive.NewObjectID(),
		Target:    rv.TargetUsername,
		Author:    rv.AuthorUsername,
		Text:      rv.Text,
		CreatedAt: rv.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	rv.ID = doc.ID.Hex()
	return nil
}

// ListByTarget returns reviews on target sorted by created_at descending.
func (r *ReviewRepository) ListByTarget(ctx context.Context, target string) ([]domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, reviewsByTargetFilter(target), newestFirst())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	var docs []reviewDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list reviews: decode: %w", err)
	}

	reviews := make([]domain.Review, 0, len(docs))
	for _, d := range docs {
		rv, err := d.toDomain()
		if err != nil {
			continue
		}
		reviews = append(reviews, rv)
	}
	return reviews, nil
}

// EnsureIndexes creates the index backing ListByTarget.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_username", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func reviewsByTargetFilter(target string) bson.M {
	return bson.M{"user_username": target}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}
