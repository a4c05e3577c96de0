package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

// projectDocument stores the owner under "client".
type projectDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Owner       string             `bson:"client"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d projectDocument) toDomain() (domain.Project, error) {
	if d.Title == "" || d.Owner == "" {
		return domain.Project{}, fmt.Errorf("project %s: %w", d.ID.Hex(), domain.ErrMalformedDocument)
	}
	return domain.Project{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Description:   d.Description,
		OwnerUsername: d.Owner,
		CreatedAt:     d.CreatedAt,
	}, nil
}

// Create inserts a project and sets p.ID.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := projectDocument{
		ID:          primitive.NewObjectID(),
		Title:       p.Title,
		Description: p.Description,
		Owner:       p.OwnerUsername,
		CreatedAt:   p.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

// List returns all projects in natural order, skipping malformed documents.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var docs []projectDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list projects: decode: %w", err)
	}

	projects := make([]domain.Project, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}
