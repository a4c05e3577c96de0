package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// userDocument is the stored shape of a user. The password hash lives under
// "password" to stay readable by older deployments.
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password"`
	Role         string             `bson:"role"`
	Skills       string             `bson:"skills"`
	CreatedAt    time.Time          `bson:"created_at,omitempty"`
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		ID:           primitive.NewObjectID(),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
		Skills:       u.Skills,
		CreatedAt:    u.CreatedAt,
	}
}

func (d userDocument) toDomain() (domain.User, error) {
	if d.Username == "" {
		return domain.User{}, fmt.Errorf("user %s: missing username: %w", d.ID.Hex(), domain.ErrMalformedDocument)
	}
	role, err := domain.ParseRole(d.Role)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %s: role %q: %w", d.ID.Hex(), d.Role, domain.ErrMalformedDocument)
	}
	return domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         role,
		Skills:       d.Skills,
		CreatedAt:    d.CreatedAt,
	}, nil
}

// Create inserts a new user document. Without a unique index on username
// this never reports domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newUserDocument(user)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = doc.ID.Hex()
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, usernameFilter(username)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	u, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SearchFreelancers runs a case-insensitive substring match on username and
// skills, restricted to freelancer role labels. Documents that fail
// validation are skipped.
func (r *UserRepository) SearchFreelancers(ctx context.Context, query string) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, freelancerSearchFilter(query))
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("search users: decode: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		u, err := d.toDomain()
		if err != nil {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

const (
	usernameIndexName       = "username_1"
	uniqueUsernameIndexName = "username_unique"
)

// EnsureIndexes indexes username lookups. With unique set, the index also
// closes the check-then-insert race in registration. The index left by the
// other setting is dropped first since both share one key pattern.
func (r *UserRepository) EnsureIndexes(ctx context.Context, unique bool) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.col.Indexes().DropOne(ctx, staleUsernameIndex(unique)); err != nil && !isMissingIndex(err) {
		return fmt.Errorf("drop stale username index: %w", err)
	}
	if _, err := r.col.Indexes().CreateOne(ctx, usernameIndex(unique)); err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

func staleUsernameIndex(unique bool) string {
	if unique {
		return usernameIndexName
	}
	return uniqueUsernameIndexName
}

// isMissingIndex reports the errors DropOne returns when there is nothing to
// drop: NamespaceNotFound (26) and IndexNotFound (27).
func isMissingIndex(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 26 || cmdErr.Code == 27
	}
	return false
}

func usernameIndex(unique bool) mongo.IndexModel {
	opts := options.Index().SetName(usernameIndexName)
	if unique {
		opts = opts.SetName(uniqueUsernameIndexName).SetUnique(true)
	}
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: opts,
	}
}

func usernameFilter(username string) bson.M {
	return bson.M{"username": username}
}

func freelancerSearchFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{
		"role": bson.M{"$in": domain.FreelancerRoleLabels},
		"$or": bson.A{
			bson.M{"username": pattern},
			bson.M{"skills": pattern},
		},
	}
}
