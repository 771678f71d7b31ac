package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	domainErrors "github.com/polkiloo/profilecard/internal/domain/errors"
	"github.com/polkiloo/profilecard/internal/domain/model"
	"github.com/polkiloo/profilecard/internal/domain/repository"
)

const (
	usersCollection = "users"
	emailIndexName  = "email_unique"
)

// collection is the subset of *mongo.Collection used by the user repository.
type collection interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
}

// Storage is a MongoDB backed repository factory.
type Storage struct {
	client *mongo.Client
	users  collection
	logger *slog.Logger
}

type userRepository struct {
	users collection
	now   func() time.Time
}

// userDocument is the persisted shape of a user account.
type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	Filename     string        `bson:"filename"`
	PublicID     string        `bson:"public_id"`
	ImageURL     string        `bson:"imgUrl"`
	CreatedAt    time.Time     `bson:"created_at"`
}

// New connects to MongoDB and ensures the unique email index exists.
func New(ctx context.Context, uri, database string, logger *slog.Logger) (*Storage, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	users := client.Database(database).Collection(usersCollection)
	if err := ensureIndexes(ctx, users); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("connected to mongodb", slog.String("database", database))
	return &Storage{client: client, users: users, logger: logger}, nil
}

func ensureIndexes(ctx context.Context, users *mongo.Collection) error {
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(emailIndexName),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// Users returns the user account repository.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{users: s.users, now: time.Now}
}

// Ping checks connectivity with the primary.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Storage) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	doc := toDocument(user)
	doc.ID = bson.NewObjectID()
	doc.CreatedAt = r.now().UTC().Truncate(time.Millisecond)

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

func toDocument(u *model.User) userDocument {
	doc := userDocument{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Filename:     u.Filename,
		PublicID:     u.PublicID,
		ImageURL:     u.ImageURL,
		CreatedAt:    u.CreatedAt,
	}
	if id, err := bson.ObjectIDFromHex(u.ID); err == nil {
		doc.ID = id
	}
	return doc
}

func fromDocument(doc userDocument) *model.User {
	u := &model.User{
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Filename:     doc.Filename,
		PublicID:     doc.PublicID,
		ImageURL:     doc.ImageURL,
		CreatedAt:    doc.CreatedAt,
	}
	if !doc.ID.IsZero() {
		u.ID = doc.ID.Hex()
	}
	return u
}
