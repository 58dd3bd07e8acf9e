// Package mongodb provides the user store for the LangSync API.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/riya-sharma-12/LangSync/internal/sdk/models"
	"github.com/riya-sharma-12/LangSync/internal/services/hash"
)

var (
	ErrDBNotFound        = errors.New("document not found")
	ErrDBDuplicatedEntry = errors.New("duplicated entry")
)

const (
	usersCollection = "users"

	connectTimeout = 10 * time.Second

	// opTimeout bounds every store call so a slow database cannot starve
	// request handlers.
	opTimeout = 5 * time.Second
)

// Service represents a service that interacts with the user store.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// Close terminates the database connection.
	Close(ctx context.Context) error

	// GetUserByID retrieves a user by id with the password hash excluded.
	// Used by session resolution; the hash must never ride along on the
	// verification path.
	GetUserByID(ctx context.Context, userID string) (models.User, error)

	// GetUserByEmail retrieves a user by email, password hash included.
	// Only the login path needs the hash.
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	// CreateUser inserts a new user. The plaintext password in nu is hashed
	// here, at the point of entry into the store; duplicate emails fail with
	// ErrDBDuplicatedEntry via the unique index, not an application check.
	CreateUser(ctx context.Context, nu models.NewUser) (models.User, error)

	// UpdateUserProfile applies the onboarding fields and flips the
	// onboarded flag in a single update, returning the updated user.
	UpdateUserProfile(ctx context.Context, userID string, up models.OnboardUser) (models.User, error)
}

type service struct {
	client *mongo.Client
	users  *mongo.Collection
	hash   *hash.HashService
}

// New connects to MongoDB and ensures the unique email index. Concurrent
// signups with the same email race between check and insert; the index is
// what makes uniqueness hold.
func New(ctx context.Context, hs *hash.HashService) (Service, error) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	database := os.Getenv("MONGODB_DATABASE")
	if database == "" {
		database = "langsync"
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	users := client.Database(database).Collection(usersCollection)

	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("creating email index: %w", err)
	}

	return &service{
		client: client,
		users:  users,
		hash:   hs,
	}, nil
}

// Health checks the database connection by pinging the primary.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	return stats
}

// Close disconnects from the database.
func (s *service) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ---------------------------------------------
// Store operations
// ---------------------------------------------

func (s *service) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, ErrDBNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"password": 0})

	var user models.User
	err = s.users.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrDBNotFound
		}
		return models.User{}, fmt.Errorf("selecting user: %w", err)
	}

	return user, nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrDBNotFound
		}
		return models.User{}, fmt.Errorf("selecting user by email: %w", err)
	}

	return user, nil
}

func (s *service) CreateUser(ctx context.Context, nu models.NewUser) (models.User, error) {
	user, err := newUserDocument(nu, s.hash)
	if err != nil {
		return models.User{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDBDuplicatedEntry
		}
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *service) UpdateUserProfile(ctx context.Context, userID string, up models.OnboardUser) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, ErrDBNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"fullName":         up.FullName,
		"bio":              up.Bio,
		"nativeLanguage":   up.NativeLanguage,
		"learningLanguage": up.LearningLanguage,
		"location":         up.Location,
		"isOnboarded":      true,
		"updatedAt":        time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})

	var user models.User
	err = s.users.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrDBNotFound
		}
		return models.User{}, fmt.Errorf("updating user profile: %w", err)
	}

	return user, nil
}

// newUserDocument builds the document persisted for a new user. The
// plaintext password is replaced with its bcrypt hash here; nothing past
// this point ever sees the plaintext.
func newUserDocument(nu models.NewUser, hs *hash.HashService) (models.User, error) {
	hashed, err := hs.HashPassword(nu.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	return models.User{
		ID:         primitive.NewObjectID(),
		FullName:   nu.FullName,
		Email:      nu.Email,
		Password:   hashed,
		ProfilePic: nu.ProfilePic,
		Friends:    []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
