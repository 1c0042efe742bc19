package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"votebot-api/domain"
)

// inserter is the slice of mongo.Collection the store uses, split out so
// tests can substitute a fake.
type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// Storage persists committed polls in MongoDB. Polls are create-only:
// nothing in this service updates or deletes a record after commit.
type Storage struct {
	client *mongo.Client
	votes  inserter
}

// New connects to MongoDB and returns a Storage writing to the given
// database and collection.
func New(ctx context.Context, uri, database, collection string) (*Storage, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Storage{
		client: client,
		votes:  client.Database(database).Collection(collection),
	}, nil
}

type voteDocument struct {
	Title       string              `bson:"title"`
	Description string              `bson:"description,omitempty"`
	UserID      string              `bson:"userId"`
	Options     []domain.PollOption `bson:"options"`
	DueDate     time.Time           `bson:"dueDate"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

// CreatePollRecord inserts the record with creation timestamps. The
// option indexes were assigned by the caller and are stored as given.
func (s *Storage) CreatePollRecord(ctx context.Context, rec domain.PollRecord) error {
	now := time.Now().UTC()
	doc := voteDocument{
		Title:       rec.Title,
		Description: rec.Description,
		UserID:      rec.AuthorID,
		Options:     rec.Options,
		DueDate:     rec.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.votes.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert poll record: %w", err)
	}
	return nil
}

// Ping reports whether the backing database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the underlying client.
func (s *Storage) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
