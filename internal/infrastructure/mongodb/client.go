package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sabrinaansede/apphib/pkg/logger"
)

const (
	UsersCollection   = "usuarios"
	PlacesCollection  = "lugares"
	ReviewsCollection = "resenas"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the client and verifies the server answers a ping.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("empty connection string")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("Conexión con la DB correcta (database=%s)", dbName)

	return &Store{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) Name() string {
	return "mongo"
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique email index; registration relies on it under concurrency.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	_, err = s.db.Collection(ReviewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "lugar", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create review index: %w", err)
	}

	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
