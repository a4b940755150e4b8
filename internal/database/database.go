package database

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Gateway owns the process-wide MongoDB client and the application database.
// The client is safe for concurrent use; it is created once in main and passed
// to the store.
type Gateway struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, dbName string) (*Gateway, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}

	// Ping the primary
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "pinging mongo")
	}

	log.Printf("Successfully connected to MongoDB (%s)!", dbName)
	return &Gateway{client: client, db: client.Database(dbName)}, nil
}

func (g *Gateway) Database() *mongo.Database {
	return g.db
}

func (g *Gateway) Collection(name string) *mongo.Collection {
	return g.db.Collection(name)
}

func (g *Gateway) Disconnect(ctx context.Context) error {
	return g.client.Disconnect(ctx)
}
