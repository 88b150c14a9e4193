package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	mongodriveropts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unlistededge/voicegate/internal/model"
	mongoopts "github.com/unlistededge/voicegate/pkg/options/mongo"
)

// LeadStore archives leads captured during calls.
type LeadStore interface {
	// Save persists a lead record.
	Save(ctx context.Context, lead *model.LeadRecord) error
	// Close releases resources.
	Close(ctx context.Context) error
}

// NoopLeadStore discards leads. Used when no archive is configured.
type NoopLeadStore struct{}

// Save discards the lead.
func (NoopLeadStore) Save(_ context.Context, _ *model.LeadRecord) error {
	return nil
}

// Close is a no-op.
func (NoopLeadStore) Close(_ context.Context) error {
	return nil
}

// MongoLeadStore archives leads in a MongoDB collection.
type MongoLeadStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	opts   *mongoopts.Options
}

// NewMongoLeadStore connects to MongoDB and verifies the connection.
func NewMongoLeadStore(ctx context.Context, opts *mongoopts.Options) (*MongoLeadStore, error) {
	connCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connCtx, mongodriveropts.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connCtx, nil); err != nil {
		_ = client.Disconnect(connCtx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoLeadStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
		opts:   opts,
	}, nil
}

// Save inserts the lead record.
func (s *MongoLeadStore) Save(ctx context.Context, lead *model.LeadRecord) error {
	opCtx, cancel := context.WithTimeout(ctx, s.opts.OperationTimeout)
	defer cancel()

	if _, err := s.coll.InsertOne(opCtx, lead); err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoLeadStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var (
	_ LeadStore = (*NoopLeadStore)(nil)
	_ LeadStore = (*MongoLeadStore)(nil)
)
