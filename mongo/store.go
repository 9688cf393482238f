// Package mongo provides a MongoDB-backed biomark.RecordStore.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/biomark"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Defaults for the database and collection records are inserted into.
const (
	DefaultDatabase   = "Biomarkers"
	DefaultCollection = "Protein Biomarkers"
)

// DefaultConnectTimeout bounds server selection and disconnect.
const DefaultConnectTimeout = 10 * time.Second

// Ensure RecordStore implements biomark.RecordStore at compile time.
var _ biomark.RecordStore = (*RecordStore)(nil)

// RecordStore inserts records as documents into a MongoDB collection.
type RecordStore struct {
	uri        string
	database   string
	collection string
	timeout    time.Duration

	client *mongo.Client
	coll   *mongo.Collection
}

// Option configures a RecordStore.
type Option func(*RecordStore)

// WithDatabase sets the database name.
func WithDatabase(name string) Option {
	return func(s *RecordStore) {
		s.database = name
	}
}

// WithCollection sets the collection name.
func WithCollection(name string) Option {
	return func(s *RecordStore) {
		s.collection = name
	}
}

// WithConnectTimeout sets the disconnect timeout and the server selection
// timeout used when the URI does not set one.
func WithConnectTimeout(d time.Duration) Option {
	return func(s *RecordStore) {
		s.timeout = d
	}
}

// NewRecordStore creates a new RecordStore for the given connection string.
func NewRecordStore(uri string, opts ...Option) *RecordStore {
	s := &RecordStore{
		uri:        uri,
		database:   DefaultDatabase,
		collection: DefaultCollection,
		timeout:    DefaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates the client. The driver connects lazily, so an unreachable
// server is not an error here; each insert fails on its own instead.
// A serverSelectionTimeoutMS in the URI wins over the configured timeout.
func (s *RecordStore) Open(ctx context.Context) error {
	opts := options.Client().ApplyURI(s.uri)
	if opts.ServerSelectionTimeout == nil {
		opts.SetServerSelectionTimeout(s.timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	s.client = client
	s.coll = client.Database(s.database).Collection(s.collection)
	return nil
}

// Ping checks that the primary is reachable.
// Returns EUNAVAILABLE if it is not.
func (s *RecordStore) Ping(ctx context.Context) error {
	if s.client == nil {
		return biomark.Errorf(biomark.EINTERNAL, "mongodb store not open")
	}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return biomark.Errorf(biomark.EUNAVAILABLE, "mongodb unreachable: %v", err)
	}
	return nil
}

// Close disconnects the client.
func (s *RecordStore) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// InsertRecord inserts the record's fields as one document.
// ID is set to the generated ObjectID in hex and CreatedAt to the insert time.
func (s *RecordStore) InsertRecord(ctx context.Context, rec *biomark.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if s.coll == nil {
		return biomark.Errorf(biomark.EINTERNAL, "mongodb store not open")
	}

	res, err := s.coll.InsertOne(ctx, rec.Fields)
	if err != nil {
		return biomark.Errorf(biomark.EUNAVAILABLE, "insert into %s.%s: %v", s.database, s.collection, err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid.Hex()
	}
	rec.CreatedAt = time.Now().UTC()
	return nil
}
