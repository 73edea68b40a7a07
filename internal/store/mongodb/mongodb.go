// ABOUTME: MongoDB-backed todo store, the reference document store.
// ABOUTME: Find-and-modify keeps writes atomic; a counter document orders listings.

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harper/todo/internal/config"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	disconnectTimeout = 10 * time.Second

	// CountersCollection holds one insertion counter per todo collection.
	CountersCollection = "counters"
)

func init() {
	store.Register(config.BackendMongo, func(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
		return Connect(ctx, cfg.Mongo)
	})
}

// document represents a todo stored in a mongo collection.
type document struct {
	ID         primitive.ObjectID `bson:"_id"`
	TextBody   string             `bson:"textBody"`
	IsComplete bool               `bson:"isComplete"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
	Seq        int64              `bson:"seq"`
}

func (d *document) toModel() *models.Todo {
	return &models.Todo{
		ID:         d.ID.Hex(),
		TextBody:   d.TextBody,
		IsComplete: d.IsComplete,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

func fromModel(t *models.Todo) (*document, error) {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return nil, fmt.Errorf("parse todo ID: %w", err)
	}
	return &document{
		ID:         oid,
		TextBody:   t.TextBody,
		IsComplete: t.IsComplete,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}, nil
}

// Store implements store.Store on a mongo collection.
type Store struct {
	client   *mongo.Client
	coll     *mongo.Collection
	counters *mongo.Collection
}

// Connect dials mongo and verifies the connection with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return New(client, client.Database(cfg.Database).Collection(cfg.Collection)), nil
}

// New wraps an existing client and collection. Counters live in the same database.
func New(client *mongo.Client, coll *mongo.Collection) *Store {
	return &Store{
		client:   client,
		coll:     coll,
		counters: coll.Database().Collection(CountersCollection),
	}
}

// now returns the current time at the millisecond precision mongo stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *Store) Insert(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	stored := todo.Clone()
	stored.Stamp()
	stored.CreatedAt = stored.CreatedAt.Truncate(time.Millisecond)
	stored.UpdatedAt = stored.CreatedAt

	doc, err := fromModel(stored)
	if err != nil {
		return nil, err
	}
	if doc.Seq, err = s.nextSeq(ctx); err != nil {
		return nil, err
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return stored, nil
}

// FindAll lists todos by insertion counter. ObjectIDs only sort by creation
// within one process.
func (s *Store) FindAll(ctx context.Context) ([]*models.Todo, error) {
	order := bson.D{{Key: "seq", Value: 1}, {Key: "_id", Value: 1}}
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(order))
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}

	todos := make([]*models.Todo, 0, len(docs))
	for i := range docs {
		todos = append(todos, docs[i].toModel())
	}
	return todos, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	filter, ok := byID(id)
	if !ok {
		return nil, store.ErrNotFound
	}

	var doc document
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

func (s *Store) UpdateByID(ctx context.Context, id string, patch store.Patch) (*models.Todo, error) {
	filter, ok := byID(id)
	if !ok {
		return nil, store.ErrNotFound
	}

	// Pipeline form so updatedAt can be kept strictly increasing at millisecond precision.
	set := bson.D{{Key: "updatedAt", Value: bson.D{{Key: "$max", Value: bson.A{
		now(),
		bson.D{{Key: "$add", Value: bson.A{"$updatedAt", 1}}},
	}}}}}
	if patch.TextBody != nil {
		set = append(set, bson.E{Key: "textBody", Value: bson.D{{Key: "$literal", Value: *patch.TextBody}}})
	}
	if patch.IsComplete != nil {
		set = append(set, bson.E{Key: "isComplete", Value: *patch.IsComplete})
	}
	update := mongo.Pipeline{{{Key: "$set", Value: set}}}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetUpsert(false)

	var doc document
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) (*models.Todo, error) {
	filter, ok := byID(id)
	if !ok {
		return nil, store.ErrNotFound
	}

	var doc document
	if err := s.coll.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// nextSeq atomically increments this collection's counter and returns the new value.
func (s *Store) nextSeq(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	filter := bson.M{"_id": s.coll.Name()}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	if err := s.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return counter.Seq, nil
}

// byID builds an _id filter. A malformed id can match nothing.
func byID(id string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid}, true
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
