package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

// finalDocument is the stored shape of a Final. The store-assigned _id is never exposed.
type finalDocument struct {
	Year     int    `bson:"year"`
	Champion string `bson:"champion"`
	RunnerUp string `bson:"runner_up"`
	Score    string `bson:"score"`
	Sets     int    `bson:"sets"`
	Tiebreak bool   `bson:"tiebreak"`
}

func toDocument(f final.Final) finalDocument {
	return finalDocument{
		Year:     f.Year,
		Champion: f.Champion,
		RunnerUp: f.RunnerUp,
		Score:    f.Score,
		Sets:     f.Sets,
		Tiebreak: f.Tiebreak,
	}
}

func (d finalDocument) toFinal() final.Final {
	return final.Final{
		Year:     d.Year,
		Champion: d.Champion,
		RunnerUp: d.RunnerUp,
		Score:    d.Score,
		Sets:     d.Sets,
		Tiebreak: d.Tiebreak,
	}.Normalize()
}

// collection is the subset of *mongo.Collection used for record reads and writes
type collection interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	docs   collection
}

// NewMongo connects to uri and selects database.collection, falling back to
// DefaultDatabase and DefaultCollection when either is empty.
func NewMongo(ctx context.Context, uri, database, coll string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if coll == "" {
		coll = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, persistErr("open", 0, err, "mongo: connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background()) //nolint:errcheck
		return nil, persistErr("open", 0, err, "mongo: ping")
	}

	c := client.Database(database).Collection(coll)
	return &MongoStore{client: client, coll: c, docs: c}, nil
}

// Migrate ensures the unique index on year.
func (s *MongoStore) Migrate(ctx context.Context) error {
	if s.coll == nil {
		return nil
	}
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "year", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("year_unique"),
	})
	if err != nil {
		return persistErr("migrate", 0, err, "mongo: create year index")
	}
	return nil
}

func (s *MongoStore) Upsert(ctx context.Context, f final.Final) error {
	_, err := s.docs.UpdateOne(ctx,
		bson.M{"year": f.Year},
		bson.M{"$set": toDocument(f)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return persistErr("upsert", f.Year, err, "mongo: upsert final")
	}
	return nil
}

func (s *MongoStore) GetByYear(ctx context.Context, year int) (final.Final, error) {
	var doc finalDocument
	err := s.docs.FindOne(ctx,
		bson.M{"year": year},
		options.FindOne().SetProjection(bson.M{"_id": 0}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return final.Final{}, ErrNotFound
	}
	if err != nil {
		return final.Final{}, persistErr("get", year, err, "mongo: get final")
	}
	return doc.toFinal(), nil
}

func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(context.Background()); err != nil {
		return persistErr("close", 0, err, "mongo: disconnect")
	}
	return nil
}
