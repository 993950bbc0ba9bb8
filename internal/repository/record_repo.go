package repository

import (
	"bemanai/internal/model"
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultListLimit caps record listings when the caller asks for none.
const DefaultListLimit = 20

// RecordRepo handles MongoDB operations for archived analyses
type RecordRepo interface {
	Insert(ctx context.Context, rec *model.AnalysisRecord) error
	GetByID(ctx context.Context, id string) (*model.AnalysisRecord, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]model.AnalysisRecord, error)
}

type recordRepo struct {
	collection *mongo.Collection
}

// NewRecordRepo creates a new record repository with indexes
func NewRecordRepo(db *mongo.Database) RecordRepo {
	repo := &recordRepo{
		collection: db.Collection("analysis_records"),
	}

	repo.ensureIndexes(context.Background())

	return repo
}

func (r *recordRepo) ensureIndexes(ctx context.Context) {
	r.createIndex(ctx, bson.D{
		{Key: "userId", Value: 1},
		{Key: "createdAt", Value: -1},
	}, false)
	r.createIndex(ctx, bson.D{{Key: "kind", Value: 1}}, false)

	log.Println("record indexes ensured")
}

func (r *recordRepo) createIndex(ctx context.Context, keys bson.D, unique bool) {
	opts := options.Index().SetUnique(unique)
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
	if err != nil {
		log.Printf("Warning: failed to create index on %s: %v", r.collection.Name(), err)
	}
}

func (r *recordRepo) Insert(ctx context.Context, rec *model.AnalysisRecord) error {
	_, err := r.collection.InsertOne(ctx, rec)
	return err
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	var rec model.AnalysisRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.AnalysisRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(ListLimit(limit)))
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []model.AnalysisRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// ListLimit clamps a requested listing size to [1, 100].
func ListLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > 100:
		return 100
	}
	return limit
}
