// internal/app/store/recommendations/recommendationstore.go
package recommendationstore

import (
	"context"
	"errors"
	"time"

	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("recommendation not found")

type Store struct {
	c      *mongo.Collection
	engine *accesspolicy.Engine
}

func New(db *mongo.Database, engine *accesspolicy.Engine) *Store {
	return &Store{c: db.Collection("recommendations"), engine: engine}
}

// Create inserts a recommendation authored by p. The ID and CreatedAt
// are assigned here; the author snapshot fields (userName, userSector)
// come in on rec as captured by the caller.
func (s *Store) Create(ctx context.Context, p accesspolicy.Principal, rec models.Recommendation) (models.Recommendation, error) {
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()

	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpCreate,
		Collection: accesspolicy.Recommendations,
		Incoming:   docFromRecommendation(rec),
	}); err != nil {
		return models.Recommendation{}, err
	}

	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return models.Recommendation{}, err
	}
	return rec, nil
}

// Get loads one recommendation. Reads are public, so any principal
// (including an unauthenticated one) passes the policy check.
func (s *Store) Get(ctx context.Context, p accesspolicy.Principal, id primitive.ObjectID) (models.Recommendation, error) {
	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpRead,
		Collection: accesspolicy.Recommendations,
		DocID:      id.Hex(),
	}); err != nil {
		return models.Recommendation{}, err
	}

	var rec models.Recommendation
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Recommendation{}, ErrNotFound
	}
	if err != nil {
		return models.Recommendation{}, err
	}
	return rec, nil
}

// List returns recommendations newest-first, up to limit (0 means no cap).
func (s *Store) List(ctx context.Context, p accesspolicy.Principal, limit int64) ([]models.Recommendation, error) {
	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpList,
		Collection: accesspolicy.Recommendations,
	}); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	recs := []models.Recommendation{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Update applies a sparse patch to a recommendation owned by p. The
// policy rejects patches that change the author reference.
func (s *Store) Update(ctx context.Context, p accesspolicy.Principal, id primitive.ObjectID, patch map[string]any) (models.Recommendation, error) {
	var existing models.Recommendation
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Recommendation{}, ErrNotFound
	}
	if err != nil {
		return models.Recommendation{}, err
	}

	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpUpdate,
		Collection: accesspolicy.Recommendations,
		DocID:      id.Hex(),
		Existing:   docFromRecommendation(existing),
		Incoming:   accesspolicy.Document(patch),
	}); err != nil {
		return models.Recommendation{}, err
	}

	if len(patch) > 0 {
		set := bson.M{}
		for k, v := range patch {
			set[k] = v
		}
		if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			return models.Recommendation{}, err
		}
	}

	var updated models.Recommendation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		return models.Recommendation{}, err
	}
	return updated, nil
}

func docFromRecommendation(rec models.Recommendation) accesspolicy.Document {
	doc := accesspolicy.Document{
		"userId":   rec.UserID,
		"userName": rec.UserName,
		"text":     rec.Text,
		"sector":   rec.Sector,
	}
	if rec.UserSector == nil {
		doc["userSector"] = nil
	} else {
		doc["userSector"] = *rec.UserSector
	}
	return doc
}
