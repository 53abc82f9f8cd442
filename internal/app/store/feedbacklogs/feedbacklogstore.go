// internal/app/store/feedbacklogs/feedbacklogstore.go
package feedbacklogstore

import (
	"context"
	"time"

	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c      *mongo.Collection
	engine *accesspolicy.Engine
}

func New(db *mongo.Database, engine *accesspolicy.Engine) *Store {
	return &Store{c: db.Collection("summarizedFeedbackLogs"), engine: engine}
}

// Create records one summarized feedback entry on behalf of p. Guests
// may write here; userID is an unverified reference and may be nil.
func (s *Store) Create(ctx context.Context, p accesspolicy.Principal, original, summary string, userID *string) (models.SummarizedFeedbackLog, error) {
	entry := models.SummarizedFeedbackLog{
		ID:                   primitive.NewObjectID(),
		OriginalFeedbackText: original,
		SummaryText:          summary,
		UserID:               userID,
		CreatedAt:            time.Now().UTC(),
	}

	doc := accesspolicy.Document{
		"originalFeedbackText": entry.OriginalFeedbackText,
		"summaryText":          entry.SummaryText,
	}
	if entry.UserID == nil {
		doc["userId"] = nil
	} else {
		doc["userId"] = *entry.UserID
	}

	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpCreate,
		Collection: accesspolicy.FeedbackLogs,
		Incoming:   doc,
	}); err != nil {
		return models.SummarizedFeedbackLog{}, err
	}

	if _, err := s.c.InsertOne(ctx, entry); err != nil {
		return models.SummarizedFeedbackLog{}, err
	}
	return entry, nil
}

// List returns feedback logs newest-first, up to limit (0 means no cap).
func (s *Store) List(ctx context.Context, p accesspolicy.Principal, limit int64) ([]models.SummarizedFeedbackLog, error) {
	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpList,
		Collection: accesspolicy.FeedbackLogs,
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

	logs := []models.SummarizedFeedbackLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
