package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user profile document keyed by the account ID.
func (f *Fixtures) CreateUser(ctx context.Context, id, name, email string, sector *string) models.User {
	f.t.Helper()

	user := models.User{
		ID:                 id,
		Name:               name,
		Email:              email,
		ProfessionalSector: sector,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateRecommendation inserts a recommendation authored by the given user.
func (f *Fixtures) CreateRecommendation(ctx context.Context, userID, userName, text, sector string) models.Recommendation {
	f.t.Helper()

	rec := models.Recommendation{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		Sector:    sector,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("recommendations").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create test recommendation: %v", err)
	}
	return rec
}

// CreateChatMessage inserts an already-moderated chat message.
func (f *Fixtures) CreateChatMessage(ctx context.Context, userID, userName, text string, isModerated bool) models.ChatMessage {
	f.t.Helper()

	msg := models.ChatMessage{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		UserName:    userName,
		Text:        text,
		IsModerated: isModerated,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("chatMessages").InsertOne(ctx, msg); err != nil {
		f.t.Fatalf("failed to create test chat message: %v", err)
	}
	return msg
}

// CreateFeedbackLog inserts a summarized feedback log entry.
func (f *Fixtures) CreateFeedbackLog(ctx context.Context, original, summary string, userID *string) models.SummarizedFeedbackLog {
	f.t.Helper()

	entry := models.SummarizedFeedbackLog{
		ID:                   primitive.NewObjectID(),
		OriginalFeedbackText: original,
		SummaryText:          summary,
		UserID:               userID,
		CreatedAt:            time.Now().UTC(),
	}
	if _, err := f.db.Collection("summarizedFeedbackLogs").InsertOne(ctx, entry); err != nil {
		f.t.Fatalf("failed to create test feedback log: %v", err)
	}
	return entry
}
