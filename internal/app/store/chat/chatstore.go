// internal/app/store/chat/chatstore.go
//
// Chat messages are immutable once written. Every message passes through
// the moderator before it is stored; when the moderator is unreachable
// the post fails rather than letting the raw text through.
package chatstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/feedbacksapp/feedbacks/internal/ai"
	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrEmptyMessage = errors.New("chat message is empty")

type Store struct {
	c         *mongo.Collection
	engine    *accesspolicy.Engine
	moderator ai.Moderator
}

func New(db *mongo.Database, engine *accesspolicy.Engine, moderator ai.Moderator) *Store {
	return &Store{c: db.Collection("chatMessages"), engine: engine, moderator: moderator}
}

// Post moderates and stores one message from p. The stored text is always
// the moderator's output; the caller never controls the persisted text
// directly. A moderation failure aborts the post.
func (s *Store) Post(ctx context.Context, p accesspolicy.Principal, userName, text string) (models.ChatMessage, error) {
	verdict, err := s.moderator.Moderate(ctx, text)
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("moderation: %w", err)
	}
	if verdict.ModeratedText == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	msg := models.ChatMessage{
		ID:          primitive.NewObjectID(),
		UserID:      p.ID,
		UserName:    userName,
		Text:        verdict.ModeratedText,
		IsModerated: !verdict.IsAppropriate,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpCreate,
		Collection: accesspolicy.ChatMessages,
		Incoming: accesspolicy.Document{
			"userId":      msg.UserID,
			"userName":    msg.UserName,
			"text":        msg.Text,
			"isModerated": msg.IsModerated,
		},
	}); err != nil {
		return models.ChatMessage{}, err
	}

	if _, err := s.c.InsertOne(ctx, msg); err != nil {
		return models.ChatMessage{}, err
	}
	return msg, nil
}

// List returns the chat history oldest-first, up to limit (0 means no cap).
func (s *Store) List(ctx context.Context, p accesspolicy.Principal, limit int64) ([]models.ChatMessage, error) {
	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpList,
		Collection: accesspolicy.ChatMessages,
	}); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	msgs := []models.ChatMessage{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Subscribe authorizes p, opens a change stream on inserts, and returns
// a channel of newly stored messages. The error covers authorization and
// stream setup, so a denial is known before any message flows. The
// channel closes when ctx is canceled or the stream ends. Requires a
// replica-set deployment (change streams).
func (s *Store) Subscribe(ctx context.Context, p accesspolicy.Principal) (<-chan models.ChatMessage, error) {
	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpList,
		Collection: accesspolicy.ChatMessages,
	}); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"operationType": "insert"}}},
	}
	stream, err := s.c.Watch(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	out := make(chan models.ChatMessage, 16)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var ev struct {
				FullDocument models.ChatMessage `bson:"fullDocument"`
			}
			if err := stream.Decode(&ev); err != nil {
				continue
			}
			select {
			case out <- ev.FullDocument:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
