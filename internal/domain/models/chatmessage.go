// internal/domain/models/chatmessage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is a single message in the community chat room.
//
// Text is always the moderation collaborator's output, never the raw user
// input. IsModerated is true when moderation altered the text. Messages are
// fully immutable once written; there is no client update or delete path.
type ChatMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	UserName    string             `bson:"userName" json:"userName"`
	Text        string             `bson:"text" json:"text"`
	IsModerated bool               `bson:"isModerated" json:"isModerated"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
