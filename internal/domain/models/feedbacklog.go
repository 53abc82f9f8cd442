// internal/domain/models/feedbacklog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SummarizedFeedbackLog records one feedback submission together with the
// AI-produced summary. UserID is nil for unattributed submissions (guests
// may submit feedback without attaching their identity). Logs are
// append-only; no client may update or delete one.
type SummarizedFeedbackLog struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OriginalFeedbackText string             `bson:"originalFeedbackText" json:"originalFeedbackText"`
	SummaryText          string             `bson:"summaryText" json:"summaryText"`
	UserID               *string            `bson:"userId" json:"userId"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}
