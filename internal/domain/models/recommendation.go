// internal/domain/models/recommendation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recommendation is a public professional recommendation.
//
// UserName and UserSector are denormalized snapshots of the author's
// profile taken at post time. They are intentionally not kept in sync with
// later profile edits.
type Recommendation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	UserName   string             `bson:"userName" json:"userName"`
	UserSector *string            `bson:"userSector" json:"userSector"`
	Text       string             `bson:"text" json:"text"`
	Sector     string             `bson:"sector" json:"sector"` // required, member of the sector set
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
