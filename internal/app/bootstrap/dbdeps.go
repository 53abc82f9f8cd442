// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/feedbacksapp/feedbacks/internal/ai"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// AIClient is nil when no API key is configured; dependent features
	// then fail closed.
	AIClient *ai.Client
}
