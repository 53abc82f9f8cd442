// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the four collections (if missing) and tries to attach
// JSON-Schema validators as a second line of defense behind the access
// policy's entity catalog. On servers that don't support collMod/validators
// (e.g. some DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("recommendations", recommendationsSchema())
	ensure("chatMessages", chatMessagesSchema())
	ensure("summarizedFeedbackLogs", feedbackLogsSchema())

	// Auth accounts back the authentication subsystem; they are never
	// reachable through the client data-access path, so no schema beyond
	// existence.
	ensure("authAccounts", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists. Uses
// ListCollectionNames to avoid a misleading "created collection" log.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func sectorEnum() bson.A {
	vals := bson.A{}
	for _, s := range models.SectorStrings() {
		vals = append(vals, s)
	}
	return vals
}

func nullableSectorEnum() bson.A {
	return append(sectorEnum(), nil)
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"_id", "name", "email"},
			"properties": bson.M{
				"_id":                bson.M{"bsonType": "string", "minLength": 1},
				"name":               bson.M{"bsonType": "string"},
				"email":              bson.M{"bsonType": "string", "pattern": `^[^@\s]+@[^@\s]+\.[^@\s]+$`},
				"professionalSector": bson.M{"enum": nullableSectorEnum()},
			},
		},
	}
}

func recommendationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"userId", "userName", "text", "sector", "createdAt"},
			"properties": bson.M{
				"userId":     bson.M{"bsonType": "string", "minLength": 1},
				"userName":   bson.M{"bsonType": "string"},
				"userSector": bson.M{"enum": nullableSectorEnum()},
				"text":       bson.M{"bsonType": "string"},
				"sector":     bson.M{"enum": sectorEnum()},
				"createdAt":  bson.M{"bsonType": "date"},
			},
		},
	}
}

func chatMessagesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"userId", "userName", "text", "isModerated", "createdAt"},
			"properties": bson.M{
				"userId":      bson.M{"bsonType": "string", "minLength": 1},
				"userName":    bson.M{"bsonType": "string"},
				"text":        bson.M{"bsonType": "string"},
				"isModerated": bson.M{"bsonType": "bool"},
				"createdAt":   bson.M{"bsonType": "date"},
			},
		},
	}
}

func feedbackLogsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"originalFeedbackText", "summaryText", "createdAt"},
			"properties": bson.M{
				"originalFeedbackText": bson.M{"bsonType": "string", "minLength": 1},
				"summaryText":          bson.M{"bsonType": "string"},
				"userId":               bson.M{"bsonType": bson.A{"string", "null"}},
				"createdAt":            bson.M{"bsonType": "date"},
			},
		},
	}
}
