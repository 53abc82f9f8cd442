// internal/app/store/users/userstore.go
//
// Profile documents live in the "users" collection keyed by the account
// ID. Every operation takes the caller's principal and consults the
// access policy before touching the database.
package userstore

import (
	"context"
	"errors"

	"github.com/feedbacksapp/feedbacks/internal/app/policy/accesspolicy"
	"github.com/feedbacksapp/feedbacks/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user profile already exists")
)

type Store struct {
	c      *mongo.Collection
	engine *accesspolicy.Engine
}

func New(db *mongo.Database, engine *accesspolicy.Engine) *Store {
	return &Store{c: db.Collection("users"), engine: engine}
}

// Get loads the profile with the given ID on behalf of p.
func (s *Store) Get(ctx context.Context, p accesspolicy.Principal, id string) (models.User, error) {
	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpRead,
		Collection: accesspolicy.Users,
		DocID:      id,
	}); err != nil {
		return models.User{}, err
	}

	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Create inserts a new profile document for p.
func (s *Store) Create(ctx context.Context, p accesspolicy.Principal, u models.User) (models.User, error) {
	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpCreate,
		Collection: accesspolicy.Users,
		DocID:      u.ID,
		Incoming:   docFromUser(u),
	}); err != nil {
		return models.User{}, err
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrAlreadyExists
		}
		return models.User{}, err
	}
	return u, nil
}

// Update applies a sparse patch to an existing profile. Only the keys
// present in the patch are written; absent fields keep their stored
// values, matching the save-with-merge behavior of the profile screen.
func (s *Store) Update(ctx context.Context, p accesspolicy.Principal, id string, patch map[string]any) error {
	var existing models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.engine.Authorize(accesspolicy.Request{
		Principal:  p,
		Operation:  accesspolicy.OpUpdate,
		Collection: accesspolicy.Users,
		DocID:      id,
		Existing:   docFromUser(existing),
		Incoming:   accesspolicy.Document(patch),
	}); err != nil {
		return err
	}

	set := bson.M{}
	for k, v := range patch {
		set[k] = v
	}
	if len(set) == 0 {
		return nil
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}, options.Update())
	return err
}

// Upsert creates the profile when missing and merges the patch when it
// exists, on behalf of p.
func (s *Store) Upsert(ctx context.Context, p accesspolicy.Principal, u models.User) (models.User, error) {
	created, err := s.Create(ctx, p, u)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, ErrAlreadyExists) {
		return models.User{}, err
	}

	patch := map[string]any{
		"name":               u.Name,
		"email":              u.Email,
		"professionalSector": sectorValue(u.ProfessionalSector),
	}
	if err := s.Update(ctx, p, u.ID, patch); err != nil {
		return models.User{}, err
	}
	return s.Get(ctx, p, u.ID)
}

func docFromUser(u models.User) accesspolicy.Document {
	return accesspolicy.Document{
		"name":               u.Name,
		"email":              u.Email,
		"professionalSector": sectorValue(u.ProfessionalSector),
	}
}

func sectorValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
