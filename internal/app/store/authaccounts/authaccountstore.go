// internal/app/store/authaccounts/authaccountstore.go
//
// Auth accounts back the authentication subsystem. They hold credentials
// and are reachable only through the auth handlers, never through the
// client data-access surface, so this store is not policy-gated.
package authaccountstore

import (
	"context"
	"errors"
	"time"

	"github.com/feedbacksapp/feedbacks/internal/app/system/normalize"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("an account with this email already exists")
)

// Account is one credential record. Guests have no account; they exist
// only as session principals.
type Account struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("authAccounts")}
}

// Create registers a new account. The email is normalized before storage
// so lookups are case-insensitive.
func (s *Store) Create(ctx context.Context, email, passwordHash string) (Account, error) {
	acct := Account{
		ID:           uuid.NewString(),
		Email:        normalize.Email(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, acct); err != nil {
		if wafflemongo.IsDup(err) {
			return Account{}, ErrDuplicateEmail
		}
		return Account{}, err
	}
	return acct, nil
}

// GetByEmail looks up an account by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (Account, error) {
	var acct Account
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return acct, nil
}

// GetByID looks up an account by its ID.
func (s *Store) GetByID(ctx context.Context, id string) (Account, error) {
	var acct Account
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return acct, nil
}
