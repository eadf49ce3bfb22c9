// Package assets is the boundary to the asset store. The core never
// handles media bytes; it keeps only the opaque reference tokens minted
// here. References resolve to an externally hosted URL.
package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a reference token resolves to nothing.
var ErrNotFound = errors.New("asset not found")

// Reference is the stored record behind a token.
type Reference struct {
	Token       string    `json:"token" bson:"token"`
	URL         string    `json:"url" bson:"url"`
	ContentType string    `json:"content_type" bson:"content_type"`
	OwnerID     uint      `json:"owner_id" bson:"owner_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Store hands out and resolves asset reference tokens.
type Store interface {
	Register(ctx context.Context, ownerID uint, url, contentType string) (*Reference, error)
	Resolve(ctx context.Context, token string) (*Reference, error)
	Remove(ctx context.Context, token string) error
}

// MongoStore keeps asset references in a MongoDB collection.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a MongoStore on the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("assets")}
}

// Register mints a fresh token for an uploaded asset's URL.
func (s *MongoStore) Register(ctx context.Context, ownerID uint, url, contentType string) (*Reference, error) {
	ref := &Reference{
		Token:       uuid.NewString(),
		URL:         url,
		ContentType: contentType,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}
	if _, err := s.collection.InsertOne(ctx, ref); err != nil {
		return nil, fmt.Errorf("registering asset: %w", err)
	}
	return ref, nil
}

// Resolve looks up the record behind a token.
func (s *MongoStore) Resolve(ctx context.Context, token string) (*Reference, error) {
	var ref Reference
	err := s.collection.FindOne(ctx, bson.M{"token": token}).Decode(&ref)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ref, nil
}

// Remove drops a reference. Missing tokens are not an error; removal is
// part of best-effort cleanup after entity deletion.
func (s *MongoStore) Remove(ctx context.Context, token string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"token": token})
	return err
}
