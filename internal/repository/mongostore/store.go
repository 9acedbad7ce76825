// Package mongostore implements the repository contracts on MongoDB.
// Uniqueness of user emails and of (user, recipe) bookmarks is enforced with
// unique indexes created by Migrate.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"recipe_manager/internal/domain"
	"recipe_manager/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repository.Store = (*Store)(nil)

// Collection names
const (
	usersCollection        = "users"
	recipesCollection      = "recipes"
	savedRecipesCollection = "savedrecipes"
)

// Store is the MongoDB implementation of repository.Store
type Store struct {
	client  *mongo.Client
	users   *mongo.Collection
	recipes *mongo.Collection
	saved   *mongo.Collection
}

// Connect dials uri and binds the store to database dbName
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return New(client, dbName), nil
}

// New binds an existing client to database dbName
func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:  client,
		users:   db.Collection(usersCollection),
		recipes: db.Collection(recipesCollection),
		saved:   db.Collection(savedRecipesCollection),
	}
}

// Migrate creates the unique and lookup indexes
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	}); err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	if _, err := s.recipes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("create recipes indexes: %w", err)
	}
	if _, err := s.saved.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "recipe", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_user_recipe"),
	}); err != nil {
		return fmt.Errorf("create saved recipes index: %w", err)
	}
	return nil
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// wrapError maps driver errors onto domain error kinds
func wrapError(err error, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
