// Package repository declares the persistence contracts for users, recipes and
// saved-recipe links. Implementations live in sqlstore (gorm) and mongostore.
//
// Every implementation reports a missing record as domain.ErrNotFound and a
// unique-index violation as domain.ErrConflict, wrapped with context.
package repository

import (
	"context"

	"recipe_manager/internal/domain"
)

// UserStore persists user credentials and profile data
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, username, bio string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// RecipeStore persists recipes. Reads resolve the owner identity inline.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) error
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	FindRecipeByID(ctx context.Context, id string) (*domain.Recipe, error)
	FindRecipesByIDs(ctx context.Context, ids []string) ([]domain.Recipe, error)
	ListRecipesByUser(ctx context.Context, userID string) ([]domain.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, in domain.RecipeInput) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
}

// SavedRecipeStore persists the user/recipe bookmark relation
type SavedRecipeStore interface {
	CreateSavedRecipe(ctx context.Context, saved *domain.SavedRecipe) error
	SavedRecipeExists(ctx context.Context, userID, recipeID string) (bool, error)
	DeleteSavedRecipe(ctx context.Context, userID, recipeID string) error
	ListSavedRecipes(ctx context.Context, userID string) ([]domain.SavedRecipe, error)
}

// Store bundles every store a backend provides
type Store interface {
	UserStore
	RecipeStore
	SavedRecipeStore
	Migrate(ctx context.Context) error
	Close(ctx context.Context) error
}
