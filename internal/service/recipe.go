package service

import (
	"context"
	"fmt"
	"time"

	"recipe_manager/internal/cache"
	"recipe_manager/internal/domain"
	"recipe_manager/internal/repository"

	"github.com/google/uuid"
)

// RecipeService handles recipe CRUD and bookmarks
type RecipeService struct {
	recipes repository.RecipeStore
	saved   repository.SavedRecipeStore
	cache   *cache.RecipeCache // nil disables caching
	now     func() time.Time
}

// NewRecipeService creates a RecipeService; recipeCache may be nil
func NewRecipeService(recipes repository.RecipeStore, saved repository.SavedRecipeStore, recipeCache *cache.RecipeCache) *RecipeService {
	return &RecipeService{recipes: recipes, saved: saved, cache: recipeCache, now: time.Now}
}

// Create validates the ingredients and stores a recipe owned by userID
func (s *RecipeService) Create(ctx context.Context, userID string, in domain.RecipeInput) (*domain.Recipe, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	recipe := &domain.Recipe{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: s.now(),
	}
	recipe.Apply(in)
	if err := s.recipes.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return recipe, nil
}

// ListAll returns every recipe with its owner resolved. Unpaginated.
func (s *RecipeService) ListAll(ctx context.Context) ([]domain.Recipe, error) {
	if recipes, ok := s.cache.AllRecipes(ctx); ok {
		return recipes, nil
	}
	recipes, err := s.recipes.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetAllRecipes(ctx, recipes)
	return recipes, nil
}

// GetByID returns one recipe with its owner resolved
func (s *RecipeService) GetByID(ctx context.Context, id string) (*domain.Recipe, error) {
	if recipe, ok := s.cache.Recipe(ctx, id); ok {
		return recipe, nil
	}
	recipe, err := s.recipes.FindRecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetRecipe(ctx, recipe)
	return recipe, nil
}

// ListByUser returns the recipes owned by userID
func (s *RecipeService) ListByUser(ctx context.Context, userID string) ([]domain.Recipe, error) {
	return s.recipes.ListRecipesByUser(ctx, userID)
}

// authorize loads the recipe and checks that userID owns it
func (s *RecipeService) authorize(ctx context.Context, userID, id string) error {
	recipe, err := s.recipes.FindRecipeByID(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID != userID {
		return fmt.Errorf("recipe %s is owned by another user: %w", id, domain.ErrForbidden)
	}
	return nil
}

// Update replaces title, ingredients, instructions and image. Only the owner may update.
func (s *RecipeService) Update(ctx context.Context, userID, id string, in domain.RecipeInput) (*domain.Recipe, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, userID, id); err != nil {
		return nil, err
	}
	recipe, err := s.recipes.UpdateRecipe(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id) // Retire cached copies on every instance
	return recipe, nil
}

// Delete removes a recipe. Only the owner may delete; bookmarks are not cascaded.
func (s *RecipeService) Delete(ctx context.Context, userID, id string) error {
	if err := s.authorize(ctx, userID, id); err != nil {
		return err
	}
	if err := s.recipes.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

// Save bookmarks recipeID for userID. A second save of the same pair is
// domain.ErrConflict, whether caught by the lookup or by the unique index.
func (s *RecipeService) Save(ctx context.Context, userID, recipeID string) (*domain.SavedRecipe, error) {
	if _, err := s.recipes.FindRecipeByID(ctx, recipeID); err != nil {
		return nil, err
	}
	exists, err := s.saved.SavedRecipeExists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("recipe %s already saved: %w", recipeID, domain.ErrConflict)
	}
	saved := &domain.SavedRecipe{
		ID:        uuid.NewString(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: s.now(),
	}
	if err := s.saved.CreateSavedRecipe(ctx, saved); err != nil {
		return nil, err // domain.ErrConflict when a concurrent save won
	}
	return saved, nil
}

// Unsave removes the bookmark; domain.ErrNotFound if there is none
func (s *RecipeService) Unsave(ctx context.Context, userID, recipeID string) error {
	return s.saved.DeleteSavedRecipe(ctx, userID, recipeID)
}

// ListSaved returns userID's bookmarks with recipes resolved. Links to
// deleted recipes are dropped.
func (s *RecipeService) ListSaved(ctx context.Context, userID string) ([]domain.SavedRecipe, error) {
	links, err := s.saved.ListSavedRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SavedRecipe, 0, len(links))
	for _, l := range links {
		if l.Recipe == nil {
			continue // Recipe deleted after it was saved
		}
		out = append(out, l)
	}
	return out, nil
}
