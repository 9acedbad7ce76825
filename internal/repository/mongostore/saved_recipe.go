package mongostore

import (
	"context"

	"recipe_manager/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateSavedRecipe inserts a bookmark; the unique (user, recipe) index yields domain.ErrConflict
func (s *Store) CreateSavedRecipe(ctx context.Context, saved *domain.SavedRecipe) error {
	_, err := s.saved.InsertOne(ctx, savedRecipeDoc{
		ID:        saved.ID,
		UserID:    saved.UserID,
		RecipeID:  saved.RecipeID,
		CreatedAt: saved.CreatedAt,
	})
	return wrapError(err, "save recipe")
}

// SavedRecipeExists reports whether userID already bookmarked recipeID
func (s *Store) SavedRecipeExists(ctx context.Context, userID, recipeID string) (bool, error) {
	n, err := s.saved.CountDocuments(ctx, bson.M{"user": userID, "recipe": recipeID}, options.Count().SetLimit(1))
	if err != nil {
		return false, wrapError(err, "check saved recipe")
	}
	return n > 0, nil
}

// DeleteSavedRecipe removes a bookmark
func (s *Store) DeleteSavedRecipe(ctx context.Context, userID, recipeID string) error {
	res, err := s.saved.DeleteOne(ctx, bson.M{"user": userID, "recipe": recipeID})
	if err != nil {
		return wrapError(err, "unsave recipe")
	}
	if res.DeletedCount == 0 {
		return wrapError(mongo.ErrNoDocuments, "unsave recipe")
	}
	return nil
}

// ListSavedRecipes returns userID's bookmarks, newest first. Recipe is nil for
// links whose recipe has since been deleted.
func (s *Store) ListSavedRecipes(ctx context.Context, userID string) ([]domain.SavedRecipe, error) {
	cur, err := s.saved.Find(ctx, bson.M{"user": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, wrapError(err, "list saved recipes")
	}
	var docs []savedRecipeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapError(err, "list saved recipes")
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.RecipeID
	}
	recipes, err := s.FindRecipesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}
	out := make([]domain.SavedRecipe, len(docs))
	for i, d := range docs {
		out[i] = domain.SavedRecipe{
			ID:        d.ID,
			UserID:    d.UserID,
			RecipeID:  d.RecipeID,
			Recipe:    byID[d.RecipeID],
			CreatedAt: d.CreatedAt,
		}
	}
	return out, nil
}
