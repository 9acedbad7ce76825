package sqlstore

import (
	"context"

	"recipe_manager/internal/domain"

	"gorm.io/gorm"
)

// CreateSavedRecipe inserts a bookmark; a duplicate (user, recipe) pair yields domain.ErrConflict
func (s *Store) CreateSavedRecipe(ctx context.Context, saved *domain.SavedRecipe) error {
	rec := savedRecipeRecord{
		ID:        saved.ID,
		UserID:    saved.UserID,
		RecipeID:  saved.RecipeID,
		CreatedAt: saved.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return wrapError(err, "save recipe")
	}
	saved.CreatedAt = rec.CreatedAt
	return nil
}

// SavedRecipeExists reports whether userID already bookmarked recipeID
func (s *Store) SavedRecipeExists(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&savedRecipeRecord{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, wrapError(err, "check saved recipe")
	}
	return count > 0, nil
}

// DeleteSavedRecipe removes a bookmark
func (s *Store) DeleteSavedRecipe(ctx context.Context, userID, recipeID string) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&savedRecipeRecord{})
	if res.Error != nil {
		return wrapError(res.Error, "unsave recipe")
	}
	if res.RowsAffected == 0 {
		return wrapError(gorm.ErrRecordNotFound, "unsave recipe")
	}
	return nil
}

// ListSavedRecipes returns userID's bookmarks, newest first. Recipe is nil for
// links whose recipe has since been deleted.
func (s *Store) ListSavedRecipes(ctx context.Context, userID string) ([]domain.SavedRecipe, error) {
	var recs []savedRecipeRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&recs).Error
	if err != nil {
		return nil, wrapError(err, "list saved recipes")
	}
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.RecipeID
	}
	recipes, err := s.FindRecipesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return joinSaved(recs, recipes), nil
}

func joinSaved(recs []savedRecipeRecord, recipes []domain.Recipe) []domain.SavedRecipe {
	byID := make(map[string]*domain.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}
	out := make([]domain.SavedRecipe, len(recs))
	for i, r := range recs {
		out[i] = domain.SavedRecipe{
			ID:        r.ID,
			UserID:    r.UserID,
			RecipeID:  r.RecipeID,
			Recipe:    byID[r.RecipeID],
			CreatedAt: r.CreatedAt,
		}
	}
	return out
}
