package sqlstore

import (
	"context"

	"recipe_manager/internal/domain"

	"gorm.io/gorm"
)

// withDetails preloads the owner and the ingredient list in order
func withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		})
}

// CreateRecipe inserts the recipe together with its ingredients
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	rec := recipeRecord{
		ID:           recipe.ID,
		Title:        recipe.Title,
		Instructions: recipe.Instructions,
		Image:        recipe.Image,
		UserID:       recipe.UserID,
		Ingredients:  toIngredientRecords(recipe.ID, recipe.Ingredients),
		CreatedAt:    recipe.CreatedAt,
	}
	// Owner already exists, only the ingredient rows are new
	if err := s.db.WithContext(ctx).Omit("Owner").Create(&rec).Error; err != nil {
		return wrapError(err, "create recipe")
	}
	recipe.CreatedAt = rec.CreatedAt
	return nil
}

// ListRecipes returns every recipe, newest first
func (s *Store) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	var recs []recipeRecord
	if err := withDetails(s.db.WithContext(ctx)).Order("created_at desc").Find(&recs).Error; err != nil {
		return nil, wrapError(err, "list recipes")
	}
	return toRecipes(recs), nil
}

// FindRecipeByID loads one recipe with owner and ingredients
func (s *Store) FindRecipeByID(ctx context.Context, id string) (*domain.Recipe, error) {
	var rec recipeRecord
	if err := withDetails(s.db.WithContext(ctx)).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, wrapError(err, "find recipe")
	}
	recipe := toRecipe(rec)
	return &recipe, nil
}

// FindRecipesByIDs loads the recipes that still exist among ids
func (s *Store) FindRecipesByIDs(ctx context.Context, ids []string) ([]domain.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recs []recipeRecord
	if err := withDetails(s.db.WithContext(ctx)).Where("id IN ?", ids).Find(&recs).Error; err != nil {
		return nil, wrapError(err, "find recipes")
	}
	return toRecipes(recs), nil
}

// ListRecipesByUser returns the recipes owned by userID, newest first
func (s *Store) ListRecipesByUser(ctx context.Context, userID string) ([]domain.Recipe, error) {
	var recs []recipeRecord
	err := withDetails(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&recs).Error
	if err != nil {
		return nil, wrapError(err, "list recipes by user")
	}
	return toRecipes(recs), nil
}

// UpdateRecipe replaces title, ingredients, instructions and image atomically
func (s *Store) UpdateRecipe(ctx context.Context, id string, in domain.RecipeInput) (*domain.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec recipeRecord
		if err := tx.Select("id").Where("id = ?", id).First(&rec).Error; err != nil {
			return err // Return error to rollback
		}
		if err := tx.Model(&recipeRecord{}).Where("id = ?", id).Updates(map[string]any{
			"title":        in.Title,
			"instructions": in.Instructions,
			"image":        in.Image,
		}).Error; err != nil {
			return err // Return error to rollback
		}
		// Ingredient list is replaced wholesale
		if err := tx.Where("recipe_id = ?", id).Delete(&ingredientRecord{}).Error; err != nil {
			return err // Return error to rollback
		}
		ingredients := toIngredientRecords(id, in.Ingredients)
		if len(ingredients) == 0 {
			return nil
		}
		return tx.Create(&ingredients).Error // Commit on nil
	})
	if err != nil {
		return nil, wrapError(err, "update recipe")
	}
	return s.FindRecipeByID(ctx, id)
}

// DeleteRecipe removes the recipe and its ingredients. Saved links are left in place.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&ingredientRecord{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&recipeRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound // Rolls back the ingredient delete too
		}
		return nil
	})
	return wrapError(err, "delete recipe")
}
