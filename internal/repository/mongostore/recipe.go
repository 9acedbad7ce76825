package mongostore

import (
	"context"

	"recipe_manager/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateRecipe inserts the recipe document with its embedded ingredients
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	_, err := s.recipes.InsertOne(ctx, newRecipeDoc(recipe))
	return wrapError(err, "create recipe")
}

// ListRecipes returns every recipe, newest first
func (s *Store) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return s.findRecipes(ctx, bson.M{}, "list recipes")
}

// FindRecipeByID loads one recipe with its owner resolved
func (s *Store) FindRecipeByID(ctx context.Context, id string) (*domain.Recipe, error) {
	var doc recipeDoc
	if err := s.recipes.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, wrapError(err, "find recipe")
	}
	owners, err := s.owners(ctx, []string{doc.UserID})
	if err != nil {
		return nil, err
	}
	recipe := doc.toDomain(owners[doc.UserID])
	return &recipe, nil
}

// FindRecipesByIDs loads the recipes that still exist among ids
func (s *Store) FindRecipesByIDs(ctx context.Context, ids []string) ([]domain.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.findRecipes(ctx, bson.M{"_id": bson.M{"$in": ids}}, "find recipes")
}

// ListRecipesByUser returns the recipes owned by userID, newest first
func (s *Store) ListRecipesByUser(ctx context.Context, userID string) ([]domain.Recipe, error) {
	return s.findRecipes(ctx, bson.M{"user": userID}, "list recipes by user")
}

func (s *Store) findRecipes(ctx context.Context, filter bson.M, op string) ([]domain.Recipe, error) {
	cur, err := s.recipes.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, wrapError(err, op)
	}
	var docs []recipeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapError(err, op)
	}
	ownerIDs := make([]string, 0, len(docs))
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if !seen[d.UserID] {
			seen[d.UserID] = true
			ownerIDs = append(ownerIDs, d.UserID)
		}
	}
	owners, err := s.owners(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Recipe, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain(owners[d.UserID])
	}
	return out, nil
}

// UpdateRecipe replaces title, ingredients, instructions and image in one write
func (s *Store) UpdateRecipe(ctx context.Context, id string, in domain.RecipeInput) (*domain.Recipe, error) {
	res, err := s.recipes.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":        in.Title,
		"ingredients":  newIngredientDocs(in.Ingredients),
		"instructions": in.Instructions,
		"image":        in.Image,
	}})
	if err != nil {
		return nil, wrapError(err, "update recipe")
	}
	if res.MatchedCount == 0 {
		return nil, wrapError(mongo.ErrNoDocuments, "update recipe")
	}
	return s.FindRecipeByID(ctx, id)
}

// DeleteRecipe removes the recipe. Saved links are left in place.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	res, err := s.recipes.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapError(err, "delete recipe")
	}
	if res.DeletedCount == 0 {
		return wrapError(mongo.ErrNoDocuments, "delete recipe")
	}
	return nil
}
