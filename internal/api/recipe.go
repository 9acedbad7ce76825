package api

import (
	"net/http"                        // HTTP status codes
	"recipe_manager/internal/domain"  // Domain models
	"recipe_manager/internal/service" // Recipe service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// IngredientRequest is one element of RecipeRequest.Ingredients
type IngredientRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Optional bool   `json:"optional"`
}

// RecipeRequest is the body of POST /recipes/newRecipe and PUT /recipes/:id.
// Ingredient rules are checked by the service so the message names the problem.
type RecipeRequest struct {
	Title        string              `json:"title" binding:"required"`        // Recipe title
	Ingredients  []IngredientRequest `json:"ingredients"`                     // Non-empty, checked by the service
	Instructions string              `json:"instructions" binding:"required"` // Free text
	Image        string              `json:"image" binding:"required"`        // Image URL
}

func (r RecipeRequest) input() domain.RecipeInput {
	ingredients := make([]domain.Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = domain.Ingredient(ing)
	}
	return domain.RecipeInput{
		Title:        r.Title,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		Image:        r.Image,
	}
}

var recipeNotFound = Messages{domain.ErrNotFound: "Recipe not found"}

// nonNil keeps empty lists serialised as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// CreateRecipeHandler stores a new recipe owned by the authenticated user
func CreateRecipeHandler(recipes *service.RecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req RecipeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		recipe, err := recipes.Create(c.Request.Context(), userID, req.input())
		if err != nil {
			respondError(c, err, nil, "Error creating recipe")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,    // Owner
			"recipe_id": recipe.ID, // New recipe
		}).Info("Recipe created")
		c.JSON(http.StatusCreated, gin.H{"message": "Recipe created successfully", "recipe": recipe})
	}
}

// ListRecipesHandler returns every recipe with owner identity
func ListRecipesHandler(recipes *service.RecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := recipes.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err, nil, "Error fetching recipes")
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipes": nonNil(list)})
	}
}

// GetRecipeHandler returns one recipe by id
func GetRecipeHandler(recipes *service.RecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipe, err := recipes.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, recipeNotFound, "Error fetching recipe")
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipe": recipe})
	}
}

// ListUserRecipesHandler returns the recipes owned by :userId as a bare array
func ListUserRecipesHandler(recipes *service.RecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := recipes.ListByUser(c.Request.Context(), c.Param("userId"))
		if err != nil {
			respondError(c, err, nil, "Error fetching recipes by user ID")
			return
		}
		c.JSON(http.StatusOK, nonNil(list))
	}
}

// UpdateRecipeHandler replaces a recipe's content; owner only
func UpdateRecipeHandler(recipes *service.RecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req RecipeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		recipe, err := recipes.Update(c.Request.Context(), userID, c.Param("id"), req.input())
		if err != nil {
			respondError(c, err, Messages{
				domain.ErrNotFound:  "Recipe not found",
				domain.ErrForbidden: "You can only edit your own recipes",
			}, "Error updating recipe")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,    // Owner
			"recipe_id": recipe.ID, // Updated recipe
		}).Info("Recipe updated")
		c.JSON(http.StatusOK, gin.H{"message": "Recipe updated successfully", "recipe": recipe})
	}
}

// DeleteRecipeHandler removes a recipe; owner only
func DeleteRecipeHandler(recipes *service.RecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		id := c.Param("id")
		if err := recipes.Delete(c.Request.Context(), userID, id); err != nil {
			respondError(c, err, Messages{
				domain.ErrNotFound:  "Recipe not found",
				domain.ErrForbidden: "You can only delete your own recipes",
			}, "Error deleting recipe")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID, // Owner
			"recipe_id": id,     // Deleted recipe
		}).Info("Recipe deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
	}
}

// SaveRecipeHandler bookmarks :recipeId for the authenticated user
func SaveRecipeHandler(recipes *service.RecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		saved, err := recipes.Save(c.Request.Context(), userID, c.Param("recipeId"))
		if err != nil {
			respondError(c, err, Messages{
				domain.ErrNotFound: "Recipe not found",
				domain.ErrConflict: "Recipe already saved",
			}, "Error saving recipe")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Recipe saved successfully", "savedRecipe": saved})
	}
}

// UnsaveRecipeHandler removes the authenticated user's bookmark on :recipeId
func UnsaveRecipeHandler(recipes *service.RecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		if err := recipes.Unsave(c.Request.Context(), userID, c.Param("recipeId")); err != nil {
			respondError(c, err, Messages{domain.ErrNotFound: "Saved recipe not found"}, "Error removing recipe")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Recipe removed from saved recipes"})
	}
}

// ListSavedRecipesHandler returns :userId's bookmarks with recipes resolved
func ListSavedRecipesHandler(recipes *service.RecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		saved, err := recipes.ListSaved(c.Request.Context(), c.Param("userId"))
		if err != nil {
			respondError(c, err, nil, "Error fetching saved recipes")
			return
		}
		c.JSON(http.StatusOK, gin.H{"savedRecipes": nonNil(saved)})
	}
}
