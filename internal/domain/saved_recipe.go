package domain

import "time"

// SavedRecipe links a user to a recipe they bookmarked
type SavedRecipe struct {
	ID        string    `json:"id"`               // UUID primary key
	UserID    string    `json:"userId"`           // Bookmarking user
	RecipeID  string    `json:"recipeId"`         // Bookmarked recipe
	Recipe    *Recipe   `json:"recipe,omitempty"` // Resolved recipe, nil when dangling
	CreatedAt time.Time `json:"createdAt"`        // Bookmark time
}
