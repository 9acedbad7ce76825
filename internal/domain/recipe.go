package domain

import "time"

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Name     string `json:"name"`     // Ingredient name
	Quantity string `json:"quantity"` // Free-form quantity, e.g. "1L"
	Optional bool   `json:"optional"` // Marked optional by the author
}

// Recipe Model
type Recipe struct {
	ID           string       `json:"id"`             // UUID primary key
	Title        string       `json:"title"`          // Recipe title
	Ingredients  []Ingredient `json:"ingredients"`    // Ordered ingredient list
	Instructions string       `json:"instructions"`   // Free text
	Image        string       `json:"image"`          // Image URL
	UserID       string       `json:"userId"`         // Owning user
	Owner        *Owner       `json:"user,omitempty"` // Resolved owner identity
	CreatedAt    time.Time    `json:"createdAt"`      // Creation time
}

// RecipeInput holds the mutable fields of a recipe
type RecipeInput struct {
	Title        string
	Ingredients  []Ingredient
	Instructions string
	Image        string
}

// Validate checks the ingredient invariants and returns a *ValidationError.
// Title, instructions and image presence is enforced at the request boundary.
func (in RecipeInput) Validate() error {
	if len(in.Ingredients) == 0 {
		return &ValidationError{Msg: "Ingredients must be a non-empty array"}
	}
	for _, ing := range in.Ingredients {
		if ing.Name == "" || ing.Quantity == "" { // Presence only, whitespace counts
			return &ValidationError{Msg: "Each ingredient must have name and quantity"}
		}
	}
	return nil
}

// Apply overwrites the recipe's mutable fields
func (r *Recipe) Apply(in RecipeInput) {
	r.Title = in.Title
	r.Ingredients = in.Ingredients
	r.Instructions = in.Instructions
	r.Image = in.Image
}
