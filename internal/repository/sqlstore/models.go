package sqlstore

import (
	"time"

	"recipe_manager/internal/domain"
)

// userRecord is the users table row
type userRecord struct {
	ID           string    `gorm:"primaryKey;size:36"`            // UUID primary key
	Username     string    `gorm:"size:100;not null"`             // Display name
	Email        string    `gorm:"size:255;uniqueIndex;not null"` // Unique login key
	PasswordHash string    `gorm:"size:255;not null"`             // bcrypt hash
	Bio          string    `gorm:"type:text"`                     // Optional bio
	CreatedAt    time.Time `gorm:"autoCreateTime"`                // Registration time
}

func (userRecord) TableName() string { return "users" }

// recipeRecord is the recipes table row
type recipeRecord struct {
	ID           string             `gorm:"primaryKey;size:36"`                               // UUID primary key
	Title        string             `gorm:"size:255;not null"`                                // Recipe title
	Instructions string             `gorm:"type:text;not null"`                               // Free text
	Image        string             `gorm:"type:text;not null"`                               // Image URL
	UserID       string             `gorm:"size:36;index;not null"`                           // Owner
	Owner        userRecord         `gorm:"foreignKey:UserID"`                                // Belongs-to owner
	Ingredients  []ingredientRecord `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"` // Ordered by Position
	CreatedAt    time.Time          `gorm:"autoCreateTime;index"`                             // Creation time
}

func (recipeRecord) TableName() string { return "recipes" }

// ingredientRecord is one row of a recipe's ingredient list
type ingredientRecord struct {
	ID       uint   `gorm:"primaryKey"`             // Surrogate key
	RecipeID string `gorm:"size:36;index;not null"` // Parent recipe
	Position int    `gorm:"not null"`               // Order within the recipe
	Name     string `gorm:"size:255;not null"`      // Ingredient name
	Quantity string `gorm:"size:100;not null"`      // Quantity
	Optional bool   `gorm:"not null;default:false"` // Optional flag
}

func (ingredientRecord) TableName() string { return "recipe_ingredients" }

// savedRecipeRecord is the saved_recipes join row. The composite unique index
// turns concurrent duplicate saves into a constraint violation.
type savedRecipeRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_user_recipe_save"`
	RecipeID  string    `gorm:"size:36;not null;index;uniqueIndex:idx_user_recipe_save"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (savedRecipeRecord) TableName() string { return "saved_recipes" }

func toUser(r userRecord) *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Bio:          r.Bio,
		CreatedAt:    r.CreatedAt,
	}
}

func fromUser(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt,
	}
}

func toIngredientRecords(recipeID string, in []domain.Ingredient) []ingredientRecord {
	out := make([]ingredientRecord, len(in))
	for i, ing := range in {
		out[i] = ingredientRecord{
			RecipeID: recipeID,
			Position: i,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Optional: ing.Optional,
		}
	}
	return out
}

func toRecipe(r recipeRecord) domain.Recipe {
	ingredients := make([]domain.Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = domain.Ingredient{Name: ing.Name, Quantity: ing.Quantity, Optional: ing.Optional}
	}
	recipe := domain.Recipe{
		ID:           r.ID,
		Title:        r.Title,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		Image:        r.Image,
		UserID:       r.UserID,
		CreatedAt:    r.CreatedAt,
	}
	// Owner is only populated when preloaded
	if r.Owner.ID != "" {
		recipe.Owner = toUser(r.Owner).Owner()
	}
	return recipe
}

func toRecipes(rs []recipeRecord) []domain.Recipe {
	out := make([]domain.Recipe, len(rs))
	for i, r := range rs {
		out[i] = toRecipe(r)
	}
	return out
}
