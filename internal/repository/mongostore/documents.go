package mongostore

import (
	"time"

	"recipe_manager/internal/domain"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	Bio          string    `bson:"bio,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type ingredientDoc struct {
	Name     string `bson:"name"`
	Quantity string `bson:"quantity"`
	Optional bool   `bson:"optional"`
}

type recipeDoc struct {
	ID           string          `bson:"_id"`
	Title        string          `bson:"title"`
	Ingredients  []ingredientDoc `bson:"ingredients"`
	Instructions string          `bson:"instructions"`
	Image        string          `bson:"image"`
	UserID       string          `bson:"user"`
	CreatedAt    time.Time       `bson:"createdAt"`
}

type savedRecipeDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user"`
	RecipeID  string    `bson:"recipe"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Bio:          d.Bio,
		CreatedAt:    d.CreatedAt,
	}
}

func newUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt,
	}
}

func newIngredientDocs(in []domain.Ingredient) []ingredientDoc {
	out := make([]ingredientDoc, len(in))
	for i, ing := range in {
		out[i] = ingredientDoc(ing)
	}
	return out
}

func newRecipeDoc(r *domain.Recipe) recipeDoc {
	return recipeDoc{
		ID:           r.ID,
		Title:        r.Title,
		Ingredients:  newIngredientDocs(r.Ingredients),
		Instructions: r.Instructions,
		Image:        r.Image,
		UserID:       r.UserID,
		CreatedAt:    r.CreatedAt,
	}
}

func (d recipeDoc) toDomain(owner *domain.Owner) domain.Recipe {
	ingredients := make([]domain.Ingredient, len(d.Ingredients))
	for i, ing := range d.Ingredients {
		ingredients[i] = domain.Ingredient(ing)
	}
	return domain.Recipe{
		ID:           d.ID,
		Title:        d.Title,
		Ingredients:  ingredients,
		Instructions: d.Instructions,
		Image:        d.Image,
		UserID:       d.UserID,
		Owner:        owner,
		CreatedAt:    d.CreatedAt,
	}
}
