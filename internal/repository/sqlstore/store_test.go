package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"recipe_manager/internal/domain"
	"recipe_manager/internal/repository/sqlstore"
	"recipe_manager/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, s *sqlstore.Store, email string) *domain.User {
	t.Helper()
	u := &domain.User{ID: uuid.NewString(), Username: "alice", Email: email, PasswordHash: "hash", CreatedAt: time.Now()}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func createRecipe(t *testing.T, s *sqlstore.Store, owner string, ingredients ...domain.Ingredient) *domain.Recipe {
	t.Helper()
	r := &domain.Recipe{
		ID:           uuid.NewString(),
		Title:        "Soup",
		Ingredients:  ingredients,
		Instructions: "Boil it",
		Image:        "http://x/y.jpg",
		UserID:       owner,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateRecipe(context.Background(), r))
	return r
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewSQLiteStore(t)
	u := createUser(t, s, "alice@x.com")

	got, err := s.FindUserByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = s.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	dup := &domain.User{ID: uuid.NewString(), Username: "other", Email: "alice@x.com", PasswordHash: "h"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), domain.ErrConflict)

	updated, err := s.UpdateProfile(ctx, u.ID, "alice2", "likes soup")
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "likes soup", updated.Bio)

	require.NoError(t, s.UpdatePasswordHash(ctx, u.ID, "new-hash"))
	got, err = s.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.ErrorIs(t, s.UpdatePasswordHash(ctx, "missing", "x"), domain.ErrNotFound)
}

func TestRecipeStore(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewSQLiteStore(t)
	alice := createUser(t, s, "alice@x.com")
	bob := createUser(t, s, "bob@x.com")

	r := createRecipe(t, s, alice.ID,
		domain.Ingredient{Name: "Water", Quantity: "1L"},
		domain.Ingredient{Name: "Salt", Quantity: "pinch", Optional: true},
		domain.Ingredient{Name: "Carrot", Quantity: "2"},
	)
	createRecipe(t, s, bob.ID, domain.Ingredient{Name: "Rice", Quantity: "200g"})

	got, err := s.FindRecipeByID(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 3)
	assert.Equal(t, []string{"Water", "Salt", "Carrot"},
		[]string{got.Ingredients[0].Name, got.Ingredients[1].Name, got.Ingredients[2].Name})
	assert.True(t, got.Ingredients[1].Optional)
	require.NotNil(t, got.Owner)
	assert.Equal(t, alice.Email, got.Owner.Email)

	all, err := s.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := s.ListRecipesByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, r.ID, mine[0].ID)

	updated, err := s.UpdateRecipe(ctx, r.ID, domain.RecipeInput{
		Title:        "Stew",
		Ingredients:  []domain.Ingredient{{Name: "Beef", Quantity: "500g"}},
		Instructions: "Simmer",
		Image:        "http://x/stew.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Stew", updated.Title)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Beef", updated.Ingredients[0].Name)

	_, err = s.UpdateRecipe(ctx, "missing", domain.RecipeInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.DeleteRecipe(ctx, r.ID))
	_, err = s.FindRecipeByID(ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteRecipe(ctx, r.ID), domain.ErrNotFound)
}

func TestSavedRecipeStore(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewSQLiteStore(t)
	alice := createUser(t, s, "alice@x.com")
	r1 := createRecipe(t, s, alice.ID, domain.Ingredient{Name: "Water", Quantity: "1L"})
	r2 := createRecipe(t, s, alice.ID, domain.Ingredient{Name: "Rice", Quantity: "200g"})

	save := func(recipeID string) error {
		return s.CreateSavedRecipe(ctx, &domain.SavedRecipe{
			ID: uuid.NewString(), UserID: alice.ID, RecipeID: recipeID, CreatedAt: time.Now(),
		})
	}
	require.NoError(t, save(r1.ID))
	require.NoError(t, save(r2.ID))
	// The composite unique index rejects a second link for the same pair
	assert.ErrorIs(t, save(r1.ID), domain.ErrConflict)

	exists, err := s.SavedRecipeExists(ctx, alice.ID, r1.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Deleting a recipe leaves its link dangling
	require.NoError(t, s.DeleteRecipe(ctx, r2.ID))
	links, err := s.ListSavedRecipes(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	byRecipe := map[string]domain.SavedRecipe{}
	for _, l := range links {
		byRecipe[l.RecipeID] = l
	}
	require.NotNil(t, byRecipe[r1.ID].Recipe)
	assert.Equal(t, "Water", byRecipe[r1.ID].Recipe.Ingredients[0].Name)
	assert.Nil(t, byRecipe[r2.ID].Recipe)

	require.NoError(t, s.DeleteSavedRecipe(ctx, alice.ID, r1.ID))
	assert.ErrorIs(t, s.DeleteSavedRecipe(ctx, alice.ID, r1.ID), domain.ErrNotFound)
}
