package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"recipe_manager/internal/api"
	"recipe_manager/internal/client"
	"recipe_manager/internal/domain"
	"recipe_manager/internal/service"
	"recipe_manager/internal/testutil"
	"recipe_manager/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

// newServer starts the API on a fresh SQLite store and returns its /api root
func newServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := testutil.NewSQLiteStore(t)
	r := gin.New()
	api.RegisterRoutes(r, api.Services{
		Users:     service.NewUserService(store, secret, time.Hour),
		Recipes:   service.NewRecipeService(store, store, nil),
		Auth:      store,
		JWTSecret: secret,
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func newClient(t *testing.T) (*client.Client, *client.FileTokenStore) {
	t.Helper()
	tokens := client.NewFileTokenStore(filepath.Join(t.TempDir(), "session.json"))
	return client.New(newServer(t), tokens), tokens
}

func soup() domain.RecipeInput {
	return domain.RecipeInput{
		Title:        "Soup",
		Ingredients:  []domain.Ingredient{{Name: "Water", Quantity: "1L"}},
		Instructions: "Boil it",
		Image:        "http://x/y.jpg",
	}
}

func statusOf(err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func TestClientScenario(t *testing.T) {
	ctx := context.Background()
	c, _ := newClient(t)

	assert.False(t, c.Session().LoggedIn)
	require.NoError(t, c.Register(ctx, "alice", "alice@x.com", "secret1"))

	err := c.Register(ctx, "alice", "alice@x.com", "secret1")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	msg, err := c.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice logged in successfully", msg)

	me, err := c.Profile(ctx)
	require.NoError(t, err)
	session := c.Session()
	assert.True(t, session.LoggedIn)
	assert.Equal(t, me.ID, session.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	created, err := c.CreateRecipe(ctx, soup())
	require.NoError(t, err)
	assert.Equal(t, me.ID, created.UserID)

	got, err := c.Recipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Ingredients, 1)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "alice", got.Owner.Username)

	all, err := c.Recipes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	mine, err := c.UserRecipes(ctx, me.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	changed := soup()
	changed.Title = "Better soup"
	updated, err := c.UpdateRecipe(ctx, created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, "Better soup", updated.Title)

	_, err = c.SaveRecipe(ctx, created.ID)
	require.NoError(t, err)
	_, err = c.SaveRecipe(ctx, created.ID)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	saved, err := c.SavedRecipes(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Better soup", saved[0].Recipe.Title)

	require.NoError(t, c.UnsaveRecipe(ctx, created.ID))
	require.NoError(t, c.DeleteRecipe(ctx, created.ID))
	_, err = c.Recipe(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	profile, err := c.UpdateProfile(ctx, "chef", "soups")
	require.NoError(t, err)
	assert.Equal(t, "soups", profile.Bio)
	require.NoError(t, c.ChangePassword(ctx, "secret1", "secret2"))

	require.NoError(t, c.Logout())
	assert.False(t, c.Session().LoggedIn)
	_, err = c.Profile(ctx)
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	baseURL := newServer(t)
	path := filepath.Join(t.TempDir(), "session.json")
	c := client.New(baseURL, client.NewFileTokenStore(path))
	require.NoError(t, c.Register(ctx, "alice", "alice@x.com", "secret1"))
	_, err := c.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)

	// A new process over the same file is still logged in
	restarted := client.New(baseURL, client.NewFileTokenStore(path))
	assert.True(t, restarted.Session().LoggedIn)
	me, err := restarted.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", me.Email)
}

func TestSessionDerivedFromToken(t *testing.T) {
	c, tokens := newClient(t)

	expired, err := utils.GenerateJWTAt("u1", secret, time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	require.NoError(t, tokens.SetToken(expired))
	assert.False(t, c.Session().LoggedIn, "expired token")

	require.NoError(t, tokens.SetToken("garbage"))
	assert.False(t, c.Session().LoggedIn)

	valid, err := utils.GenerateJWT("u1", secret, time.Hour)
	require.NoError(t, err)
	require.NoError(t, tokens.SetToken(valid))
	session := c.Session()
	assert.True(t, session.LoggedIn)
	assert.Equal(t, "u1", session.UserID)
}

func TestUnauthorizedClearsToken(t *testing.T) {
	ctx := context.Background()
	c, tokens := newClient(t)

	// Well-formed and unexpired, but its user does not exist
	ghost, err := utils.GenerateJWT("ghost", secret, time.Hour)
	require.NoError(t, err)
	require.NoError(t, tokens.SetToken(ghost))
	require.True(t, c.Session().LoggedIn)

	_, err = c.Profile(ctx)
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	assert.False(t, c.Session().LoggedIn)
	tok, err := tokens.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)
}
