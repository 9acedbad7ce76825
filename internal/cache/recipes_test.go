package cache

import (
	"context"
	"testing"
	"time"

	"recipe_manager/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func soup(id string) domain.Recipe {
	return domain.Recipe{
		ID:           id,
		Title:        "Soup",
		Ingredients:  []domain.Ingredient{{Name: "Water", Quantity: "1L"}},
		Instructions: "Boil it",
		Image:        "http://x/y.jpg",
		UserID:       "u1",
	}
}

func TestNilCacheNeverHits(t *testing.T) {
	var c *RecipeCache
	ctx := context.Background()
	r := soup("r1")
	c.SetRecipe(ctx, &r)
	c.SetAllRecipes(ctx, []domain.Recipe{r})
	c.Invalidate(ctx, "r1")

	_, ok := c.Recipe(ctx, "r1")
	assert.False(t, ok)
	_, ok = c.AllRecipes(ctx)
	assert.False(t, ok)
}

func TestLocalTier(t *testing.T) {
	ctx := context.Background()
	c, err := New(8, nil, time.Minute)
	require.NoError(t, err)

	r := soup("r1")
	c.SetRecipe(ctx, &r)
	got, ok := c.Recipe(ctx, "r1")
	require.True(t, ok)
	assert.Equal(t, r, *got)

	now := time.Now()
	c.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, ok = c.Recipe(ctx, "r1")
	assert.False(t, ok, "expired entries are dropped")
}

func TestListIsCopied(t *testing.T) {
	ctx := context.Background()
	c, err := New(8, nil, time.Minute)
	require.NoError(t, err)

	c.SetAllRecipes(ctx, []domain.Recipe{soup("r1"), soup("r2")})
	first, ok := c.AllRecipes(ctx)
	require.True(t, ok)
	first[0].Title = "changed"

	second, ok := c.AllRecipes(ctx)
	require.True(t, ok)
	assert.Equal(t, "Soup", second[0].Title)
}

func TestSharedTier(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)

	writer, err := New(8, rdb, time.Minute)
	require.NoError(t, err)
	reader, err := New(8, rdb, time.Minute)
	require.NoError(t, err)

	writer.SetAllRecipes(ctx, []domain.Recipe{soup("r1")})
	assert.True(t, mr.Exists(allRecipesKey))
	assert.Equal(t, time.Minute, mr.TTL(allRecipesKey))

	got, ok := reader.AllRecipes(ctx)
	require.True(t, ok, "second instance reads through redis")
	require.Len(t, got, 1)
	assert.Equal(t, "Water", got[0].Ingredients[0].Name)

	mr.FastForward(2 * time.Minute)
	fresh, err := New(8, rdb, time.Minute)
	require.NoError(t, err)
	_, ok = fresh.AllRecipes(ctx)
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	c, err := New(8, rdb, time.Minute)
	require.NoError(t, err)

	r1, r2 := soup("r1"), soup("r2")
	c.SetRecipe(ctx, &r1)
	c.SetRecipe(ctx, &r2)
	c.SetAllRecipes(ctx, []domain.Recipe{r1, r2})

	c.Invalidate(ctx, "r1")

	_, ok := c.Recipe(ctx, "r1")
	assert.False(t, ok)
	_, ok = c.AllRecipes(ctx)
	assert.False(t, ok)
	assert.False(t, mr.Exists(recipeKey("r1")))
	assert.False(t, mr.Exists(allRecipesKey))
	assert.True(t, mr.Exists(generationKey))

	_, ok = c.Recipe(ctx, "r2")
	assert.True(t, ok, "untouched recipes stay cached")
}

func TestRedisDownIsAMiss(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	c, err := New(8, rdb, time.Minute)
	require.NoError(t, err)

	r := soup("r1")
	c.SetRecipe(ctx, &r)
	mr.Close()

	// Without Redis the local copy cannot be proven current
	_, ok := c.Recipe(ctx, "r1")
	assert.False(t, ok)
	c.SetRecipe(ctx, &r) // Logged, not fatal
	_, ok = c.Recipe(ctx, "r1")
	assert.False(t, ok)
}

func TestInvalidateRetiresOtherInstances(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	a, err := New(8, rdb, time.Minute)
	require.NoError(t, err)
	b, err := New(8, rdb, time.Minute)
	require.NoError(t, err)

	r1, r2 := soup("r1"), soup("r2")
	a.SetRecipe(ctx, &r1)
	a.SetRecipe(ctx, &r2)
	_, ok := b.Recipe(ctx, "r1")
	require.True(t, ok, "b fills its local tier from redis")

	b.Invalidate(ctx, "r1")
	assert.Equal(t, "1", mustGet(t, mr, generationKey))

	_, ok = a.Recipe(ctx, "r1")
	assert.False(t, ok, "a must not serve its local copy of r1")
	_, ok = b.Recipe(ctx, "r1")
	assert.False(t, ok)

	// r2 was retired locally too, but redis still holds it
	got, ok := a.Recipe(ctx, "r2")
	require.True(t, ok)
	assert.Equal(t, "r2", got.ID)
}

func TestCallersDoNotShareIngredients(t *testing.T) {
	ctx := context.Background()
	c, err := New(8, nil, time.Minute)
	require.NoError(t, err)

	r := soup("r1")
	c.SetRecipe(ctx, &r)
	r.Ingredients[0].Name = "changed by writer"

	got, ok := c.Recipe(ctx, "r1")
	require.True(t, ok)
	assert.Equal(t, "Water", got.Ingredients[0].Name)
	got.Ingredients[0].Name = "changed by reader"

	again, ok := c.Recipe(ctx, "r1")
	require.True(t, ok)
	assert.Equal(t, "Water", again.Ingredients[0].Name)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
