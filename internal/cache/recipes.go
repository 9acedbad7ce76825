// Package cache holds read-through caches for recipe reads.
//
// Two tiers: a bounded in-process LRU and an optional shared Redis tier.
// Entries in both tiers expire after the configured TTL; writes through the
// recipe service invalidate the affected keys explicitly. With Redis enabled,
// invalidation also bumps a shared generation counter and a local entry is
// only served while its generation is current, so a write on one instance
// retires the local copies of every other instance.
package cache

import (
	"context"
	"time"

	"recipe_manager/internal/domain"
	"recipe_manager/internal/utils"

	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultTTL bounds staleness across server instances
const DefaultTTL = 60 * time.Second

const (
	allRecipesKey = "recipes:all"
	generationKey = "recipes:gen"
)

func recipeKey(id string) string { return "recipe:" + id }

type entry struct {
	value   any
	expires time.Time
	gen     int64 // Shared generation at fill time
}

// RecipeCache caches single recipes and the full recipe list.
// A nil *RecipeCache is valid and never hits.
type RecipeCache struct {
	local *lru.Cache
	rdb   redis.Cmdable // nil disables the shared tier
	ttl   time.Duration
	now   func() time.Time
}

// New creates a cache holding at most size local entries
func New(size int, rdb redis.Cmdable, ttl time.Duration) (*RecipeCache, error) {
	if size <= 0 {
		size = 1
	}
	local, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RecipeCache{local: local, rdb: rdb, ttl: ttl, now: time.Now}, nil
}

// Recipe returns a cached recipe by id
func (c *RecipeCache) Recipe(ctx context.Context, id string) (*domain.Recipe, bool) {
	if c == nil {
		return nil, false
	}
	var recipe domain.Recipe
	if !c.get(ctx, recipeKey(id), &recipe) {
		return nil, false
	}
	return &recipe, true
}

// SetRecipe caches a single recipe
func (c *RecipeCache) SetRecipe(ctx context.Context, recipe *domain.Recipe) {
	if c == nil || recipe == nil {
		return
	}
	c.set(ctx, recipeKey(recipe.ID), *recipe)
}

// AllRecipes returns the cached full recipe list
func (c *RecipeCache) AllRecipes(ctx context.Context) ([]domain.Recipe, bool) {
	if c == nil {
		return nil, false
	}
	var recipes []domain.Recipe
	if !c.get(ctx, allRecipesKey, &recipes) {
		return nil, false
	}
	return recipes, true
}

// SetAllRecipes caches the full recipe list
func (c *RecipeCache) SetAllRecipes(ctx context.Context, recipes []domain.Recipe) {
	if c == nil {
		return
	}
	c.set(ctx, allRecipesKey, recipes)
}

// Invalidate drops the full list and the given recipes from both tiers
func (c *RecipeCache) Invalidate(ctx context.Context, ids ...string) {
	if c == nil {
		return
	}
	keys := []string{allRecipesKey}
	for _, id := range ids {
		keys = append(keys, recipeKey(id))
	}
	for _, k := range keys {
		c.local.Remove(k)
	}
	if c.rdb != nil {
		if err := utils.InvalidateCache(ctx, c.rdb, generationKey, keys...); err != nil {
			logrus.WithFields(logrus.Fields{"keys": keys, "error": err.Error()}).Warn("Cache invalidation failed")
		}
	}
}

// generation reads the shared counter; ok is false when Redis is unreachable
func (c *RecipeCache) generation(ctx context.Context) (int64, bool) {
	if c.rdb == nil {
		return 0, true
	}
	gen, err := utils.GetGeneration(ctx, c.rdb, generationKey)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": generationKey, "error": err.Error()}).Warn("Cache read failed")
		return 0, false
	}
	return gen, true
}

// get fills dest from the local tier, then from Redis. dest must be a pointer
// to the same type that was stored.
func (c *RecipeCache) get(ctx context.Context, key string, dest any) bool {
	gen, ok := c.generation(ctx)
	if !ok {
		return false // Cannot prove local entries current
	}
	if v, found := c.local.Get(key); found {
		e := v.(entry)
		if e.gen == gen && c.now().Before(e.expires) {
			assign(dest, e.value)
			return true
		}
		c.local.Remove(key) // Expired or retired by another instance
	}
	if c.rdb == nil {
		return false
	}
	found, err := utils.GetCache(ctx, c.rdb, key, dest)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
		return false
	}
	if found {
		c.local.Add(key, entry{value: clone(dest), expires: c.now().Add(c.ttl), gen: gen})
	}
	return found
}

func (c *RecipeCache) set(ctx context.Context, key string, value any) {
	gen, ok := c.generation(ctx)
	if !ok {
		return
	}
	c.local.Add(key, entry{value: clone(value), expires: c.now().Add(c.ttl), gen: gen})
	if c.rdb == nil {
		return
	}
	if err := utils.SetCache(ctx, c.rdb, key, value, c.ttl); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
}

// assign copies a cached value into dest; callers never share memory with the cache
func assign(dest, value any) {
	switch d := dest.(type) {
	case *domain.Recipe:
		*d = cloneRecipe(value.(domain.Recipe))
	case *[]domain.Recipe:
		*d = cloneRecipes(value.([]domain.Recipe))
	}
}

// clone deep-copies a recipe or recipe list, given by value or by pointer
func clone(v any) any {
	switch d := v.(type) {
	case domain.Recipe:
		return cloneRecipe(d)
	case *domain.Recipe:
		return cloneRecipe(*d)
	case []domain.Recipe:
		return cloneRecipes(d)
	case *[]domain.Recipe:
		return cloneRecipes(*d)
	}
	return nil
}

func cloneRecipe(r domain.Recipe) domain.Recipe {
	if r.Ingredients != nil {
		r.Ingredients = append([]domain.Ingredient(nil), r.Ingredients...)
	}
	if r.Owner != nil {
		owner := *r.Owner
		r.Owner = &owner
	}
	return r
}

func cloneRecipes(in []domain.Recipe) []domain.Recipe {
	if in == nil {
		return nil
	}
	out := make([]domain.Recipe, len(in))
	for i, r := range in {
		out[i] = cloneRecipe(r)
	}
	return out
}
