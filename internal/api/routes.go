package api

import (
	"net/http"                           // HTTP status codes
	"recipe_manager/internal/middleware" // Auth guard
	"recipe_manager/internal/service"    // Services

	"github.com/gin-gonic/gin" // Gin web framework
)

// Services groups what the handlers depend on
type Services struct {
	Users     *service.UserService
	Recipes   *service.RecipeService
	Auth      middleware.UserFinder // Resolves token subjects for the auth guard
	JWTSecret string
}

// RegisterRoutes mounts the user and recipe APIs under /api
func RegisterRoutes(r *gin.Engine, s Services) {
	auth := middleware.JWTAuthMiddleware(s.JWTSecret, s.Auth) // Auth guard for protected routes

	api := r.Group("/api")
	api.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is working!"})
	})

	// User routes
	users := api.Group("/users")
	users.POST("/register", RegisterHandler(s.Users))
	users.POST("/login", LoginHandler(s.Users))
	users.GET("/user", auth, ProfileHandler(s.Users))
	users.PUT("/profile", auth, UpdateProfileHandler(s.Users))
	users.PUT("/change-password", auth, ChangePasswordHandler(s.Users))

	// Recipe routes
	recipes := api.Group("/recipes")
	recipes.POST("/newRecipe", auth, CreateRecipeHandler(s.Recipes))
	recipes.GET("", ListRecipesHandler(s.Recipes))
	recipes.GET("/:id", GetRecipeHandler(s.Recipes))
	recipes.GET("/user/:userId", ListUserRecipesHandler(s.Recipes))
	recipes.POST("/save/:recipeId", auth, SaveRecipeHandler(s.Recipes))
	recipes.GET("/savedRecipes/:userId", auth, ListSavedRecipesHandler(s.Recipes))
	recipes.PUT("/:id", auth, UpdateRecipeHandler(s.Recipes))
	recipes.DELETE("/:id", auth, DeleteRecipeHandler(s.Recipes))
	recipes.DELETE("/save/:recipeId", auth, UnsaveRecipeHandler(s.Recipes))
}
