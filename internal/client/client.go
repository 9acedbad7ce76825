// Package client is a typed Go client for the recipe API.
//
// The bearer token lives in a TokenStore. Session state is never cached in
// memory: Session re-derives it from the stored token on every call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"recipe_manager/internal/domain"
	"recipe_manager/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Session is the login state derived from the stored token
type Session struct {
	LoggedIn  bool
	UserID    string
	ExpiresAt time.Time
}

// Client calls the recipe API
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	now     func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the API rooted at baseURL, e.g. "http://localhost:3000/api"
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session derives the login state from the stored token. The signature is not
// checked here; the server does that on every guarded request.
func (c *Client) Session() Session {
	token, err := c.tokens.Token()
	if err != nil || token == "" {
		return Session{}
	}
	var claims utils.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Session{}
	}
	if claims.UserID == "" || claims.ExpiresAt == nil || !c.now().Before(claims.ExpiresAt.Time) {
		return Session{}
	}
	return Session{LoggedIn: true, UserID: claims.UserID, ExpiresAt: claims.ExpiresAt.Time}
}

type messageResponse struct {
	Message string `json:"message"`
}

type recipeBody struct {
	Title        string              `json:"title"`
	Ingredients  []domain.Ingredient `json:"ingredients"`
	Instructions string              `json:"instructions"`
	Image        string              `json:"image"`
}

func newRecipeBody(in domain.RecipeInput) recipeBody {
	return recipeBody{Title: in.Title, Ingredients: in.Ingredients, Instructions: in.Instructions, Image: in.Image}
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/users/register", body, nil)
}

// Login authenticates and persists the returned token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &out); err != nil {
		return "", err
	}
	if err := c.tokens.SetToken(out.Token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return out.Message, nil
}

// Logout forgets the stored token
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Profile returns the logged-in user
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile overwrites the logged-in user's username and bio
func (c *Client) UpdateProfile(ctx context.Context, username, bio string) (*domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	body := map[string]string{"username": username, "bio": bio}
	if err := c.do(ctx, http.MethodPut, "/users/profile", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ChangePassword replaces the logged-in user's password
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPut, "/users/change-password", body, nil)
}

// CreateRecipe stores a recipe owned by the logged-in user
func (c *Client) CreateRecipe(ctx context.Context, in domain.RecipeInput) (*domain.Recipe, error) {
	var out struct {
		Recipe domain.Recipe `json:"recipe"`
	}
	if err := c.do(ctx, http.MethodPost, "/recipes/newRecipe", newRecipeBody(in), &out); err != nil {
		return nil, err
	}
	return &out.Recipe, nil
}

// Recipes lists every recipe
func (c *Client) Recipes(ctx context.Context) ([]domain.Recipe, error) {
	var out struct {
		Recipes []domain.Recipe `json:"recipes"`
	}
	if err := c.do(ctx, http.MethodGet, "/recipes", nil, &out); err != nil {
		return nil, err
	}
	return out.Recipes, nil
}

// Recipe fetches one recipe
func (c *Client) Recipe(ctx context.Context, id string) (*domain.Recipe, error) {
	var out struct {
		Recipe domain.Recipe `json:"recipe"`
	}
	if err := c.do(ctx, http.MethodGet, "/recipes/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Recipe, nil
}

// UserRecipes lists the recipes owned by userID
func (c *Client) UserRecipes(ctx context.Context, userID string) ([]domain.Recipe, error) {
	var out []domain.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/user/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateRecipe replaces a recipe the logged-in user owns
func (c *Client) UpdateRecipe(ctx context.Context, id string, in domain.RecipeInput) (*domain.Recipe, error) {
	var out struct {
		Recipe domain.Recipe `json:"recipe"`
	}
	if err := c.do(ctx, http.MethodPut, "/recipes/"+id, newRecipeBody(in), &out); err != nil {
		return nil, err
	}
	return &out.Recipe, nil
}

// DeleteRecipe removes a recipe the logged-in user owns
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/recipes/"+id, nil, nil)
}

// SaveRecipe bookmarks a recipe
func (c *Client) SaveRecipe(ctx context.Context, recipeID string) (*domain.SavedRecipe, error) {
	var out struct {
		SavedRecipe domain.SavedRecipe `json:"savedRecipe"`
	}
	if err := c.do(ctx, http.MethodPost, "/recipes/save/"+recipeID, nil, &out); err != nil {
		return nil, err
	}
	return &out.SavedRecipe, nil
}

// UnsaveRecipe removes a bookmark
func (c *Client) UnsaveRecipe(ctx context.Context, recipeID string) error {
	return c.do(ctx, http.MethodDelete, "/recipes/save/"+recipeID, nil, nil)
}

// SavedRecipes lists userID's bookmarks
func (c *Client) SavedRecipes(ctx context.Context, userID string) ([]domain.SavedRecipe, error) {
	var out struct {
		SavedRecipes []domain.SavedRecipe `json:"savedRecipes"`
	}
	if err := c.do(ctx, http.MethodGet, "/recipes/savedRecipes/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return out.SavedRecipes, nil
}

// do sends a JSON request, attaching the stored token when there is one.
// A 401 clears the stored token so Session reports logged out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.tokens.Token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var msg messageResponse
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if resp.StatusCode == http.StatusUnauthorized {
			_ = c.tokens.Clear()
		}
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
