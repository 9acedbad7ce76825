package api

import (
	"errors"                          // Error matching
	"net/http"                        // HTTP status codes
	"recipe_manager/internal/domain"  // Domain error kinds
	"recipe_manager/internal/service" // User service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the body of POST /users/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`    // Display name
	Email    string `json:"email" binding:"required,email"` // Login key
	Password string `json:"password" binding:"required"`    // Plain password, hashed before storage
}

// LoginRequest is the body of POST /users/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Login key
	Password string `json:"password" binding:"required"` // Plain password
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Message string `json:"message"` // Greeting
	Token   string `json:"token"`   // Bearer token
}

// UpdateProfileRequest is the body of PUT /users/profile
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required"` // New display name
	Bio      string `json:"bio"`                         // New bio, may be empty
}

// ChangePasswordRequest is the body of PUT /users/change-password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"` // Must match the stored hash
	NewPassword     string `json:"newPassword" binding:"required"`     // Replacement password
}

// RegisterHandler creates a new user account
func RegisterHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user, err := users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			respondError(c, err, Messages{domain.ErrConflict: "User already exists"}, "Error registering user")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Display name
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered"}) // No token on registration
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := users.Login(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"}) // Unknown email is a bad request, not a missing resource
			return
		}
		if err != nil {
			respondError(c, err, Messages{domain.ErrInvalidCredentials: "Incorrect password"}, "Error logging in user")
			return
		}
		c.JSON(http.StatusOK, LoginResponse{Message: res.Message, Token: res.Token})
	}
}

// ProfileHandler returns the authenticated user without the password hash
func ProfileHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		user, err := users.GetProfile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, Messages{domain.ErrNotFound: "User not found"}, "Error fetching user profile")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfileHandler overwrites the authenticated user's username and bio
func UpdateProfileHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user, err := users.UpdateProfile(c.Request.Context(), userID, req.Username, req.Bio)
		if err != nil {
			respondError(c, err, Messages{domain.ErrNotFound: "User not found"}, "Error updating profile")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
	}
}

// ChangePasswordHandler replaces the authenticated user's password
func ChangePasswordHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req ChangePasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		err := users.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
		if err != nil {
			respondError(c, err, Messages{
				domain.ErrInvalidCredentials: "Current password is incorrect",
				domain.ErrNotFound:           "User not found",
			}, "Error changing password")
			return
		}
		logrus.WithField("user_id", userID).Info("Password changed")
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}
