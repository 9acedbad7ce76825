package api

import (
	"errors"                             // Error matching
	"net/http"                           // HTTP status codes
	"recipe_manager/internal/domain"     // Domain error kinds
	"recipe_manager/internal/middleware" // Auth guard context accessors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Messages maps an error kind to the message returned for it
type Messages map[error]string

// errorKinds lists every domain error kind with its HTTP status, in match order
var errorKinds = []struct {
	kind   error
	status int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusBadRequest},
	{domain.ErrConflict, http.StatusBadRequest},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrNotFound, http.StatusNotFound},
}

// respondError writes {"message": ...} with the status for err's kind.
// Unknown errors are logged and answered with 500 and the fallback message.
func respondError(c *gin.Context, err error, msgs Messages, fallback string) {
	for _, k := range errorKinds {
		if !errors.Is(err, k.kind) {
			continue
		}
		msg, ok := msgs[k.kind]
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			msg, ok = verr.Msg, true // Validation errors carry their own message
		}
		if !ok {
			msg = k.kind.Error()
		}
		c.JSON(k.status, gin.H{"message": msg})
		return
	}
	logrus.WithFields(logrus.Fields{
		"method": c.Request.Method, // Request method
		"path":   c.FullPath(),     // Route pattern
		"error":  err.Error(),      // Error message
	}).Error(fallback)
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
}

// badRequest answers a request whose body failed to bind
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
}

// currentUser reads the authenticated user id or aborts with 401
func currentUser(c *gin.Context) (string, bool) {
	id, ok := middleware.UserID(c) // Set by the auth guard
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "login required"})
		return "", false
	}
	return id, true
}
