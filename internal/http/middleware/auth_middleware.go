package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/clubsvc/domain"
)

// Context keys set by the authorization gate.
const (
	CtxUser  = "user"
	CtxToken = "session_token"
)

// AuthMW is the authorization gate: it resolves the session cookie into
// a user and enforces a minimum role where one is required.
type AuthMW struct {
	sessionSvc domain.SessionService
	cookieName string
}

// NewAuthMW creates new auth middleware
func NewAuthMW(sessionSvc domain.SessionService, cookieName string) *AuthMW {
	return &AuthMW{
		sessionSvc: sessionSvc,
		cookieName: cookieName,
	}
}

// Authenticate rejects requests without a live session. The session
// service performs both the signature check and the revocation check;
// a deleted row fails here even when the signature still verifies.
func (mw *AuthMW) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(mw.cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := mw.sessionSvc.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxToken, token)
		c.Next()
	}
}

// RequireRole enforces the fixed role hierarchy on top of Authenticate.
func (mw *AuthMW) RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if !user.Role.AtLeast(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in the context by
// Authenticate, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
