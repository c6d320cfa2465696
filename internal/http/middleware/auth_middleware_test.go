package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/you/clubsvc/domain"
	"github.com/you/clubsvc/internal/mocks"
)

const testCookie = "club_session"

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(sessionSvc domain.SessionService, required domain.Role) *gin.Engine {
	mw := NewAuthMW(sessionSvc, testCookie)
	r := gin.New()
	grp := r.Group("/", mw.Authenticate())
	if required != "" {
		grp.Use(mw.RequireRole(required))
	}
	grp.GET("/ping", func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
	})
	return r
}

func doGet(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingCookie(t *testing.T) {
	r := protectedRouter(mocks.NewMockSessionService(), "")
	w := doGet(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateDeadSession(t *testing.T) {
	sessions := mocks.NewMockSessionService()
	sessions.VerifyFunc = func(ctx context.Context, token string) (*domain.User, error) {
		return nil, domain.ErrSessionNotFound
	}
	r := protectedRouter(sessions, "")
	w := doGet(r, "revoked-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid or expired session")
}

func TestAuthenticateLiveSession(t *testing.T) {
	sessions := mocks.NewMockSessionService()
	sessions.VerifyFunc = func(ctx context.Context, token string) (*domain.User, error) {
		return &domain.User{ID: 9, Role: domain.RoleMember}, nil
	}
	r := protectedRouter(sessions, "")
	w := doGet(r, "live-token")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":9`)
}

func TestRequireRoleHierarchy(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		required domain.Role
		want     int
	}{
		{"member blocked from committee", domain.RoleMember, domain.RoleCommittee, http.StatusForbidden},
		{"player blocked from committee", domain.RolePlayer, domain.RoleCommittee, http.StatusForbidden},
		{"committee allowed exactly", domain.RoleCommittee, domain.RoleCommittee, http.StatusOK},
		{"admin outranks committee", domain.RoleAdmin, domain.RoleCommittee, http.StatusOK},
		{"committee blocked from admin", domain.RoleCommittee, domain.RoleAdmin, http.StatusForbidden},
		{"admin allowed for admin", domain.RoleAdmin, domain.RoleAdmin, http.StatusOK},
		{"unknown role blocked everywhere", domain.Role("SUPERFAN"), domain.RoleMember, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := mocks.NewMockSessionService()
			sessions.VerifyFunc = func(ctx context.Context, token string) (*domain.User, error) {
				return &domain.User{ID: 1, Role: tt.role}, nil
			}
			r := protectedRouter(sessions, tt.required)
			w := doGet(r, "live-token")
			require.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCurrentUserWithoutAuthenticate(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.Nil(t, CurrentUser(c))
}
