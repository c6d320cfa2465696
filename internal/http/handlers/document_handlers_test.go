package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/you/clubsvc/domain"
	"github.com/you/clubsvc/internal/http/middleware"
	"github.com/you/clubsvc/internal/mocks"
)

func documentRouter(svc domain.DocumentService, user *domain.User) *gin.Engine {
	h := NewDocumentHandlers(svc)
	inject := func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CtxUser, user)
		}
	}
	r := gin.New()
	r.POST("/documents", inject, h.Upload)
	r.GET("/documents", inject, h.List)
	r.GET("/documents/:id/download", inject, h.Download)
	r.DELETE("/documents/:id", inject, h.Delete)
	return r
}

func multipartUpload(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadRequiresFile(t *testing.T) {
	r := documentRouter(mocks.NewMockDocumentService(), &domain.User{ID: 2, Role: domain.RoleCommittee})

	body, contentType := multipartUpload(t, map[string]string{"title": "AGM Minutes", "category": "minutes"}, "")
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadDefaultsToAllMembers(t *testing.T) {
	svc := mocks.NewMockDocumentService()
	var got domain.DocumentUpload
	svc.UploadFunc = func(ctx context.Context, up domain.DocumentUpload) (*domain.Document, error) {
		got = up
		return &domain.Document{ID: 1, Title: up.Title, Access: up.Access}, nil
	}
	r := documentRouter(svc, &domain.User{ID: 2, Role: domain.RoleCommittee})

	body, contentType := multipartUpload(t, map[string]string{"title": "Fixtures", "category": "fixtures"}, "fixtures.pdf")
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, domain.AccessAllMembers, got.Access)
	require.Equal(t, "fixtures.pdf", got.Filename)
	require.Equal(t, uint(2), got.UploadedByID)
	require.NotNil(t, got.Body)
	data, err := io.ReadAll(got.Body)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestUploadInvalidAccessLevel(t *testing.T) {
	r := documentRouter(mocks.NewMockDocumentService(), &domain.User{ID: 2, Role: domain.RoleCommittee})

	// Default mock rejects with ErrInvalidAccess.
	body, contentType := multipartUpload(t, map[string]string{
		"title":    "Secret",
		"category": "misc",
		"access":   "EVERYONE",
	}, "secret.pdf")
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid access level")
}

func TestListFiltersByViewerRole(t *testing.T) {
	svc := mocks.NewMockDocumentService()
	svc.ListFunc = func(ctx context.Context, viewer domain.Role) ([]*domain.Document, error) {
		require.Equal(t, domain.RolePlayer, viewer)
		return []*domain.Document{
			{ID: 1, Title: "Fixtures", Access: domain.AccessAllMembers},
			{ID: 2, Title: "Selection Policy", Access: domain.AccessPlayingMembers},
		}, nil
	}
	r := documentRouter(svc, &domain.User{ID: 3, Role: domain.RolePlayer})

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Selection Policy")
}

func TestDownloadRedirectsToPresignedURL(t *testing.T) {
	svc := mocks.NewMockDocumentService()
	svc.DownloadURLFunc = func(ctx context.Context, viewer domain.Role, docID uint) (string, error) {
		return "https://bucket.test/minutes/1-agm.pdf?X-Amz-Expires=300", nil
	}
	r := documentRouter(svc, &domain.User{ID: 3, Role: domain.RoleMember})

	req := httptest.NewRequest(http.MethodGet, "/documents/1/download", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Contains(t, w.Header().Get("Location"), "X-Amz-Expires=300")
}

func TestDownloadForbiddenForLowerRank(t *testing.T) {
	svc := mocks.NewMockDocumentService()
	svc.DownloadURLFunc = func(ctx context.Context, viewer domain.Role, docID uint) (string, error) {
		return "", domain.ErrForbidden
	}
	r := documentRouter(svc, &domain.User{ID: 3, Role: domain.RoleMember})

	req := httptest.NewRequest(http.MethodGet, "/documents/1/download", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestDownloadUnknownDocument(t *testing.T) {
	r := documentRouter(mocks.NewMockDocumentService(), &domain.User{ID: 3, Role: domain.RoleAdmin})

	req := httptest.NewRequest(http.MethodGet, "/documents/99/download", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteInvalidID(t *testing.T) {
	r := documentRouter(mocks.NewMockDocumentService(), &domain.User{ID: 1, Role: domain.RoleAdmin})

	req := httptest.NewRequest(http.MethodDelete, "/documents/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
