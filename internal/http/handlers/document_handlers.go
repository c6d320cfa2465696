package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/clubsvc/domain"
	"github.com/you/clubsvc/internal/http/middleware"
)

// DocumentHandlers handles gated document upload, listing and download.
type DocumentHandlers struct {
	docSvc domain.DocumentService
}

// NewDocumentHandlers creates new document handlers
func NewDocumentHandlers(docSvc domain.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{docSvc: docSvc}
}

// Upload stores a multipart file upload behind an access level
func (h *DocumentHandlers) Upload(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	title := c.PostForm("title")
	category := c.PostForm("category")
	if title == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File, title, and category are required"})
		return
	}

	access := domain.AccessLevel(c.DefaultPostForm("access", string(domain.AccessAllMembers)))

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	doc, err := h.docSvc.Upload(c.Request.Context(), domain.DocumentUpload{
		Title:        title,
		Description:  c.PostForm("description"),
		Category:     category,
		Access:       access,
		Filename:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Body:         file,
		UploadedByID: user.ID,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidAccess:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid access level"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload document"})
		}
		return
	}

	c.JSON(http.StatusCreated, documentJSON(doc))
}

// List returns documents the viewer's role rank can read
func (h *DocumentHandlers) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	docs, err := h.docSvc.List(c.Request.Context(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	out := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		out = append(out, documentJSON(doc))
	}
	c.JSON(http.StatusOK, gin.H{"documents": out})
}

// Download redirects to a short-lived presigned link after the access
// gate passes
func (h *DocumentHandlers) Download(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	url, err := h.docSvc.DownloadURL(c.Request.Context(), user.Role, uint(id))
	if err != nil {
		switch err {
		case domain.ErrDocumentNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		case domain.ErrForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download link"})
		}
		return
	}

	c.Redirect(http.StatusFound, url)
}

// Delete removes a document and its stored object
func (h *DocumentHandlers) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	if err := h.docSvc.Delete(c.Request.Context(), uint(id)); err != nil {
		switch err {
		case domain.ErrDocumentNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func documentJSON(doc *domain.Document) gin.H {
	return gin.H{
		"id":          doc.ID,
		"title":       doc.Title,
		"description": doc.Description,
		"file_type":   doc.FileType,
		"file_size":   doc.FileSize,
		"category":    doc.Category,
		"access":      doc.Access,
		"created_at":  doc.CreatedAt,
	}
}
