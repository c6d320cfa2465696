package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/you/clubsvc/domain"
)

// PresignExpiry is how long a gated download link stays usable.
const PresignExpiry = 5 * time.Minute

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// DocumentServiceImpl implements domain.DocumentService
type DocumentServiceImpl struct {
	docRepo domain.DocumentRepository
	storage domain.ObjectStorage
	now     func() time.Time
}

// NewDocumentService creates a new document service
func NewDocumentService(docRepo domain.DocumentRepository, storage domain.ObjectStorage) *DocumentServiceImpl {
	return &DocumentServiceImpl{
		docRepo: docRepo,
		storage: storage,
		now:     time.Now,
	}
}

// StorageKey builds the bucket key for an upload:
// <category>/<unix-ms>-<sanitized-filename>.
func (s *DocumentServiceImpl) StorageKey(category, filename string) string {
	safe := strings.Join(strings.Fields(filename), "-")
	safe = unsafeFilenameChars.ReplaceAllString(safe, "")
	return fmt.Sprintf("%s/%d-%s", category, s.now().UnixMilli(), safe)
}

// Upload implements domain.DocumentService
func (s *DocumentServiceImpl) Upload(ctx context.Context, up domain.DocumentUpload) (*domain.Document, error) {
	if !up.Access.Valid() {
		return nil, domain.ErrInvalidAccess
	}

	key := s.StorageKey(up.Category, up.Filename)
	if err := s.storage.Put(ctx, key, up.ContentType, up.Body); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := &domain.Document{
		Title:        up.Title,
		Description:  up.Description,
		StorageKey:   key,
		FileType:     up.ContentType,
		FileSize:     up.Size,
		Category:     up.Category,
		Access:       up.Access,
		UploadedByID: up.UploadedByID,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to persist document: %w", err)
	}

	return doc, nil
}

// List implements domain.DocumentService
func (s *DocumentServiceImpl) List(ctx context.Context, viewer domain.Role) ([]*domain.Document, error) {
	return s.docRepo.ListAccessible(ctx, viewer)
}

// DownloadURL implements domain.DocumentService. Gated files are never
// linked directly; the caller gets a short-lived presigned URL.
func (s *DocumentServiceImpl) DownloadURL(ctx context.Context, viewer domain.Role, docID uint) (string, error) {
	doc, err := s.docRepo.FindByID(ctx, docID)
	if err != nil {
		return "", err
	}

	if !viewer.CanAccess(doc.Access) {
		return "", domain.ErrForbidden
	}

	url, err := s.storage.PresignGet(ctx, doc.StorageKey, PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return url, nil
}

// Delete implements domain.DocumentService
func (s *DocumentServiceImpl) Delete(ctx context.Context, docID uint) error {
	doc, err := s.docRepo.FindByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.StorageKey); err != nil {
		return fmt.Errorf("failed to delete stored object: %w", err)
	}
	return s.docRepo.Delete(ctx, docID)
}
