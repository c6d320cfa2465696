package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/clubsvc/domain"
)

// DocumentRepositoryImpl implements domain.DocumentRepository using GORM
type DocumentRepositoryImpl struct {
	db *gorm.DB
}

// DBDocument represents the database model for Document
type DBDocument struct {
	ID           uint   `gorm:"primaryKey"`
	Title        string `gorm:"size:255"`
	Description  string
	StorageKey   string `gorm:"size:512"`
	FileType     string `gorm:"size:128"`
	FileSize     int64
	Category     string `gorm:"index;size:64"`
	Access       string `gorm:"index;size:32"`
	UploadedByID uint   `gorm:"index"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBDocument) TableName() string {
	return "documents"
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) domain.DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

// Create implements domain.DocumentRepository
func (r *DocumentRepositoryImpl) Create(ctx context.Context, doc *domain.Document) error {
	dbDoc := documentToDB(doc)
	if err := r.db.WithContext(ctx).Create(dbDoc).Error; err != nil {
		return err
	}
	doc.ID = dbDoc.ID
	doc.CreatedAt = dbDoc.CreatedAt
	return nil
}

// FindByID implements domain.DocumentRepository
func (r *DocumentRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Document, error) {
	var dbDoc DBDocument
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbDoc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return documentToDomain(&dbDoc), nil
}

// ListAccessible implements domain.DocumentRepository. The access filter
// lives in Go, not SQL: the rank ordering is a property of the closed
// enum, and the document count is small.
func (r *DocumentRepositoryImpl) ListAccessible(ctx context.Context, viewer domain.Role) ([]*domain.Document, error) {
	var dbDocs []DBDocument
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbDocs).Error; err != nil {
		return nil, err
	}

	docs := make([]*domain.Document, 0, len(dbDocs))
	for i := range dbDocs {
		doc := documentToDomain(&dbDocs[i])
		if viewer.CanAccess(doc.Access) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// Delete implements domain.DocumentRepository
func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBDocument{}).Error
}

func documentToDB(doc *domain.Document) *DBDocument {
	return &DBDocument{
		ID:           doc.ID,
		Title:        doc.Title,
		Description:  doc.Description,
		StorageKey:   doc.StorageKey,
		FileType:     doc.FileType,
		FileSize:     doc.FileSize,
		Category:     doc.Category,
		Access:       string(doc.Access),
		UploadedByID: doc.UploadedByID,
	}
}

func documentToDomain(dbDoc *DBDocument) *domain.Document {
	return &domain.Document{
		ID:           dbDoc.ID,
		Title:        dbDoc.Title,
		Description:  dbDoc.Description,
		StorageKey:   dbDoc.StorageKey,
		FileType:     dbDoc.FileType,
		FileSize:     dbDoc.FileSize,
		Category:     dbDoc.Category,
		Access:       domain.AccessLevel(dbDoc.Access),
		UploadedByID: dbDoc.UploadedByID,
		CreatedAt:    dbDoc.CreatedAt,
	}
}
