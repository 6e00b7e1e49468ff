package persistence

import (
	"context"
	"errors"

	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCaseDocumentRepository implements CaseDocumentRepository using GORM
type GormCaseDocumentRepository struct {
	db *gorm.DB
}

// NewGormCaseDocumentRepository creates a new GormCaseDocumentRepository
func NewGormCaseDocumentRepository(db *gorm.DB) *GormCaseDocumentRepository {
	return &GormCaseDocumentRepository{db: db}
}

// FindByID finds a case document by its ID
func (r *GormCaseDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*casework.CaseDocument, error) {
	var doc casework.CaseDocument
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindByCase returns all documents for a case, newest upload first
func (r *GormCaseDocumentRepository) FindByCase(ctx context.Context, caseID uuid.UUID) ([]casework.CaseDocument, error) {
	var docs []casework.CaseDocument
	if err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("uploaded_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// HasDocumentFor reports whether the case holds at least one confirmed
// document captured while the given status was active. Registrations
// whose bytes were never verified do not count.
func (r *GormCaseDocumentRepository) HasDocumentFor(ctx context.Context, caseID uuid.UUID, status casework.CaseStatus) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&casework.CaseDocument{}).
		Where("case_id = ? AND status_when_uploaded = ? AND upload_confirmed = ?", caseID, status, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a case document
func (r *GormCaseDocumentRepository) Save(ctx context.Context, doc *casework.CaseDocument) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// Delete removes a case document
func (r *GormCaseDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&casework.CaseDocument{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
