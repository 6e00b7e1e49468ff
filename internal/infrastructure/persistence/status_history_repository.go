package persistence

import (
	"context"

	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStatusHistoryRepository implements StatusHistoryRepository using GORM.
// The history table is append-only: entries are never updated or deleted
// except when their case is removed.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

// NewGormStatusHistoryRepository creates a new GormStatusHistoryRepository
func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

// Append adds a history entry
func (r *GormStatusHistoryRepository) Append(ctx context.Context, entry *casework.StatusHistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByCase returns the full audit trail for a case in chronological
// order, with the insertion sequence breaking timestamp ties
func (r *GormStatusHistoryRepository) FindByCase(ctx context.Context, caseID uuid.UUID) ([]casework.StatusHistoryEntry, error) {
	var entries []casework.StatusHistoryEntry
	if err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("changed_at ASC, seq ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
