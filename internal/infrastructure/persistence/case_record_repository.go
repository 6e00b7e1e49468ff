package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/funeralworks/backend/internal/domain/casework"
	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCaseRecordRepository implements CaseRecordRepository using GORM
type GormCaseRecordRepository struct {
	db *gorm.DB
}

// NewGormCaseRecordRepository creates a new GormCaseRecordRepository
func NewGormCaseRecordRepository(db *gorm.DB) *GormCaseRecordRepository {
	return &GormCaseRecordRepository{db: db}
}

// FindByID finds a case record by its ID
func (r *GormCaseRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*casework.CaseRecord, error) {
	var record casework.CaseRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByRecordNumber finds a case record by its record number
func (r *GormCaseRecordRepository) FindByRecordNumber(ctx context.Context, recordNumber string) (*casework.CaseRecord, error) {
	var record casework.CaseRecord
	if err := r.db.WithContext(ctx).
		Where("record_number = ?", recordNumber).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds case records with filtering and pagination
func (r *GormCaseRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]casework.CaseRecord, error) {
	var records []casework.CaseRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&casework.CaseRecord{}),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts case records matching the filter
func (r *GormCaseRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&casework.CaseRecord{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if a case record exists
func (r *GormCaseRecordRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&casework.CaseRecord{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a case record. Two creators racing on the same
// generated record number hit the unique constraint; that surfaces as
// ALREADY_EXISTS so the caller can regenerate and retry instead of
// failing with a raw storage error.
func (r *GormCaseRecordRepository) Save(ctx context.Context, record *casework.CaseRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", "A case with this record number already exists")
		}
		return err
	}
	return nil
}

// SaveWithHistory persists a status transition: the record update and its
// audit entry commit together or not at all. The update is guarded by an
// optimistic version check; a stale version fails with
// CONCURRENT_MODIFICATION and writes nothing.
func (r *GormCaseRecordRepository) SaveWithHistory(ctx context.Context, record *casework.CaseRecord, entry *casework.StatusHistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Get current version from database. Scan does not report
		// gorm.ErrRecordNotFound, so a missing row is detected via
		// RowsAffected.
		var currentVersion int
		versionQuery := tx.Model(&casework.CaseRecord{}).
			Where("id = ?", record.ID).
			Select("version").
			Scan(&currentVersion)
		if versionQuery.Error != nil {
			return versionQuery.Error
		}
		if versionQuery.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		// Check version matches
		if currentVersion != record.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The case has been modified by another user")
		}

		// Increment version
		record.Version++
		record.UpdatedAt = time.Now()

		// A transition only touches the workflow columns
		result := tx.Model(&casework.CaseRecord{}).
			Where("id = ? AND version = ?", record.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":              record.Status,
				"progress_percentage": record.ProgressPercentage,
				"version":             record.Version,
				"updated_at":          record.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The case has been modified by another user")
		}

		// Append the audit entry in the same transaction
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return nil
	})
}

// Delete deletes a case record together with its documents and history
func (r *GormCaseRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("case_id = ?", id).Delete(&casework.CaseDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("case_id = ?", id).Delete(&casework.StatusHistoryEntry{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&casework.CaseRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// existsByRecordNumber checks if a record number is already taken
func (r *GormCaseRecordRepository) existsByRecordNumber(ctx context.Context, recordNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&casework.CaseRecord{}).
		Where("record_number = ?", recordNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateRecordNumber generates a unique case record number
// Format: FC-YYYY-NNNNN (e.g., FC-2026-00001)
func (r *GormCaseRecordRepository) GenerateRecordNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("FC-%d-", year)

	// Get the highest record number for this year
	var lastRecord casework.CaseRecord
	err := r.db.WithContext(ctx).
		Model(&casework.CaseRecord{}).
		Where("record_number LIKE ?", prefix+"%").
		Order("record_number DESC").
		First(&lastRecord).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastRecord.RecordNumber != "" {
		// Parse the number from the last record number
		parts := strings.Split(lastRecord.RecordNumber, "-")
		if len(parts) == 3 {
			var num int64
			_, parseErr := fmt.Sscanf(parts[2], "%d", &num)
			if parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	recordNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	// Verify uniqueness
	exists, err := r.existsByRecordNumber(ctx, recordNumber)
	if err != nil {
		return "", err
	}
	if exists {
		// If taken, try incrementing until we find a free one
		for i := 0; i < 100; i++ {
			nextNum++
			recordNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.existsByRecordNumber(ctx, recordNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
	}

	return recordNumber, nil
}

// applyFilter applies filter options to the query
func (r *GormCaseRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	orderBy := ValidateSortField(filter.OrderBy, CaseSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCaseRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where(
			"record_number ILIKE ? OR full_name ILIKE ? OR id_number ILIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}

	// Apply field filters
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if assignedTo, ok := filter.Filters["assigned_to"]; ok {
		query = query.Where("assigned_to = ?", assignedTo)
	}

	return query
}
