// File: internal/prayer/repository.go
package prayer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"iqamah_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for prayer data operations. Every method
// that touches an existing record filters by user ID, so cross-user access
// is structurally impossible.
type Repository interface {
	Create(ctx context.Context, prayer *Prayer) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Prayer, error)
	FindByUserPrayerDate(ctx context.Context, userID uuid.UUID, name Name, date time.Time) (*Prayer, error)
	FindForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]Prayer, error)
	List(ctx context.Context, userID uuid.UUID, query ListQuery) ([]Prayer, int64, error)
	UpdateType(ctx context.Context, userID, id uuid.UUID, prayerType Type) (*Prayer, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByType(ctx context.Context, userID uuid.UUID, start, end *time.Time) (Stats, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM prayer repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a new prayer record. A concurrent duplicate create loses
// the race at the unique index and surfaces as the same Conflict the
// service's pre-check produces.
func (r *gormRepository) Create(ctx context.Context, prayer *Prayer) error {
	if err := r.db.WithContext(ctx).Create(prayer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return common.ErrConflict.WithDetails("Prayer already exists for this date and prayer name.")
		}
		return fmt.Errorf("failed to create prayer: %w", err)
	}
	return nil
}

// FindByID retrieves a prayer by ID, scoped to its owner.
func (r *gormRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*Prayer, error) {
	var p Prayer
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Prayer not found.")
		}
		return nil, err
	}
	return &p, nil
}

// FindByUserPrayerDate looks up the record for one (user, prayer, day) triple.
func (r *gormRepository) FindByUserPrayerDate(ctx context.Context, userID uuid.UUID, name Name, date time.Time) (*Prayer, error) {
	var p Prayer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND prayer_name = ? AND date = ?", userID, name, date).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Prayer not found.")
		}
		return nil, err
	}
	return &p, nil
}

// FindForDate retrieves all of a user's records for one calendar day,
// ordered by prayer name.
func (r *gormRepository) FindForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]Prayer, error) {
	var prayers []Prayer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("prayer_name ASC").
		Find(&prayers).Error
	return prayers, err
}

// List returns a page of the user's records plus the unpaginated total,
// ordered by date descending then prayer name ascending.
func (r *gormRepository) List(ctx context.Context, userID uuid.UUID, query ListQuery) ([]Prayer, int64, error) {
	dbQuery := r.db.WithContext(ctx).Model(&Prayer{}).Where("user_id = ?", userID)
	if query.Date != nil {
		dbQuery = dbQuery.Where("date = ?", *query.Date)
	}

	var totalCount int64
	if err := dbQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count prayers: %w", err)
	}

	pq := common.PaginationQuery{Page: query.Page, Limit: query.Limit}
	var prayers []Prayer
	err := dbQuery.
		Order("date DESC").
		Order("prayer_name ASC").
		Offset(pq.Offset()).
		Limit(pq.PageLimit()).
		Find(&prayers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list prayers: %w", err)
	}
	return prayers, totalCount, nil
}

// UpdateType changes the prayer type of an owned record and returns the
// updated row.
func (r *gormRepository) UpdateType(ctx context.Context, userID, id uuid.UUID, prayerType Type) (*Prayer, error) {
	result := r.db.WithContext(ctx).
		Model(&Prayer{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("prayer_type", prayerType)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, common.ErrNotFound.WithDetails("Prayer not found.")
	}
	return r.FindByID(ctx, userID, id)
}

// Delete removes an owned record.
func (r *gormRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Prayer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Prayer not found.")
	}
	return nil
}

// CountByType groups the user's records by prayer type, optionally bounded
// to an inclusive date range.
func (r *gormRepository) CountByType(ctx context.Context, userID uuid.UUID, start, end *time.Time) (Stats, error) {
	dbQuery := r.db.WithContext(ctx).Model(&Prayer{}).Where("user_id = ?", userID)
	if start != nil {
		dbQuery = dbQuery.Where("date >= ?", *start)
	}
	if end != nil {
		dbQuery = dbQuery.Where("date <= ?", *end)
	}

	var rows []struct {
		PrayerType Type
		Count      int64
	}
	err := dbQuery.
		Select("prayer_type, COUNT(*) as count").
		Group("prayer_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate prayer stats: %w", err)
	}

	stats := make(Stats, len(rows))
	for _, row := range rows {
		stats[row.PrayerType] = row.Count
	}
	return stats, nil
}
