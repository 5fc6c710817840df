package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ndumiso/bizstock/internal/manufacturing/domain"
	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GORM job repository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormJobRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.ManufacturingJob{})
}

// CountByStatus counts jobs in a status. Zero from/to means unbounded.
func (r *GormJobRepository) CountByStatus(ctx context.Context, status string, from, to time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.ManufacturingJob{}).Where("status = ?", status)
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at < ?", to)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}
