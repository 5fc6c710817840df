package domain

import (
	"context"
	"time"
)

// Job statuses
const (
	JobStatusScheduled  = "scheduled"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
)

// ManufacturingJob tracks production work; the dashboard only counts them
type ManufacturingJob struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JobNumber string    `json:"job_number" gorm:"uniqueIndex;not null"`
	ProductID uint      `json:"product_id" gorm:"index"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	Status    string    `json:"status" gorm:"not null;default:'scheduled'"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (ManufacturingJob) TableName() string {
	return "manufacturing_jobs"
}

// JobRepository defines the contract for manufacturing job data access
type JobRepository interface {
	// CountByStatus counts jobs in a status. Zero from/to means unbounded.
	CountByStatus(ctx context.Context, status string, from, to time.Time) (int64, error)
}
