package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project statuses.
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
)

// Project represents a user-owned collection of tasks.
// OwnerID is set once at creation and never changes.
type Project struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"size:20;default:'active';index"`
	OwnerID     uuid.UUID `json:"owner" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
}

// BeforeCreate sets UUID and default status before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	return nil
}

// ValidProjectStatus reports whether s is a recognized project status.
func ValidProjectStatus(s string) bool {
	return s == ProjectStatusActive || s == ProjectStatusCompleted
}

// ProjectWithCounts is a project enriched with its per-status task counts,
// attached to the list representation.
type ProjectWithCounts struct {
	Project
	TotalTasks      int64 `json:"totalTasks"`
	TodoTasks       int64 `json:"todoTasks"`
	InProgressTasks int64 `json:"inProgressTasks"`
	DoneTasks       int64 `json:"doneTasks"`
}
