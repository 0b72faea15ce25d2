package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

// Task represents a unit of work inside a project. ProjectID and OwnerID are
// immutable after creation; OwnerID is denormalized from the acting user and
// is expected to equal the parent project's owner.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Status      string     `json:"status" gorm:"size:20;default:'todo';index"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	ProjectID   uuid.UUID  `json:"project" gorm:"type:char(36);not null;index"`
	OwnerID     uuid.UUID  `json:"owner" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID and default status before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusTodo
	}
	return nil
}

// ValidTaskStatus reports whether s is a recognized task status.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TaskCounts holds per-status task counts for one project.
type TaskCounts struct {
	Total      int64
	Todo       int64
	InProgress int64
	Done       int64
}
