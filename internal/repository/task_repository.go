package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/model"
)

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, q ListQuery) ([]model.Task, error)
	CountByProject(ctx context.Context, projectID uuid.UUID, q ListQuery) (int64, error)
	CountByProjectAndStatus(ctx context.Context, projectID uuid.UUID, status string) (int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID.
func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// projectScope builds the shared predicate for list and count: scoped to the
// project, optionally narrowed by status and by a substring match on the title.
func (r *taskRepository) projectScope(ctx context.Context, projectID uuid.UUID, q ListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&model.Task{}).Where("project_id = ?", projectID)
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Search != "" {
		tx = tx.Where("title LIKE ?", "%"+q.Search+"%")
	}
	return tx
}

// ListByProject returns one page of the project's tasks, newest first.
func (r *taskRepository) ListByProject(ctx context.Context, projectID uuid.UUID, q ListQuery) ([]model.Task, error) {
	var tasks []model.Task
	err := r.projectScope(ctx, projectID, q).
		Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByProject counts all tasks matching the same predicate as
// ListByProject, without pagination.
func (r *taskRepository) CountByProject(ctx context.Context, projectID uuid.UUID, q ListQuery) (int64, error) {
	var count int64
	if err := r.projectScope(ctx, projectID, q).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByProjectAndStatus counts a project's tasks with the given status;
// an empty status counts all of them.
func (r *taskRepository) CountByProjectAndStatus(ctx context.Context, projectID uuid.UUID, status string) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Task{}).Where("project_id = ?", projectID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateFields applies a partial update of the supplied columns only and
// returns the fresh record.
func (r *taskRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Task, error) {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes a single task.
func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error
}

// DeleteByProject removes every task belonging to the project. Used for the
// cascade after a project delete.
func (r *taskRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.Task{}).Error
}
