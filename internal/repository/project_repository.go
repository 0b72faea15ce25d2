package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, q ListQuery) ([]model.Project, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID, q ListQuery) (int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID finds a project by ID.
func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ownerScope builds the shared predicate for list and count: always scoped to
// the owner, optionally narrowed by a substring match on title or description.
// LIKE is case-insensitive under the default utf8mb4 collation.
func (r *projectRepository) ownerScope(ctx context.Context, ownerID uuid.UUID, q ListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&model.Project{}).Where("owner_id = ?", ownerID)
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	return tx
}

// ListByOwner returns one page of the owner's projects, newest first.
func (r *projectRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, q ListQuery) ([]model.Project, error) {
	var projects []model.Project
	err := r.ownerScope(ctx, ownerID, q).
		Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// CountByOwner counts all projects matching the same predicate as ListByOwner,
// without pagination.
func (r *projectRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID, q ListQuery) (int64, error) {
	var count int64
	if err := r.ownerScope(ctx, ownerID, q).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateFields applies a partial update of the supplied columns only and
// returns the fresh record.
func (r *projectRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Project, error) {
	if err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes a project. Its tasks are removed separately by the task
// repository; the two statements are deliberately not wrapped in a transaction.
func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{}).Error
}
