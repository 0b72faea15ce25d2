package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// TaskPagination is the pagination block attached to a task page.
type TaskPagination struct {
	TotalTasks  int64 `json:"totalTasks"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

// TaskPage is one page of a project's tasks.
type TaskPage struct {
	Tasks      []model.Task   `json:"tasks"`
	Pagination TaskPagination `json:"pagination"`
}

// TaskUpdate carries a partial task update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *time.Time
}

// TaskService handles task operations nested under a project.
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, projectID, title, description string, dueDate *time.Time) (*model.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID, projectID string, q repository.ListQuery) (*TaskPage, error)
	UpdateTask(ctx context.Context, userID uuid.UUID, projectID, taskID string, upd TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, userID uuid.UUID, projectID, taskID string) error
}

type taskService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) TaskService {
	return &taskService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// findOwnedTask resolves a task under an already-authorized project. The task
// must belong to that project, and to the acting user; a task attached to a
// different project reads as absent.
func (s *taskService) findOwnedTask(ctx context.Context, userID uuid.UUID, project *model.Project, id uuid.UUID) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if task.ProjectID != project.ID {
		return nil, apperrors.ErrTaskNotFound
	}
	if task.OwnerID != userID {
		return nil, apperrors.ErrTaskForbidden
	}
	return task, nil
}

// CreateTask creates a task inside the given project. The parent project must
// exist and belong to the acting user; the task owner is denormalized from
// that same user.
func (s *taskService) CreateTask(ctx context.Context, userID uuid.UUID, projectID, title, description string, dueDate *time.Time) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidation("Task title is required")
	}

	project, err := findOwnedProject(ctx, s.projectRepo, userID, projectID)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       title,
		Description: strings.TrimSpace(description),
		DueDate:     dueDate,
		ProjectID:   project.ID,
		OwnerID:     userID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListTasks returns one page of the project's tasks plus the pagination block.
func (s *taskService) ListTasks(ctx context.Context, userID uuid.UUID, projectID string, q repository.ListQuery) (*TaskPage, error) {
	project, err := findOwnedProject(ctx, s.projectRepo, userID, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(ctx, project.ID, q)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	total, err := s.taskRepo.CountByProject(ctx, project.ID, q)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	if tasks == nil {
		tasks = []model.Task{}
	}
	return &TaskPage{
		Tasks: tasks,
		Pagination: TaskPagination{
			TotalTasks:  total,
			TotalPages:  pageCount(total, q.Limit),
			CurrentPage: q.Page,
			Limit:       q.Limit,
		},
	}, nil
}

// UpdateTask applies a partial update of the supplied fields only. The id
// checks run first, then field validation, then the two ownership checks.
func (s *taskService) UpdateTask(ctx context.Context, userID uuid.UUID, projectID, taskID string, upd TaskUpdate) (*model.Task, error) {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return nil, apperrors.NewValidation("Invalid task ID")
	}
	if upd.Title == nil && upd.Description == nil && upd.Status == nil && upd.DueDate == nil {
		return nil, apperrors.NewValidation("At least one field (title, description, status, dueDate) is required to update")
	}
	if upd.Status != nil && !model.ValidTaskStatus(*upd.Status) {
		return nil, apperrors.NewValidation("Invalid task status")
	}

	project, err := findOwnedProject(ctx, s.projectRepo, userID, projectID)
	if err != nil {
		return nil, err
	}

	task, err := s.findOwnedTask(ctx, userID, project, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if upd.Title != nil {
		fields["title"] = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		fields["description"] = strings.TrimSpace(*upd.Description)
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.DueDate != nil {
		fields["due_date"] = *upd.DueDate
	}

	updated, err := s.taskRepo.UpdateFields(ctx, task.ID, fields)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

// DeleteTask removes a single task after both ownership checks.
func (s *taskService) DeleteTask(ctx context.Context, userID uuid.UUID, projectID, taskID string) error {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return apperrors.NewValidation("Invalid task ID")
	}

	project, err := findOwnedProject(ctx, s.projectRepo, userID, projectID)
	if err != nil {
		return err
	}

	task, err := s.findOwnedTask(ctx, userID, project, id)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
