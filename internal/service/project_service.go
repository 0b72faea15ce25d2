package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// ProjectPagination is the pagination block attached to a project page.
type ProjectPagination struct {
	TotalProjects int64 `json:"totalProjects"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	HasNextPage   bool  `json:"hasNextPage"`
}

// ProjectPage is one page of a user's projects with task counts attached.
type ProjectPage struct {
	Projects   []model.ProjectWithCounts `json:"projects"`
	Pagination ProjectPagination         `json:"pagination"`
}

// ProjectUpdate carries a partial project update; nil fields are left untouched.
type ProjectUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// ProjectService handles project operations.
type ProjectService interface {
	CreateProject(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Project, error)
	ListProjects(ctx context.Context, ownerID uuid.UUID, q repository.ListQuery) (*ProjectPage, error)
	GetProject(ctx context.Context, userID uuid.UUID, projectID string) (*model.Project, error)
	UpdateProject(ctx context.Context, userID uuid.UUID, projectID string, upd ProjectUpdate) (*model.Project, error)
	DeleteProject(ctx context.Context, userID uuid.UUID, projectID string) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewProjectService creates a new project service.
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// findOwnedProject resolves a project from its raw path parameter and checks
// ownership. Malformed ids fail before any lookup; a missing project and a
// project owned by someone else map to distinct errors.
func findOwnedProject(ctx context.Context, repo repository.ProjectRepository, userID uuid.UUID, projectID string) (*model.Project, error) {
	id, err := uuid.Parse(projectID)
	if err != nil {
		return nil, apperrors.NewValidation("Invalid project ID")
	}

	project, err := repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	if project.OwnerID != userID {
		return nil, apperrors.ErrProjectForbidden
	}
	return project, nil
}

// CreateProject creates a project owned by the acting user.
func (s *projectService) CreateProject(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Project, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidation("Title and description are required")
	}

	project := &model.Project{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// ListProjects returns one page of the owner's projects, each enriched with
// its task counts, plus the pagination block.
func (s *projectService) ListProjects(ctx context.Context, ownerID uuid.UUID, q repository.ListQuery) (*ProjectPage, error) {
	projects, err := s.projectRepo.ListByOwner(ctx, ownerID, q)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	total, err := s.projectRepo.CountByOwner(ctx, ownerID, q)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	// Counts are aggregated one project at a time; the four count queries for
	// a single project run concurrently.
	enriched := make([]model.ProjectWithCounts, 0, len(projects))
	for _, project := range projects {
		counts, err := s.aggregateTaskCounts(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("aggregate task counts for project %s: %w", project.ID, err)
		}
		enriched = append(enriched, model.ProjectWithCounts{
			Project:         project,
			TotalTasks:      counts.Total,
			TodoTasks:       counts.Todo,
			InProgressTasks: counts.InProgress,
			DoneTasks:       counts.Done,
		})
	}

	totalPages := pageCount(total, q.Limit)
	return &ProjectPage{
		Projects: enriched,
		Pagination: ProjectPagination{
			TotalProjects: total,
			TotalPages:    totalPages,
			CurrentPage:   q.Page,
			HasNextPage:   q.Page < totalPages,
		},
	}, nil
}

// aggregateTaskCounts issues the four count queries for one project
// concurrently and waits for all of them; any single failure fails the whole
// aggregation.
func (s *projectService) aggregateTaskCounts(ctx context.Context, projectID uuid.UUID) (model.TaskCounts, error) {
	var counts model.TaskCounts
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.taskRepo.CountByProjectAndStatus(ctx, projectID, "")
		counts.Total = n
		return err
	})
	g.Go(func() error {
		n, err := s.taskRepo.CountByProjectAndStatus(ctx, projectID, model.TaskStatusTodo)
		counts.Todo = n
		return err
	})
	g.Go(func() error {
		n, err := s.taskRepo.CountByProjectAndStatus(ctx, projectID, model.TaskStatusInProgress)
		counts.InProgress = n
		return err
	})
	g.Go(func() error {
		n, err := s.taskRepo.CountByProjectAndStatus(ctx, projectID, model.TaskStatusDone)
		counts.Done = n
		return err
	})

	if err := g.Wait(); err != nil {
		return model.TaskCounts{}, err
	}
	return counts, nil
}

// GetProject returns a single project after the ownership check.
func (s *projectService) GetProject(ctx context.Context, userID uuid.UUID, projectID string) (*model.Project, error) {
	return findOwnedProject(ctx, s.projectRepo, userID, projectID)
}

// UpdateProject applies a partial update of the supplied fields only. The id
// check runs first, then field validation, then the ownership check.
func (s *projectService) UpdateProject(ctx context.Context, userID uuid.UUID, projectID string, upd ProjectUpdate) (*model.Project, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, apperrors.NewValidation("Invalid project ID")
	}
	if upd.Title == nil && upd.Description == nil && upd.Status == nil {
		return nil, apperrors.NewValidation("At least one field (title, description, status) is required to update")
	}
	if upd.Status != nil && !model.ValidProjectStatus(*upd.Status) {
		return nil, apperrors.NewValidation("Invalid project status")
	}

	project, err := findOwnedProject(ctx, s.projectRepo, userID, projectID)
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

	updated, err := s.projectRepo.UpdateFields(ctx, project.ID, fields)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return updated, nil
}

// DeleteProject removes the project and then all of its tasks. The two
// mutations are independent; a crash in between can orphan tasks, which is an
// accepted risk of this contract.
func (s *projectService) DeleteProject(ctx context.Context, userID uuid.UUID, projectID string) error {
	project, err := findOwnedProject(ctx, s.projectRepo, userID, projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if err := s.taskRepo.DeleteByProject(ctx, project.ID); err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}
	return nil
}

// pageCount returns ceil(total / limit).
func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
