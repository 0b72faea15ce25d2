package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

func TestProjectService_CreateProject(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name          string
		title         string
		description   string
		setupMock     func(*MockProjectRepository)
		expectedError string
	}{
		{
			name:        "successful creation",
			title:       "  P  ",
			description: "D",
			setupMock: func(m *MockProjectRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)
			},
		},
		{
			name:          "missing title",
			title:         "   ",
			description:   "D",
			setupMock:     func(m *MockProjectRepository) {},
			expectedError: "Title and description are required",
		},
		{
			name:          "missing description",
			title:         "P",
			description:   "",
			setupMock:     func(m *MockProjectRepository) {},
			expectedError: "Title and description are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projectRepo := new(MockProjectRepository)
			taskRepo := new(MockTaskRepository)
			tt.setupMock(projectRepo)

			svc := NewProjectService(projectRepo, taskRepo)
			project, err := svc.CreateProject(context.Background(), ownerID, tt.title, tt.description)

			if tt.expectedError != "" {
				assert.Nil(t, project)
				var verr *apperrors.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.expectedError, verr.Message)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "P", project.Title)
				assert.Equal(t, ownerID, project.OwnerID)
			}
			projectRepo.AssertExpectations(t)
		})
	}
}

func TestProjectService_GetProject_OwnershipIsolation(t *testing.T) {
	ownerID := uuid.New()
	intruderID := uuid.New()
	projectID := uuid.New()
	project := &model.Project{ID: projectID, Title: "P", OwnerID: ownerID}

	tests := []struct {
		name          string
		actingUser    uuid.UUID
		projectID     string
		setupMock     func(*MockProjectRepository)
		expectedError error
	}{
		{
			name:       "owner can read",
			actingUser: ownerID,
			projectID:  projectID.String(),
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, projectID).Return(project, nil)
			},
		},
		{
			name:       "other user is forbidden",
			actingUser: intruderID,
			projectID:  projectID.String(),
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, projectID).Return(project, nil)
			},
			expectedError: apperrors.ErrProjectForbidden,
		},
		{
			name:       "missing project is not found",
			actingUser: ownerID,
			projectID:  uuid.New().String(),
			setupMock: func(m *MockProjectRepository) {
				m.On("FindByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrProjectNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projectRepo := new(MockProjectRepository)
			taskRepo := new(MockTaskRepository)
			tt.setupMock(projectRepo)

			svc := NewProjectService(projectRepo, taskRepo)
			got, err := svc.GetProject(context.Background(), tt.actingUser, tt.projectID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, project, got)
			}
		})
	}
}

func TestProjectService_GetProject_MalformedID(t *testing.T) {
	projectRepo := new(MockProjectRepository)
	taskRepo := new(MockTaskRepository)

	svc := NewProjectService(projectRepo, taskRepo)
	got, err := svc.GetProject(context.Background(), uuid.New(), "not-a-uuid")

	assert.Nil(t, got)
	var verr *apperrors.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid project ID", verr.Message)
	// No lookup happens for a malformed id.
	projectRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProjectService_UpdateProject(t *testing.T) {
	ownerID := uuid.New()
	projectID := uuid.New()
	project := &model.Project{ID: projectID, Title: "Old", Description: "Old", OwnerID: ownerID}

	t.Run("requires at least one field", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		svc := NewProjectService(projectRepo, new(MockTaskRepository))

		_, err := svc.UpdateProject(context.Background(), ownerID, projectID.String(), ProjectUpdate{})

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		projectRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		svc := NewProjectService(projectRepo, new(MockTaskRepository))

		status := "archived"
		_, err := svc.UpdateProject(context.Background(), ownerID, projectID.String(), ProjectUpdate{Status: &status})

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("updates only supplied fields", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		projectRepo.On("FindByID", mock.Anything, projectID).Return(project, nil)

		status := model.ProjectStatusCompleted
		updated := &model.Project{ID: projectID, Title: "Old", Description: "Old", Status: status, OwnerID: ownerID}
		projectRepo.On("UpdateFields", mock.Anything, projectID, map[string]interface{}{
			"status": status,
		}).Return(updated, nil)

		svc := NewProjectService(projectRepo, new(MockTaskRepository))
		got, err := svc.UpdateProject(context.Background(), ownerID, projectID.String(), ProjectUpdate{Status: &status})

		assert.NoError(t, err)
		assert.Equal(t, status, got.Status)
		projectRepo.AssertExpectations(t)
	})

	t.Run("forbidden for another user, no mutation", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		projectRepo.On("FindByID", mock.Anything, projectID).Return(project, nil)

		svc := NewProjectService(projectRepo, new(MockTaskRepository))
		title := "New"
		_, err := svc.UpdateProject(context.Background(), uuid.New(), projectID.String(), ProjectUpdate{Title: &title})

		assert.ErrorIs(t, err, apperrors.ErrProjectForbidden)
		projectRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProjectService_DeleteProject_Cascade(t *testing.T) {
	ownerID := uuid.New()
	projectID := uuid.New()
	project := &model.Project{ID: projectID, OwnerID: ownerID}

	t.Run("deletes project then its tasks", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		taskRepo := new(MockTaskRepository)
		projectRepo.On("FindByID", mock.Anything, projectID).Return(project, nil)
		projectRepo.On("Delete", mock.Anything, projectID).Return(nil)
		taskRepo.On("DeleteByProject", mock.Anything, projectID).Return(nil)

		svc := NewProjectService(projectRepo, taskRepo)
		err := svc.DeleteProject(context.Background(), ownerID, projectID.String())

		assert.NoError(t, err)
		projectRepo.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
	})

	t.Run("forbidden for another user, nothing deleted", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		taskRepo := new(MockTaskRepository)
		projectRepo.On("FindByID", mock.Anything, projectID).Return(project, nil)

		svc := NewProjectService(projectRepo, taskRepo)
		err := svc.DeleteProject(context.Background(), uuid.New(), projectID.String())

		assert.ErrorIs(t, err, apperrors.ErrProjectForbidden)
		projectRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		taskRepo.AssertNotCalled(t, "DeleteByProject", mock.Anything, mock.Anything)
	})
}

func TestProjectService_ListProjects_AggregationAccuracy(t *testing.T) {
	ownerID := uuid.New()
	projectID := uuid.New()
	q := repository.NewListQuery("1", "10", "", "")

	projectRepo := new(MockProjectRepository)
	taskRepo := new(MockTaskRepository)
	projectRepo.On("ListByOwner", mock.Anything, ownerID, q).
		Return([]model.Project{{ID: projectID, Title: "P", OwnerID: ownerID}}, nil)
	projectRepo.On("CountByOwner", mock.Anything, ownerID, q).Return(int64(1), nil)
	taskRepo.On("CountByProjectAndStatus", mock.Anything, projectID, "").Return(int64(6), nil)
	taskRepo.On("CountByProjectAndStatus", mock.Anything, projectID, model.TaskStatusTodo).Return(int64(2), nil)
	taskRepo.On("CountByProjectAndStatus", mock.Anything, projectID, model.TaskStatusInProgress).Return(int64(1), nil)
	taskRepo.On("CountByProjectAndStatus", mock.Anything, projectID, model.TaskStatusDone).Return(int64(3), nil)

	svc := NewProjectService(projectRepo, taskRepo)
	page, err := svc.ListProjects(context.Background(), ownerID, q)

	assert.NoError(t, err)
	assert.Len(t, page.Projects, 1)
	got := page.Projects[0]
	assert.Equal(t, int64(6), got.TotalTasks)
	assert.Equal(t, int64(2), got.TodoTasks)
	assert.Equal(t, int64(1), got.InProgressTasks)
	assert.Equal(t, int64(3), got.DoneTasks)
	taskRepo.AssertExpectations(t)
}

func TestProjectService_ListProjects_Pagination(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name            string
		page            string
		limit           string
		total           int64
		returned        int
		wantTotalPages  int
		wantHasNextPage bool
		wantCurrentPage int
	}{
		{name: "middle page", page: "2", limit: "10", total: 25, returned: 10, wantTotalPages: 3, wantHasNextPage: true, wantCurrentPage: 2},
		{name: "last partial page", page: "3", limit: "10", total: 25, returned: 5, wantTotalPages: 3, wantHasNextPage: false, wantCurrentPage: 3},
		{name: "exactly divisible", page: "2", limit: "5", total: 10, returned: 5, wantTotalPages: 2, wantHasNextPage: false, wantCurrentPage: 2},
		{name: "empty result", page: "1", limit: "10", total: 0, returned: 0, wantTotalPages: 0, wantHasNextPage: false, wantCurrentPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := repository.NewListQuery(tt.page, tt.limit, "", "")

			projects := make([]model.Project, tt.returned)
			for i := range projects {
				projects[i] = model.Project{ID: uuid.New(), OwnerID: ownerID}
			}

			projectRepo := new(MockProjectRepository)
			taskRepo := new(MockTaskRepository)
			projectRepo.On("ListByOwner", mock.Anything, ownerID, q).Return(projects, nil)
			projectRepo.On("CountByOwner", mock.Anything, ownerID, q).Return(tt.total, nil)
			taskRepo.On("CountByProjectAndStatus", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

			svc := NewProjectService(projectRepo, taskRepo)
			page, err := svc.ListProjects(context.Background(), ownerID, q)

			assert.NoError(t, err)
			assert.Len(t, page.Projects, tt.returned)
			assert.Equal(t, tt.total, page.Pagination.TotalProjects)
			assert.Equal(t, tt.wantTotalPages, page.Pagination.TotalPages)
			assert.Equal(t, tt.wantCurrentPage, page.Pagination.CurrentPage)
			assert.Equal(t, tt.wantHasNextPage, page.Pagination.HasNextPage)
		})
	}
}

func TestProjectService_ListProjects_OtherUserSeesNothing(t *testing.T) {
	otherID := uuid.New()
	q := repository.NewListQuery("1", "10", "", "")

	projectRepo := new(MockProjectRepository)
	taskRepo := new(MockTaskRepository)
	projectRepo.On("ListByOwner", mock.Anything, otherID, q).Return([]model.Project{}, nil)
	projectRepo.On("CountByOwner", mock.Anything, otherID, q).Return(int64(0), nil)

	svc := NewProjectService(projectRepo, taskRepo)
	page, err := svc.ListProjects(context.Background(), otherID, q)

	assert.NoError(t, err)
	assert.Empty(t, page.Projects)
	assert.Equal(t, int64(0), page.Pagination.TotalProjects)
	taskRepo.AssertNotCalled(t, "CountByProjectAndStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_ListProjects_AggregationFailureFailsPage(t *testing.T) {
	ownerID := uuid.New()
	projectID := uuid.New()
	q := repository.NewListQuery("1", "10", "", "")

	projectRepo := new(MockProjectRepository)
	taskRepo := new(MockTaskRepository)
	projectRepo.On("ListByOwner", mock.Anything, ownerID, q).
		Return([]model.Project{{ID: projectID, OwnerID: ownerID}}, nil)
	projectRepo.On("CountByOwner", mock.Anything, ownerID, q).Return(int64(1), nil)
	taskRepo.On("CountByProjectAndStatus", mock.Anything, projectID, mock.Anything).Return(int64(0), gorm.ErrInvalidDB)

	svc := NewProjectService(projectRepo, taskRepo)
	page, err := svc.ListProjects(context.Background(), ownerID, q)

	assert.Error(t, err)
	assert.Nil(t, page)
}
