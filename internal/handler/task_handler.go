package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskhub/internal/repository"
	"taskhub/internal/response"
	"taskhub/internal/service"
)

// TaskHandler handles task endpoints nested under a project.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest represents a partial task update. Absent fields stay
// untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

// Create godoc
// @Summary Create a task within a project
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /projects/{projectId}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, _, err := actingUser(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), userID, c.Param("projectId"), req.Title, req.Description, req.DueDate)
	if err != nil {
		return err
	}

	return response.JSON(c, http.StatusCreated, "Task created successfully", task)
}

// List godoc
// @Summary List a project's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param search query string false "Substring match on title"
// @Param status query string false "Filter by status (todo, in-progress, done)"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /projects/{projectId}/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, _, err := actingUser(c)
	if err != nil {
		return err
	}

	q := repository.NewListQuery(
		c.QueryParam("page"),
		c.QueryParam("limit"),
		c.QueryParam("search"),
		c.QueryParam("status"),
	)

	page, err := h.taskService.ListTasks(c.Request().Context(), userID, c.Param("projectId"), q)
	if err != nil {
		return err
	}

	return response.JSON(c, http.StatusOK, "Tasks retrieved successfully", page)
}

// Update godoc
// @Summary Update a task's details
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param taskId path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /projects/{projectId}/tasks/{taskId} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, _, err := actingUser(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), userID, c.Param("projectId"), c.Param("taskId"), service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}

	return response.JSON(c, http.StatusOK, "Task updated successfully", task)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /projects/{projectId}/tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, _, err := actingUser(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), userID, c.Param("projectId"), c.Param("taskId")); err != nil {
		return err
	}

	return response.JSON(c, http.StatusOK, "Task deleted successfully", map[string]interface{}{})
}
