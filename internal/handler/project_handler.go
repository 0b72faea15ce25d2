package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/repository"
	"taskhub/internal/response"
	"taskhub/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents a project creation request.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents a partial project update. Absent fields
// stay untouched.
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProjectRequest true "Project data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 401 {object} response.ErrorEnvelope
// @Router /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, _, err := actingUser(c)
	if err != nil {
		return err
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), userID, req.Title, req.Description)
	if err != nil {
		return err
	}

	return response.JSON(c, http.StatusCreated, "Project created successfully", project)
}

// List godoc
// @Summary List the user's projects with task counts
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param search query string false "Substring match on title or description"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.ErrorEnvelope
// @Router /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	userID, _, err := actingUser(c)
	if err != nil {
		return err
	}

	q := repository.NewListQuery(
		c.QueryParam("page"),
		c.QueryParam("limit"),
		c.QueryParam("search"),
		"",
	)

	page, err := h.projectService.ListProjects(c.Request().Context(), userID, q)
	if err != nil {
		return err
	}

	return response.JSON(c, http.StatusOK, "Projects and their task counts retrieved successfully", page)
}

// Get godoc
// @Summary Get a single project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /projects/{projectId} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	userID, _, err := actingUser(c)
	if err != nil {
		return err
	}

	project, err := h.projectService.GetProject(c.Request().Context(), userID, c.Param("projectId"))
	if err != nil {
		return err
	}

	return response.JSON(c, http.StatusOK, "Project retrieved successfully", project)
}

// Update godoc
// @Summary Update a project's details
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body UpdateProjectRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /projects/{projectId} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	userID, _, err := actingUser(c)
	if err != nil {
		return err
	}

	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), userID, c.Param("projectId"), service.ProjectUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	return response.JSON(c, http.StatusOK, "Project updated successfully", project)
}

// Delete godoc
// @Summary Delete a project and all of its tasks
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /projects/{projectId} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	userID, _, err := actingUser(c)
	if err != nil {
		return err
	}

	if err := h.projectService.DeleteProject(c.Request().Context(), userID, c.Param("projectId")); err != nil {
		return err
	}

	return response.JSON(c, http.StatusOK, "Project and their tasks deleted successfully", map[string]interface{}{})
}
