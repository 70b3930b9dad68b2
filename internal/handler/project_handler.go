package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/middleware"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/repository"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/logger"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/prometheus"
)

// ProjectHandler serves project CRUD endpoints. All queries are scoped to
// the principal's tenant; the creator is taken from the token, never the
// request body.
type ProjectHandler struct {
	projects repository.ProjectStore
}

func NewProjectHandler(projects repository.ProjectStore) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns the tenant's projects with search, activation filter and
// pagination.
func (h *ProjectHandler) List(c echo.Context) error {
	prometheus.RecordEntityOperation("project", "list")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	q := parseListQuery(c)
	projects, total, err := h.projects.List(p.TenantID, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse(projects, q, total))
}

// Get returns one project within the principal's tenant.
func (h *ProjectHandler) Get(c echo.Context) error {
	prometheus.RecordEntityOperation("project", "get")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.projects.GetByID(p.TenantID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// CreateProjectRequest creates a project. Tenant and creator come from the
// authenticated principal.
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
}

// Create adds a project to the principal's tenant with the principal as its
// creator.
func (h *ProjectHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("project", "create")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project := model.Project{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		TenantID:    p.TenantID,
		UserID:      p.UserID,
	}
	if err := h.projects.Create(&project); err != nil {
		log.Warn("Project creation failed", zap.Uint("tenant_id", p.TenantID), zap.Error(err))
		return err
	}

	log.Info("Project created",
		zap.Uint("project_id", project.ID),
		zap.Uint("tenant_id", project.TenantID),
		zap.Uint("user_id", project.UserID))
	return c.JSON(http.StatusCreated, project)
}

// UpdateProjectRequest mutates a project.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// Update mutates a project. Non-admins may only update projects they
// created.
func (h *ProjectHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("project", "update")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projects.GetByID(p.TenantID, id)
	if err != nil {
		return err
	}

	if p.Role != model.RoleAdmin && project.UserID != p.UserID {
		prometheus.RecordAuthError(apperror.ErrForbidden.Code)
		return apperror.ErrForbidden
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	if err := h.projects.Update(project); err != nil {
		log.Warn("Project update failed", zap.Uint("project_id", id), zap.Error(err))
		return err
	}

	log.Info("Project updated", zap.Uint("project_id", project.ID), zap.Uint("tenant_id", project.TenantID))
	return c.JSON(http.StatusOK, project)
}

// Delete hard-deletes a project within the principal's tenant.
func (h *ProjectHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("project", "delete")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.projects.Delete(p.TenantID, id); err != nil {
		return err
	}

	log.Info("Project deleted", zap.Uint("project_id", id), zap.Uint("tenant_id", p.TenantID))
	return c.JSON(http.StatusOK, echo.Map{"message": "project deleted"})
}
