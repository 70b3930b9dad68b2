package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/middleware"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/repository"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/logger"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/prometheus"
)

// TenantHandler serves tenant lifecycle endpoints. A principal can only ever
// see and manage its own tenant; no super-admin role exists.
type TenantHandler struct {
	tenants repository.TenantStore
}

func NewTenantHandler(tenants repository.TenantStore) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// List returns the tenants visible to the caller, which is always exactly
// its own tenant.
func (h *TenantHandler) List(c echo.Context) error {
	prometheus.RecordEntityOperation("tenant", "list")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	tenant, err := h.tenants.GetByID(p.TenantID)
	if err != nil {
		return err
	}

	q := parseListQuery(c)
	return c.JSON(http.StatusOK, listResponse([]model.Tenant{*tenant}, q, 1))
}

// Get returns the caller's tenant. Foreign tenant ids read as absent.
func (h *TenantHandler) Get(c echo.Context) error {
	prometheus.RecordEntityOperation("tenant", "get")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if id != p.TenantID {
		return apperror.ErrNotFound
	}

	tenant, err := h.tenants.GetByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

// CreateTenantRequest creates an additional tenant.
type CreateTenantRequest struct {
	Name      string  `json:"name" validate:"required"`
	Subdomain string  `json:"subdomain" validate:"required,min=2,max=63"`
	Domain    *string `json:"domain,omitempty"`
}

// Create provisions a new tenant row. The new tenant starts without users;
// its admin is created through registration or user management later.
func (h *TenantHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tenant", "create")

	var req CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	subdomain := strings.ToLower(req.Subdomain)
	if !subdomainPattern.MatchString(subdomain) {
		return apperror.Validation("subdomain may only contain lowercase letters, digits and hyphens")
	}

	tenant := model.Tenant{
		Name:      req.Name,
		Subdomain: subdomain,
		Domain:    req.Domain,
		IsActive:  true,
	}
	if err := h.tenants.Create(&tenant); err != nil {
		log.Warn("Tenant creation failed", zap.String("subdomain", subdomain), zap.Error(err))
		return err
	}

	log.Info("Tenant created",
		zap.Uint("tenant_id", tenant.ID),
		zap.String("subdomain", tenant.Subdomain))
	return c.JSON(http.StatusCreated, tenant)
}

// UpdateTenantRequest mutates the caller's own tenant. Subdomain and
// activation state are not updatable through this path.
type UpdateTenantRequest struct {
	Name   *string `json:"name,omitempty"`
	Domain *string `json:"domain,omitempty"`
}

// Update mutates the caller's own tenant.
func (h *TenantHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tenant", "update")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if id != p.TenantID {
		return apperror.ErrNotFound
	}

	var req UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	tenant, err := h.tenants.GetByID(id)
	if err != nil {
		return err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Domain != nil {
		tenant.Domain = req.Domain
	}

	if err := h.tenants.Update(tenant); err != nil {
		log.Warn("Tenant update failed", zap.Uint("tenant_id", id), zap.Error(err))
		return err
	}

	log.Info("Tenant updated", zap.Uint("tenant_id", tenant.ID))
	return c.JSON(http.StatusOK, tenant)
}

// Delete soft-deletes a tenant. Admins cannot delete the tenant they belong
// to, and no other tenant is visible to them, so the route only ever
// terminates in an error; it exists to make that rule explicit.
func (h *TenantHandler) Delete(c echo.Context) error {
	prometheus.RecordEntityOperation("tenant", "delete")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if id == p.TenantID {
		return apperror.ErrDeleteOwnTen
	}
	return apperror.ErrNotFound
}
