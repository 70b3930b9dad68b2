package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/middleware"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/repository"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/logger"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/prometheus"
)

// UserHandler serves user management endpoints. All queries are scoped to
// the principal's tenant.
type UserHandler struct {
	users repository.UserStore
}

func NewUserHandler(users repository.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// List returns the tenant's users with search, activation filter and
// pagination.
func (h *UserHandler) List(c echo.Context) error {
	prometheus.RecordEntityOperation("user", "list")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	q := parseListQuery(c)
	users, total, err := h.users.List(p.TenantID, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse(users, q, total))
}

// Get returns one user within the principal's tenant.
func (h *UserHandler) Get(c echo.Context) error {
	prometheus.RecordEntityOperation("user", "get")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(p.TenantID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUserRequest creates a user inside the admin's own tenant. Any
// client-supplied tenant id is ignored; the token decides the tenant.
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role,omitempty"`
}

// Create adds a user to the principal's tenant.
func (h *UserHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "create")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role := model.RoleUser
	if req.Role != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			return apperror.Validation("role must be one of ADMIN, USER, VIEWER")
		}
		role = parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return apperror.ErrInternal.WithErr(err)
	}

	user := model.User{
		Email:     strings.ToLower(req.Email),
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		IsActive:  true,
		TenantID:  p.TenantID,
	}
	if err := h.users.Create(&user); err != nil {
		log.Warn("User creation failed", zap.Uint("tenant_id", p.TenantID), zap.Error(err))
		return err
	}

	log.Info("User created",
		zap.Uint("user_id", user.ID),
		zap.Uint("tenant_id", user.TenantID),
		zap.String("role", user.Role.String()))
	return c.JSON(http.StatusCreated, user)
}

// UpdateUserRequest mutates a user. Tenant membership is immutable and not
// part of the request.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// Update mutates a user within the principal's tenant. Admins cannot
// deactivate their own account through this path.
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "update")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if id == p.UserID && req.IsActive != nil && !*req.IsActive {
		return apperror.ErrDisableSelf
	}

	user, err := h.users.GetByID(p.TenantID, id)
	if err != nil {
		return err
	}

	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		parsed, err := model.ParseRole(*req.Role)
		if err != nil {
			return apperror.Validation("role must be one of ADMIN, USER, VIEWER")
		}
		user.Role = parsed
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.users.Update(user); err != nil {
		log.Warn("User update failed", zap.Uint("user_id", id), zap.Error(err))
		return err
	}

	log.Info("User updated", zap.Uint("user_id", user.ID), zap.Uint("tenant_id", user.TenantID))
	return c.JSON(http.StatusOK, user)
}

// UpdateMeRequest is the self-service profile update: name and password
// only. Role, email and activation state require an admin.
type UpdateMeRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// UpdateMe lets any authenticated user update their own profile.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "update_self")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	var req UpdateMeRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.GetByID(p.TenantID, p.UserID)
	if err != nil {
		return err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return apperror.ErrInternal.WithErr(err)
		}
		user.Password = string(hashed)
	}

	if err := h.users.Update(user); err != nil {
		log.Warn("Profile update failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return err
	}

	log.Info("Profile updated", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, user)
}

// Delete soft-deletes a user within the principal's tenant. Admins cannot
// delete themselves.
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "delete")

	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if id == p.UserID {
		return apperror.ErrDeleteSelf
	}

	if err := h.users.Deactivate(p.TenantID, id); err != nil {
		return err
	}

	log.Info("User deactivated", zap.Uint("user_id", id), zap.Uint("tenant_id", p.TenantID))
	return c.JSON(http.StatusOK, echo.Map{"message": "user deactivated"})
}
