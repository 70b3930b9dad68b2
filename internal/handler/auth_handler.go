package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/middleware"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/repository"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/jwtutil"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/logger"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/prometheus"
)

// bcryptCost is high enough to resist offline brute force.
const bcryptCost = 12

var subdomainPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// AuthHandler serves registration, login and session endpoints.
type AuthHandler struct {
	tenants repository.TenantStore
	users   repository.UserStore
	tokens  *jwtutil.Service
}

func NewAuthHandler(tenants repository.TenantStore, users repository.UserStore, tokens *jwtutil.Service) *AuthHandler {
	return &AuthHandler{tenants: tenants, users: users, tokens: tokens}
}

// RegisterRequest creates a tenant together with its first admin user.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	TenantName string `json:"tenantName" validate:"required"`
	Subdomain  string `json:"subdomain" validate:"required,min=2,max=63"`
}

// Register handles tenant registration. The tenant row and the first admin
// user are created in one transaction.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req RegisterRequest
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

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return apperror.ErrInternal.WithErr(err)
	}

	tenant := model.Tenant{
		Name:      req.TenantName,
		Subdomain: subdomain,
		IsActive:  true,
	}
	admin := model.User{
		Email:     strings.ToLower(req.Email),
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.RoleAdmin,
		IsActive:  true,
	}

	if err := h.tenants.CreateWithAdmin(&tenant, &admin); err != nil {
		log.Warn("Registration failed",
			zap.String("subdomain", subdomain),
			zap.Error(err))
		return err
	}

	token, err := h.tokens.Generate(admin.ID, tenant.ID, admin.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return apperror.ErrInternal.WithErr(err)
	}

	log.Info("Tenant registered",
		zap.Uint("tenant_id", tenant.ID),
		zap.String("subdomain", tenant.Subdomain),
		zap.Uint("admin_id", admin.ID))

	return c.JSON(http.StatusCreated, echo.Map{
		"user":   admin,
		"tenant": tenant,
		"token":  token,
	})
}

// LoginRequest authenticates a user against the tenant named by subdomain.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Subdomain string `json:"subdomain" validate:"required"`
}

// Login resolves the tenant, verifies the credential and issues a token.
// Wrong email and wrong password produce the same error so accounts cannot
// be enumerated; tenant lookup failures stay distinct because subdomains are
// public.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tenant, err := h.tenants.GetBySubdomain(req.Subdomain)
	if err != nil {
		log.Info("Login against unknown tenant", zap.String("subdomain", req.Subdomain))
		prometheus.RecordAuthError(apperror.ErrTenantMissing.Code)
		return apperror.ErrTenantMissing
	}
	if !tenant.IsActive {
		log.Info("Login against deactivated tenant", zap.Uint("tenant_id", tenant.ID))
		prometheus.RecordAuthError(apperror.ErrTenantOff.Code)
		return apperror.ErrTenantOff
	}

	user, err := h.users.GetByEmail(tenant.ID, req.Email)
	if err != nil || !user.IsActive {
		log.Info("Login failed", zap.Uint("tenant_id", tenant.ID))
		prometheus.RecordAuthError(apperror.ErrBadLogin.Code)
		return apperror.ErrBadLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Info("Login failed", zap.Uint("tenant_id", tenant.ID))
		prometheus.RecordAuthError(apperror.ErrBadLogin.Code)
		return apperror.ErrBadLogin
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := h.users.Update(user); err != nil {
		// Login still succeeds; the timestamp is advisory.
		log.Warn("Failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := h.tokens.Generate(user.ID, tenant.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return apperror.ErrInternal.WithErr(err)
	}

	log.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.Uint("tenant_id", tenant.ID),
		zap.String("role", user.Role.String()))

	return c.JSON(http.StatusOK, echo.Map{
		"user":   user,
		"tenant": tenant,
		"token":  token,
	})
}

// Me returns the authenticated user and its tenant.
func (h *AuthHandler) Me(c echo.Context) error {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	tenant, err := h.tenants.GetByID(p.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":   p.User,
		"tenant": tenant,
	})
}

// Refresh issues a fresh token for the authenticated principal.
func (h *AuthHandler) Refresh(c echo.Context) error {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return apperror.ErrTokenMissing
	}

	token, err := h.tokens.Generate(p.UserID, p.TenantID, p.Role)
	if err != nil {
		logger.FromContext(c).Error("Failed to generate token", zap.Error(err))
		return apperror.ErrInternal.WithErr(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
