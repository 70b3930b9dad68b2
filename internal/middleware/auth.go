package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/policy"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/repository"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/jwtutil"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/logger"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/prometheus"
)

const principalKey = "principal"

// Principal is the authenticated identity bound to a request after the
// authorization pipeline succeeds. Its tenant id is the only source of
// scoping for every query the request issues.
type Principal struct {
	UserID   uint
	TenantID uint
	Role     model.Role
	User     *model.User
}

// PrincipalFromContext returns the principal bound by Authenticate. The
// second return is false on routes that did not pass through the pipeline.
func PrincipalFromContext(c echo.Context) (*Principal, bool) {
	p, ok := c.Get(principalKey).(*Principal)
	return p, ok
}

// Authenticator runs the per-request authorization pipeline: bearer token →
// verified claims → active user → active tenant → bound principal.
type Authenticator struct {
	tokens  *jwtutil.Service
	users   repository.UserStore
	tenants repository.TenantStore
}

func NewAuthenticator(tokens *jwtutil.Service, users repository.UserStore, tenants repository.TenantStore) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, tenants: tenants}
}

// Authenticate validates the JWT from the Authorization header, checks that
// the user and its tenant are still active, and binds the principal into the
// request context.
func (a *Authenticator) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Debug("Missing Authorization header")
			prometheus.RecordAuthError(apperror.ErrTokenMissing.Code)
			return apperror.ErrTokenMissing
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			log.Debug("Invalid Authorization header format")
			prometheus.RecordAuthError(apperror.ErrTokenInvalid.Code)
			return apperror.ErrTokenInvalid
		}

		claims, err := a.tokens.Validate(parts[1])
		if err != nil {
			if errors.Is(err, jwtutil.ErrTokenExpired) {
				log.Debug("Expired JWT token")
				prometheus.RecordAuthError(apperror.ErrTokenExpired.Code)
				return apperror.ErrTokenExpired
			}
			log.Debug("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError(apperror.ErrTokenInvalid.Code)
			return apperror.ErrTokenInvalid
		}

		// The token stays valid for its full lifetime, so deactivation must
		// be re-checked on every request.
		user, err := a.users.FindActive(claims.UserID)
		if err != nil {
			log.Info("Authenticated user not found or inactive",
				zap.Uint("user_id", claims.UserID))
			prometheus.RecordAuthError(apperror.ErrUserNotFound.Code)
			return apperror.ErrUserNotFound
		}

		// The tenant in the token must match the user's owning tenant.
		if user.TenantID != claims.TenantID {
			log.Warn("Token tenant does not match user's tenant",
				zap.Uint("user_id", user.ID),
				zap.Uint("token_tenant_id", claims.TenantID),
				zap.Uint("user_tenant_id", user.TenantID))
			prometheus.RecordAuthError(apperror.ErrTokenInvalid.Code)
			return apperror.ErrTokenInvalid
		}

		tenant, err := a.tenants.GetByID(user.TenantID)
		if err != nil || !tenant.IsActive {
			log.Info("Tenant is deactivated",
				zap.Uint("tenant_id", user.TenantID))
			prometheus.RecordAuthError(apperror.ErrTenantOff.Code)
			return apperror.ErrTenantOff
		}

		c.Set(principalKey, &Principal{
			UserID:   user.ID,
			TenantID: user.TenantID,
			Role:     user.Role,
			User:     user,
		})

		log.Debug("Request authenticated",
			zap.Uint("user_id", user.ID),
			zap.Uint("tenant_id", user.TenantID),
			zap.String("role", user.Role.String()))

		return next(c)
	}
}

// RequireRole gates a route on the policy table: the authenticated principal
// must hold one of the roles allowed for the operation.
func RequireRole(op policy.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFromContext(c)
			if !ok {
				prometheus.RecordAuthError(apperror.ErrTokenMissing.Code)
				return apperror.ErrTokenMissing
			}
			if !policy.Allowed(op, p.Role) {
				logger.FromContext(c).Info("Operation denied by role policy",
					zap.String("operation", string(op)),
					zap.Uint("user_id", p.UserID),
					zap.String("role", p.Role.String()))
				prometheus.RecordAuthError(apperror.ErrForbidden.Code)
				return apperror.ErrForbidden
			}
			return next(c)
		}
	}
}
