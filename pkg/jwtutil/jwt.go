package jwtutil

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/config"
)

// Verification failures. Expired tokens are reported distinctly from
// malformed or badly signed ones.
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// UserClaims represents the JWT claims for an authenticated session. The
// token binds the user to exactly one tenant and one role for its lifetime.
type UserClaims struct {
	UserID   uint       `json:"user_id"`
	TenantID uint       `json:"tenant_id"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed session tokens. There is no revocation
// list; expiry is the only invalidation mechanism.
type Service struct {
	signingKey []byte
	expiration time.Duration
}

// NewService creates a token service from the JWT configuration.
func NewService(cfg *config.JWTConfig) *Service {
	return &Service{
		signingKey: []byte(cfg.SigningKey),
		expiration: cfg.Expiration,
	}
}

// Generate creates a signed token embedding the user, tenant and role.
func (s *Service) Generate(userID, tenantID uint, role model.Role) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

// Validate verifies the signature and expiry of a token and returns its
// claims.
func (s *Service) Validate(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
