package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/middleware"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/repository"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
)

var (
	_ repository.TenantStore  = (*MockTenantStore)(nil)
	_ repository.UserStore    = (*MockUserStore)(nil)
	_ repository.ProjectStore = (*MockProjectStore)(nil)
)

// MockTenantStore satisfies repository.TenantStore
type MockTenantStore struct {
	mock.Mock
}

func (m *MockTenantStore) GetByID(id uint) (*model.Tenant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantStore) GetBySubdomain(subdomain string) (*model.Tenant, error) {
	args := m.Called(subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockTenantStore) Create(tenant *model.Tenant) error {
	return m.Called(tenant).Error(0)
}

func (m *MockTenantStore) CreateWithAdmin(tenant *model.Tenant, admin *model.User) error {
	args := m.Called(tenant, admin)
	if args.Error(0) == nil {
		// Mimic the datastore assigning primary keys.
		tenant.ID = 1
		admin.ID = 1
		admin.TenantID = tenant.ID
	}
	return args.Error(0)
}

func (m *MockTenantStore) Update(tenant *model.Tenant) error {
	return m.Called(tenant).Error(0)
}

func (m *MockTenantStore) Deactivate(id uint) error {
	return m.Called(id).Error(0)
}

func (m *MockTenantStore) CountActive() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockUserStore satisfies repository.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindActive(id uint) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(tenantID, id uint) (*model.User, error) {
	args := m.Called(tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(tenantID uint, email string) (*model.User, error) {
	args := m.Called(tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) List(tenantID uint, q repository.ListQuery) ([]model.User, int64, error) {
	args := m.Called(tenantID, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserStore) Create(user *model.User) error {
	args := m.Called(user)
	if args.Error(0) == nil {
		user.ID = 2
	}
	return args.Error(0)
}

func (m *MockUserStore) Update(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserStore) Deactivate(tenantID, id uint) error {
	return m.Called(tenantID, id).Error(0)
}

// MockProjectStore satisfies repository.ProjectStore
type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) GetByID(tenantID, id uint) (*model.Project, error) {
	args := m.Called(tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectStore) List(tenantID uint, q repository.ListQuery) ([]model.Project, int64, error) {
	args := m.Called(tenantID, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectStore) Create(project *model.Project) error {
	args := m.Called(project)
	if args.Error(0) == nil {
		project.ID = 11
	}
	return args.Error(0)
}

func (m *MockProjectStore) Update(project *model.Project) error {
	return m.Called(project).Error(0)
}

func (m *MockProjectStore) Delete(tenantID, id uint) error {
	return m.Called(tenantID, id).Error(0)
}

// newTestContext builds an echo context with the test validator, an optional
// JSON body and an optional bound principal.
func newTestContext(t *testing.T, method, path, body string, p *middleware.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		c.Set("principal", p)
	}
	return c, rec
}

func requireAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}

func adminPrincipal() *middleware.Principal {
	return &middleware.Principal{
		UserID:   1,
		TenantID: 1,
		Role:     model.RoleAdmin,
		User:     &model.User{ID: 1, TenantID: 1, Role: model.RoleAdmin, Email: "admin@acme.com", IsActive: true},
	}
}
