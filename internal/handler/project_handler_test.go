package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/middleware"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
)

func userPrincipal(userID uint) *middleware.Principal {
	return &middleware.Principal{
		UserID:   userID,
		TenantID: 1,
		Role:     model.RoleUser,
		User:     &model.User{ID: userID, TenantID: 1, Role: model.RoleUser, IsActive: true},
	}
}

func TestProjectCreateBindsPrincipal(t *testing.T) {
	projects := new(MockProjectStore)
	h := NewProjectHandler(projects)

	projects.On("Create", mock.Anything).Return(nil)

	// A client-supplied tenant_id or user_id is not part of the DTO and
	// cannot override the token-derived values.
	body := `{"name":"P1","description":"first","tenant_id":42,"user_id":42}`
	c, rec := newTestContext(t, http.MethodPost, "/api/projects", body, userPrincipal(5))

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	created := projects.Calls[0].Arguments.Get(0).(*model.Project)
	assert.Equal(t, uint(1), created.TenantID)
	assert.Equal(t, uint(5), created.UserID)
	assert.True(t, created.IsActive)
}

func TestProjectCreateRequiresName(t *testing.T) {
	h := NewProjectHandler(new(MockProjectStore))

	c, _ := newTestContext(t, http.MethodPost, "/api/projects", `{"description":"x"}`, userPrincipal(5))
	requireAppError(t, h.Create(c), "VALIDATION_ERROR")
}

func TestProjectListPagination(t *testing.T) {
	projects := new(MockProjectStore)
	h := NewProjectHandler(projects)

	items := []model.Project{{ID: 21, TenantID: 1}, {ID: 22, TenantID: 1}}
	projects.On("List", uint(1), mock.Anything).Return(items, int64(25), nil)

	c, rec := newTestContext(t, http.MethodGet, "/api/projects?page=3&limit=10", "", userPrincipal(5))
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pages":3`)
	assert.Contains(t, rec.Body.String(), `"total":25`)
}

func TestProjectGetOutOfTenantReadsAsNotFound(t *testing.T) {
	projects := new(MockProjectStore)
	h := NewProjectHandler(projects)

	projects.On("GetByID", uint(1), uint(7)).Return(nil, apperror.ErrNotFound)

	c, _ := newTestContext(t, http.MethodGet, "/api/projects/7", "", userPrincipal(5))
	c.SetParamNames("id")
	c.SetParamValues("7")

	requireAppError(t, h.Get(c), "NOT_FOUND")
}

func TestProjectUpdateByNonOwnerIsForbidden(t *testing.T) {
	projects := new(MockProjectStore)
	h := NewProjectHandler(projects)

	// Project belongs to user 9; user 5 is not an admin.
	projects.On("GetByID", uint(1), uint(7)).Return(&model.Project{ID: 7, TenantID: 1, UserID: 9}, nil)

	c, _ := newTestContext(t, http.MethodPut, "/api/projects/7", `{"name":"renamed"}`, userPrincipal(5))
	c.SetParamNames("id")
	c.SetParamValues("7")

	requireAppError(t, h.Update(c), "INSUFFICIENT_PERMISSIONS")
	projects.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProjectUpdateByOwner(t *testing.T) {
	projects := new(MockProjectStore)
	h := NewProjectHandler(projects)

	projects.On("GetByID", uint(1), uint(7)).Return(&model.Project{ID: 7, TenantID: 1, UserID: 5, Name: "old"}, nil)
	projects.On("Update", mock.Anything).Return(nil)

	c, rec := newTestContext(t, http.MethodPut, "/api/projects/7", `{"name":"renamed"}`, userPrincipal(5))
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	updated := projects.Calls[1].Arguments.Get(0).(*model.Project)
	assert.Equal(t, "renamed", updated.Name)
}

func TestProjectUpdateByAdminNonOwner(t *testing.T) {
	projects := new(MockProjectStore)
	h := NewProjectHandler(projects)

	projects.On("GetByID", uint(1), uint(7)).Return(&model.Project{ID: 7, TenantID: 1, UserID: 9}, nil)
	projects.On("Update", mock.Anything).Return(nil)

	c, rec := newTestContext(t, http.MethodPut, "/api/projects/7", `{"name":"renamed"}`, adminPrincipal())
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProjectDeleteIsTenantScoped(t *testing.T) {
	projects := new(MockProjectStore)
	h := NewProjectHandler(projects)

	projects.On("Delete", uint(1), uint(7)).Return(nil)

	c, rec := newTestContext(t, http.MethodDelete, "/api/projects/7", "", adminPrincipal())
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	projects.AssertExpectations(t)
}

func TestProjectInvalidID(t *testing.T) {
	h := NewProjectHandler(new(MockProjectStore))

	c, _ := newTestContext(t, http.MethodGet, "/api/projects/abc", "", userPrincipal(5))
	c.SetParamNames("id")
	c.SetParamValues("abc")

	requireAppError(t, h.Get(c), "VALIDATION_ERROR")
}
