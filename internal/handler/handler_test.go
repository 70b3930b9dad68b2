package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListQuery(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/api/projects?page=2&limit=20&search=api&isActive=false", "", nil)

	q := parseListQuery(c)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, "api", q.Search)
	require.NotNil(t, q.IsActive)
	assert.False(t, *q.IsActive)
}

func TestParseListQuerySnakeCaseFallback(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/api/projects?is_active=true", "", nil)

	q := parseListQuery(c)
	require.NotNil(t, q.IsActive)
	assert.True(t, *q.IsActive)
}

func TestParseListQueryIgnoresGarbage(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/api/projects?page=abc&limit=-5&isActive=maybe", "", nil)

	q := parseListQuery(c)
	assert.Equal(t, 0, q.Page) // normalized later by the store
	assert.Equal(t, -5, q.Limit)
	assert.Nil(t, q.IsActive)

	n := q.Normalize()
	assert.Equal(t, 1, n.Page)
	assert.Equal(t, 10, n.Limit)
}

func TestParseID(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/api/users/15", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("15")

	id, err := parseID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(15), id)

	c.SetParamValues("0")
	_, err = parseID(c, "id")
	requireAppError(t, err, "VALIDATION_ERROR")
}
