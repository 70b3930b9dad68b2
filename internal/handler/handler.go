// Package handler implements the HTTP surface. Handlers are methods on
// structs holding their injected stores; every entity query is scoped by the
// tenant bound to the request principal.
package handler

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/repository"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperror.Validation(validationMessage(err))
	}
	return nil
}

// validationMessage renders the first field failure as a short, stable
// message.
func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		if fe.Tag() == "required" {
			return fe.Field() + " is required"
		}
		return fe.Field() + " is invalid"
	}
	return "invalid request"
}

// parseListQuery reads the common list parameters (page, limit, search,
// isActive) from the query string. Unparseable values fall back to defaults.
func parseListQuery(c echo.Context) repository.ListQuery {
	q := repository.ListQuery{Search: c.QueryParam("search")}

	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}
	active := c.QueryParam("isActive")
	if active == "" {
		active = c.QueryParam("is_active")
	}
	if active != "" {
		if b, err := strconv.ParseBool(active); err == nil {
			q.IsActive = &b
		}
	}
	return q
}

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("invalid " + name)
	}
	return uint(id), nil
}

// listResponse is the envelope for paginated list endpoints.
func listResponse(data interface{}, q repository.ListQuery, total int64) echo.Map {
	return echo.Map{
		"data":       data,
		"pagination": repository.NewPagination(q.Normalize(), total),
	}
}
