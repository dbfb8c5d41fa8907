package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/shared/biztime"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

// ParseIDParam parses a positive integer ID from a URL path parameter.
// entityName is used in error messages (e.g., "contact", "ticket").
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID", entityName))
	}
	return uint(id), nil
}

// QueryString returns the trimmed query value for key.
func QueryString(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}

// QueryUint parses an optional positive integer query value. A value that is
// present but not a number is a validation error, never silently ignored.
func QueryUint(c *gin.Context, key string) (*uint, error) {
	raw := QueryString(c, key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+key+" in query", key+" must be a non-negative integer")
	}
	v := uint(n)
	return &v, nil
}

// QueryInt parses an optional integer query value.
func QueryInt(c *gin.Context, key string) (*int, error) {
	raw := QueryString(c, key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+key+" in query", key+" must be an integer")
	}
	return &n, nil
}

// QueryTime parses an optional date bound. Date-only values resolve to the
// start of the day, or its end when upper is true.
func QueryTime(c *gin.Context, key string, upper bool) (*time.Time, error) {
	raw := QueryString(c, key)
	if raw == "" {
		return nil, nil
	}
	t, err := biztime.ParseBound(raw, upper)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+key+" in query", err.Error())
	}
	return &t, nil
}

// GetActorID returns the authenticated user id set by the auth middleware,
// or nil for anonymous requests.
func GetActorID(c *gin.Context) *uint {
	v, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

// ParsePageFilter reads page and page_size.
func ParsePageFilter(c *gin.Context) (query.PageFilter, error) {
	p, err := ParsePagination(c)
	if err != nil {
		return query.PageFilter{}, err
	}
	return query.PageFilter{Page: p.Page, PageSize: p.PageSize}, nil
}

// ParseBaseFilter reads pagination and the ordering parameter. allowed maps
// public field names to columns; nil disables ordering.
func ParseBaseFilter(c *gin.Context, allowed map[string]string) (query.BaseFilter, error) {
	page, err := ParsePageFilter(c)
	if err != nil {
		return query.BaseFilter{}, err
	}
	sort, err := query.ParseOrdering(c.Query("ordering"), allowed)
	if err != nil {
		return query.BaseFilter{}, errors.NewValidationError("invalid ordering", err.Error())
	}
	return query.BaseFilter{PageFilter: page, SortFilter: sort}, nil
}

// QueryOptional returns the trimmed query value, or nil when absent.
func QueryOptional(c *gin.Context, key string) *string {
	raw := QueryString(c, key)
	if raw == "" {
		return nil
	}
	return &raw
}

// RequireActorID returns the authenticated user id or an unauthorized error.
func RequireActorID(c *gin.Context) (uint, error) {
	id := GetActorID(c)
	if id == nil {
		return 0, errors.NewUnauthorizedError("authentication required")
	}
	return *id, nil
}
