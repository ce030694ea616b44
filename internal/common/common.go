package common

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, apperrors.Validation(fmt.Sprintf("invalid %s", name))
	}
	return uint(v), nil
}

// ParsePagination reads page and limit query parameters with defaults.
func ParsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// ParseTimeQuery reads an optional RFC 3339 timestamp or YYYY-MM-DD date.
func ParseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	return nil, apperrors.Validation(fmt.Sprintf("invalid %s: expected RFC 3339 time or YYYY-MM-DD", name))
}
