// File: internal/common/pagination.go
package common

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage      = 1
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// PaginationQuery holds pagination parameters from a request query string.
type PaginationQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// GetPaginationParams extracts page/limit query parameters from the Gin context.
func GetPaginationParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page <= 0 {
		page = DefaultPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil || limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// Offset calculates the offset for database queries.
func (pq *PaginationQuery) Offset() int {
	if pq.Page <= 0 {
		pq.Page = DefaultPage
	}
	return (pq.Page - 1) * pq.PageLimit()
}

// PageLimit calculates the limit for database queries.
func (pq *PaginationQuery) PageLimit() int {
	if pq.Limit <= 0 {
		pq.Limit = DefaultPageLimit
	}
	if pq.Limit > MaxPageLimit {
		pq.Limit = MaxPageLimit
	}
	return pq.Limit
}
