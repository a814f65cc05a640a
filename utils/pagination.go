package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination bounds. Limit is clamped so one request cannot pull an entire
// plant table.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// PaginationParams carries skip/limit query parameters.
type PaginationParams struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// GetPaginationParams reads skip/limit from the query string, applying
// defaults and clamping out-of-range values.
func GetPaginationParams(c *gin.Context) PaginationParams {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PaginationParams{Skip: skip, Limit: limit}
}

// PaginatedResponse wraps a page of items with position metadata.
type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Skip       int         `json:"skip"`
	Limit      int         `json:"limit"`
	HasMore    bool        `json:"has_more"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
}

// NewPaginatedResponse builds the standard paginated envelope body.
// itemCount is the number of items in the current page.
func NewPaginatedResponse(items interface{}, itemCount int, total int64, p PaginationParams) PaginatedResponse {
	page := 1
	totalPages := 1
	if p.Limit > 0 {
		page = p.Skip/p.Limit + 1
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PaginatedResponse{
		Items:      items,
		Total:      total,
		Skip:       p.Skip,
		Limit:      p.Limit,
		HasMore:    int64(p.Skip+itemCount) < total,
		Page:       page,
		TotalPages: totalPages,
	}
}
