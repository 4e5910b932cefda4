package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskbridge/taskbridge-api/internal/constants"
)

// PaginationParams is a sanitized page/limit pair taken from query params.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse is the pagination block echoed back on list responses.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams reads page and limit from the query string, clamping
// out-of-range or unparseable values to defaults.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}

	limit := queryInt(c, "limit", constants.DefaultPageSize)
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
