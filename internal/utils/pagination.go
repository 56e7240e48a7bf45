package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/constants"
)

// SortDirection is an explicit sort order for paginated listings.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// PageOptions holds the pagination and search parameters of a listing request.
type PageOptions struct {
	Page     int
	Take     int
	Order    SortDirection
	Search   string
	SearchBy string
}

// Skip returns the row offset for the requested page.
func (o PageOptions) Skip() int {
	return (o.Page - 1) * o.Take
}

// PageMeta is the pagination envelope returned by all paginated listings.
type PageMeta struct {
	Page            int   `json:"page"`
	Take            int   `json:"take"`
	ItemCount       int64 `json:"itemCount"`
	PageCount       int   `json:"pageCount"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// NewPageMeta builds page metadata from the request options and total count.
func NewPageMeta(opts PageOptions, itemCount int64) PageMeta {
	pageCount := int(math.Ceil(float64(itemCount) / float64(opts.Take)))
	return PageMeta{
		Page:            opts.Page,
		Take:            opts.Take,
		ItemCount:       itemCount,
		PageCount:       pageCount,
		HasPreviousPage: opts.Page > 1,
		HasNextPage:     opts.Page < pageCount,
	}
}

// GetPageOptions extracts and validates pagination parameters from the request.
// searchBy defaults to the caller-provided field name.
func GetPageOptions(c *gin.Context, defaultSearchBy string) PageOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	take, _ := strconv.Atoi(c.DefaultQuery("take", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPage {
		page = constants.MinPage
	}
	if take < 1 || take > constants.MaxPageSize {
		take = constants.DefaultPageSize
	}

	order := SortDesc
	if strings.EqualFold(c.Query("order"), string(SortAsc)) {
		order = SortAsc
	}

	return PageOptions{
		Page:     page,
		Take:     take,
		Order:    order,
		Search:   strings.TrimSpace(c.Query("search")),
		SearchBy: c.DefaultQuery("searchBy", defaultSearchBy),
	}
}
