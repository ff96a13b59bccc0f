package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Params represents pagination parameters
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Meta represents pagination metadata attached to list responses
type Meta struct {
	Count int   `json:"count"` // items on this page
	Total int64 `json:"total"` // items across all pages
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// DefaultLimit is the default number of items per page
const DefaultLimit = 10

// MaxLimit is the maximum number of items per page
const MaxLimit = 100

// GetParams extracts pagination parameters from the request query,
// clamped to [1, maxLimit]. A non-positive maxLimit falls back to MaxLimit.
func GetParams(c *fiber.Ctx, defaultLimit, maxLimit int) *Params {
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}
	if maxLimit < 1 {
		maxLimit = MaxLimit
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return &Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetMeta calculates pagination metadata for a page of count items out of total
func GetMeta(params *Params, count int, total int64) *Meta {
	pages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		pages++
	}

	return &Meta{
		Count: count,
		Total: total,
		Page:  params.Page,
		Pages: pages,
	}
}
