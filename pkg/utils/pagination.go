package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts pagination parameters from request.
// Invalid or missing values fall back to page 1 and defaultLimit. A limit
// above MaxPageSize is capped.
func GetPaginationParams(c echo.Context, defaultLimit int) PaginationParams {
	if defaultLimit <= 0 || defaultLimit > MaxPageSize {
		defaultLimit = DefaultPageSize
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = defaultLimit
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// TotalPages is ceil(total/limit), never less than 1.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// Paginate slices items for the requested page. A page past the end yields
// no items while Total and TotalPages still describe the full set.
func Paginate[T any](items []T, page, limit int) Page[T] {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := TotalPages(total, limit)

	start := (page - 1) * limit
	pageItems := []T{}
	if start < total {
		end := start + limit
		if end > total {
			end = total
		}
		pageItems = append(pageItems, items[start:end]...)
	}

	return Page[T]{
		Items:       pageItems,
		Total:       total,
		CurrentPage: ClampPage(page, totalPages),
		TotalPages:  totalPages,
	}
}
