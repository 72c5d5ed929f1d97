package internal

import "math"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Pagination is the 1-based page request shared by every list query.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize clamps limit to 1..MaxPageLimit and page to 1..MaxPage(limit).
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if max := MaxPage(p.Limit); p.Page > max {
		p.Page = max
	}
	return p
}

// MaxPage is the last page whose offset plus limit still fits in an int.
func MaxPage(limit int) int {
	return math.MaxInt / limit
}

func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](data []T, total int64, p Pagination) Page[T] {
	p = p.Normalize()
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: int((total + int64(p.Limit) - 1) / int64(p.Limit)),
	}
}
