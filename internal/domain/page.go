package domain

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageRequest — запрос страницы (page с 1).
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize — дефолты и границы: page >= 1, 1 <= limit <= MaxPageLimit.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset — сколько записей пропустить.
func (p PageRequest) Offset() int { return (p.Page - 1) * p.Limit }

// PageMeta — метаданные страницы.
type PageMeta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Page — страница данных.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// NewPageMeta — totalPages = ceil(total/limit).
func NewPageMeta(total int, req PageRequest) PageMeta {
	totalPages := 0
	if req.Limit > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return PageMeta{
		Total:       total,
		Page:        req.Page,
		Limit:       req.Limit,
		TotalPages:  totalPages,
		HasNextPage: req.Page < totalPages,
		HasPrevPage: req.Page > 1,
	}
}
