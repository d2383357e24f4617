package models

// Page is the pagination envelope returned by every paginated listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices an ordered listing. Pages are zero-based; a page past
// the end yields empty items while Total and TotalPages stay accurate.
// Error-mapping for out-of-range pages, if any, is the caller's policy.
func Paginate[T any](page, perPage int, list func(page, pageSize int) ([]T, error), count func() (int, error)) (*Page[T], error) {
	total, err := count()
	if err != nil {
		return nil, err
	}
	items, err := list(page, perPage)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	totalPages := 1
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
		if totalPages < 1 {
			totalPages = 1
		}
	}

	return &Page[T]{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
