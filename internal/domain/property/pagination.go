package property

type Pagination struct {
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
	Limit           int   `json:"limit"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// Paginate builds the envelope for a normalized filter and a total count.
func Paginate(total int64, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		TotalCount:      total,
		TotalPages:      pages,
		CurrentPage:     page,
		Limit:           limit,
		HasNextPage:     page < pages,
		HasPreviousPage: page > 1,
	}
}
