package types

// PaginatedResult is one page of a filtered listing. Start and End are
// 1-based positions within the filtered set: Start = offset+1 and
// End = offset+len(Results), so an offset at or past the total yields an
// empty page with End < Start while Total still reports the true count.
type PaginatedResult[T any] struct {
	Results []T `json:"results"`
	Total   int `json:"total"`
	Start   int `json:"start"`
	End     int `json:"end"`
}

// Paginate slices items to the page [offset, offset+limit), clipped to the
// slice length.
func Paginate[T any](items []T, offset, limit int) PaginatedResult[T] {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	from, to := offset, offset+limit
	if from > len(items) {
		from = len(items)
	}
	if to > len(items) {
		to = len(items)
	}
	page := items[from:to]

	res := PaginatedResult[T]{
		Results: page,
		Total:   len(items),
		Start:   offset + 1,
		End:     offset + len(page),
	}
	return res
}
