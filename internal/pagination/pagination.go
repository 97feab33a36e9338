// Package pagination implements cursor-based page shaping.
//
// Callers over-fetch limit+1 rows ordered by a stable key (creation time
// descending, id as tiebreak) and hand the slice to Paginate, which decides
// whether another page exists and which cursor addresses it. The cursor is
// always the id of the last returned item and is exclusive: requesting with
// it skips exactly that row.
package pagination

// Cursorer is implemented by anything that can address itself in a page.
type Cursorer interface {
	Cursor() string
}

// Page is one page of results plus the cursor for the next one.
type Page[T Cursorer] struct {
	Items       []T    `json:"items"`
	NextCursor  string `json:"next_cursor,omitempty"`
	HasNextPage bool   `json:"has_next_page"`
}

// Paginate shapes an over-fetched slice into a page of at most limit items.
// If more than limit items were fetched the surplus is dropped, HasNextPage
// is set, and NextCursor is the cursor of the last kept item. It is a pure
// function; the input slice is not modified.
func Paginate[T Cursorer](items []T, limit int) Page[T] {
	if limit < 0 {
		limit = 0
	}
	if len(items) <= limit {
		return Page[T]{Items: items}
	}

	kept := items[:limit]
	page := Page[T]{
		Items:       kept,
		HasNextPage: true,
	}
	if limit > 0 {
		page.NextCursor = kept[limit-1].Cursor()
	}
	return page
}
