package services

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Pagination is the envelope every list endpoint returns alongside its
// items. Prev and Next are null at the edges.
type Pagination struct {
	First int   `json:"first"`
	Prev  *int  `json:"prev"`
	Next  *int  `json:"next"`
	Last  int   `json:"last"`
	Pages int   `json:"pages"`
	Items int64 `json:"items"`
}

// normalizePage clamps page and limit to sane values.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	return page, limit
}

func paginate(page, limit int, items int64) Pagination {
	page, limit = normalizePage(page, limit)
	pages := int((items + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	p := Pagination{First: 1, Last: pages, Pages: pages, Items: items}
	if page > 1 {
		prev := page - 1
		if prev > pages {
			prev = pages
		}
		p.Prev = &prev
	}
	if page < pages {
		next := page + 1
		p.Next = &next
	}
	return p
}
