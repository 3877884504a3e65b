package browse

import "github.com/five82/reel/internal/catalog"

// PageSize is the number of titles shown per page.
const PageSize = 50

// PageView is one page of the result set.
type PageView struct {
	Items      []catalog.Title
	Page       int
	TotalPages int
	Total      int
	Size       int
}

// HasPrev reports whether a previous page exists.
func (v PageView) HasPrev() bool {
	return v.Page > 1
}

// HasNext reports whether a following page exists.
func (v PageView) HasNext() bool {
	return v.Page < v.TotalPages
}

// Offset is the index of the first item of the page within the result set.
func (v PageView) Offset() int {
	return (v.Page - 1) * v.Size
}

// Paginate slices items into the 1-based page of the given size. There is
// always at least one page; a page past the end is empty rather than an error.
func Paginate(items []catalog.Title, page, size int) PageView {
	if size <= 0 {
		size = PageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(items)
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	view := PageView{Page: page, TotalPages: pages, Total: total, Size: size}
	if page > pages {
		return view
	}

	start := (page - 1) * size
	if start >= total {
		return view
	}
	end := min(start+size, total)
	view.Items = items[start:end]
	return view
}
