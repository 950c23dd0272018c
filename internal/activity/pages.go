package activity

// Ellipsis marks a gap in a page-number window.
const Ellipsis = -1

// PageWindow computes the page-number strip for pagination controls: the full
// list when there are at most five pages, otherwise the first or last four
// pages plus the far end, or the neighborhood of the current page bracketed by
// gaps. Gaps are represented by the Ellipsis sentinel.
func PageWindow(current, total int) []int {
	if total <= 0 {
		return []int{}
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	if total <= 5 {
		pages := make([]int, 0, total)
		for p := 1; p <= total; p++ {
			pages = append(pages, p)
		}
		return pages
	}

	switch {
	case current <= 3:
		return []int{1, 2, 3, 4, Ellipsis, total}
	case current >= total-2:
		return []int{1, Ellipsis, total - 3, total - 2, total - 1, total}
	default:
		return []int{1, Ellipsis, current - 1, current, current + 1, Ellipsis, total}
	}
}

// ClampPage bounds a requested page to [1, totalPages]. A zero totalPages
// still yields page 1 so empty lists render a stable first page.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}

// TotalPages derives the page count for a total row count and page size.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
