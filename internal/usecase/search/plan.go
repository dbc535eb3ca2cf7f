package search

// Plan is the per-source row window for one blended page.
type Plan struct {
	InternalOffset int
	InternalLimit  int
	ExternalOffset int
	ExternalLimit  int
	// InternalPages is the number of pages internal rows alone would fill.
	InternalPages int
	// QueryExternal is true when the page has room left after internal rows.
	QueryExternal bool
}

// PlanPage splits page (1-based) of size limit between the sources, internal
// rows first. The external window starts where the internal range ends, so
// the first external row on the boundary page is external row 0 and later
// pages continue from the rows the boundary page consumed.
func PlanPage(page, limit, internalTotal int) Plan {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return Plan{}
	}
	internalTotal = max(internalTotal, 0)

	start := (page - 1) * limit
	internalLimit := min(max(internalTotal-start, 0), limit)
	remaining := limit - internalLimit

	p := Plan{
		InternalOffset: start,
		InternalLimit:  internalLimit,
		InternalPages:  ceilDiv(internalTotal, limit),
		QueryExternal:  remaining > 0,
	}
	if p.QueryExternal {
		p.ExternalOffset = max(start-internalTotal, 0)
		p.ExternalLimit = remaining
	}
	return p
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return ceilDiv(total, limit)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
