package util

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Calculate turns a 1-based page and a size into offset and limit, clamping
// both to sane values.
func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}

type Pager struct {
	Page  int
	Size  int
	Total int64
}

func NewPager(page, size int, total int64) Pager {
	offset, limit := Calculate(page, size)
	return Pager{Page: offset/limit + 1, Size: limit, Total: total}
}

func (p Pager) Pages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

func (p Pager) HasPrev() bool { return p.Page > 1 }

func (p Pager) HasNext() bool { return int64(p.Page*p.Size) < p.Total }

func (p Pager) Prev() int { return p.Page - 1 }

func (p Pager) Next() int { return p.Page + 1 }
