package inventory

import "github.com/jdholdren/pagelinks/pagination"

// Query is a filtered listing narrowed to a single page.
type Query struct {
	Filter

	number  int
	size    int
	noCount bool
}

var _ pagination.CountSkipper = Query{}

// NewQuery starts at the first page. The size is set with Per.
func NewQuery(f Filter) Query {
	return Query{Filter: f, number: 1}
}

func (q Query) Page(number int) pagination.Pager {
	q.number = number
	return q
}

func (q Query) Per(size int) pagination.Pager {
	q.size = size
	return q
}

// WithoutCount skips counting the matching servers.
func (q Query) WithoutCount() pagination.Pager {
	q.noCount = true
	return q
}

// Number, Size and NoCount report what Page, Per and WithoutCount set.
func (q Query) Number() int   { return q.number }
func (q Query) Size() int     { return q.size }
func (q Query) NoCount() bool { return q.noCount }

// offset is computed in uint64 so a large page number can't wrap negative.
func (q Query) offset() uint64 {
	if q.number < 1 || q.size < 1 {
		return 0
	}
	return uint64(q.number-1) * uint64(q.size)
}

// Page is one page of servers, with what is known about its position.
type Page struct {
	Items []Server

	number   int
	size     int
	total    pagination.Total
	lastPage bool
}

var (
	_ pagination.Countable = Page{}
	_ pagination.LastPager = Page{}
)

func (p Page) CurrentPage() int { return p.number }

// Size is the requested page size, not len(Items), so links off a short last
// page keep the caller's size.
func (p Page) Size() int { return p.size }

func (p Page) TotalPages() pagination.Total { return p.total }

func (p Page) LastPage() bool { return p.lastPage }
