package pagination

type (
	// Pageable is the minimum a resource must report to get links.
	Pageable interface {
		// CurrentPage is 1-based.
		CurrentPage() int
		// Size is the page size reported as page[size] in every link.
		Size() int
	}

	// Countable resources can report how many pages there are in total.
	Countable interface {
		Pageable
		TotalPages() Total
	}

	// LastPager resources know whether they are on the last page without
	// counting. Only consulted when the total is unknown.
	LastPager interface {
		LastPage() bool
	}
)

// Total is the outcome of asking a resource for its page count. Known is false
// when the backend could not, or would not, count.
type Total struct {
	Pages int
	Known bool
}

// Pages is a known total.
func Pages(n int) Total {
	return Total{Pages: n, Known: true}
}

// Uncountable is the Total of a resource that cannot be counted.
var Uncountable = Total{}

// State is the set of facts links are computed from.
type State struct {
	CurrentPage int
	Size        int
	Total       Total
	LastPage    bool
}

// valid reports whether s carries enough to build links from.
func (s State) valid() bool {
	return s.CurrentPage >= firstPage && s.Size >= 0
}

// Plan picks the counted calculator when the total is known and the uncounted
// one otherwise.
func (s State) Plan() Plan {
	if s.Total.Known {
		return Counted(s.CurrentPage, s.Total.Pages)
	}

	return Uncounted(s.CurrentPage, s.LastPage)
}

// stateOf reads the facts from r. The total is only requested when count is
// set and r is Countable.
func stateOf(r Pageable, count bool) State {
	s := State{
		CurrentPage: r.CurrentPage(),
		Size:        r.Size(),
	}
	if c, ok := r.(Countable); ok && count {
		s.Total = c.TotalPages()
	}
	if lp, ok := r.(LastPager); ok && !s.Total.Known {
		s.LastPage = lp.LastPage()
	}

	return s
}
