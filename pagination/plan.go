package pagination

import "math"

// Rel names a navigation link.
type Rel string

// Link relations, in the order a set lists them.
const (
	RelSelf  Rel = "self"
	RelFirst Rel = "first"
	RelPrev  Rel = "prev"
	RelNext  Rel = "next"
	RelLast  Rel = "last"
)

const firstPage = 1

// Target is a single planned link: where a rel points to.
type Target struct {
	Rel  Rel
	Page int
}

// Plan is the ordered set of page numbers a page state needs links for.
// Entries are always ordered self, first, prev, next, last.
type Plan []Target

// Page returns the page number planned for rel.
func (p Plan) Page(rel Rel) (int, bool) {
	for _, t := range p {
		if t.Rel == rel {
			return t.Page, true
		}
	}

	return 0, false
}

// Counted plans links when the total number of pages is known.
//
// A single page (or none) only gets self. first/prev are added off the first
// page, next/last before the last one.
func Counted(current, total int) Plan {
	plan := Plan{{RelSelf, current}}
	if total <= firstPage {
		return plan
	}

	if current != firstPage {
		plan = append(plan, Target{RelFirst, firstPage}, Target{RelPrev, current - 1})
	}
	if current < total {
		plan = append(plan, Target{RelNext, current + 1}, Target{RelLast, total})
	}

	return plan
}

// Uncounted plans links without a total. There is never a last link and next
// is given unless the resource said it is on its last page, or current is the
// largest page number an int can hold.
func Uncounted(current int, lastPage bool) Plan {
	plan := Plan{{RelSelf, current}}
	if current != firstPage {
		plan = append(plan, Target{RelFirst, firstPage}, Target{RelPrev, current - 1})
	}
	if lastPage || current == math.MaxInt {
		return plan
	}

	return append(plan, Target{RelNext, current + 1})
}
