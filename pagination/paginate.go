// Package pagination computes self/first/prev/next/last links for a paged
// collection and renders them as URLs with merged query parameters.
//
// Resources declare what they can report by implementing [Pageable], and
// optionally [Countable] and [LastPager]. When the total page count is known
// the full set of links is produced. When it isn't, next is a guess unless the
// resource knows it is on its last page, and there is no last link.
package pagination

// Paginate returns the links for r, or an empty set when there is nothing to
// paginate: r is nil, or it isn't [Countable] and opts.NoCount is unset.
//
// A resource that cannot produce its total falls back to uncounted links, as
// does opts.NoCount. It never fails.
func Paginate(r Pageable, opts Options) LinkSet {
	links, err := Build(r, opts)
	if err != nil {
		return LinkSet{}
	}

	return links
}

// PaginateWithoutCount returns uncounted links for r without ever asking for a
// total, for backends where counting is known to be expensive.
func PaginateWithoutCount(r Pageable, opts Options) LinkSet {
	opts.NoCount = true

	return Paginate(r, opts)
}
