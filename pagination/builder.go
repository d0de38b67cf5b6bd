package pagination

// Options configure a link build. The zero value is valid: no URL (links are
// bare "?query" strings), no extra parameters, counting allowed.
type Options struct {
	// URL is the request URL links are based on. Its query is parsed and kept
	// in every link.
	URL string
	// QueryParameters are added to every link and win over the URL's own
	// parameters. nil values remove a parameter.
	QueryParameters Params
	// NoCount skips asking the resource for its total.
	NoCount bool
}

// Links builds the link set for s. An invalid state yields an empty set.
//
// The URL's parameters are merged under opts.QueryParameters, nils are
// compacted away, and page[number] and page[size] are then set per link. The
// merge happens on every call so concurrent builds never share results.
func Links(s State, opts Options) LinkSet {
	if !s.valid() {
		return LinkSet{}
	}

	base, existing := SplitURL(opts.URL)
	merged := Compact(Merge(existing, opts.QueryParameters))

	plan := s.Plan()
	links := make(LinkSet, 0, len(plan))
	for _, t := range plan {
		params := Merge(merged, Params{
			"page": Params{"number": t.Page, "size": s.Size},
		})
		links = append(links, Link{Rel: t.Rel, URL: base + "?" + Encode(params)})
	}

	return links
}

// Build reads the page state from r and builds its links.
//
// Unless opts.NoCount is set, r must be Countable or an
// *UnpageableResourceError is returned. A Countable resource whose total is
// unknown gets uncounted links. A nil r, including a nil pointer behind the
// interface, has nothing to paginate and yields an empty set.
func Build(r Pageable, opts Options) (LinkSet, error) {
	if null(r) {
		return LinkSet{}, nil
	}
	if _, ok := r.(Countable); !ok && !opts.NoCount {
		return LinkSet{}, &UnpageableResourceError{Capability: "TotalPages"}
	}

	return Links(stateOf(r, !opts.NoCount), opts), nil
}
