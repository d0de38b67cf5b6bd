package pagination

import (
	"math"
	"strconv"
	"strings"
)

// MaxPageNumber is the highest page ParseRequest hands out. Larger numbers
// are capped so page arithmetic downstream can't overflow.
const MaxPageNumber = math.MaxInt32

// Request is the page a caller asked for.
type Request struct {
	Number int
	Size   int
}

// ParseRequest reads page[number] and page[size] from params.
//
// A missing or invalid number is page 1 and numbers above MaxPageNumber are
// capped. A missing or invalid size is defaultSize, and sizes above maxSize
// are capped.
func ParseRequest(params Params, defaultSize, maxSize int) Request {
	req := Request{Number: firstPage, Size: defaultSize}

	if v, ok := params.Dig("page", "number"); ok {
		if n, ok := toInt(v); ok && n >= firstPage {
			req.Number = min(n, MaxPageNumber)
		}
	}
	if v, ok := params.Dig("page", "size"); ok {
		if n, ok := toInt(v); ok && n > 0 {
			req.Size = n
		}
	}
	if maxSize > 0 && req.Size > maxSize {
		req.Size = maxSize
	}

	return req
}

func toInt(v any) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}

	return 0, false
}

type (
	// Pager is a query that can be narrowed to one page.
	Pager interface {
		Page(number int) Pager
		Per(size int) Pager
	}

	// CountSkipper is a Pager that can be told not to count its total.
	CountSkipper interface {
		WithoutCount() Pager
	}
)

// Scope narrows resource to the requested page by calling Page then Per.
// It fails with an *UnpageableResourceError if resource is not a Pager.
func Scope(resource any, req Request) (Pager, error) {
	p, ok := resource.(Pager)
	if !ok {
		return nil, &UnpageableResourceError{Capability: "Page"}
	}

	return p.Page(req.Number).Per(req.Size), nil
}

// ScopeWithoutCount is Scope followed by WithoutCount.
func ScopeWithoutCount(resource any, req Request) (Pager, error) {
	p, err := Scope(resource, req)
	if err != nil {
		return nil, err
	}

	cs, ok := p.(CountSkipper)
	if !ok {
		return nil, &UnpageableResourceError{Capability: "WithoutCount"}
	}

	return cs.WithoutCount(), nil
}
