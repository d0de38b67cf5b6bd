package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jdholdren/pagelinks/internal/metrics"
	"github.com/jdholdren/pagelinks/pagination"
)

type (
	// Service lists servers a page at a time.
	Service struct {
		repo         Repository
		counts       *expirable.LRU[Filter, int]
		countTimeout time.Duration
	}

	ServiceConfig struct {
		// How long counting may take before the listing goes ahead without a total.
		// Zero means no limit.
		CountTimeout   time.Duration
		CountCacheSize int
		CountCacheTTL  time.Duration
	}
)

func NewService(repo Repository, cfg ServiceConfig) *Service {
	return &Service{
		repo:         repo,
		counts:       expirable.NewLRU[Filter, int](cfg.CountCacheSize, nil, cfg.CountCacheTTL),
		countTimeout: cfg.CountTimeout,
	}
}

// Create adds a server. Cached totals are dropped since they are now stale.
func (s *Service) Create(ctx context.Context, name, region string) (Server, error) {
	srv, err := s.repo.InsertServer(ctx, name, region)
	if err != nil {
		return Server{}, err
	}
	s.counts.Purge()

	return srv, nil
}

func (s *Service) Server(ctx context.Context, id string) (Server, error) {
	return s.repo.Server(ctx, id)
}

// List fetches the page q points at.
//
// The total is counted unless q says otherwise. When there is no total, one
// extra row is fetched to find out whether this is the last page.
func (s *Service) List(ctx context.Context, q Query) (Page, error) {
	if q.size < 1 {
		return Page{}, fmt.Errorf("invalid page size %d", q.size)
	}

	page := Page{
		number: q.number,
		size:   q.size,
		total:  pagination.Uncountable,
	}
	if !q.noCount {
		page.total = s.total(ctx, q.Filter, q.size)
	}

	limit := uint64(q.size)
	if !page.total.Known {
		limit++
	}

	items, err := s.repo.ListServers(ctx, q.Filter, limit, q.offset())
	if err != nil {
		return Page{}, fmt.Errorf("error listing servers: %w", err)
	}

	if page.total.Known {
		page.lastPage = q.number >= page.total.Pages
	} else {
		page.lastPage = len(items) <= q.size
		if !page.lastPage {
			items = items[:q.size]
		}
	}
	page.Items = items

	return page, nil
}

// total counts the pages matching f. Failing to count isn't fatal: the listing
// continues without a total.
func (s *Service) total(ctx context.Context, f Filter, size int) pagination.Total {
	if n, ok := s.counts.Get(f); ok {
		metrics.CountCacheHitsTotal.Inc()
		return pagination.Pages(pages(n, size))
	}

	countCtx := ctx
	if s.countTimeout > 0 {
		var cancel context.CancelFunc
		countCtx, cancel = context.WithTimeout(ctx, s.countTimeout)
		defer cancel()
	}

	n, err := s.repo.CountServers(countCtx, f)
	if err != nil {
		slog.WarnContext(ctx, "counting servers failed, listing without a total",
			"region", f.Region,
			"name_prefix", f.NamePrefix,
			"error", err,
		)
		metrics.CountFallbacksTotal.Inc()
		return pagination.Uncountable
	}
	s.counts.Add(f, n)

	return pagination.Pages(pages(n, size))
}

func pages(items, size int) int {
	return (items + size - 1) / size
}
