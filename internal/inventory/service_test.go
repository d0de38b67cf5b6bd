package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdholdren/pagelinks/pagination"
)

type fakeRepo struct {
	servers    []Server
	countErr   error
	blockCount bool
	countCalls int
}

func (r *fakeRepo) InsertServer(_ context.Context, name, region string) (Server, error) {
	srv := Server{ID: fmt.Sprintf("srv-%d", len(r.servers)), Name: name, Region: region}
	r.servers = append(r.servers, srv)
	return srv, nil
}

func (r *fakeRepo) Server(_ context.Context, id string) (Server, error) {
	for _, s := range r.servers {
		if s.ID == id {
			return s, nil
		}
	}
	return Server{}, ErrNotFound
}

func (r *fakeRepo) CountServers(ctx context.Context, f Filter) (int, error) {
	r.countCalls++
	if r.blockCount {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.matching(f)), nil
}

func (r *fakeRepo) ListServers(_ context.Context, f Filter, limit, offset uint64) ([]Server, error) {
	all := r.matching(f)
	if offset >= uint64(len(all)) {
		return []Server{}, nil
	}
	end := min(offset+limit, uint64(len(all)))
	return all[offset:end], nil
}

func (r *fakeRepo) matching(f Filter) []Server {
	var out []Server
	for _, s := range r.servers {
		if f.Region != "" && s.Region != f.Region {
			continue
		}
		if !strings.HasPrefix(s.Name, f.NamePrefix) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func seeded(n int) *fakeRepo {
	r := &fakeRepo{}
	for i := range n {
		r.InsertServer(context.Background(), fmt.Sprintf("web-%02d", i), "eu")
	}
	return r
}

func query(number, size int) Query {
	return NewQuery(Filter{}).Page(number).Per(size).(Query)
}

func newService(repo Repository) *Service {
	return NewService(repo, ServiceConfig{
		CountTimeout:   time.Second,
		CountCacheSize: 16,
		CountCacheTTL:  time.Minute,
	})
}

func TestList_Counted(t *testing.T) {
	svc := newService(seeded(5))

	page, err := svc.List(context.Background(), query(2, 2))
	require.NoError(t, err)
	assert.Equal(t, pagination.Pages(3), page.TotalPages())
	assert.Equal(t, 2, page.CurrentPage())
	assert.Equal(t, 2, page.Size())
	assert.False(t, page.LastPage())
	require.Len(t, page.Items, 2)
	assert.Equal(t, "web-02", page.Items[0].Name)

	page, err = svc.List(context.Background(), query(3, 2))
	require.NoError(t, err)
	assert.True(t, page.LastPage())
	require.Len(t, page.Items, 1)
	// Size stays what was asked for
	assert.Equal(t, 2, page.Size())
}

func TestList_WithoutCount(t *testing.T) {
	repo := seeded(5)
	svc := newService(repo)

	q := NewQuery(Filter{}).Page(2).Per(2).(Query).WithoutCount().(Query)
	page, err := svc.List(context.Background(), q)
	require.NoError(t, err)

	assert.Zero(t, repo.countCalls)
	assert.False(t, page.TotalPages().Known)
	assert.False(t, page.LastPage())
	assert.Len(t, page.Items, 2)

	q = NewQuery(Filter{}).Page(3).Per(2).(Query).WithoutCount().(Query)
	page, err = svc.List(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, page.LastPage())
	assert.Len(t, page.Items, 1)
}

func TestList_CountFailureFallsBack(t *testing.T) {
	repo := seeded(5)
	repo.countErr = errors.New("too expensive")
	svc := newService(repo)

	page, err := svc.List(context.Background(), query(2, 2))
	require.NoError(t, err)
	assert.Equal(t, pagination.Uncountable, page.TotalPages())
	assert.Len(t, page.Items, 2)

	links := pagination.Paginate(page, pagination.Options{URL: "/v1/servers"})
	_, hasLast := links.Get(pagination.RelLast)
	_, hasNext := links.Get(pagination.RelNext)
	assert.False(t, hasLast)
	assert.True(t, hasNext)
}

func TestList_CountTimeout(t *testing.T) {
	repo := seeded(3)
	repo.blockCount = true
	svc := NewService(repo, ServiceConfig{CountTimeout: 10 * time.Millisecond, CountCacheSize: 16, CountCacheTTL: time.Minute})

	page, err := svc.List(context.Background(), query(1, 2))
	require.NoError(t, err)
	assert.False(t, page.TotalPages().Known)
	assert.False(t, page.LastPage())
}

func TestList_CachesCounts(t *testing.T) {
	repo := seeded(4)
	svc := newService(repo)
	ctx := context.Background()

	_, err := svc.List(ctx, query(1, 2))
	require.NoError(t, err)
	page, err := svc.List(ctx, query(2, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.countCalls)
	assert.Equal(t, pagination.Pages(2), page.TotalPages())

	// Creating drops the cached total
	_, err = svc.Create(ctx, "web-99", "eu")
	require.NoError(t, err)
	page, err = svc.List(ctx, query(2, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, repo.countCalls)
	assert.Equal(t, pagination.Pages(3), page.TotalPages())
}

func TestList_Filter(t *testing.T) {
	repo := seeded(3)
	repo.InsertServer(context.Background(), "db-01", "us")
	svc := newService(repo)

	q := NewQuery(Filter{Region: "us"}).Page(1).Per(10).(Query)
	page, err := svc.List(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "db-01", page.Items[0].Name)
	assert.Equal(t, pagination.Pages(1), page.TotalPages())
}

func TestList_InvalidSize(t *testing.T) {
	svc := newService(seeded(1))

	_, err := svc.List(context.Background(), NewQuery(Filter{}))
	assert.Error(t, err)
}

func TestScopeQuery(t *testing.T) {
	p, err := pagination.ScopeWithoutCount(NewQuery(Filter{Region: "eu"}), pagination.Request{Number: 4, Size: 10})
	require.NoError(t, err)

	q, ok := p.(Query)
	require.True(t, ok)
	assert.Equal(t, 4, q.Number())
	assert.Equal(t, 10, q.Size())
	assert.True(t, q.NoCount())
	assert.Equal(t, "eu", q.Region)
	assert.Equal(t, uint64(30), q.offset())
}

func TestQueryOffset_LargePage(t *testing.T) {
	q := NewQuery(Filter{}).Page(math.MaxInt32).Per(100).(Query)
	assert.Equal(t, uint64(math.MaxInt32-1)*100, q.offset())

	q = NewQuery(Filter{}).Page(math.MaxInt32).Per(math.MaxInt32).(Query)
	assert.Equal(t, uint64(math.MaxInt32-1)*math.MaxInt32, q.offset())

	assert.Zero(t, NewQuery(Filter{}).Page(3).(Query).offset())
}
