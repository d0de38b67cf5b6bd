package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	pl "github.com/jdholdren/pagelinks/api"
	v1 "github.com/jdholdren/pagelinks/api/servers/v1"
	plerrs "github.com/jdholdren/pagelinks/internal/errors"
	"github.com/jdholdren/pagelinks/internal/inventory"
	"github.com/jdholdren/pagelinks/internal/metrics"
	"github.com/jdholdren/pagelinks/internal/serverutil"
	"github.com/jdholdren/pagelinks/pagination"
)

func apiServer(s inventory.Server) v1.Server {
	return v1.Server{
		ID:        s.ID,
		Name:      s.Name,
		Region:    s.Region,
		CreatedAt: s.CreatedAt,
	}
}

// getServers lists a page of servers.
//
// Query parameters:
//   - page[number], page[size]: the page wanted
//   - region, name_prefix: filters
//   - no_count=true: skip counting, so there is no last link
//
// Every parameter is carried over into the links.
func (s Server) getServers(w http.ResponseWriter, r *http.Request) error {
	var (
		ctx     = r.Context()
		params  = pagination.ParseQuery(r.URL.RawQuery)
		req     = pagination.ParseRequest(params, s.defaultPageSize, s.maxPageSize)
		noCount = stringParam(params, "no_count") == "true"
		filter  = inventory.Filter{
			Region:     stringParam(params, "region"),
			NamePrefix: stringParam(params, "name_prefix"),
		}
	)

	scope := pagination.Scope
	if noCount {
		scope = pagination.ScopeWithoutCount
	}
	scoped, err := scope(inventory.NewQuery(filter), req)
	if err != nil {
		return plerrs.E(err)
	}

	q, err := asQuery(scoped)
	if err != nil {
		return err
	}
	page, err := s.inventory.List(ctx, q)
	if err != nil {
		return err
	}

	links := pagination.Paginate(page, pagination.Options{
		URL:     s.baseURL + r.URL.RequestURI(),
		NoCount: noCount,
	})
	mode := "counted"
	if !page.TotalPages().Known {
		mode = "uncounted"
	}
	metrics.LinkSetsTotal.WithLabelValues(mode).Inc()

	resp := v1.ServerList{
		Data:  make([]v1.Server, 0, len(page.Items)),
		Links: links,
	}
	for _, srv := range page.Items {
		resp.Data = append(resp.Data, apiServer(srv))
	}

	serverutil.WriteLinks(w, links)
	return serverutil.WriteJSON(w, http.StatusOK, resp)
}

func (s Server) postServers(w http.ResponseWriter, r *http.Request) error {
	body, err := serverutil.DecodeValid[v1.CreateServerRequest](r.Body)
	if err != nil {
		return badRequest(err)
	}

	srv, err := s.inventory.Create(r.Context(), body.Name, body.Region)
	if errors.Is(err, inventory.ErrConflict) {
		return plerrs.E(http.StatusConflict, err)
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusCreated, apiServer(srv))
}

func (s Server) getServer(w http.ResponseWriter, r *http.Request) error {
	srv, err := s.inventory.Server(r.Context(), mux.Vars(r)["serverID"])
	if errors.Is(err, inventory.ErrNotFound) {
		return plerrs.E(http.StatusNotFound, "server not found")
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, apiServer(srv))
}

// asQuery unwraps a scoped pager back into the inventory query it started as.
func asQuery(p pagination.Pager) (inventory.Query, error) {
	q, ok := p.(inventory.Query)
	if !ok {
		return inventory.Query{}, plerrs.E(fmt.Errorf("unexpected scoped query %T", p))
	}

	return q, nil
}

// badRequest turns a validation failure into a 400 carrying its details.
func badRequest(err error) error {
	var apiErr pl.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	details := make([]plerrs.Detail, 0, len(apiErr.Details))
	for _, d := range apiErr.Details {
		details = append(details, plerrs.Detail{Field: d.Field, Error: d.Error})
	}
	return plerrs.E(http.StatusBadRequest, apiErr.Message, details)
}

func stringParam(p pagination.Params, key string) string {
	v, _ := p.Dig(key)
	s, _ := v.(string)
	return s
}
