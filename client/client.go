// Package client talks to the inventory API and walks its pages by following
// the links it hands back.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/jdholdren/pagelinks/api"
	v1 "github.com/jdholdren/pagelinks/api/servers/v1"
	"github.com/jdholdren/pagelinks/pagination"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New makes a client for the API at baseURL. A nil httpClient uses
// [http.DefaultClient].
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

type (
	// PageOptions encode as page[number] and page[size].
	PageOptions struct {
		Number int `url:"number,omitempty"`
		Size   int `url:"size,omitempty"`
	}

	ListServersOptions struct {
		Page       PageOptions `url:"page,omitempty"`
		Region     string      `url:"region,omitempty"`
		NamePrefix string      `url:"name_prefix,omitempty"`
		NoCount    bool        `url:"no_count,omitempty"`
	}
)

func (c *Client) ListServers(ctx context.Context, opts ListServersOptions) (v1.ServerList, error) {
	vals, err := query.Values(opts)
	if err != nil {
		return v1.ServerList{}, fmt.Errorf("error encoding options: %s", err)
	}

	target := c.baseURL + "/v1/servers"
	if len(vals) > 0 {
		target += "?" + vals.Encode()
	}

	var list v1.ServerList
	if err := c.do(ctx, http.MethodGet, target, nil, &list); err != nil {
		return v1.ServerList{}, err
	}

	return list, nil
}

// Next fetches the page after list. It reports false when list has no next
// link.
func (c *Client) Next(ctx context.Context, list v1.ServerList) (v1.ServerList, bool, error) {
	return c.follow(ctx, list, pagination.RelNext)
}

// Prev fetches the page before list.
func (c *Client) Prev(ctx context.Context, list v1.ServerList) (v1.ServerList, bool, error) {
	return c.follow(ctx, list, pagination.RelPrev)
}

func (c *Client) follow(ctx context.Context, list v1.ServerList, rel pagination.Rel) (v1.ServerList, bool, error) {
	target, ok := list.Links.Get(rel)
	if !ok {
		return v1.ServerList{}, false, nil
	}

	var page v1.ServerList
	if err := c.do(ctx, http.MethodGet, target, nil, &page); err != nil {
		return v1.ServerList{}, false, err
	}

	return page, true, nil
}

func (c *Client) CreateServer(ctx context.Context, req v1.CreateServerRequest) (v1.Server, error) {
	var srv v1.Server
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/v1/servers", req, &srv); err != nil {
		return v1.Server{}, err
	}

	return srv, nil
}

func (c *Client) Server(ctx context.Context, id string) (v1.Server, error) {
	var srv v1.Server
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/v1/servers/"+id, nil, &srv); err != nil {
		return v1.Server{}, err
	}

	return srv, nil
}

// do sends body as JSON and decodes the response into out. Non-2xx responses
// come back as an [api.Error].
func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		byts, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request: %s", err)
		}
		reader = bytes.NewReader(byts)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %s", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := api.Error{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %s", err)
	}

	return nil
}
