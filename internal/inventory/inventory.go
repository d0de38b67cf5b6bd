// Package inventory is the server inventory: the paged collection the API
// serves links for.
package inventory

import (
	"context"
	"errors"
	"time"
)

var (
	ErrConflict = errors.New("resource already exists")
	ErrNotFound = errors.New("resource not found")
)

type (
	// Server is a single machine in the inventory.
	Server struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		Region    string    `db:"region"`
		CreatedAt time.Time `db:"created_at"`
	}

	// Filter narrows a listing. Zero fields don't filter.
	Filter struct {
		Region     string
		NamePrefix string
	}

	Repository interface {
		InsertServer(ctx context.Context, name, region string) (Server, error)
		Server(ctx context.Context, id string) (Server, error)
		// Total number of servers matching the filter
		CountServers(ctx context.Context, f Filter) (int, error)
		// Servers matching the filter, ordered by name
		ListServers(ctx context.Context, f Filter, limit, offset uint64) ([]Server, error)
	}
)
