// Package sqlite stores the server inventory in SQLite.
package sqlite

import (
	"github.com/jmoiron/sqlx"

	"github.com/jdholdren/pagelinks/internal/inventory"
)

// Ensure Repo implements the Repository interface
var _ inventory.Repository = (*Repo)(nil)

type Repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repo {
	return Repo{db: db}
}
