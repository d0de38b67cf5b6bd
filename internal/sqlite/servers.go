package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/jdholdren/pagelinks/internal/inventory"
)

const serverNamespace = "-srv"

// SQLITE_CONSTRAINT_UNIQUE
const codeUniqueViolation = 2067

func (r Repo) InsertServer(ctx context.Context, name, region string) (inventory.Server, error) {
	const q = `INSERT INTO servers (id, name, region, created_at) VALUES (:id, :name, :region, :created_at);`
	srv := inventory.Server{
		ID:        fmt.Sprintf("%s%s", uuid.NewString(), serverNamespace),
		Name:      name,
		Region:    region,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.NamedExecContext(ctx, q, srv)
	if sqliteErr := (&sqlite.Error{}); errors.As(err, &sqliteErr) && sqliteErr.Code() == codeUniqueViolation {
		return inventory.Server{}, fmt.Errorf("server %q already exists: %w", name, inventory.ErrConflict)
	}
	if err != nil {
		return inventory.Server{}, fmt.Errorf("error inserting server: %s", err)
	}

	return r.Server(ctx, srv.ID)
}

func (r Repo) Server(ctx context.Context, id string) (inventory.Server, error) {
	const q = `SELECT * FROM servers WHERE id = ?;`

	var srv inventory.Server
	err := r.db.GetContext(ctx, &srv, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.Server{}, inventory.ErrNotFound
	}
	if err != nil {
		return inventory.Server{}, fmt.Errorf("error fetching server: %s", err)
	}

	return srv, nil
}

func (r Repo) CountServers(ctx context.Context, f inventory.Filter) (int, error) {
	query, args, err := filtered(sq.Select("COUNT(*)").From("servers"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error constructing sql: %s", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("error counting servers: %w", err)
	}

	return count, nil
}

func (r Repo) ListServers(ctx context.Context, f inventory.Filter, limit, offset uint64) ([]inventory.Server, error) {
	query, args, err := filtered(sq.Select("*").From("servers"), f).
		OrderBy("name ASC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %s", err)
	}

	servers := []inventory.Server{}
	if err := r.db.SelectContext(ctx, &servers, query, args...); err != nil {
		return nil, fmt.Errorf("error listing servers: %w", err)
	}

	return servers, nil
}

func filtered(b sq.SelectBuilder, f inventory.Filter) sq.SelectBuilder {
	if f.Region != "" {
		b = b.Where(sq.Eq{"region": f.Region})
	}
	if f.NamePrefix != "" {
		b = b.Where(sq.Like{"name": f.NamePrefix + "%"})
	}
	return b
}
