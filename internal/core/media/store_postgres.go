// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shipdoc/internal/platform/database/schema"
	"github.com/taibuivan/shipdoc/internal/platform/dberr"
	"github.com/taibuivan/shipdoc/internal/platform/postgres"
)

// repository implements [Repository] using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed media store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

var selectColumns = strings.Join(schema.ProductionMedia.Columns(), ", ")

/*
List returns a filtered, paginated slice of media.

Parameters:
  - context: context.Context
  - filter: Filter (type, language, name substring)
  - limit, offset: int

Returns:
  - []*Media: Page of records ordered by name
  - int: Total count matching the filter
  - error: Database execution errors
*/
func (repository *repository) List(context context.Context, filter Filter, limit, offset int) ([]*Media, int, error) {

	// Build dynamic WHERE clause
	var conditions []string
	var args []any

	if filter.MediaType != "" {
		args = append(args, filter.MediaType)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.ProductionMedia.MediaType, len(args)))
	}

	if filter.Language != "" {
		args = append(args, filter.Language)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.ProductionMedia.Language, len(args)))
	}

	if filter.Query != "" {
		args = append(args, "%"+postgres.EscapeLike(filter.Query)+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", schema.ProductionMedia.Name, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count first, then fetch the page
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.ProductionMedia.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_media")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s, %s LIMIT $%d OFFSET $%d`,
		selectColumns, schema.ProductionMedia.Table, where,
		schema.ProductionMedia.Name, schema.ProductionMedia.ID,
		len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_media")
	}

	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

/*
FindByID fetches a single media record.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Media: The hydrated record (URL not yet resolved)
  - error: NotFound or execution errors
*/
func (repository *repository) FindByID(context context.Context, id int64) (*Media, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.ProductionMedia.Table, schema.ProductionMedia.ID)

	item, err := scan(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "Media", "get_media")
	}
	return item, nil
}

/*
FindByIDs fetches all existing media among ids.

Parameters:
  - context: context.Context
  - ids: []int64 (duplicates allowed)

Returns:
  - map[int64]*Media: Found records keyed by ID
  - error: Database execution errors
*/
func (repository *repository) FindByIDs(context context.Context, ids []int64) (map[int64]*Media, error) {
	found := make(map[int64]*Media, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1)`,
		selectColumns, schema.ProductionMedia.Table, schema.ProductionMedia.ID)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "find_media_by_ids")
	}

	items, err := collect(rows)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		found[item.ID] = item
	}
	return found, nil
}

// # Transaction helpers

/*
ExistingIDs reports which of ids exist in the library.

It runs on the caller's connection so media resolution happens inside the same
transaction as the write that references it.

Parameters:
  - context: context.Context
  - db: postgres.DBTX (pool or open transaction)
  - ids: []int64

Returns:
  - map[int64]bool: Set of identifiers that resolved
  - error: Database execution errors
*/
func ExistingIDs(context context.Context, db postgres.DBTX, ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1)`,
		schema.ProductionMedia.ID, schema.ProductionMedia.Table, schema.ProductionMedia.ID)

	rows, err := db.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "resolve_media_ids")
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_media_id")
		}
		existing[id] = true
	}

	return existing, dberr.Wrap(rows.Err(), "resolve_media_ids")
}

// # Scanning

func scan(row pgx.Row) (*Media, error) {
	item := &Media{}
	var mediaType string
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &mediaType, &item.StorageKey, &item.ThumbnailKey,
		&item.Language, &item.Width, &item.Height, &item.Duration, &item.FileSize, &item.CreatedAt,
	)
	item.MediaType = Type(mediaType)
	return item, err
}

func collect(rows pgx.Rows) ([]*Media, error) {
	defer rows.Close()

	items := make([]*Media, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_media")
		}
		items = append(items, item)
	}

	return items, dberr.Wrap(rows.Err(), "iterate_media")
}
