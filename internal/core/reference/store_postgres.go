// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/database/schema"
	"github.com/taibuivan/shipdoc/internal/platform/dberr"
	"github.com/taibuivan/shipdoc/internal/platform/postgres"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
)

// repository implements [Repository] using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed catalog store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

var (
	ref  = schema.ProductionReference
	hist = schema.ProductionReferenceHistory
	fv   = schema.ProductionFieldValue
)

var referenceColumns = fmt.Sprintf("r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s",
	ref.ID, ref.Type, ref.Icon, ref.Version, ref.CreatedBy, ref.CreatedByName, ref.CreatedAt, ref.UpdatedAt)

func scanReference(row pgx.Row, extra ...any) (*Reference, error) {
	reference := &Reference{}
	targets := append([]any{
		&reference.ID, &reference.Type, &reference.Icon, &reference.Version,
		&reference.CreatedBy, &reference.CreatedByName, &reference.CreatedAt, &reference.UpdatedAt,
	}, extra...)
	return reference, row.Scan(targets...)
}

/*
List returns references filtered by exact type and free-text search.

Description: The search matches the type or any string field value of the
reference, case-insensitively. The total is computed with a window function.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Reference: Page with fields loaded
  - int: Total count
  - error: Database execution errors
*/
func (repository *repository) List(context context.Context, filter Filter, limit, offset int) ([]*Reference, int, error) {

	// Dynamic WHERE clause
	var conditions []string
	var args []any

	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("r.%s = $%d", ref.Type, len(args)))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+postgres.EscapeLike(search)+"%")
		conditions = append(conditions, fmt.Sprintf(`(r.%s ILIKE $%d OR EXISTS (
			SELECT 1 FROM %s f
			WHERE f.%s = r.%s AND f.%s = 'string' AND f.%s ILIKE $%d
		))`,
			ref.Type, len(args),
			fv.Table,
			fv.ReferenceID, ref.ID, fv.Type, fv.ValueString, len(args),
		))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s r
		%s
		ORDER BY r.%s DESC
		LIMIT $%d OFFSET $%d`,
		referenceColumns, ref.Table, where, ref.ID, len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_references")
	}
	defer rows.Close()

	// Hydrate references
	total := 0
	references := make([]*Reference, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		reference, err := scanReference(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_reference")
		}
		references = append(references, reference)
		ids = append(ids, reference.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_references")
	}
	rows.Close()

	// Attach fields in one query
	grouped, err := fieldvalue.ListByOwners(context, repository.pool, fieldvalue.OwnerReference, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, reference := range references {
		reference.Fields = orEmpty(grouped[reference.ID])
	}

	return references, total, nil
}

/*
FindByID fetches a reference and its fields.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Reference
  - error: NotFound or execution errors
*/
func (repository *repository) FindByID(context context.Context, id int64) (*Reference, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`, referenceColumns, ref.Table, ref.ID)

	reference, err := scanReference(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "Reference", "get_reference")
	}

	fields, err := fieldvalue.ListByOwner(context, repository.pool, fieldvalue.ReferenceOwner(id))
	if err != nil {
		return nil, err
	}
	reference.Fields = fields

	return reference, nil
}

// ListTypes returns the distinct reference types in alphabetical order.
func (repository *repository) ListTypes(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s ORDER BY %s`, ref.Type, ref.Table, ref.Type)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_reference_types")
	}

	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_reference_type")
	}
	return types, nil
}

/*
Create inserts the reference, its fields and the first history entry.

Parameters:
  - context: context.Context
  - reference: *Reference
  - drafts: []fieldvalue.Draft
  - changes: Changes
  - actor: sec.Actor

Returns:
  - error: Database failures (nothing is written)
*/
func (repository *repository) Create(context context.Context, reference *Reference, drafts []fieldvalue.Draft, changes Changes, actor sec.Actor) error {
	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {

		// 1. Reference row at version 1
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, 1, $3, $4)
			RETURNING %s, %s, %s, %s`,
			ref.Table, ref.Type, ref.Icon, ref.Version, ref.CreatedBy, ref.CreatedByName,
			ref.ID, ref.Version, ref.CreatedAt, ref.UpdatedAt,
		)

		err := tx.QueryRow(context, query, reference.Type, reference.Icon, reference.CreatedBy, reference.CreatedByName).
			Scan(&reference.ID, &reference.Version, &reference.CreatedAt, &reference.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "insert_reference")
		}

		// 2. Fields
		if err := fieldvalue.ReplaceAll(context, tx, fieldvalue.ReferenceOwner(reference.ID), drafts); err != nil {
			return err
		}

		// 3. Ledger
		return appendHistory(context, tx, reference.ID, reference.Version, changes, actor)
	})
}

/*
Update applies a compare-and-swap on the version column.

Description: The UPDATE only matches when the stored version equals
expectedVersion. Zero affected rows means another writer won the race and
[ErrVersionConflict] is returned without writing anything.

Parameters:
  - context: context.Context
  - reference: *Reference (new Type and Icon)
  - expectedVersion: int
  - drafts: *[]fieldvalue.Draft
  - changes: Changes
  - actor: sec.Actor

Returns:
  - error: ErrVersionConflict, or database failures
*/
func (repository *repository) Update(context context.Context, reference *Reference, expectedVersion int, drafts *[]fieldvalue.Draft, changes Changes, actor sec.Actor) error {
	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {

		// 1. Version-checked write
		query := fmt.Sprintf(`
			UPDATE %s
			SET %s = $3, %s = $4, %s = %s + 1, %s = now()
			WHERE %s = $1 AND %s = $2
			RETURNING %s, %s`,
			ref.Table,
			ref.Type, ref.Icon, ref.Version, ref.Version, ref.UpdatedAt,
			ref.ID, ref.Version,
			ref.Version, ref.UpdatedAt,
		)

		err := tx.QueryRow(context, query, reference.ID, expectedVersion, reference.Type, reference.Icon).
			Scan(&reference.Version, &reference.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrVersionConflict
		}
		if err != nil {
			return dberr.Wrap(err, "update_reference")
		}

		// 2. Optional full field replacement
		if drafts != nil {
			if err := fieldvalue.ReplaceAll(context, tx, fieldvalue.ReferenceOwner(reference.ID), *drafts); err != nil {
				return err
			}
		}

		// 3. Ledger
		return appendHistory(context, tx, reference.ID, reference.Version, changes, actor)
	})
}

// Delete removes a reference. Field rows cascade, elements keep a null link.
func (repository *repository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, ref.Table, ref.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_reference")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Reference")
	}
	return nil
}

// Exists reports whether a reference with id exists.
func (repository *repository) Exists(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, ref.Table, ref.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "reference_exists")
	}
	return exists, nil
}

// ListHistory returns the ledger of a reference, newest version first.
func (repository *repository) ListHistory(context context.Context, id int64) ([]*HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		hist.ID, hist.ReferenceID, hist.Version, hist.Changes, hist.ChangedBy, hist.ChangedByName, hist.ChangedAt,
		hist.Table,
		hist.ReferenceID,
		hist.Version,
	)

	rows, err := repository.pool.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "list_reference_history")
	}
	defer rows.Close()

	entries := make([]*HistoryEntry, 0)
	for rows.Next() {
		entry := &HistoryEntry{}
		if err := rows.Scan(&entry.ID, &entry.ReferenceID, &entry.Version, &entry.Changes,
			&entry.ChangedBy, &entry.ChangedByName, &entry.ChangedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_reference_history")
		}
		entries = append(entries, entry)
	}

	return entries, dberr.Wrap(rows.Err(), "list_reference_history")
}

// appendHistory writes one ledger row inside tx.
func appendHistory(context context.Context, tx pgx.Tx, referenceID int64, version int, changes Changes, actor sec.Actor) error {
	payload, err := json.Marshal(changes)
	if err != nil {
		return apperr.Internal(fmt.Errorf("reference: encode history: %w", err))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		hist.Table, hist.ReferenceID, hist.Version, hist.Changes, hist.ChangedBy, hist.ChangedByName,
	)

	_, err = tx.Exec(context, query, referenceID, version, payload, actor.ID, actor.Name)
	return dberr.Wrap(err, "append_reference_history")
}

func orEmpty(fields []*fieldvalue.FieldValue) []*fieldvalue.FieldValue {
	if fields == nil {
		return make([]*fieldvalue.FieldValue, 0)
	}
	return fields
}
