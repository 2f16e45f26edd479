// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/database/schema"
	"github.com/taibuivan/shipdoc/internal/platform/dberr"
	"github.com/taibuivan/shipdoc/internal/platform/postgres"
	"github.com/taibuivan/shipdoc/internal/platform/validate"
)

// pageRepository implements [PageRepository] using pgx.
type pageRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPageRepository constructs a PostgreSQL backed page store.
func NewPageRepository(pool *pgxpool.Pool, logger *slog.Logger) PageRepository {
	return &pageRepository{pool: pool, logger: logger}
}

var ie = schema.ProductionElement

// pageSelect lists the page columns of alias p, the sheet name and
// elements_count. The query must join the sheet as s.
var pageSelect = fmt.Sprintf(`
	p.%s, p.%s, s.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
	(SELECT COUNT(*) FROM %s e WHERE e.%s = p.%s) AS elements_count`,
	sp.ID, sp.SheetID, sh.Name, sp.Number, sp.Description, sp.CreatedBy, sp.CreatedByName, sp.CreatedAt, sp.UpdatedAt,
	ie.Table, ie.PageID, sp.ID,
)

var pageFrom = fmt.Sprintf(`%s p JOIN %s s ON s.%s = p.%s`, sp.Table, sh.Table, sh.ID, sp.SheetID)

func scanPage(row pgx.Row, extra ...any) (*Page, error) {
	page := &Page{}
	targets := append([]any{
		&page.ID, &page.SheetID, &page.SheetName, &page.Number, &page.Description,
		&page.CreatedBy, &page.CreatedByName, &page.CreatedAt, &page.UpdatedAt,
		&page.ElementsCount,
	}, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return page, nil
}

// List returns pages matching filter ordered by sheet then number.
func (repository *pageRepository) List(context context.Context, filter PageFilter, limit, offset int) ([]*Page, int, error) {
	var conditions []string
	var args []any

	if filter.SheetID != nil {
		args = append(args, *filter.SheetID)
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", sp.SheetID, len(args)))
	}
	if filter.Number != nil {
		args = append(args, *filter.Number)
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", sp.Number, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		%s
		ORDER BY p.%s, p.%s
		LIMIT $%d OFFSET $%d`,
		pageSelect, pageFrom, where, sp.SheetID, sp.Number, len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_pages")
	}
	defer rows.Close()

	total := 0
	pages := make([]*Page, 0)
	for rows.Next() {
		page, err := scanPage(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_page")
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_pages")
	}
	return pages, total, nil
}

// ListBySheet returns every page of a sheet.
func (repository *pageRepository) ListBySheet(context context.Context, sheetID int64) ([]*Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE p.%s = $1 ORDER BY p.%s`, pageSelect, pageFrom, sp.SheetID, sp.Number)

	rows, err := repository.pool.Query(context, query, sheetID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sheet_pages")
	}

	pages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Page, error) {
		return scanPage(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "list_sheet_pages")
	}
	return pages, nil
}

// FindByID fetches one page.
func (repository *pageRepository) FindByID(context context.Context, id int64) (*Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE p.%s = $1`, pageSelect, pageFrom, sp.ID)

	page, err := scanPage(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "Page", "get_page")
	}
	return page, nil
}

/*
Create inserts a page.

Description: The sheet row is locked FOR UPDATE first, which serializes
appends and deletes on the same sheet.

Parameters:
  - context: context.Context
  - page: *Page (Number filled in when zero)

Returns:
  - error: Validation when the sheet is missing, Conflict on a taken number
*/
func (repository *pageRepository) Create(context context.Context, page *Page) error {
	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {

		// 1. Lock the sheet
		if err := lockSheet(context, tx, page.SheetID, true); err != nil {
			return err
		}

		// 2. Append position
		if page.Number == 0 {
			query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1`, sp.Number, sp.Table, sp.SheetID)
			if err := tx.QueryRow(context, query, page.SheetID).Scan(&page.Number); err != nil {
				return dberr.Wrap(err, "next_page_number")
			}
		}

		description, err := json.Marshal(orEmpty(page.Description))
		if err != nil {
			return apperr.Internal(err)
		}

		// 3. Insert
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING %s, %s, %s`,
			sp.Table, sp.SheetID, sp.Number, sp.Description, sp.CreatedBy, sp.CreatedByName,
			sp.ID, sp.CreatedAt, sp.UpdatedAt,
		)

		err = tx.QueryRow(context, query,
			page.SheetID, page.Number, description, page.CreatedBy, page.CreatedByName,
		).Scan(&page.ID, &page.CreatedAt, &page.UpdatedAt)
		if err != nil {
			return numberConflict(err, "create_page")
		}
		return nil
	})
}

/*
Update patches number and description.

Description: Both columns are written through COALESCE, so a member left
nil keeps the value stored at commit time rather than the value the caller
last read. A number change first locks the owning sheet, which serialises it
with appends and renumbering deletes.

Parameters:
  - context: context.Context
  - id: int64
  - input: PageUpdateInput

Returns:
  - error: NotFound, or Conflict on a taken number
*/
func (repository *pageRepository) Update(context context.Context, id int64, input PageUpdateInput) error {
	var description any
	if input.Description != nil {
		raw, err := json.Marshal(orEmpty(*input.Description))
		if err != nil {
			return apperr.Internal(err)
		}
		description = raw
	}

	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {

		// 1. Renumbering takes the sheet lock
		if input.Number != nil {
			var sheetID int64
			query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, sp.SheetID, sp.Table, sp.ID)
			if err := tx.QueryRow(context, query, id).Scan(&sheetID); err != nil {
				return dberr.WrapNotFound(err, "Page", "find_page_sheet")
			}
			if err := lockSheet(context, tx, sheetID, false); err != nil {
				return err
			}
		}

		// 2. Patch
		query := fmt.Sprintf(`
			UPDATE %s
			SET %s = COALESCE($2::integer, %s), %s = COALESCE($3::jsonb, %s), %s = now()
			WHERE %s = $1
			RETURNING %s`,
			sp.Table,
			sp.Number, sp.Number, sp.Description, sp.Description, sp.UpdatedAt,
			sp.ID,
			sp.ID,
		)

		var updated int64
		if err := tx.QueryRow(context, query, id, input.Number, description).Scan(&updated); err != nil {
			return numberConflict(err, "update_page")
		}
		return nil
	})
}

/*
Delete removes a page and optionally closes the numbering gap.

Description: The sheet row is locked before the page row is removed. The
shifting UPDATE runs as one statement; the (sheet_id, number) constraint is
deferrable, so it is checked once the statement completes.

Parameters:
  - context: context.Context
  - id: int64
  - renumber: bool

Returns:
  - error: NotFound when the page does not exist
*/
func (repository *pageRepository) Delete(context context.Context, id int64, renumber bool) error {
	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {

		// 1. Owning sheet
		var sheetID int64
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, sp.SheetID, sp.Table, sp.ID)
		if err := tx.QueryRow(context, query, id).Scan(&sheetID); err != nil {
			return dberr.WrapNotFound(err, "Page", "find_page_sheet")
		}

		if err := lockSheet(context, tx, sheetID, false); err != nil {
			return err
		}

		// 2. Delete, reading the number under the lock
		var number int
		query = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`, sp.Table, sp.ID, sp.Number)
		if err := tx.QueryRow(context, query, id).Scan(&number); err != nil {
			return dberr.WrapNotFound(err, "Page", "delete_page")
		}

		if !renumber {
			return nil
		}

		// 3. Close the gap
		query = fmt.Sprintf(`
			UPDATE %s SET %s = %s - 1, %s = now()
			WHERE %s = $1 AND %s > $2`,
			sp.Table, sp.Number, sp.Number, sp.UpdatedAt,
			sp.SheetID, sp.Number,
		)
		tag, err := tx.Exec(context, query, sheetID, number)
		if err != nil {
			return dberr.Wrap(err, "renumber_pages")
		}

		repository.logger.Debug("pages_renumbered",
			slog.Int64("sheet_id", sheetID),
			slog.Int("from_number", number),
			slog.Int64("shifted", tag.RowsAffected()),
		)
		return nil
	})
}

// # Helpers

// lockSheet takes the row lock of a sheet. A missing sheet is a validation
// error when asInput is set, a 404 otherwise.
func lockSheet(context context.Context, tx pgx.Tx, sheetID int64, asInput bool) error {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, sh.ID, sh.Table, sh.ID)

	var locked int64
	err := tx.QueryRow(context, query, sheetID).Scan(&locked)
	switch {
	case errors.Is(err, pgx.ErrNoRows) && asInput:
		return validate.RequiredError(FieldSheet, "Sheet does not exist")
	case err != nil:
		return dberr.WrapNotFound(err, "Sheet", "lock_sheet")
	}
	return nil
}

// numberConflict wraps a page write error, naming the taken page number on
// unique violations.
func numberConflict(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("This page number is already used in the sheet").WithCause(err)
	}
	return dberr.WrapNotFound(err, "Page", action)
}

func orEmpty(values map[string]string) map[string]string {
	if values == nil {
		return map[string]string{}
	}
	return values
}
