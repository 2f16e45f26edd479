// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/database/schema"
	"github.com/taibuivan/shipdoc/internal/platform/dberr"
	"github.com/taibuivan/shipdoc/internal/platform/postgres"
)

// sheetRepository implements [SheetRepository] using pgx.
type sheetRepository struct {
	pool *pgxpool.Pool
}

// NewSheetRepository constructs a PostgreSQL backed sheet store.
func NewSheetRepository(pool *pgxpool.Pool) SheetRepository {
	return &sheetRepository{pool: pool}
}

var (
	sh  = schema.ProductionSheet
	sp  = schema.ProductionSheetPage
	pvd = schema.ProductionPosteVarianteDoc
	vg  = schema.ProductionVarianteGamme
	gc  = schema.ProductionGammeCabine
	cab = schema.ProductionCabine
	po  = schema.ProductionPoste
)

// sheetSelect lists the sheet columns of alias s followed by pages_count.
var sheetSelect = fmt.Sprintf(`
	s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
	(SELECT COUNT(*) FROM %s p WHERE p.%s = s.%s) AS pages_count`,
	sh.ID, sh.Name, sh.BusinessID, sh.Language, sh.CreatedBy, sh.CreatedByName, sh.CreatedAt, sh.UpdatedAt,
	sp.Table, sp.SheetID, sh.ID,
)

func scanSheet(row pgx.Row, extra ...any) (*Sheet, error) {
	sheet := &Sheet{}
	targets := append([]any{
		&sheet.ID, &sheet.Name, &sheet.BusinessID, &sheet.Language,
		&sheet.CreatedBy, &sheet.CreatedByName, &sheet.CreatedAt, &sheet.UpdatedAt,
		&sheet.PagesCount,
	}, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return sheet, nil
}

/*
hierarchyCondition builds the EXISTS clause over poste_variante_documentation.

Description: The boat side applies only the most specific of cabine,
variante_gamme, gamme_cabine and boat. The line side applies poste over ligne.

Returns:
  - string: The condition, empty when no hierarchy key is set
  - []any: args extended with the condition's parameters
*/
func hierarchyCondition(filter Filter, args []any) (string, []any) {
	if !filter.HasHierarchy() {
		return "", args
	}

	var conditions []string
	bind := func(format string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	// 1. Boat side
	switch {
	case filter.Cabine != nil:
		bind(fmt.Sprintf("d.%s IN (SELECT c.%s FROM %s c WHERE c.%s = $%%d)",
			pvd.VarianteGammeID, cab.VarianteGammeID, cab.Table, cab.ID), *filter.Cabine)
	case filter.VarianteGamme != nil:
		bind(fmt.Sprintf("d.%s = $%%d", pvd.VarianteGammeID), *filter.VarianteGamme)
	case filter.GammeCabine != nil:
		bind(fmt.Sprintf("vg.%s = $%%d", vg.GammeID), *filter.GammeCabine)
	case filter.Boat != nil:
		bind(fmt.Sprintf("gc.%s = $%%d", gc.BoatID), *filter.Boat)
	}

	// 2. Line side
	switch {
	case filter.Poste != nil:
		bind(fmt.Sprintf("d.%s = $%%d", pvd.PosteID), *filter.Poste)
	case filter.Ligne != nil:
		bind(fmt.Sprintf("po.%s = $%%d", po.LigneID), *filter.Ligne)
	}

	if filter.LigneSens != "" {
		bind(fmt.Sprintf("d.%s = $%%d", pvd.LigneSens), filter.LigneSens)
	}

	condition := fmt.Sprintf(`EXISTS (
		SELECT 1
		FROM %s d
		JOIN %s vg ON vg.%s = d.%s
		JOIN %s gc ON gc.%s = vg.%s
		JOIN %s po ON po.%s = d.%s
		WHERE d.%s = s.%s AND %s)`,
		pvd.Table,
		vg.Table, vg.ID, pvd.VarianteGammeID,
		gc.Table, gc.ID, vg.GammeID,
		po.Table, po.ID, pvd.PosteID,
		pvd.SheetID, sh.ID, strings.Join(conditions, " AND "),
	)
	return condition, args
}

/*
List returns sheets matching filter.

Parameters:
  - context: context.Context
  - filter: Filter (hierarchy keys, business id, free text)
  - limit, offset: int

Returns:
  - []*Sheet: Page of sheets, newest first
  - int: Total count
  - error: Database execution errors
*/
func (repository *sheetRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Sheet, int, error) {
	var conditions []string
	var args []any

	if condition, extended := hierarchyCondition(filter, args); condition != "" {
		conditions = append(conditions, condition)
		args = extended
	}
	if filter.BusinessID != "" {
		args = append(args, filter.BusinessID)
		conditions = append(conditions, fmt.Sprintf("s.%s = $%d", sh.BusinessID, len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+postgres.EscapeLike(filter.Query)+"%")
		conditions = append(conditions, fmt.Sprintf("(s.%s ILIKE $%d OR s.%s ILIKE $%d)",
			sh.Name, len(args), sh.BusinessID, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s s
		%s
		ORDER BY s.%s DESC, s.%s DESC
		LIMIT $%d OFFSET $%d`,
		sheetSelect, sh.Table, where, sh.CreatedAt, sh.ID, len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_sheets")
	}
	defer rows.Close()

	total := 0
	sheets := make([]*Sheet, 0)
	for rows.Next() {
		sheet, err := scanSheet(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_sheet")
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_sheets")
	}
	return sheets, total, nil
}

// FindByID fetches one sheet.
func (repository *sheetRepository) FindByID(context context.Context, id int64) (*Sheet, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s s WHERE s.%s = $1`, sheetSelect, sh.Table, sh.ID)

	sheet, err := scanSheet(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "Sheet", "get_sheet")
	}
	return sheet, nil
}

// Create inserts a sheet.
func (repository *sheetRepository) Create(context context.Context, sheet *Sheet) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s`,
		sh.Table, sh.Name, sh.BusinessID, sh.Language, sh.CreatedBy, sh.CreatedByName,
		sh.ID, sh.CreatedAt, sh.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		sheet.Name, sheet.BusinessID, sheet.Language, sheet.CreatedBy, sheet.CreatedByName,
	).Scan(&sheet.ID, &sheet.CreatedAt, &sheet.UpdatedAt)
	if err != nil {
		return translationConflict(err, "create_sheet")
	}
	return nil
}

// Update writes the mutable sheet attributes.
func (repository *sheetRepository) Update(context context.Context, sheet *Sheet) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = now()
		WHERE %s = $1
		RETURNING %s`,
		sh.Table, sh.Name, sh.BusinessID, sh.Language, sh.UpdatedAt,
		sh.ID,
		sh.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, sheet.ID, sheet.Name, sheet.BusinessID, sheet.Language).Scan(&sheet.UpdatedAt)
	if err != nil {
		return translationConflict(err, "update_sheet")
	}
	return nil
}

// Delete removes a sheet.
func (repository *sheetRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, sh.Table, sh.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_sheet")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Sheet")
	}
	return nil
}

// translationConflict wraps a sheet write error, naming the duplicate
// (business_id, language) key on unique violations.
func translationConflict(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("A sheet with this business_id and language already exists").WithCause(err)
	}
	return dberr.WrapNotFound(err, "Sheet", action)
}
