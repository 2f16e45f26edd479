// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package element

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
	"github.com/taibuivan/shipdoc/internal/core/media"
	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/database/schema"
	"github.com/taibuivan/shipdoc/internal/platform/dberr"
	"github.com/taibuivan/shipdoc/internal/platform/postgres"
	"github.com/taibuivan/shipdoc/pkg/slice"
)

// repository implements [Repository] using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed element store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

var el = schema.ProductionElement

var elementColumns = strings.Join([]string{
	el.ID, el.PageID, el.BusinessID, el.Type, el.ZOrder, el.Descriptions, el.KonvaJSONs,
	el.ReferenceID, el.HasImage, el.ImageMediaID, el.ImageWidth, el.ImageHeight,
	el.CreatedBy, el.CreatedByName, el.CreatedAt, el.UpdatedAt,
}, ", ")

func scanElement(row pgx.Row, extra ...any) (*Element, error) {
	element := &Element{}
	var (
		hasImage bool
		mediaID  *int64
		width    *int
		height   *int
	)

	targets := append([]any{
		&element.ID, &element.PageID, &element.BusinessID, &element.Type, &element.ZOrder,
		&element.Descriptions, &element.KonvaJSONs, &element.ReferenceValue,
		&hasImage, &mediaID, &width, &height,
		&element.CreatedBy, &element.CreatedByName, &element.CreatedAt, &element.UpdatedAt,
	}, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	if hasImage {
		element.Image = &ImagePayload{MediaID: mediaID, Width: width, Height: height}
	}
	return element, nil
}

// withFields attaches the fields of elements using one query.
func (repository *repository) withFields(context context.Context, elements []*Element) error {
	ids := slice.Map(elements, func(element *Element) int64 { return element.ID })

	grouped, err := fieldvalue.ListByOwners(context, repository.pool, fieldvalue.OwnerElement, ids)
	if err != nil {
		return err
	}

	for _, element := range elements {
		element.FieldValues = grouped[element.ID]
		if element.FieldValues == nil {
			element.FieldValues = make([]*fieldvalue.FieldValue, 0)
		}
	}
	return nil
}

/*
List returns elements matching filter.

Parameters:
  - context: context.Context
  - filter: Filter (page, business id, type)
  - limit, offset: int

Returns:
  - []*Element: Page of elements
  - int: Total count
  - error: Database execution errors
*/
func (repository *repository) List(context context.Context, filter Filter, limit, offset int) ([]*Element, int, error) {
	var conditions []string
	var args []any

	if filter.PageID != nil {
		args = append(args, *filter.PageID)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", el.PageID, len(args)))
	}
	if filter.BusinessID != "" {
		args = append(args, filter.BusinessID)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", el.BusinessID, len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", el.Type, len(args)))
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
		ORDER BY %s, %s
		LIMIT $%d OFFSET $%d`,
		elementColumns, el.Table, where, el.ZOrder, el.ID, len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_elements")
	}
	defer rows.Close()

	total := 0
	elements := make([]*Element, 0)
	for rows.Next() {
		element, err := scanElement(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_element")
		}
		elements = append(elements, element)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_elements")
	}
	rows.Close()

	if err := repository.withFields(context, elements); err != nil {
		return nil, 0, err
	}
	return elements, total, nil
}

// ListByPage returns every element of a page.
func (repository *repository) ListByPage(context context.Context, pageID int64) ([]*Element, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s, %s`,
		elementColumns, el.Table, el.PageID, el.ZOrder, el.ID)

	rows, err := repository.pool.Query(context, query, pageID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_page_elements")
	}
	defer rows.Close()

	elements := make([]*Element, 0)
	for rows.Next() {
		element, err := scanElement(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_element")
		}
		elements = append(elements, element)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_page_elements")
	}
	rows.Close()

	if err := repository.withFields(context, elements); err != nil {
		return nil, err
	}
	return elements, nil
}

// FindByID fetches a single element with its fields.
func (repository *repository) FindByID(context context.Context, id int64) (*Element, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, elementColumns, el.Table, el.ID)

	element, err := scanElement(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "Element", "get_element")
	}

	if err := repository.withFields(context, []*Element{element}); err != nil {
		return nil, err
	}
	return element, nil
}

/*
Create inserts an element with its fields.

Description: When drafts is nil and the element links a reference, the
reference's current field rows are copied. An image media id that does not
resolve is stored as null.

Parameters:
  - context: context.Context
  - element: *Element
  - drafts: *[]fieldvalue.Draft

Returns:
  - error: Database failures (a missing page or reference maps to 400)
*/
func (repository *repository) Create(context context.Context, element *Element, drafts *[]fieldvalue.Draft) error {
	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {

		// 1. Element row
		image, err := resolveImage(context, tx, element.Image)
		if err != nil {
			return err
		}
		element.Image = image

		descriptions, konva, err := encodeMaps(element)
		if err != nil {
			return err
		}

		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING %s, %s, %s`,
			el.Table,
			el.PageID, el.BusinessID, el.Type, el.ZOrder, el.Descriptions, el.KonvaJSONs, el.ReferenceID,
			el.HasImage, el.ImageMediaID, el.ImageWidth, el.ImageHeight, el.CreatedBy, el.CreatedByName,
			el.ID, el.CreatedAt, el.UpdatedAt,
		)

		hasImage, mediaID, width, height := imageColumns(element.Image)
		err = tx.QueryRow(context, query,
			element.PageID, element.BusinessID, element.Type, element.ZOrder, descriptions, konva, element.ReferenceValue,
			hasImage, mediaID, width, height, element.CreatedBy, element.CreatedByName,
		).Scan(&element.ID, &element.CreatedAt, &element.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "insert_element")
		}

		// 2. Fields: submitted, or copied from the template
		switch {
		case drafts != nil:
			return fieldvalue.ReplaceAll(context, tx, fieldvalue.ElementOwner(element.ID), *drafts)
		case element.ReferenceValue != nil:
			return fieldvalue.CopyFromReference(context, tx, *element.ReferenceValue, element.ID)
		}
		return nil
	})
}

// Update locks the element row, applies the patch and writes it back.
func (repository *repository) Update(context context.Context, id int64, apply func(*Element), drafts *[]fieldvalue.Draft) error {
	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {

		// 1. Current state under the row lock
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, elementColumns, el.Table, el.ID)
		element, err := scanElement(tx.QueryRow(context, query, id))
		if err != nil {
			return dberr.WrapNotFound(err, "Element", "lock_element")
		}

		apply(element)

		image, err := resolveImage(context, tx, element.Image)
		if err != nil {
			return err
		}
		element.Image = image

		descriptions, konva, err := encodeMaps(element)
		if err != nil {
			return err
		}

		// 2. Write back
		query = fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
			    %s = $7, %s = $8, %s = $9, %s = $10, %s = now()
			WHERE %s = $1`,
			el.Table,
			el.BusinessID, el.Type, el.ZOrder, el.Descriptions, el.KonvaJSONs,
			el.HasImage, el.ImageMediaID, el.ImageWidth, el.ImageHeight, el.UpdatedAt,
			el.ID,
		)

		hasImage, mediaID, width, height := imageColumns(element.Image)
		_, err = tx.Exec(context, query, id,
			element.BusinessID, element.Type, element.ZOrder, descriptions, konva,
			hasImage, mediaID, width, height,
		)
		if err != nil {
			return dberr.Wrap(err, "update_element")
		}

		// 3. Fields
		if drafts != nil {
			return fieldvalue.ReplaceAll(context, tx, fieldvalue.ElementOwner(id), *drafts)
		}
		return nil
	})
}

// Delete removes an element.
func (repository *repository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, el.Table, el.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_element")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Element")
	}
	return nil
}

// # Helpers

// resolveImage clears an image media id that does not exist.
func resolveImage(context context.Context, db postgres.DBTX, image *ImagePayload) (*ImagePayload, error) {
	if image == nil || image.MediaID == nil {
		return image, nil
	}

	existing, err := media.ExistingIDs(context, db, []int64{*image.MediaID})
	if err != nil {
		return nil, err
	}

	resolved := *image
	if !existing[*image.MediaID] {
		resolved.MediaID = nil
	}
	return &resolved, nil
}

func imageColumns(image *ImagePayload) (bool, *int64, *int, *int) {
	if image == nil {
		return false, nil, nil, nil
	}
	return true, image.MediaID, image.Width, image.Height
}

func encodeMaps(element *Element) ([]byte, []byte, error) {
	descriptions, err := json.Marshal(orEmptyMap(element.Descriptions))
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	konva, err := json.Marshal(orEmptyMap(element.KonvaJSONs))
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	return descriptions, konva, nil
}

func orEmptyMap[V any](values map[string]V) map[string]V {
	if values == nil {
		return map[string]V{}
	}
	return values
}
