// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fieldvalue

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/shipdoc/internal/core/media"
	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/database/schema"
	"github.com/taibuivan/shipdoc/internal/platform/dberr"
	"github.com/taibuivan/shipdoc/internal/platform/postgres"
)

// # PostgreSQL Access
//
// Field rows are always written as part of their owner's write, so these
// functions take the caller's [postgres.DBTX] instead of owning a pool.

var fv = schema.ProductionFieldValue

// column returns the owner foreign key column.
func (owner Owner) column() string {
	if owner.Kind == OwnerElement {
		return fv.ElementID
	}
	return fv.ReferenceID
}

/*
ReplaceAll deletes every field of owner and inserts drafts in order.

Media identifiers are resolved against the library on the same connection.
An identifier that does not resolve is stored as a null media reference
instead of failing the batch.

Parameters:
  - context: context.Context
  - db: postgres.DBTX (normally the owner's open transaction)
  - owner: Owner
  - drafts: []Draft (the complete new field list)

Returns:
  - error: Database failures; the caller must roll back
*/
func ReplaceAll(context context.Context, db postgres.DBTX, owner Owner, drafts []Draft) error {

	// 1. Drop the previous set
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, fv.Table, owner.column())
	if _, err := db.Exec(context, deleteQuery, owner.ID); err != nil {
		return dberr.Wrap(err, "delete_field_values")
	}

	if len(drafts) == 0 {
		return nil
	}

	// 2. Resolve media identifiers leniently
	existing, err := media.ExistingIDs(context, db, MediaIDs(drafts))
	if err != nil {
		return err
	}

	// 3. Insert the new set in one round trip
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		fv.Table, owner.column(), fv.Position, fv.Name, fv.Type, fv.Language,
		fv.ValueString, fv.ValueInt, fv.ValueFloat, fv.ValueMedia,
	)

	batch := &pgx.Batch{}
	for position, draft := range drafts {
		var (
			valueString *string
			valueInt    *int64
			valueFloat  *float64
			valueMedia  *int64
		)

		switch value := draft.Value.(type) {
		case StringValue:
			text := string(value)
			valueString = &text
		case IntValue:
			number := int64(value)
			valueInt = &number
		case FloatValue:
			number := float64(value)
			valueFloat = &number
		case MediaValue:
			if value.MediaID != nil && existing[*value.MediaID] {
				valueMedia = value.MediaID
			}
		}

		batch.Queue(insertQuery, owner.ID, position, draft.Name, string(draft.Value.Type()), draft.Language,
			valueString, valueInt, valueFloat, valueMedia)
	}

	results := db.SendBatch(context, batch)
	for range drafts {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dberr.Wrap(err, "insert_field_value")
		}
	}

	return dberr.Wrap(results.Close(), "insert_field_values")
}

/*
ListByOwner returns the fields of owner in submission order.

Parameters:
  - context: context.Context
  - db: postgres.DBTX
  - owner: Owner

Returns:
  - []*FieldValue: Fields without media hydration
  - error: Database failures
*/
func ListByOwner(context context.Context, db postgres.DBTX, owner Owner) ([]*FieldValue, error) {
	grouped, err := ListByOwners(context, db, owner.Kind, []int64{owner.ID})
	if err != nil {
		return nil, err
	}

	fields := grouped[owner.ID]
	if fields == nil {
		fields = make([]*FieldValue, 0)
	}
	return fields, nil
}

/*
ListByOwners loads the fields of many owners of the same kind in one query.

Returns:
  - map[int64][]*FieldValue: Fields keyed by owner ID, each list in submission order
  - error: Database failures
*/
func ListByOwners(context context.Context, db postgres.DBTX, kind OwnerKind, ids []int64) (map[int64][]*FieldValue, error) {
	grouped := make(map[int64][]*FieldValue, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	ownerColumn := Owner{Kind: kind}.column()
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s, %s, %s`,
		ownerColumn, fv.ID, fv.Name, fv.Type, fv.Language,
		fv.ValueString, fv.ValueInt, fv.ValueFloat, fv.ValueMedia,
		fv.Table,
		ownerColumn,
		ownerColumn, fv.Position, fv.ID,
	)

	rows, err := db.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "list_field_values")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ownerID     int64
			field       FieldValue
			fieldType   string
			valueString *string
			valueInt    *int64
			valueFloat  *float64
			valueMedia  *int64
		)

		if err := rows.Scan(&ownerID, &field.ID, &field.Name, &fieldType, &field.Language,
			&valueString, &valueInt, &valueFloat, &valueMedia); err != nil {
			return nil, dberr.Wrap(err, "scan_field_value")
		}

		value, err := rowValue(Type(fieldType), valueString, valueInt, valueFloat, valueMedia)
		if err != nil {
			return nil, err
		}
		field.Value = value

		grouped[ownerID] = append(grouped[ownerID], &field)
	}

	return grouped, dberr.Wrap(rows.Err(), "list_field_values")
}

/*
CopyFromReference duplicates the current fields of a reference onto an
element. The copies are independent rows owned by the element.

Parameters:
  - context: context.Context
  - db: postgres.DBTX
  - referenceID, elementID: int64
*/
func CopyFromReference(context context.Context, db postgres.DBTX, referenceID, elementID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		SELECT $2, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s, %s`,
		fv.Table, fv.ElementID, fv.Position, fv.Name, fv.Type, fv.Language,
		fv.ValueString, fv.ValueInt, fv.ValueFloat, fv.ValueMedia,
		fv.Position, fv.Name, fv.Type, fv.Language,
		fv.ValueString, fv.ValueInt, fv.ValueFloat, fv.ValueMedia,
		fv.Table,
		fv.ReferenceID,
		fv.Position, fv.ID,
	)

	_, err := db.Exec(context, query, referenceID, elementID)
	return dberr.Wrap(err, "copy_reference_fields")
}

// rowValue rebuilds the payload from the slot matching fieldType.
func rowValue(fieldType Type, valueString *string, valueInt *int64, valueFloat *float64, valueMedia *int64) (Value, error) {
	switch fieldType {
	case TypeString:
		if valueString != nil {
			return StringValue(*valueString), nil
		}
	case TypeInt:
		if valueInt != nil {
			return IntValue(*valueInt), nil
		}
	case TypeFloat:
		if valueFloat != nil {
			return FloatValue(*valueFloat), nil
		}
	case TypeMedia:
		return MediaValue{MediaID: valueMedia}, nil
	}
	return nil, apperr.Internal(fmt.Errorf("fieldvalue: corrupt row with type %q", fieldType))
}
