// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"errors"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
)

// ErrVersionConflict is returned by [Repository.Update] when the stored
// version no longer matches the expected one.
var ErrVersionConflict = errors.New("reference: version changed concurrently")

// # Reference Data Access

// Repository defines the persistence contract of the catalog and its ledger.
type Repository interface {

	/*
		List returns a filtered page of references with their fields.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Reference: Page of references, newest first
		  - int: Total count matching the filter
		  - error: Database failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Reference, int, error)

	/*
		FindByID fetches a reference and its fields.

		Returns:
		  - *Reference: The reference (media not hydrated)
		  - error: apperr NotFound when missing
	*/
	FindByID(context context.Context, id int64) (*Reference, error)

	// ListTypes returns the distinct reference types, sorted.
	ListTypes(context context.Context) ([]string, error)

	/*
		Create inserts reference at version 1 with its fields and the first
		history entry in one transaction. ID and timestamps are set on success.

		Parameters:
		  - context: context.Context
		  - reference: *Reference (Type, Icon, CreatedBy, CreatedByName)
		  - drafts: []fieldvalue.Draft
		  - changes: Changes (history payload)
		  - actor: sec.Actor
	*/
	Create(context context.Context, reference *Reference, drafts []fieldvalue.Draft, changes Changes, actor sec.Actor) error

	/*
		Update writes the new scalar state of reference if the stored version
		still equals expectedVersion, replaces the fields when drafts is
		non-nil and appends one history entry, all in one transaction.

		Parameters:
		  - context: context.Context
		  - reference: *Reference (ID, Type, Icon; Version is set on success)
		  - expectedVersion: int
		  - drafts: *[]fieldvalue.Draft (nil keeps current fields)
		  - changes: Changes
		  - actor: sec.Actor

		Returns:
		  - error: ErrVersionConflict when the compare-and-swap misses
	*/
	Update(context context.Context, reference *Reference, expectedVersion int, drafts *[]fieldvalue.Draft, changes Changes, actor sec.Actor) error

	// Delete removes a reference and its fields. History rows are kept.
	Delete(context context.Context, id int64) error

	// Exists reports whether a reference with id exists.
	Exists(context context.Context, id int64) (bool, error)

	// ListHistory returns the ledger of a reference, newest first.
	ListHistory(context context.Context, id int64) ([]*HistoryEntry, error)
}
