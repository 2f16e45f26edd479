// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package element

import (
	"context"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
)

// # Element Data Access

// Repository defines the persistence contract for canvas elements.
type Repository interface {

	/*
		List returns a filtered page of elements ordered by z_order then id.

		Returns:
		  - []*Element: Elements with their fields
		  - int: Total count
		  - error: Database failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Element, int, error)

	// ListByPage returns every element of a page ordered by z_order then id.
	ListByPage(context context.Context, pageID int64) ([]*Element, error)

	// FindByID fetches an element and its fields.
	FindByID(context context.Context, id int64) (*Element, error)

	/*
		Create inserts element and its fields in one transaction.

		Parameters:
		  - context: context.Context
		  - element: *Element (ID and timestamps set on success)
		  - drafts: *[]fieldvalue.Draft (nil with a reference copies the reference's fields)
	*/
	Create(context context.Context, element *Element, drafts *[]fieldvalue.Draft) error

	/*
		Update patches an element in one transaction.

		Description: The stored row is locked and handed to apply, and the
		result is written back. Patches to different attributes of the same
		element therefore never overwrite each other. A non-nil drafts
		replaces the fields.
	*/
	Update(context context.Context, id int64, apply func(*Element), drafts *[]fieldvalue.Draft) error

	// Delete removes an element. Its fields cascade.
	Delete(context context.Context, id int64) error
}
