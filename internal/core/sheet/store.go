// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sheet

import (
	"context"
)

// # Sheet Data Access

// SheetRepository defines the persistence contract for sheets.
type SheetRepository interface {

	/*
		List returns a filtered page of sheets, newest first.

		Returns:
		  - []*Sheet: Sheets with pages_count
		  - int: Total count
		  - error: Database failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Sheet, int, error)

	// FindByID fetches a sheet with its pages_count.
	FindByID(context context.Context, id int64) (*Sheet, error)

	// Create inserts a sheet. A duplicate (business_id, language) is a conflict.
	Create(context context.Context, sheet *Sheet) error

	// Update writes name, business_id and language.
	Update(context context.Context, sheet *Sheet) error

	// Delete removes a sheet. Pages, elements and field values cascade.
	Delete(context context.Context, id int64) error
}

// # Page Data Access

// PageRepository defines the persistence contract for pages.
type PageRepository interface {

	// List returns a filtered page of pages ordered by sheet then number.
	List(context context.Context, filter PageFilter, limit, offset int) ([]*Page, int, error)

	// ListBySheet returns every page of a sheet ordered by number.
	ListBySheet(context context.Context, sheetID int64) ([]*Page, error)

	// FindByID fetches a page with its sheet name and elements_count.
	FindByID(context context.Context, id int64) (*Page, error)

	/*
		Create inserts a page while holding the sheet row lock.

		Description: A nil number is replaced by the current maximum plus one.
		A missing sheet is reported as a validation error on "sheet".
	*/
	Create(context context.Context, page *Page) error

	/*
		Update writes the members of input that are set.

		Description: Unset members keep their stored value, so a description
		edit never rewrites the number. A number change holds the sheet row
		lock, like Create and Delete.
	*/
	Update(context context.Context, id int64, input PageUpdateInput) error

	/*
		Delete removes a page while holding the sheet row lock.

		Description: With renumber, every later page of the same sheet moves
		down by one in the same transaction.
	*/
	Delete(context context.Context, id int64, renumber bool) error
}
