// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import "context"

// # Media Data Access

// Repository defines the read contract for the media library.
type Repository interface {

	/*
		List returns a filtered page of media and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Media: Matching records
		  - int: Total count
		  - error: Database failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Media, int, error)

	/*
		FindByID fetches one media record.

		Returns:
		  - *Media: The record
		  - error: apperr NotFound when missing
	*/
	FindByID(context context.Context, id int64) (*Media, error)

	/*
		FindByIDs fetches every existing record among ids, keyed by ID.
		Unknown identifiers are absent from the map.
	*/
	FindByIDs(context context.Context, ids []int64) (map[int64]*Media, error)
}
