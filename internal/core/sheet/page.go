// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sheet

import (
	"time"

	"github.com/taibuivan/shipdoc/internal/core/element"
)

// Page is a numbered page of a sheet.
type Page struct {
	ID            int64             `json:"id"`
	SheetID       int64             `json:"sheet"`
	SheetName     string            `json:"sheet_name"`
	Number        int               `json:"number"`
	Description   map[string]string `json:"description"`
	CreatedBy     *int64            `json:"created_by"`
	CreatedByName string            `json:"created_by_name"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	ElementsCount int               `json:"elements_count"`

	// Elements is only loaded on detail reads.
	Elements []*element.Element `json:"elements,omitempty"`
}

// PageFilter narrows page listings.
type PageFilter struct {
	SheetID *int64
	Number  *int
}

// PageCreateInput is the body of POST /pages. A nil number appends the page
// after the current last page of the sheet.
type PageCreateInput struct {
	Sheet       int64             `json:"sheet"`
	Number      *int              `json:"number"`
	Description map[string]string `json:"description"`
}

// PageUpdateInput is the body of PATCH /pages/{id}. A page cannot move to
// another sheet.
type PageUpdateInput struct {
	Number      *int               `json:"number"`
	Description *map[string]string `json:"description"`
}
