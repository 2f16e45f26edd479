// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sheet

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shipdoc/internal/platform/sec"
	"github.com/taibuivan/shipdoc/internal/platform/validate"
)

// # Pages

// ListPages returns a filtered page of pages.
func (service *Service) ListPages(context context.Context, filter PageFilter, limit, offset int) ([]*Page, int, error) {
	return service.pages.List(context, filter, limit, offset)
}

// GetPage returns a page with its elements.
func (service *Service) GetPage(context context.Context, id int64) (*Page, error) {
	page, err := service.pages.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	elements, err := service.elements.ListByPage(context, id)
	if err != nil {
		return nil, err
	}
	page.Elements = elements
	return page, nil
}

/*
CreatePage validates and stores a new page.

Description: Without a number the page is appended after the last page of
its sheet.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - input: PageCreateInput

Returns:
  - *Page: The stored page
  - error: Validation, or Conflict when the number is taken
*/
func (service *Service) CreatePage(context context.Context, actor sec.Actor, input PageCreateInput) (*Page, error) {
	validator := &validate.Validator{}
	validator.PositiveID(FieldSheet, input.Sheet)
	if input.Number != nil {
		validator.Custom(FieldNumber, *input.Number < 1, "Must be at least 1")
	}
	validateDescription(validator, input.Description)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	page := &Page{
		SheetID:       input.Sheet,
		Description:   input.Description,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
	if input.Number != nil {
		page.Number = *input.Number
	}

	if err := service.pages.Create(context, page); err != nil {
		return nil, err
	}

	service.logger.Info("page_created",
		slog.Int64("page_id", page.ID),
		slog.Int64("sheet_id", page.SheetID),
		slog.Int("number", page.Number),
	)

	return service.GetPage(context, page.ID)
}

// UpdatePage patches number and description. Members left nil are not written.
func (service *Service) UpdatePage(context context.Context, id int64, input PageUpdateInput) (*Page, error) {
	validator := &validate.Validator{}
	if input.Number != nil {
		validator.Custom(FieldNumber, *input.Number < 1, "Must be at least 1")
	}
	if input.Description != nil {
		validateDescription(validator, *input.Description)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.pages.Update(context, id, input); err != nil {
		return nil, err
	}

	service.logger.Info("page_updated",
		slog.Int64("page_id", id),
		slog.Bool("number_changed", input.Number != nil),
	)
	return service.GetPage(context, id)
}

// DeletePage removes a page. With renumber the following pages move down by one.
func (service *Service) DeletePage(context context.Context, id int64, renumber bool) error {
	if err := service.pages.Delete(context, id, renumber); err != nil {
		return err
	}

	service.logger.Info("page_deleted", slog.Int64("page_id", id), slog.Bool("renumber", renumber))
	return nil
}

func validateDescription(validator *validate.Validator, description map[string]string) {
	for language := range description {
		validator.Required(FieldDescription, language).Language(FieldDescription+"."+language, language)
	}
}
