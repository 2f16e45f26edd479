// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sheet

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/shipdoc/internal/core/element"
	"github.com/taibuivan/shipdoc/internal/platform/constants"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
	"github.com/taibuivan/shipdoc/internal/platform/validate"
)

// ElementLister loads the elements shown on a page detail.
type ElementLister interface {
	ListByPage(context context.Context, pageID int64) ([]*element.Element, error)
}

// # Service Layer

// Service orchestrates sheet and page business logic.
type Service struct {
	sheets   SheetRepository
	pages    PageRepository
	elements ElementLister
	logger   *slog.Logger
}

// NewService constructs a new document tree [Service].
func NewService(sheets SheetRepository, pages PageRepository, elements ElementLister, logger *slog.Logger) *Service {
	return &Service{sheets: sheets, pages: pages, elements: elements, logger: logger}
}

// # Sheets

// ListSheets returns a filtered page of sheets.
func (service *Service) ListSheets(context context.Context, filter Filter, limit, offset int) ([]*Sheet, int, error) {
	if filter.LigneSens != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldLigneSens, filter.LigneSens, ligneSensValues...)
		if err := validator.Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.sheets.List(context, filter, limit, offset)
}

// ListSheetsByBusinessID returns every translation of a sheet.
func (service *Service) ListSheetsByBusinessID(context context.Context, businessID string) ([]*Sheet, error) {
	sheets, _, err := service.sheets.List(context, Filter{BusinessID: businessID}, constants.MaxTranslationGroup, 0)
	return sheets, err
}

// GetSheet returns a sheet with its pages.
func (service *Service) GetSheet(context context.Context, id int64) (*Sheet, error) {
	sheet, err := service.sheets.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	pages, err := service.pages.ListBySheet(context, id)
	if err != nil {
		return nil, err
	}
	sheet.Pages = pages
	return sheet, nil
}

/*
CreateSheet validates and stores a new sheet.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - input: CreateInput

Returns:
  - *Sheet: The stored sheet
  - error: Validation or Conflict on a duplicate translation
*/
func (service *Service) CreateSheet(context context.Context, actor sec.Actor, input CreateInput) (*Sheet, error) {
	sheet := &Sheet{
		Name:          strings.TrimSpace(input.Name),
		BusinessID:    strings.TrimSpace(input.BusinessID),
		Language:      strings.TrimSpace(input.Language),
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
	if sheet.Language == "" {
		sheet.Language = defaultLanguage
	}

	if err := validateSheet(sheet); err != nil {
		return nil, err
	}
	sheet.Language = validate.CanonicalLanguage(sheet.Language)

	if err := service.sheets.Create(context, sheet); err != nil {
		return nil, err
	}

	service.logger.Info("sheet_created",
		slog.Int64("sheet_id", sheet.ID),
		slog.String("business_id", sheet.BusinessID),
		slog.String("language", sheet.Language),
	)

	sheet.Pages = []*Page{}
	return sheet, nil
}

// UpdateSheet patches name, business_id and language.
func (service *Service) UpdateSheet(context context.Context, id int64, input UpdateInput) (*Sheet, error) {
	sheet, err := service.sheets.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		sheet.Name = strings.TrimSpace(*input.Name)
	}
	if input.BusinessID != nil {
		sheet.BusinessID = strings.TrimSpace(*input.BusinessID)
	}
	if input.Language != nil {
		sheet.Language = strings.TrimSpace(*input.Language)
	}

	if err := validateSheet(sheet); err != nil {
		return nil, err
	}
	sheet.Language = validate.CanonicalLanguage(sheet.Language)

	if err := service.sheets.Update(context, sheet); err != nil {
		return nil, err
	}

	service.logger.Info("sheet_updated", slog.Int64("sheet_id", id))
	return service.GetSheet(context, id)
}

// DeleteSheet removes a sheet with its pages and elements.
func (service *Service) DeleteSheet(context context.Context, id int64) error {
	if err := service.sheets.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("sheet_deleted", slog.Int64("sheet_id", id))
	return nil
}

func validateSheet(sheet *Sheet) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, sheet.Name).MaxLen(FieldName, sheet.Name, maxNameLen)
	validator.Required(FieldBusinessID, sheet.BusinessID).MaxLen(FieldBusinessID, sheet.BusinessID, maxBusinessIDLen)
	validator.Required(FieldLanguage, sheet.Language).Language(FieldLanguage, sheet.Language)
	return validator.Err()
}
