// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package element

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
	"github.com/taibuivan/shipdoc/internal/platform/constants"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
	"github.com/taibuivan/shipdoc/internal/platform/validate"
)

// ReferenceChecker confirms a reference exists before an element links to it.
type ReferenceChecker interface {
	Exists(context context.Context, id int64) (bool, error)
}

// # Service Layer

// Service orchestrates canvas element validation, template spawning and
// media hydration.
type Service struct {
	repo       Repository
	references ReferenceChecker
	media      fieldvalue.MediaResolver
	logger     *slog.Logger
}

// NewService constructs a new element [Service].
func NewService(repo Repository, references ReferenceChecker, media fieldvalue.MediaResolver, logger *slog.Logger) *Service {
	return &Service{repo: repo, references: references, media: media, logger: logger}
}

// # Lookups

// List returns a filtered page of elements with media hydrated.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Element, int, error) {
	elements, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if err := service.hydrate(context, elements...); err != nil {
		return nil, 0, err
	}
	return elements, total, nil
}

// ListByPage returns every element of a page with media hydrated.
func (service *Service) ListByPage(context context.Context, pageID int64) ([]*Element, error) {
	elements, err := service.repo.ListByPage(context, pageID)
	if err != nil {
		return nil, err
	}

	if err := service.hydrate(context, elements...); err != nil {
		return nil, err
	}
	return elements, nil
}

// ListByBusinessID returns every translation of a canvas element.
func (service *Service) ListByBusinessID(context context.Context, businessID string) ([]*Element, error) {
	elements, _, err := service.List(context, Filter{BusinessID: businessID}, constants.MaxTranslationGroup, 0)
	return elements, err
}

// Get returns one element with media hydrated.
func (service *Service) Get(context context.Context, id int64) (*Element, error) {
	element, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.hydrate(context, element); err != nil {
		return nil, err
	}
	return element, nil
}

// # Mutations

/*
Create validates and stores a new element.

Description: When reference_value is set the reference must exist. Without
field_values_data the reference's current fields are copied into the element;
with it, the submitted list is used as given.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - input: CreateInput

Returns:
  - *Element: The stored element
  - error: Validation or persistence errors
*/
func (service *Service) Create(context context.Context, actor sec.Actor, input CreateInput) (*Element, error) {

	// 1. Scalar validation
	businessID := strings.TrimSpace(input.BusinessID)
	elementType := strings.TrimSpace(input.Type)

	validator := &validate.Validator{}
	validator.PositiveID(FieldPage, input.Page)
	validator.Required(FieldBusinessID, businessID).MaxLen(FieldBusinessID, businessID, maxBusinessIDLen)
	validator.Required(FieldType, elementType).MaxLen(FieldType, elementType, maxTypeLen)
	validateLanguageKeys(validator, FieldDescriptions, input.Descriptions)
	validateLanguageKeys(validator, FieldKonvaJSONs, input.KonvaJSONs)
	validateImage(validator, input.Image)
	if input.ReferenceValue != nil {
		validator.PositiveID(FieldReferenceValue, *input.ReferenceValue)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 2. Fields
	drafts, err := parseFields(input.FieldValues)
	if err != nil {
		return nil, err
	}

	// 3. Template link
	if input.ReferenceValue != nil {
		exists, err := service.references.Exists(context, *input.ReferenceValue)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, validate.RequiredError(FieldReferenceValue, "Reference does not exist")
		}
	}

	// 4. Persistence
	element := &Element{
		PageID:         input.Page,
		BusinessID:     businessID,
		Type:           elementType,
		ZOrder:         input.ZOrder,
		Descriptions:   input.Descriptions,
		KonvaJSONs:     input.KonvaJSONs,
		ReferenceValue: input.ReferenceValue,
		Image:          imagePayload(input.Image),
		CreatedBy:      actor.ID,
		CreatedByName:  actor.Name,
	}
	if err := service.repo.Create(context, element, drafts); err != nil {
		return nil, err
	}

	service.logger.Info("element_created",
		slog.Int64("element_id", element.ID),
		slog.Int64("page_id", element.PageID),
		slog.String("kind", string(element.Kind())),
	)

	return service.Get(context, element.ID)
}

/*
Update patches an element. A submitted field list replaces every field.

Parameters:
  - context: context.Context
  - id: int64
  - input: UpdateInput

Returns:
  - *Element: The updated element
  - error: Validation, NotFound or persistence errors
*/
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Element, error) {

	// 1. Validate the submitted members
	validator := &validate.Validator{}
	if input.BusinessID != nil {
		businessID := strings.TrimSpace(*input.BusinessID)
		validator.Required(FieldBusinessID, businessID).MaxLen(FieldBusinessID, businessID, maxBusinessIDLen)
	}
	if input.Type != nil {
		elementType := strings.TrimSpace(*input.Type)
		validator.Required(FieldType, elementType).MaxLen(FieldType, elementType, maxTypeLen)
	}
	if input.Descriptions != nil {
		validateLanguageKeys(validator, FieldDescriptions, *input.Descriptions)
	}
	if input.KonvaJSONs != nil {
		validateLanguageKeys(validator, FieldKonvaJSONs, *input.KonvaJSONs)
	}
	validateImage(validator, input.Image)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	drafts, err := parseFields(input.FieldValues)
	if err != nil {
		return nil, err
	}

	// 2. Patch the locked row
	if err := service.repo.Update(context, id, input.apply, drafts); err != nil {
		return nil, err
	}

	service.logger.Info("element_updated",
		slog.Int64("element_id", id),
		slog.Bool("fields_replaced", drafts != nil),
	)

	return service.Get(context, id)
}

// Delete removes an element and its fields.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("element_deleted", slog.Int64("element_id", id))
	return nil
}

// # Helpers

// hydrate resolves field and image media of elements in one lookup.
func (service *Service) hydrate(context context.Context, elements ...*Element) error {
	var ids []int64
	for _, element := range elements {
		for _, field := range element.FieldValues {
			if id := field.MediaID(); id != nil {
				ids = append(ids, *id)
			}
		}
		if element.Image != nil && element.Image.MediaID != nil {
			ids = append(ids, *element.Image.MediaID)
		}
	}

	if len(ids) == 0 {
		return nil
	}

	found, err := service.media.Resolve(context, ids)
	if err != nil {
		return err
	}

	for _, element := range elements {
		for _, field := range element.FieldValues {
			if id := field.MediaID(); id != nil {
				field.Media = found[*id]
			}
		}
		if element.Image != nil && element.Image.MediaID != nil {
			element.Image.Media = found[*element.Image.MediaID]
		}
	}
	return nil
}

func parseFields(specs *[]fieldvalue.Spec) (*[]fieldvalue.Draft, error) {
	if specs == nil {
		return nil, nil
	}

	drafts, err := fieldvalue.Parse(FieldFieldValues, *specs)
	if err != nil {
		return nil, err
	}
	return &drafts, nil
}

func validateLanguageKeys[V any](validator *validate.Validator, field string, values map[string]V) {
	for language := range values {
		validator.Required(field, language).Language(field+"."+language, language)
	}
}

func validateImage(validator *validate.Validator, image *ImageInput) {
	if image == nil {
		return
	}
	validator.Custom(FieldImage+".width", image.Width != nil && *image.Width < 0, "Must not be negative")
	validator.Custom(FieldImage+".height", image.Height != nil && *image.Height < 0, "Must not be negative")
}

// apply copies the submitted members onto element. Nil members are left as stored.
func (input UpdateInput) apply(element *Element) {
	if input.BusinessID != nil {
		element.BusinessID = strings.TrimSpace(*input.BusinessID)
	}
	if input.Type != nil {
		element.Type = strings.TrimSpace(*input.Type)
	}
	if input.ZOrder != nil {
		element.ZOrder = *input.ZOrder
	}
	if input.Descriptions != nil {
		element.Descriptions = *input.Descriptions
	}
	if input.KonvaJSONs != nil {
		element.KonvaJSONs = *input.KonvaJSONs
	}
	if input.Image != nil {
		element.Image = imagePayload(input.Image)
	}
}

func imagePayload(image *ImageInput) *ImagePayload {
	if image == nil {
		return nil
	}
	return &ImagePayload{MediaID: image.MediaID, Width: image.Width, Height: image.Height}
}
