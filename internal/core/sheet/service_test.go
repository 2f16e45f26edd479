// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sheet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shipdoc/internal/core/sheet"
	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
	"github.com/taibuivan/shipdoc/pkg/pointer"
)

var editor = sec.Actor{ID: pointer.To(int64(7)), Name: "marie"}

func newService(elements pageElements) (*memoryStore, *sheet.Service) {
	store := newMemoryStore()
	return store, sheet.NewService(store, pageStore{store}, elements, discardLogger())
}

func createSheetWithPages(t *testing.T, service *sheet.Service, count int) *sheet.Sheet {
	t.Helper()
	ctx := context.Background()

	created, err := service.CreateSheet(ctx, editor, sheet.CreateInput{Name: "Hull assembly", BusinessID: "SH-1"})
	require.NoError(t, err)

	for range count {
		_, err := service.CreatePage(ctx, editor, sheet.PageCreateInput{Sheet: created.ID})
		require.NoError(t, err)
	}
	return created
}

func pageNumbers(t *testing.T, service *sheet.Service, sheetID int64) []int {
	t.Helper()

	loaded, err := service.GetSheet(context.Background(), sheetID)
	require.NoError(t, err)

	numbers := make([]int, 0, len(loaded.Pages))
	for _, page := range loaded.Pages {
		numbers = append(numbers, page.Number)
	}
	return numbers
}

/*
TestService_CreateSheet_Defaults applies the default language and the actor.
*/
func TestService_CreateSheet_Defaults(t *testing.T) {
	_, service := newService(nil)

	created, err := service.CreateSheet(context.Background(), editor, sheet.CreateInput{Name: " Hull ", BusinessID: "SH-1"})
	require.NoError(t, err)
	assert.Equal(t, "Hull", created.Name)
	assert.Equal(t, "en", created.Language)
	assert.Equal(t, "marie", created.CreatedByName)
	assert.Empty(t, created.Pages)
}

/*
TestService_CreateSheet_TranslationUniqueness allows one sheet per
(business_id, language).
*/
func TestService_CreateSheet_TranslationUniqueness(t *testing.T) {
	ctx := context.Background()
	_, service := newService(nil)

	_, err := service.CreateSheet(ctx, editor, sheet.CreateInput{Name: "Hull", BusinessID: "SH-1", Language: "en"})
	require.NoError(t, err)

	_, err = service.CreateSheet(ctx, editor, sheet.CreateInput{Name: "Coque", BusinessID: "SH-1", Language: "fr"})
	require.NoError(t, err)

	_, err = service.CreateSheet(ctx, editor, sheet.CreateInput{Name: "Hull again", BusinessID: "SH-1", Language: "en"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	translations, err := service.ListSheetsByBusinessID(ctx, "SH-1")
	require.NoError(t, err)
	assert.Len(t, translations, 2)
}

/*
TestService_CreateSheet_Validation rejects blank and oversized attributes.
*/
func TestService_CreateSheet_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input sheet.CreateInput
	}{
		{"blank_name", sheet.CreateInput{Name: " ", BusinessID: "SH-1"}},
		{"blank_business_id", sheet.CreateInput{Name: "Hull"}},
		{"bad_language", sheet.CreateInput{Name: "Hull", BusinessID: "SH-1", Language: "not a language"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, service := newService(nil)
			_, err := service.CreateSheet(context.Background(), editor, tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

/*
TestService_CreatePage_Appends numbers pages after the current last page.
*/
func TestService_CreatePage_Appends(t *testing.T) {
	ctx := context.Background()
	_, service := newService(nil)
	created := createSheetWithPages(t, service, 2)

	explicit, err := service.CreatePage(ctx, editor, sheet.PageCreateInput{Sheet: created.ID, Number: pointer.To(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, explicit.Number)

	appended, err := service.CreatePage(ctx, editor, sheet.PageCreateInput{Sheet: created.ID})
	require.NoError(t, err)
	assert.Equal(t, 6, appended.Number)
	assert.Equal(t, "Hull assembly", appended.SheetName)

	_, err = service.CreatePage(ctx, editor, sheet.PageCreateInput{Sheet: created.ID, Number: pointer.To(1)})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestService_CreatePage_Validation rejects a missing sheet, a bad number and
unknown description languages.
*/
func TestService_CreatePage_Validation(t *testing.T) {
	ctx := context.Background()
	_, service := newService(nil)
	created := createSheetWithPages(t, service, 0)

	tests := []struct {
		name  string
		input sheet.PageCreateInput
	}{
		{"no_sheet", sheet.PageCreateInput{}},
		{"unknown_sheet", sheet.PageCreateInput{Sheet: 99}},
		{"zero_number", sheet.PageCreateInput{Sheet: created.ID, Number: pointer.To(0)}},
		{"bad_language", sheet.PageCreateInput{Sheet: created.ID, Description: map[string]string{"??": "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreatePage(ctx, editor, tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

/*
TestService_DeletePage_Renumber shifts later pages down only when asked.
*/
func TestService_DeletePage_Renumber(t *testing.T) {
	tests := []struct {
		name     string
		renumber bool
		want     []int
	}{
		{"renumber", true, []int{1, 2, 3}},
		{"keep_gap", false, []int{1, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			_, service := newService(nil)
			created := createSheetWithPages(t, service, 4)

			pages, _, err := service.ListPages(ctx, sheet.PageFilter{SheetID: &created.ID, Number: pointer.To(2)}, 10, 0)
			require.NoError(t, err)
			require.Len(t, pages, 1)

			require.NoError(t, service.DeletePage(ctx, pages[0].ID, tt.renumber))
			assert.Equal(t, tt.want, pageNumbers(t, service, created.ID))
		})
	}
}

/*
TestService_GetPage_LoadsElements attaches the page's elements.
*/
func TestService_GetPage_LoadsElements(t *testing.T) {
	ctx := context.Background()
	_, service := newService(pageElements{
		1: {{ID: 10, PageID: 1, BusinessID: "E-1"}},
	})
	createSheetWithPages(t, service, 1)

	page, err := service.GetPage(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Elements, 1)
	assert.Equal(t, "E-1", page.Elements[0].BusinessID)

	_, err = service.GetPage(ctx, 2)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_UpdatePage_NumberConflict keeps numbers unique within a sheet.
*/
func TestService_UpdatePage_NumberConflict(t *testing.T) {
	ctx := context.Background()
	_, service := newService(nil)
	createSheetWithPages(t, service, 2)

	_, err := service.UpdatePage(ctx, 2, sheet.PageUpdateInput{Number: pointer.To(1)})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	updated, err := service.UpdatePage(ctx, 2, sheet.PageUpdateInput{
		Number:      pointer.To(3),
		Description: &map[string]string{"fr": "Pont"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Number)
	assert.Equal(t, "Pont", updated.Description["fr"])
}

/*
TestService_UpdatePage_DescriptionKeepsRenumbering edits the description of
page 3 while page 1 is deleted with renumbering in between. The edit must
not write back the number it would have read before the delete.
*/
func TestService_UpdatePage_DescriptionKeepsRenumbering(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := sheet.NewService(store, deleteBeforeUpdate{PageRepository: pageStore{store}, victim: 1}, pageElements(nil), discardLogger())
	created := createSheetWithPages(t, service, 3)

	updated, err := service.UpdatePage(ctx, 3, sheet.PageUpdateInput{Description: &map[string]string{"en": "Aft deck"}})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Number)
	assert.Equal(t, "Aft deck", updated.Description["en"])
	assert.Equal(t, []int{1, 2}, pageNumbers(t, service, created.ID))
}

/*
TestService_UpdatePage_NotFound reports an unknown page.
*/
func TestService_UpdatePage_NotFound(t *testing.T) {
	_, service := newService(nil)

	_, err := service.UpdatePage(context.Background(), 99, sheet.PageUpdateInput{Description: &map[string]string{"en": "x"}})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_DeleteSheet_CascadesPages removes the pages of a deleted sheet.
*/
func TestService_DeleteSheet_CascadesPages(t *testing.T) {
	ctx := context.Background()
	_, service := newService(nil)
	created := createSheetWithPages(t, service, 3)

	require.NoError(t, service.DeleteSheet(ctx, created.ID))

	_, total, err := service.ListPages(ctx, sheet.PageFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.True(t, apperr.HasCode(service.DeleteSheet(ctx, created.ID), apperr.CodeNotFound))
}

/*
TestService_ListSheets_LigneSens rejects unknown line directions.
*/
func TestService_ListSheets_LigneSens(t *testing.T) {
	_, service := newService(nil)

	_, _, err := service.ListSheets(context.Background(), sheet.Filter{LigneSens: "X"}, 10, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, _, err = service.ListSheets(context.Background(), sheet.Filter{LigneSens: "G"}, 10, 0)
	assert.NoError(t, err)
}
