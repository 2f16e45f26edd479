// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sheet_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/shipdoc/internal/core/element"
	"github.com/taibuivan/shipdoc/internal/core/sheet"
	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/validate"
)

// memoryStore implements both [sheet.SheetRepository] and, through
// pageStore, [sheet.PageRepository] over shared maps.
type memoryStore struct {
	mu          sync.Mutex
	nextSheetID int64
	nextPageID  int64
	sheets      map[int64]*sheet.Sheet
	pages       map[int64]*sheet.Page
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sheets: make(map[int64]*sheet.Sheet),
		pages:  make(map[int64]*sheet.Page),
	}
}

func (store *memoryStore) countPages(sheetID int64) int {
	count := 0
	for _, page := range store.pages {
		if page.SheetID == sheetID {
			count++
		}
	}
	return count
}

func (store *memoryStore) List(_ context.Context, filter sheet.Filter, limit, offset int) ([]*sheet.Sheet, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var matched []*sheet.Sheet
	for _, stored := range store.sheets {
		if filter.BusinessID != "" && stored.BusinessID != filter.BusinessID {
			continue
		}
		copied := *stored
		copied.PagesCount = store.countPages(stored.ID)
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := len(matched)
	if offset >= total {
		return []*sheet.Sheet{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (store *memoryStore) FindByID(_ context.Context, id int64) (*sheet.Sheet, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, ok := store.sheets[id]
	if !ok {
		return nil, apperr.NotFound("Sheet")
	}
	copied := *stored
	copied.PagesCount = store.countPages(id)
	return &copied, nil
}

func (store *memoryStore) Create(_ context.Context, created *sheet.Sheet) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, stored := range store.sheets {
		if stored.BusinessID == created.BusinessID && stored.Language == created.Language {
			return apperr.Conflict("A sheet with this business_id and language already exists")
		}
	}

	store.nextSheetID++
	created.ID = store.nextSheetID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	copied := *created
	store.sheets[created.ID] = &copied
	return nil
}

func (store *memoryStore) Update(_ context.Context, updated *sheet.Sheet) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.sheets[updated.ID]; !ok {
		return apperr.NotFound("Sheet")
	}
	copied := *updated
	store.sheets[updated.ID] = &copied
	return nil
}

func (store *memoryStore) Delete(_ context.Context, id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.sheets[id]; !ok {
		return apperr.NotFound("Sheet")
	}
	delete(store.sheets, id)
	for pageID, page := range store.pages {
		if page.SheetID == id {
			delete(store.pages, pageID)
		}
	}
	return nil
}

// pageStore exposes the page half of a memoryStore.
type pageStore struct {
	*memoryStore
}

func (store pageStore) List(_ context.Context, filter sheet.PageFilter, limit, offset int) ([]*sheet.Page, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var matched []*sheet.Page
	for _, page := range store.pages {
		if filter.SheetID != nil && page.SheetID != *filter.SheetID {
			continue
		}
		if filter.Number != nil && page.Number != *filter.Number {
			continue
		}
		copied := *page
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SheetID != matched[j].SheetID {
			return matched[i].SheetID < matched[j].SheetID
		}
		return matched[i].Number < matched[j].Number
	})

	total := len(matched)
	if offset >= total {
		return []*sheet.Page{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (store pageStore) ListBySheet(ctx context.Context, sheetID int64) ([]*sheet.Page, error) {
	pages, _, err := store.List(ctx, sheet.PageFilter{SheetID: &sheetID}, len(store.pages)+1, 0)
	return pages, err
}

func (store pageStore) FindByID(_ context.Context, id int64) (*sheet.Page, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	page, ok := store.pages[id]
	if !ok {
		return nil, apperr.NotFound("Page")
	}
	copied := *page
	return &copied, nil
}

func (store pageStore) Create(_ context.Context, created *sheet.Page) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	owner, ok := store.sheets[created.SheetID]
	if !ok {
		return validate.RequiredError(sheet.FieldSheet, "Sheet does not exist")
	}

	last := 0
	for _, page := range store.pages {
		if page.SheetID != created.SheetID {
			continue
		}
		if created.Number != 0 && page.Number == created.Number {
			return apperr.Conflict("This page number is already used in the sheet")
		}
		last = max(last, page.Number)
	}
	if created.Number == 0 {
		created.Number = last + 1
	}

	store.nextPageID++
	created.ID = store.nextPageID
	created.SheetName = owner.Name
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	copied := *created
	store.pages[created.ID] = &copied
	return nil
}

func (store pageStore) Update(_ context.Context, id int64, input sheet.PageUpdateInput) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, ok := store.pages[id]
	if !ok {
		return apperr.NotFound("Page")
	}
	if input.Number != nil {
		for _, page := range store.pages {
			if page.ID != id && page.SheetID == stored.SheetID && page.Number == *input.Number {
				return apperr.Conflict("This page number is already used in the sheet")
			}
		}
		stored.Number = *input.Number
	}
	if input.Description != nil {
		stored.Description = *input.Description
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (store pageStore) Delete(_ context.Context, id int64, renumber bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	deleted, ok := store.pages[id]
	if !ok {
		return apperr.NotFound("Page")
	}
	delete(store.pages, id)

	if renumber {
		for _, page := range store.pages {
			if page.SheetID == deleted.SheetID && page.Number > deleted.Number {
				page.Number--
			}
		}
	}
	return nil
}

// deleteBeforeUpdate runs a renumbering delete of victim just before each
// Update reaches the wrapped repository, as a concurrent request would.
type deleteBeforeUpdate struct {
	sheet.PageRepository
	victim int64
}

func (repository deleteBeforeUpdate) Update(ctx context.Context, id int64, input sheet.PageUpdateInput) error {
	if err := repository.PageRepository.Delete(ctx, repository.victim, true); err != nil {
		return err
	}
	return repository.PageRepository.Update(ctx, id, input)
}

// pageElements returns a fixed element list for every page.
type pageElements map[int64][]*element.Element

func (elements pageElements) ListByPage(_ context.Context, pageID int64) ([]*element.Element, error) {
	if listed, ok := elements[pageID]; ok {
		return listed, nil
	}
	return []*element.Element{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
