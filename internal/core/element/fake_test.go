// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package element_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/shipdoc/internal/core/element"
	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
	"github.com/taibuivan/shipdoc/internal/core/media"
	"github.com/taibuivan/shipdoc/internal/platform/apperr"
)

// memoryRepository is an in-memory [element.Repository]. templates holds the
// fields of existing references, keyed by reference ID.
type memoryRepository struct {
	mu        sync.Mutex
	nextID    int64
	elements  map[int64]*element.Element
	templates map[int64][]*fieldvalue.FieldValue
	creates   int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		elements:  make(map[int64]*element.Element),
		templates: make(map[int64][]*fieldvalue.FieldValue),
	}
}

func cloneFields(fields []*fieldvalue.FieldValue) []*fieldvalue.FieldValue {
	cloned := make([]*fieldvalue.FieldValue, 0, len(fields))
	for _, field := range fields {
		copied := *field
		cloned = append(cloned, &copied)
	}
	return cloned
}

func (repo *memoryRepository) snapshot(stored *element.Element) *element.Element {
	copied := *stored
	copied.FieldValues = cloneFields(stored.FieldValues)
	if stored.Image != nil {
		image := *stored.Image
		copied.Image = &image
	}
	return &copied
}

func draftsToFields(drafts []fieldvalue.Draft) []*fieldvalue.FieldValue {
	fields := make([]*fieldvalue.FieldValue, 0, len(drafts))
	for index, draft := range drafts {
		fields = append(fields, &fieldvalue.FieldValue{ID: int64(index + 1), Name: draft.Name, Language: draft.Language, Value: draft.Value})
	}
	return fields
}

func (repo *memoryRepository) List(_ context.Context, filter element.Filter, limit, offset int) ([]*element.Element, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matched []*element.Element
	for _, stored := range repo.elements {
		if filter.PageID != nil && stored.PageID != *filter.PageID {
			continue
		}
		if filter.BusinessID != "" && stored.BusinessID != filter.BusinessID {
			continue
		}
		if filter.Type != "" && stored.Type != filter.Type {
			continue
		}
		matched = append(matched, repo.snapshot(stored))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].ZOrder != matched[j].ZOrder {
			return matched[i].ZOrder < matched[j].ZOrder
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if offset >= total {
		return []*element.Element{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (repo *memoryRepository) ListByPage(ctx context.Context, pageID int64) ([]*element.Element, error) {
	elements, _, err := repo.List(ctx, element.Filter{PageID: &pageID}, len(repo.elements)+1, 0)
	return elements, err
}

func (repo *memoryRepository) FindByID(_ context.Context, id int64) (*element.Element, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.elements[id]
	if !ok {
		return nil, apperr.NotFound("Element")
	}
	return repo.snapshot(stored), nil
}

func (repo *memoryRepository) Create(_ context.Context, created *element.Element, drafts *[]fieldvalue.Draft) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.creates++
	repo.nextID++
	created.ID = repo.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt

	stored := *created
	switch {
	case drafts != nil:
		stored.FieldValues = draftsToFields(*drafts)
	case created.ReferenceValue != nil:
		stored.FieldValues = cloneFields(repo.templates[*created.ReferenceValue])
	default:
		stored.FieldValues = []*fieldvalue.FieldValue{}
	}
	repo.elements[created.ID] = &stored
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, id int64, apply func(*element.Element), drafts *[]fieldvalue.Draft) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.elements[id]
	if !ok {
		return apperr.NotFound("Element")
	}

	apply(stored)
	stored.UpdatedAt = time.Now()
	if drafts != nil {
		stored.FieldValues = draftsToFields(*drafts)
	}
	return nil
}

// interleavedUpdate commits another patch to the same element just before
// each update it wraps.
type interleavedUpdate struct {
	element.Repository
	apply func(*element.Element)
}

func (repository interleavedUpdate) Update(ctx context.Context, id int64, apply func(*element.Element), drafts *[]fieldvalue.Draft) error {
	if err := repository.Repository.Update(ctx, id, repository.apply, nil); err != nil {
		return err
	}
	return repository.Repository.Update(ctx, id, apply, drafts)
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.elements[id]; !ok {
		return apperr.NotFound("Element")
	}
	delete(repo.elements, id)
	return nil
}

// Exists makes the repository double as the [element.ReferenceChecker].
func (repo *memoryRepository) Exists(_ context.Context, id int64) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, ok := repo.templates[id]
	return ok, nil
}

// mediaLibrary resolves the media IDs it holds.
type mediaLibrary map[int64]*media.Media

func (library mediaLibrary) Resolve(_ context.Context, ids []int64) (map[int64]*media.Media, error) {
	found := make(map[int64]*media.Media)
	for _, id := range ids {
		if item, ok := library[id]; ok {
			found[id] = item
		}
	}
	return found, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
