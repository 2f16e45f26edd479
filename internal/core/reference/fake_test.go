// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
	"github.com/taibuivan/shipdoc/internal/core/media"
	"github.com/taibuivan/shipdoc/internal/core/reference"
	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
)

// memoryRepository is an in-memory [reference.Repository].
type memoryRepository struct {
	mu         sync.Mutex
	nextID     int64
	references map[int64]*reference.Reference
	history    []*reference.HistoryEntry

	// concurrentWriters simulates that many competing updates landing between
	// a read and the compare-and-swap.
	concurrentWriters int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{references: make(map[int64]*reference.Reference)}
}

func (repo *memoryRepository) snapshot(stored *reference.Reference) *reference.Reference {
	copied := *stored
	copied.Fields = make([]*fieldvalue.FieldValue, 0, len(stored.Fields))
	for _, field := range stored.Fields {
		cloned := *field
		copied.Fields = append(copied.Fields, &cloned)
	}
	return &copied
}

func toFields(drafts []fieldvalue.Draft) []*fieldvalue.FieldValue {
	fields := make([]*fieldvalue.FieldValue, 0, len(drafts))
	for index, draft := range drafts {
		fields = append(fields, &fieldvalue.FieldValue{ID: int64(index + 1), Name: draft.Name, Language: draft.Language, Value: draft.Value})
	}
	return fields
}

func (repo *memoryRepository) List(_ context.Context, filter reference.Filter, limit, offset int) ([]*reference.Reference, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matched []*reference.Reference
	for _, stored := range repo.references {
		if filter.Type != "" && stored.Type != filter.Type {
			continue
		}
		if filter.Search != "" && !repo.matches(stored, strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, repo.snapshot(stored))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := len(matched)
	if offset >= total {
		return []*reference.Reference{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (repo *memoryRepository) matches(stored *reference.Reference, search string) bool {
	if strings.Contains(strings.ToLower(stored.Type), search) {
		return true
	}
	for _, field := range stored.Fields {
		if text, ok := field.Value.(fieldvalue.StringValue); ok && strings.Contains(strings.ToLower(string(text)), search) {
			return true
		}
	}
	return false
}

func (repo *memoryRepository) FindByID(_ context.Context, id int64) (*reference.Reference, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.references[id]
	if !ok {
		return nil, apperr.NotFound("Reference")
	}
	return repo.snapshot(stored), nil
}

func (repo *memoryRepository) ListTypes(_ context.Context) ([]string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var types []string
	for _, stored := range repo.references {
		if !slices.Contains(types, stored.Type) {
			types = append(types, stored.Type)
		}
	}
	sort.Strings(types)
	return types, nil
}

func (repo *memoryRepository) Create(_ context.Context, ref *reference.Reference, drafts []fieldvalue.Draft, changes reference.Changes, actor sec.Actor) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.nextID++
	ref.ID = repo.nextID
	ref.Version = 1
	ref.CreatedAt = time.Now()
	ref.UpdatedAt = ref.CreatedAt

	stored := *ref
	stored.Fields = toFields(drafts)
	repo.references[ref.ID] = &stored
	repo.appendHistory(ref.ID, 1, changes, actor)
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, ref *reference.Reference, expectedVersion int, drafts *[]fieldvalue.Draft, changes reference.Changes, actor sec.Actor) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.references[ref.ID]
	if !ok {
		return reference.ErrVersionConflict
	}

	// A competing writer commits first.
	if repo.concurrentWriters > 0 {
		repo.concurrentWriters--
		stored.Version++
		repo.appendHistory(stored.ID, stored.Version, reference.Changes{}, sec.Actor{Name: "other"})
	}

	if stored.Version != expectedVersion {
		return reference.ErrVersionConflict
	}

	stored.Type = ref.Type
	stored.Icon = ref.Icon
	stored.Version++
	stored.UpdatedAt = time.Now()
	if drafts != nil {
		stored.Fields = toFields(*drafts)
	}

	ref.Version = stored.Version
	repo.appendHistory(stored.ID, stored.Version, changes, actor)
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.references[id]; !ok {
		return apperr.NotFound("Reference")
	}
	delete(repo.references, id)
	return nil
}

func (repo *memoryRepository) Exists(_ context.Context, id int64) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, ok := repo.references[id]
	return ok, nil
}

func (repo *memoryRepository) ListHistory(_ context.Context, id int64) ([]*reference.HistoryEntry, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	entries := make([]*reference.HistoryEntry, 0)
	for _, entry := range repo.history {
		if entry.ReferenceID == id {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Version > entries[j].Version })
	return entries, nil
}

func (repo *memoryRepository) appendHistory(id int64, version int, changes reference.Changes, actor sec.Actor) {
	repo.history = append(repo.history, &reference.HistoryEntry{
		ID:            int64(len(repo.history) + 1),
		ReferenceID:   id,
		Version:       version,
		Changes:       changes,
		ChangedBy:     actor.ID,
		ChangedByName: actor.Name,
		ChangedAt:     time.Now(),
	})
}

// noMedia resolves nothing.
type noMedia struct{}

func (noMedia) Resolve(context.Context, []int64) (map[int64]*media.Media, error) {
	return map[int64]*media.Media{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
