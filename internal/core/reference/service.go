// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/constants"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
	"github.com/taibuivan/shipdoc/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the reference catalog: validation, versioning,
// history and the type cache.
type Service struct {
	repo   Repository
	media  fieldvalue.MediaResolver
	cache  TypeCache
	logger *slog.Logger
}

// NewService constructs a new [Service]. A nil cache disables caching.
func NewService(repo Repository, media fieldvalue.MediaResolver, cache TypeCache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = noCache{}
	}
	return &Service{repo: repo, media: media, cache: cache, logger: logger}
}

// # Lookups

/*
List returns a page of reference summaries.

Parameters:
  - context: context.Context
  - filter: Filter (exact type, free-text search)
  - limit, offset: int

Returns:
  - []*Summary: Summaries with a field preview
  - int: Total count
  - error: Repository errors
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Summary, int, error) {
	references, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*Summary, 0, len(references))
	for _, reference := range references {
		summaries = append(summaries, summarize(reference))
	}
	return summaries, total, nil
}

// Get returns a reference with hydrated media fields.
func (service *Service) Get(context context.Context, id int64) (*Reference, error) {
	reference, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := fieldvalue.Hydrate(context, service.media, reference.Fields); err != nil {
		return nil, err
	}
	return reference, nil
}

/*
ListTypes returns the distinct reference types.

Description: Served from the cache when possible. Cache failures are logged
and fall through to the database.
*/
func (service *Service) ListTypes(context context.Context) ([]string, error) {
	types, found, err := service.cache.Get(context)
	if err != nil {
		service.logger.Warn("reference_types_cache_read_failed", slog.Any("error", err))
	}
	if found {
		return types, nil
	}

	types, err = service.repo.ListTypes(context)
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(context, types); err != nil {
		service.logger.Warn("reference_types_cache_write_failed", slog.Any("error", err))
	}
	return types, nil
}

/*
History returns the ledger of a reference, newest first.

Returns:
  - []*HistoryEntry
  - error: NotFound when the reference does not exist
*/
func (service *Service) History(context context.Context, id int64) ([]*HistoryEntry, error) {
	exists, err := service.repo.Exists(context, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Reference")
	}

	return service.repo.ListHistory(context, id)
}

// # Mutations

/*
Create validates the input and stores a new reference at version 1.

Description: The history snapshot is taken from the submitted specs before any
normalisation or media resolution.

Parameters:
  - context: context.Context
  - actor: sec.Actor (recorded as creator and in the ledger)
  - input: CreateInput

Returns:
  - *Reference: The stored reference
  - error: Validation or persistence errors
*/
func (service *Service) Create(context context.Context, actor sec.Actor, input CreateInput) (*Reference, error) {

	// 1. Snapshot before anything touches the input
	changes := createdChanges(input.Fields)

	// 2. Validation
	referenceType := strings.TrimSpace(input.Type)
	validator := &validate.Validator{}
	validator.Required(FieldType, referenceType).MaxLen(FieldType, referenceType, maxTypeLen)
	icon := normalizeIcon(input.Icon)
	if icon != nil {
		validator.MaxLen(FieldIcon, *icon, maxIconLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	drafts, err := fieldvalue.Parse(FieldFields, input.Fields)
	if err != nil {
		return nil, err
	}

	// 3. Persistence
	reference := &Reference{
		Type:          referenceType,
		Icon:          icon,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
	if err := service.repo.Create(context, reference, drafts, changes, actor); err != nil {
		return nil, err
	}

	service.invalidateTypes(context)
	service.logger.Info("reference_created",
		slog.Int64("reference_id", reference.ID),
		slog.String("type", reference.Type),
		slog.Int("fields", len(drafts)),
	)

	return service.Get(context, reference.ID)
}

/*
Update applies a partial update and bumps the version by one.

Description: The current state is read, diffed against the input and written
with a compare-and-swap on the version. A lost race re-reads and re-diffs, up
to [constants.VersionConflictRetries] times, before a 409 is returned. Every
successful call writes exactly one history entry, even when nothing changed.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - id: int64
  - input: UpdateInput

Returns:
  - *Reference: The updated reference
  - error: Validation, NotFound, Conflict or persistence errors
*/
func (service *Service) Update(context context.Context, actor sec.Actor, id int64, input UpdateInput) (*Reference, error) {

	// 1. Validation is independent of the stored state
	validator := &validate.Validator{}
	if input.Type != nil {
		trimmed := strings.TrimSpace(*input.Type)
		input.Type = &trimmed
		validator.Required(FieldType, trimmed).MaxLen(FieldType, trimmed, maxTypeLen)
	}
	if input.Icon != nil {
		validator.MaxLen(FieldIcon, *input.Icon, maxIconLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var drafts *[]fieldvalue.Draft
	if input.Fields != nil {
		parsed, err := fieldvalue.Parse(FieldFields, *input.Fields)
		if err != nil {
			return nil, err
		}
		drafts = &parsed
	}

	// 2. Read, diff, compare-and-swap
	for attempt := 0; attempt <= constants.VersionConflictRetries; attempt++ {
		current, err := service.repo.FindByID(context, id)
		if err != nil {
			return nil, err
		}

		changes := updatedChanges(current, input)

		next := &Reference{ID: current.ID, Type: current.Type, Icon: current.Icon}
		if input.Type != nil {
			next.Type = *input.Type
		}
		if input.Icon != nil {
			next.Icon = normalizeIcon(input.Icon)
		}

		err = service.repo.Update(context, next, current.Version, drafts, changes, actor)
		if errors.Is(err, ErrVersionConflict) {
			service.logger.Warn("reference_version_conflict",
				slog.Int64("reference_id", id),
				slog.Int("expected_version", current.Version),
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		if next.Type != current.Type {
			service.invalidateTypes(context)
		}
		service.logger.Info("reference_updated",
			slog.Int64("reference_id", id),
			slog.Int("version", next.Version),
			slog.Int("changes", len(changes)),
		)

		return service.Get(context, id)
	}

	return nil, apperr.VersionConflict("Reference")
}

// Delete removes a reference. Linked elements keep existing with a null link.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.invalidateTypes(context)
	service.logger.Info("reference_deleted", slog.Int64("reference_id", id))
	return nil
}

// Exists reports whether a reference exists. Used by elements spawned from a template.
func (service *Service) Exists(context context.Context, id int64) (bool, error) {
	return service.repo.Exists(context, id)
}

func (service *Service) invalidateTypes(context context.Context) {
	if err := service.cache.Invalidate(context); err != nil {
		service.logger.Warn("reference_types_cache_invalidate_failed", slog.Any("error", err))
	}
}
