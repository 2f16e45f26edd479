// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"log/slog"

	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/objectstore"
)

// # Service Layer

// Service reads the media library and attaches client-facing URLs.
type Service struct {
	repo   Repository
	urls   objectstore.URLResolver
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, urls objectstore.URLResolver, logger *slog.Logger) *Service {
	return &Service{repo: repo, urls: urls, logger: logger}
}

/*
List returns a page of the library with URLs resolved.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Media: Records with URL set
  - int: Total count
  - error: Repository or URL signing errors
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Media, int, error) {
	items, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, item := range items {
		if err := service.attachURLs(context, item); err != nil {
			return nil, 0, err
		}
	}

	return items, total, nil
}

// Get fetches one media record with its URL resolved.
func (service *Service) Get(context context.Context, id int64) (*Media, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.attachURLs(context, item); err != nil {
		return nil, err
	}
	return item, nil
}

/*
Resolve loads the media among ids for read hydration of field values and
image elements. Missing identifiers are simply absent from the result.

Parameters:
  - context: context.Context
  - ids: []int64

Returns:
  - map[int64]*Media: Found records with URLs
  - error: Repository or URL signing errors
*/
func (service *Service) Resolve(context context.Context, ids []int64) (map[int64]*Media, error) {
	found, err := service.repo.FindByIDs(context, ids)
	if err != nil {
		return nil, err
	}

	for _, item := range found {
		if err := service.attachURLs(context, item); err != nil {
			return nil, err
		}
	}

	return found, nil
}

// attachURLs fills URL and ThumbnailURL from the storage keys.
func (service *Service) attachURLs(context context.Context, item *Media) error {
	url, err := service.urls.URL(context, item.StorageKey)
	if err != nil {
		return apperr.Internal(err)
	}
	item.URL = url

	if item.ThumbnailKey != nil && *item.ThumbnailKey != "" {
		thumbnail, err := service.urls.URL(context, *item.ThumbnailKey)
		if err != nil {
			return apperr.Internal(err)
		}
		item.ThumbnailURL = &thumbnail
	}

	return nil
}
