// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fieldvalue

import (
	"context"

	"github.com/taibuivan/shipdoc/internal/core/media"
)

// MediaResolver loads media records for read hydration.
type MediaResolver interface {
	Resolve(context context.Context, ids []int64) (map[int64]*media.Media, error)
}

/*
Hydrate attaches the media record to every media field in groups using a
single lookup. Fields whose media vanished keep a nil Media.
*/
func Hydrate(context context.Context, resolver MediaResolver, groups ...[]*FieldValue) error {
	var ids []int64
	for _, fields := range groups {
		for _, field := range fields {
			if id := field.MediaID(); id != nil {
				ids = append(ids, *id)
			}
		}
	}

	if len(ids) == 0 {
		return nil
	}

	found, err := resolver.Resolve(context, ids)
	if err != nil {
		return err
	}

	for _, fields := range groups {
		for _, field := range fields {
			if id := field.MediaID(); id != nil {
				field.Media = found[*id]
			}
		}
	}
	return nil
}
