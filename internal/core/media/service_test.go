// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shipdoc/internal/core/media"
	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/objectstore"
)

type fakeRepository struct {
	items map[int64]*media.Media
}

func (fake *fakeRepository) List(_ context.Context, _ media.Filter, _, _ int) ([]*media.Media, int, error) {
	out := make([]*media.Media, 0, len(fake.items))
	for _, item := range fake.items {
		copied := *item
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (fake *fakeRepository) FindByID(_ context.Context, id int64) (*media.Media, error) {
	item, ok := fake.items[id]
	if !ok {
		return nil, apperr.NotFound("Media")
	}
	copied := *item
	return &copied, nil
}

func (fake *fakeRepository) FindByIDs(_ context.Context, ids []int64) (map[int64]*media.Media, error) {
	found := make(map[int64]*media.Media)
	for _, id := range ids {
		if item, ok := fake.items[id]; ok {
			copied := *item
			found[id] = &copied
		}
	}
	return found, nil
}

func newService() *media.Service {
	thumb := "thumbs/screw.jpg"
	repo := &fakeRepository{items: map[int64]*media.Media{
		7: {ID: 7, Name: "screw", MediaType: media.TypeImage, StorageKey: "library/screw.png", ThumbnailKey: &thumb},
		8: {ID: 8, Name: "assembly", MediaType: media.TypeVideo, StorageKey: "library/assembly.mp4"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return media.NewService(repo, objectstore.StaticURLs{BaseURL: "https://cdn.example.com/media/"}, logger)
}

/*
TestService_Resolve_SkipsUnknownIDs attaches URLs and ignores identifiers that do not exist.
*/
func TestService_Resolve_SkipsUnknownIDs(t *testing.T) {
	found, err := newService().Resolve(context.Background(), []int64{7, 999})
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, "https://cdn.example.com/media/library/screw.png", found[7].URL)
	require.NotNil(t, found[7].ThumbnailURL)
	assert.Equal(t, "https://cdn.example.com/media/thumbs/screw.jpg", *found[7].ThumbnailURL)
}

/*
TestService_Get_NotFound propagates the repository 404.
*/
func TestService_Get_NotFound(t *testing.T) {
	_, err := newService().Get(context.Background(), 42)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestHandler_Get hides the storage key and exposes the URL.
*/
func TestHandler_Get(t *testing.T) {
	router := chi.NewRouter()
	router.Mount("/media", media.NewHandler(newService()).Routes())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/media/8", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "https://cdn.example.com/media/library/assembly.mp4", body.Data["url"])
	assert.NotContains(t, body.Data, "storage_key")
	assert.Equal(t, "video", body.Data["media_type"])
}
