// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shipdoc/internal/api"
	"github.com/taibuivan/shipdoc/internal/core/element"
	"github.com/taibuivan/shipdoc/internal/core/media"
	"github.com/taibuivan/shipdoc/internal/core/reference"
	"github.com/taibuivan/shipdoc/internal/core/sheet"
	"github.com/taibuivan/shipdoc/internal/platform/config"
	"github.com/taibuivan/shipdoc/internal/platform/objectstore"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
)

// stubVerifier accepts the token "reader-token" only.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "reader-token" {
		return nil, errors.New("invalid token")
	}
	return &sec.AuthClaims{UserID: "3", Username: "paul", Role: string(sec.RoleReader)}, nil
}

func newTestServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	mediaService := media.NewService(nil, objectstore.StaticURLs{BaseURL: "/media/"}, logger)
	referenceService := reference.NewService(nil, mediaService, nil, logger)
	elementService := element.NewService(nil, referenceService, mediaService, logger)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Reference: reference.NewHandler(referenceService),
		Element:   element.NewHandler(elementService),
		Document:  sheet.NewHandler(sheet.NewService(nil, nil, elementService, logger)),
		Media:     media.NewHandler(mediaService),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "production"}
	return api.NewServer(ctx, cfg, logger, stubVerifier{}, handlers).Handler()
}

func serve(handler http.Handler, method, path, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader("{}"))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_HealthChecks serves liveness without authentication and reports a
failing dependency as 503.
*/
func TestServer_HealthChecks(t *testing.T) {
	healthy := newTestServer(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
	})
	assert.Equal(t, http.StatusOK, serve(healthy, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(healthy, http.MethodGet, "/ready", "").Code)

	degraded := newTestServer(t, api.HealthDependencies{
		CheckDatabase:    func(context.Context) error { return nil },
		CheckObjectStore: func(context.Context) error { return errors.New("bucket missing") },
	})
	recorder := serve(degraded, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "object_store")
}

/*
TestServer_APIRequiresAuthentication rejects anonymous and forged requests
and applies the editor gate to writes.
*/
func TestServer_APIRequiresAuthentication(t *testing.T) {
	server := newTestServer(t, api.HealthDependencies{})

	for _, path := range []string{"/api/v1/references", "/api/v1/elements", "/api/v1/sheets", "/api/v1/pages", "/api/v1/media"} {
		assert.Equal(t, http.StatusUnauthorized, serve(server, http.MethodGet, path, "").Code, path)
	}

	assert.Equal(t, http.StatusUnauthorized, serve(server, http.MethodGet, "/api/v1/sheets", "forged").Code)
	assert.Equal(t, http.StatusForbidden, serve(server, http.MethodPost, "/api/v1/references", "reader-token").Code)
	assert.Equal(t, http.StatusForbidden, serve(server, http.MethodDelete, "/api/v1/pages/1", "reader-token").Code)
}
