// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shipdoc/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/shipdoc/internal/platform/request"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
)

func withURLParam(request *http.Request, key, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(key, value)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

/*
TestID_Parsing accepts positive integers only.
*/
func TestID_Parsing(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			request := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.raw)
			id, err := requestutil.ID(request, "id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

/*
TestQueryBool_Renumber covers the default and explicit values.
*/
func TestQueryBool_Renumber(t *testing.T) {
	value, err := requestutil.QueryBool(httptest.NewRequest(http.MethodDelete, "/pages/1", nil), "renumber", true)
	require.NoError(t, err)
	assert.True(t, value)

	value, err = requestutil.QueryBool(httptest.NewRequest(http.MethodDelete, "/pages/1?renumber=FALSE", nil), "renumber", true)
	require.NoError(t, err)
	assert.False(t, value)

	_, err = requestutil.QueryBool(httptest.NewRequest(http.MethodDelete, "/pages/1?renumber=maybe", nil), "renumber", true)
	assert.Error(t, err)
}

/*
TestQueryID_Optional returns nil when the parameter is absent.
*/
func TestQueryID_Optional(t *testing.T) {
	id, err := requestutil.QueryID(httptest.NewRequest(http.MethodGet, "/sheets", nil), "boat")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = requestutil.QueryID(httptest.NewRequest(http.MethodGet, "/sheets?boat=7", nil), "boat")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(7), *id)
}

/*
TestRequiredActor_FromClaims threads the caller identity from the token claims.
*/
func TestRequiredActor_FromClaims(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/references", nil)
	_, err := requestutil.RequiredActor(request)
	assert.Error(t, err)

	ctx := ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "12", Username: "marie"})
	actor, err := requestutil.RequiredActor(request.WithContext(ctx))
	require.NoError(t, err)
	require.NotNil(t, actor.ID)
	assert.Equal(t, int64(12), *actor.ID)
	assert.Equal(t, "marie", actor.Name)
}
