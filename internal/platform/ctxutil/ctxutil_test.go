// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shipdoc/internal/platform/ctxutil"
	"github.com/taibuivan/shipdoc/internal/platform/sec"
)

/*
TestContext_Defaults returns empty values outside of a request.
*/
func TestContext_Defaults(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
}

/*
TestContext_RequestValues keeps the correlation ID, the logger and the caller
side by side on one context.
*/
func TestContext_RequestValues(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	claims := &sec.AuthClaims{UserID: "42", Username: "marie", Role: string(sec.RoleEditor)}

	ctx := ctxutil.WithRequestID(context.Background(), "req-7")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithAuthUser(ctx, claims)

	assert.Equal(t, "req-7", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))

	caller := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, caller)
	actor := caller.Actor()
	require.NotNil(t, actor.ID)
	assert.Equal(t, int64(42), *actor.ID)
	assert.Equal(t, "marie", actor.Name)
}

/*
TestContext_NilLogger falls back to the default logger.
*/
func TestContext_NilLogger(t *testing.T) {
	ctx := ctxutil.WithLogger(context.Background(), nil)
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))
}
