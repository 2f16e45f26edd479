// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
	"github.com/taibuivan/shipdoc/internal/core/reference"
	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/postgres/pgtest"
	"github.com/taibuivan/shipdoc/pkg/pointer"
)

/*
TestPostgres_ReferenceLifecycle_Integration exercises versioning, field
replacement and history retention on a real database.
*/
func TestPostgres_ReferenceLifecycle_Integration(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()
	service := reference.NewService(reference.NewRepository(pool), noMedia{}, nil, discardLogger())

	created, err := service.Create(ctx, editor, screwInput())
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)

	// Icon only: fields survive
	updated, err := service.Update(ctx, editor, created.ID, reference.UpdateInput{Icon: pointer.To("bolt")})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	require.Len(t, updated.Fields, 1)
	assert.Equal(t, fieldvalue.StringValue("M6x20"), updated.Fields[0].Value)

	// Full replacement leaves no old rows
	fields := []fieldvalue.Spec{{Name: "img", Type: "media", ValueImage: pointer.To(int64(987654321))}}
	updated, err = service.Update(ctx, editor, created.ID, reference.UpdateInput{Fields: &fields})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Version)
	require.Len(t, updated.Fields, 1)
	assert.Equal(t, "img", updated.Fields[0].Name)
	assert.Nil(t, updated.Fields[0].MediaID())

	history, err := service.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{history[0].Version, history[1].Version, history[2].Version})
	assert.Equal(t, "created", history[2].Changes["action"])
	assert.Equal(t, map[string]any{"old": nil, "new": "bolt"}, history[1].Changes["icon"])

	// Search by string field value
	summaries, _, err := service.List(ctx, reference.Filter{Search: "m6X2"}, 100, 0)
	require.NoError(t, err)
	for _, summary := range summaries {
		assert.NotEqual(t, created.ID, summary.ID)
	}

	// Delete keeps the ledger rows
	require.NoError(t, service.Delete(ctx, created.ID))
	_, err = service.History(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	var remaining int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM production.reference_history WHERE reference_id = $1`, created.ID).Scan(&remaining))
	assert.Equal(t, 3, remaining)
}

/*
TestPostgres_ConcurrentUpdates_Integration races several writers on one
reference. Every writer either commits or gets a conflict, and the ledger has
exactly one entry per committed version.
*/
func TestPostgres_ConcurrentUpdates_Integration(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()
	service := reference.NewService(reference.NewRepository(pool), noMedia{}, nil, discardLogger())

	created, err := service.Create(ctx, editor, screwInput())
	require.NoError(t, err)

	const writers = 8
	results := make([]error, writers)

	var wg sync.WaitGroup
	for index := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			icon := fmt.Sprintf("icon-%d", index)
			_, results[index] = service.Update(ctx, editor, created.ID, reference.UpdateInput{Icon: &icon})
		}()
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.Equal(t, apperr.CodeConflict, apperr.As(err).Code, err)
	}
	require.Positive(t, successes)

	final, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1+successes, final.Version)

	history, err := service.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, final.Version)
	for index, entry := range history {
		assert.Equal(t, final.Version-index, entry.Version)
	}
}

/*
TestPostgres_HistoryImmutable_Integration verifies the triggers block UPDATE
and DELETE with SQLSTATE 55000.
*/
func TestPostgres_HistoryImmutable_Integration(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()
	service := reference.NewService(reference.NewRepository(pool), noMedia{}, nil, discardLogger())

	created, err := service.Create(ctx, editor, reference.CreateInput{Type: "jig"})
	require.NoError(t, err)

	statements := map[string]string{
		"update": `UPDATE production.reference_history SET version = 99 WHERE reference_id = $1`,
		"delete": `DELETE FROM production.reference_history WHERE reference_id = $1`,
	}

	for name, statement := range statements {
		t.Run(name, func(t *testing.T) {
			_, err := pool.Exec(ctx, statement, created.ID)
			require.Error(t, err)

			var pgErr *pgconn.PgError
			require.True(t, errors.As(err, &pgErr))
			assert.Equal(t, pgerrcode.ObjectNotInPrerequisiteState, pgErr.Code)
		})
	}
}
