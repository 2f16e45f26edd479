// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package element_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shipdoc/internal/core/element"
	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
	"github.com/taibuivan/shipdoc/internal/core/reference"
	"github.com/taibuivan/shipdoc/internal/platform/postgres/pgtest"
	"github.com/taibuivan/shipdoc/pkg/pointer"
)

/*
TestPostgres_SpawnedElementIsIndependent_Integration spawns an element from a
reference and checks that the two never share field rows.
*/
func TestPostgres_SpawnedElementIsIndependent_Integration(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()

	references := reference.NewService(reference.NewRepository(pool), mediaLibrary{}, nil, discardLogger())
	elements := element.NewService(element.NewRepository(pool), references, mediaLibrary{}, discardLogger())

	sheetID := pgtest.InsertID(t, pool,
		`INSERT INTO production.sheet (name, business_id) VALUES ('Hull', $1) RETURNING id`, "S-"+uuid.NewString())
	pageID := pgtest.InsertID(t, pool,
		`INSERT INTO production.sheet_page (sheet_id, number) VALUES ($1, 1) RETURNING id`, sheetID)

	screw, err := references.Create(ctx, editor, reference.CreateInput{
		Type: "screw",
		Fields: []fieldvalue.Spec{
			{Name: "reference", Type: "string", Language: pointer.To("en"), ValueString: pointer.To("M6x20")},
		},
	})
	require.NoError(t, err)

	// 1. Spawn copies the template fields
	spawned, err := elements.Create(ctx, editor, element.CreateInput{
		Page:           pageID,
		BusinessID:     "E-" + uuid.NewString()[:8],
		Type:           "part",
		ReferenceValue: pointer.To(screw.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, element.KindReference, spawned.Kind())
	require.Len(t, spawned.FieldValues, 1)
	assert.Equal(t, "M6x20", spawned.FieldValues[0].Raw())
	assert.NotEqual(t, screw.Fields[0].ID, spawned.FieldValues[0].ID)

	// 2. Editing the element leaves the reference untouched
	_, err = elements.Update(ctx, spawned.ID, element.UpdateInput{
		FieldValues: &[]fieldvalue.Spec{
			{Name: "reference", Type: "string", Language: pointer.To("en"), ValueString: pointer.To("M8x30")},
		},
	})
	require.NoError(t, err)

	reloaded, err := references.Get(ctx, screw.ID)
	require.NoError(t, err)
	assert.Equal(t, fieldvalue.StringValue("M6x20"), reloaded.Fields[0].Value)
	assert.Equal(t, 1, reloaded.Version)

	// 3. Deleting the reference only clears the link
	require.NoError(t, references.Delete(ctx, screw.ID))

	orphan, err := elements.Get(ctx, spawned.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.ReferenceValue)
	assert.Equal(t, element.KindPlain, orphan.Kind())
	require.Len(t, orphan.FieldValues, 1)
	assert.Equal(t, "M8x30", orphan.FieldValues[0].Raw())

	listed, err := elements.ListByPage(ctx, pageID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

/*
TestPostgres_ImageElementWithMissingMedia_Integration stores a dangling image
media reference as null instead of failing.
*/
func TestPostgres_ImageElementWithMissingMedia_Integration(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()
	elements := element.NewService(element.NewRepository(pool), noReferences{}, mediaLibrary{}, discardLogger())

	sheetID := pgtest.InsertID(t, pool,
		`INSERT INTO production.sheet (name, business_id) VALUES ('Deck', $1) RETURNING id`, "S-"+uuid.NewString())
	pageID := pgtest.InsertID(t, pool,
		`INSERT INTO production.sheet_page (sheet_id, number) VALUES ($1, 1) RETURNING id`, sheetID)

	created, err := elements.Create(ctx, editor, element.CreateInput{
		Page:       pageID,
		BusinessID: "IMG-1",
		Type:       "image",
		Image:      &element.ImageInput{MediaID: pointer.To(int64(987654321)), Width: pointer.To(10)},
	})
	require.NoError(t, err)
	assert.Equal(t, element.KindImage, created.Kind())
	assert.Nil(t, created.Image.MediaID)
	assert.Equal(t, pointer.To(10), created.Image.Width)
}

/*
TestPostgres_PatchKeepsInterleavedEdit_Integration commits a z-order change
between the request and the write of a description patch and expects both.
*/
func TestPostgres_PatchKeepsInterleavedEdit_Integration(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()
	repo := element.NewRepository(pool)

	sheetID := pgtest.InsertID(t, pool,
		`INSERT INTO production.sheet (name, business_id) VALUES ('Deck', $1) RETURNING id`, "S-"+uuid.NewString())
	pageID := pgtest.InsertID(t, pool,
		`INSERT INTO production.sheet_page (sheet_id, number) VALUES ($1, 1) RETURNING id`, sheetID)

	created, err := element.NewService(repo, noReferences{}, mediaLibrary{}, discardLogger()).Create(ctx, editor, element.CreateInput{
		Page:         pageID,
		BusinessID:   "E-" + uuid.NewString()[:8],
		Type:         "label",
		Descriptions: map[string]string{"en": "Hull marker"},
	})
	require.NoError(t, err)

	racing := interleavedUpdate{
		Repository: repo,
		apply:      func(stored *element.Element) { stored.ZOrder = 9 },
	}
	elements := element.NewService(racing, noReferences{}, mediaLibrary{}, discardLogger())

	updated, err := elements.Update(ctx, created.ID, element.UpdateInput{
		Descriptions: &map[string]string{"en": "Front bolt"},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.ZOrder)
	assert.Equal(t, "Front bolt", updated.Descriptions["en"])
}

type noReferences struct{}

func (noReferences) Exists(context.Context, int64) (bool, error) { return false, nil }
