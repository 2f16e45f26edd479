// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the versioned catalog of reusable part templates.

A reference (a specific screw, a specific jig) owns a list of field values.
Every create and update bumps the version by exactly one and appends one
immutable history entry inside the same transaction. Concurrent updates are
serialized by a compare-and-swap on the version column, retried by [Service]
before a 409 is returned.
*/
package reference

import (
	"time"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
)

// # Domain Types

// Reference is a catalog template.
type Reference struct {
	ID            int64                    `json:"id"`
	Type          string                   `json:"type"`
	Icon          *string                  `json:"icon"`
	Version       int                      `json:"version"`
	CreatedBy     *int64                   `json:"created_by"`
	CreatedByName string                   `json:"created_by_name"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
	Fields        []*fieldvalue.FieldValue `json:"fields"`
}

// Summary is the list representation of a [Reference].
type Summary struct {
	ID            int64               `json:"id"`
	Type          string              `json:"type"`
	Icon          *string             `json:"icon"`
	Version       int                 `json:"version"`
	CreatedByName string              `json:"created_by_name"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	FieldsPreview *fieldvalue.Preview `json:"fields_preview"`
}

// summarize builds the list representation.
func summarize(reference *Reference) *Summary {
	return &Summary{
		ID:            reference.ID,
		Type:          reference.Type,
		Icon:          reference.Icon,
		Version:       reference.Version,
		CreatedByName: reference.CreatedByName,
		CreatedAt:     reference.CreatedAt,
		UpdatedAt:     reference.UpdatedAt,
		FieldsPreview: fieldvalue.PreviewOf(reference.Fields),
	}
}

// Filter narrows catalog listings.
type Filter struct {
	// Type matches exactly.
	Type string

	// Search matches case-insensitively inside the type or any string field.
	Search string
}

// # Inputs

// CreateInput is the body of POST /references.
type CreateInput struct {
	Type   string            `json:"type"`
	Icon   *string           `json:"icon"`
	Fields []fieldvalue.Spec `json:"fields_data"`
}

// UpdateInput is the body of PATCH /references/{id}. Nil members are left
// unchanged. An empty Icon clears it; a present Fields list replaces all fields.
type UpdateInput struct {
	Type   *string            `json:"type"`
	Icon   *string            `json:"icon"`
	Fields *[]fieldvalue.Spec `json:"fields_data"`
}

// Field identifiers used in validation errors.
const (
	FieldType   = "type"
	FieldIcon   = "icon"
	FieldFields = "fields_data"
)

const (
	maxTypeLen = 100
	maxIconLen = 100
)
