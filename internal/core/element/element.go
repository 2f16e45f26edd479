// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package element manages the interactive canvas elements placed on sheet pages.

An element may be spawned from a catalog reference. It then keeps a link to
the reference (reference_value) but owns an independent copy of the field
values: editing one side never changes the other, and deleting the reference
only clears the link.

Elements are not versioned. Updates patch scalar attributes and, when a field
list is submitted, replace all fields at once.
*/
package element

import (
	"encoding/json"
	"time"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
	"github.com/taibuivan/shipdoc/internal/core/media"
)

// # Domain Types

// Kind is derived from what an element carries.
type Kind string

const (
	KindPlain     Kind = "plain"
	KindImage     Kind = "image"
	KindReference Kind = "reference"
)

// ImagePayload makes an element an image element.
type ImagePayload struct {
	MediaID *int64       `json:"media_id"`
	Width   *int         `json:"width"`
	Height  *int         `json:"height"`
	Media   *media.Media `json:"media,omitempty"`
}

// Element is a positioned object on a page.
type Element struct {
	ID             int64                      `json:"id"`
	PageID         int64                      `json:"page"`
	BusinessID     string                     `json:"business_id"`
	Type           string                     `json:"type"`
	ZOrder         int                        `json:"z_order"`
	Descriptions   map[string]string          `json:"descriptions"`
	KonvaJSONs     map[string]json.RawMessage `json:"konva_jsons"`
	ReferenceValue *int64                     `json:"reference_value"`
	Image          *ImagePayload              `json:"image"`
	FieldValues    []*fieldvalue.FieldValue   `json:"field_values"`
	CreatedBy      *int64                     `json:"created_by"`
	CreatedByName  string                     `json:"created_by_name"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

// Kind reports image when an image payload is present, reference when the
// element is linked to a reference, plain otherwise.
func (element Element) Kind() Kind {
	switch {
	case element.Image != nil:
		return KindImage
	case element.ReferenceValue != nil:
		return KindReference
	default:
		return KindPlain
	}
}

// MarshalJSON adds the derived kind.
func (element Element) MarshalJSON() ([]byte, error) {
	type plain Element
	return json.Marshal(struct {
		plain
		Kind Kind `json:"kind"`
	}{plain: plain(element), Kind: element.Kind()})
}

// Filter narrows element listings.
type Filter struct {
	PageID     *int64
	BusinessID string
	Type       string
}

// # Inputs

// ImageInput is the image part of a create or update body.
type ImageInput struct {
	MediaID *int64 `json:"media_id"`
	Width   *int   `json:"width"`
	Height  *int   `json:"height"`
}

// CreateInput is the body of POST /elements. A reference_value without
// field_values_data copies the reference's current fields.
type CreateInput struct {
	Page           int64                      `json:"page"`
	BusinessID     string                     `json:"business_id"`
	Type           string                     `json:"type"`
	ZOrder         int                        `json:"z_order"`
	Descriptions   map[string]string          `json:"descriptions"`
	KonvaJSONs     map[string]json.RawMessage `json:"konva_jsons"`
	ReferenceValue *int64                     `json:"reference_value"`
	Image          *ImageInput                `json:"image"`
	FieldValues    *[]fieldvalue.Spec         `json:"field_values_data"`
}

// UpdateInput is the body of PATCH /elements/{id}. Nil members are left
// unchanged. The reference link is fixed at creation.
type UpdateInput struct {
	BusinessID   *string                     `json:"business_id"`
	Type         *string                     `json:"type"`
	ZOrder       *int                        `json:"z_order"`
	Descriptions *map[string]string          `json:"descriptions"`
	KonvaJSONs   *map[string]json.RawMessage `json:"konva_jsons"`
	Image        *ImageInput                 `json:"image"`
	FieldValues  *[]fieldvalue.Spec          `json:"field_values_data"`
}

// Field identifiers used in validation errors.
const (
	FieldPage           = "page"
	FieldBusinessID     = "business_id"
	FieldType           = "type"
	FieldDescriptions   = "descriptions"
	FieldKonvaJSONs     = "konva_jsons"
	FieldReferenceValue = "reference_value"
	FieldImage          = "image"
	FieldFieldValues    = "field_values_data"
)

const (
	maxBusinessIDLen = 100
	maxTypeLen       = 50
)
