// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fieldvalue stores named, typed and optionally language-tagged values
owned by exactly one reference or one canvas element.

# Payload

A field carries one of four payloads, modelled as the closed [Value] sum type:
[StringValue], [IntValue], [FloatValue] and [MediaValue]. The database row keeps
the matching four nullable columns and a CHECK constraint guarantees that only
the slot selected by the row's type is populated.

# Replace semantics

Owners never patch individual fields. Every write submits the complete list,
which replaces all previous rows of that owner inside the caller's transaction.
Field row IDs are therefore not stable across updates.
*/
package fieldvalue

import (
	"encoding/json"

	"github.com/taibuivan/shipdoc/internal/core/media"
)

// # Types

// Type selects the payload slot of a field.
type Type string

const (
	TypeString Type = "string"
	TypeInt    Type = "int"
	TypeFloat  Type = "float"
	TypeMedia  Type = "media"

	// typeImageAlias is the legacy name some clients still send for media.
	typeImageAlias = "image"
)

// AllTypes lists the accepted type names in display order.
var AllTypes = []string{string(TypeString), string(TypeInt), string(TypeFloat), string(TypeMedia)}

// ParseType maps a submitted type name to a [Type]. "image" is accepted as
// an alias of media.
func ParseType(raw string) (Type, bool) {
	switch raw {
	case string(TypeString):
		return TypeString, true
	case string(TypeInt):
		return TypeInt, true
	case string(TypeFloat):
		return TypeFloat, true
	case string(TypeMedia), typeImageAlias:
		return TypeMedia, true
	}
	return "", false
}

// # Payload

// Value is the payload of a field. The set of implementations is closed.
type Value interface {
	Type() Type
	raw() any
}

// StringValue is a free text payload.
type StringValue string

// IntValue is an integer payload.
type IntValue int64

// FloatValue is a floating point payload.
type FloatValue float64

// MediaValue points at a media library record. MediaID is nil when the
// submitted identifier did not resolve.
type MediaValue struct {
	MediaID *int64
}

func (StringValue) Type() Type { return TypeString }
func (IntValue) Type() Type    { return TypeInt }
func (FloatValue) Type() Type  { return TypeFloat }
func (MediaValue) Type() Type  { return TypeMedia }

func (value StringValue) raw() any { return string(value) }
func (value IntValue) raw() any    { return int64(value) }
func (value FloatValue) raw() any  { return float64(value) }

func (value MediaValue) raw() any {
	if value.MediaID == nil {
		return nil
	}
	return *value.MediaID
}

// # Ownership

// OwnerKind tells which table owns a field row.
type OwnerKind int

const (
	OwnerReference OwnerKind = iota + 1
	OwnerElement
)

// Owner identifies the reference or element a field belongs to.
type Owner struct {
	Kind OwnerKind
	ID   int64
}

// ReferenceOwner returns the owner for reference id.
func ReferenceOwner(id int64) Owner { return Owner{Kind: OwnerReference, ID: id} }

// ElementOwner returns the owner for element id.
func ElementOwner(id int64) Owner { return Owner{Kind: OwnerElement, ID: id} }

// # Entity

// FieldValue is a stored field.
type FieldValue struct {
	ID       int64
	Name     string
	Language *string
	Value    Value

	// Media is set by [Hydrate] for resolved media values.
	Media *media.Media
}

// Type returns the payload type.
func (field FieldValue) Type() Type {
	return field.Value.Type()
}

// Raw returns the payload as a plain Go value (string, int64, float64, media ID or nil).
func (field FieldValue) Raw() any {
	return field.Value.raw()
}

// MediaID returns the referenced media identifier, if any.
func (field FieldValue) MediaID() *int64 {
	if value, ok := field.Value.(MediaValue); ok {
		return value.MediaID
	}
	return nil
}

type fieldJSON struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Type        Type         `json:"type"`
	Language    *string      `json:"language"`
	Value       any          `json:"value"`
	ValueString *string      `json:"value_string"`
	ValueInt    *int64       `json:"value_int"`
	ValueFloat  *float64     `json:"value_float"`
	ValueImage  *int64       `json:"value_image"`
	Image       *media.Media `json:"image"`
}

// MarshalJSON renders the field with every slot present and only the slot
// matching its type populated.
func (field FieldValue) MarshalJSON() ([]byte, error) {
	out := fieldJSON{
		ID:       field.ID,
		Name:     field.Name,
		Type:     field.Value.Type(),
		Language: field.Language,
		Value:    field.Value.raw(),
	}

	switch value := field.Value.(type) {
	case StringValue:
		text := string(value)
		out.ValueString = &text
	case IntValue:
		number := int64(value)
		out.ValueInt = &number
	case FloatValue:
		number := float64(value)
		out.ValueFloat = &number
	case MediaValue:
		out.ValueImage = value.MediaID
		out.Image = field.Media
	}

	return json.Marshal(out)
}

// # Preview

// previewName is the conventional field shown in reference listings.
const previewName = "reference"

// previewLanguage is preferred when several languages exist.
const previewLanguage = "en"

// Preview is the compact field summary shown in reference lists.
type Preview struct {
	Name     string  `json:"name"`
	Value    any     `json:"value"`
	Language *string `json:"language"`
}

// PreviewOf picks the "reference" field in English, else any "reference"
// field. It returns nil when there is none.
func PreviewOf(fields []*FieldValue) *Preview {
	var fallback *FieldValue
	for _, field := range fields {
		if field.Name != previewName {
			continue
		}
		if field.Language != nil && *field.Language == previewLanguage {
			return &Preview{Name: field.Name, Value: field.Raw(), Language: field.Language}
		}
		if fallback == nil {
			fallback = field
		}
	}

	if fallback == nil {
		return nil
	}
	return &Preview{Name: fallback.Name, Value: fallback.Raw(), Language: fallback.Language}
}
