// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fieldvalue

import (
	"fmt"
	"strings"

	"github.com/taibuivan/shipdoc/internal/platform/validate"
)

// MaxNameLen bounds field names.
const MaxNameLen = 100

// Spec is one field as submitted by a client. Only the slot matching Type is
// read; the others are ignored.
type Spec struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Language    *string  `json:"language,omitempty"`
	ValueString *string  `json:"value_string,omitempty"`
	ValueInt    *int64   `json:"value_int,omitempty"`
	ValueFloat  *float64 `json:"value_float,omitempty"`
	ValueImage  *int64   `json:"value_image,omitempty"`
}

// Draft is a validated field ready to be written. A media draft carries the
// submitted identifier, which is resolved at write time.
type Draft struct {
	Name     string
	Language *string
	Value    Value
}

type draftKey struct {
	name     string
	language string
}

/*
Parse validates specs and converts them into drafts.

The whole batch is rejected on the first pass with every failing field
reported under "<prefix>[i].<attribute>".

Parameters:
  - prefix: string (request attribute holding the list, e.g. "fields_data")
  - specs: []Spec

Returns:
  - []Draft: One draft per spec, in submission order
  - error: apperr.ValidationError describing every invalid attribute
*/
func Parse(prefix string, specs []Spec) ([]Draft, error) {
	validator := &validate.Validator{}
	drafts := make([]Draft, 0, len(specs))
	seen := make(map[draftKey]bool, len(specs))

	for index, spec := range specs {
		field := func(attribute string) string {
			return fmt.Sprintf("%s[%d].%s", prefix, index, attribute)
		}

		// 1. Name
		name := strings.TrimSpace(spec.Name)
		validator.Required(field("name"), name).MaxLen(field("name"), name, MaxNameLen)

		// 2. Language: empty means not translatable
		var language *string
		if spec.Language != nil && strings.TrimSpace(*spec.Language) != "" {
			raw := strings.TrimSpace(*spec.Language)
			validator.Language(field("language"), raw)
			canonical := validate.CanonicalLanguage(raw)
			language = &canonical
		}

		// 3. Type and payload
		fieldType, ok := ParseType(spec.Type)
		if !ok {
			validator.OneOf(field("type"), spec.Type, AllTypes...)
			continue
		}

		var value Value
		switch fieldType {
		case TypeString:
			validator.Custom(field("value_string"), spec.ValueString == nil, "This field is required")
			if spec.ValueString != nil {
				value = StringValue(*spec.ValueString)
			}
		case TypeInt:
			validator.Custom(field("value_int"), spec.ValueInt == nil, "This field is required")
			if spec.ValueInt != nil {
				value = IntValue(*spec.ValueInt)
			}
		case TypeFloat:
			validator.Custom(field("value_float"), spec.ValueFloat == nil, "This field is required")
			if spec.ValueFloat != nil {
				value = FloatValue(*spec.ValueFloat)
			}
		case TypeMedia:
			value = MediaValue{MediaID: spec.ValueImage}
		}

		// 4. One row per (name, language)
		key := draftKey{name: name}
		if language != nil {
			key.language = *language
		}
		if name != "" {
			validator.Custom(field("name"), seen[key], "Duplicate field for this name and language")
			seen[key] = true
		}

		if value != nil {
			drafts = append(drafts, Draft{Name: name, Language: language, Value: value})
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return drafts, nil
}

// MediaIDs returns the media identifiers referenced by drafts.
func MediaIDs(drafts []Draft) []int64 {
	var ids []int64
	for _, draft := range drafts {
		if value, ok := draft.Value.(MediaValue); ok && value.MediaID != nil {
			ids = append(ids, *value.MediaID)
		}
	}
	return ids
}
