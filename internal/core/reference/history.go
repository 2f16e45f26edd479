// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"time"

	"github.com/taibuivan/shipdoc/internal/core/fieldvalue"
)

// # History Ledger

// Action labels the field change recorded in a history entry.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// Changes is the structured diff stored with a history entry.
//
// Creation:    {"action": "created", "fields": [...]}
// Update:      {"type": {"old", "new"}, "icon": {"old", "new"}, "fields": {"action": "updated", "new_fields": [...]}}
type Changes map[string]any

// Change records one scalar attribute before and after an update.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// FieldsUpdate records a full field replacement.
type FieldsUpdate struct {
	Action    Action            `json:"action"`
	NewFields []fieldvalue.Spec `json:"new_fields"`
}

// HistoryEntry is one immutable ledger row. Version equals the reference
// version after the change.
type HistoryEntry struct {
	ID            int64     `json:"id"`
	ReferenceID   int64     `json:"reference_id"`
	Version       int       `json:"version"`
	Changes       Changes   `json:"changes"`
	ChangedBy     *int64    `json:"changed_by"`
	ChangedByName string    `json:"changed_by_name"`
	ChangedAt     time.Time `json:"changed_at"`
}

// createdChanges snapshots the submitted fields as given by the caller.
func createdChanges(specs []fieldvalue.Spec) Changes {
	return Changes{
		"action": ActionCreated,
		"fields": cloneSpecs(specs),
	}
}

// updatedChanges diffs the scalar attributes of current against input and
// adds the field snapshot when fields are replaced.
func updatedChanges(current *Reference, input UpdateInput) Changes {
	changes := Changes{}

	if input.Type != nil && *input.Type != current.Type {
		changes[FieldType] = Change{Old: current.Type, New: *input.Type}
	}

	if input.Icon != nil {
		next := normalizeIcon(input.Icon)
		if !sameIcon(current.Icon, next) {
			changes[FieldIcon] = Change{Old: iconValue(current.Icon), New: iconValue(next)}
		}
	}

	if input.Fields != nil {
		changes["fields"] = FieldsUpdate{Action: ActionUpdated, NewFields: cloneSpecs(*input.Fields)}
	}

	return changes
}

// cloneSpecs deep-copies specs so later normalisation cannot alter the snapshot.
func cloneSpecs(specs []fieldvalue.Spec) []fieldvalue.Spec {
	out := make([]fieldvalue.Spec, len(specs))
	for index, spec := range specs {
		out[index] = fieldvalue.Spec{
			Name:        spec.Name,
			Type:        spec.Type,
			Language:    clonePtr(spec.Language),
			ValueString: clonePtr(spec.ValueString),
			ValueInt:    clonePtr(spec.ValueInt),
			ValueFloat:  clonePtr(spec.ValueFloat),
			ValueImage:  clonePtr(spec.ValueImage),
		}
	}
	return out
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

// normalizeIcon maps an empty icon to nil.
func normalizeIcon(icon *string) *string {
	if icon == nil || *icon == "" {
		return nil
	}
	return icon
}

func sameIcon(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func iconValue(icon *string) any {
	if icon == nil {
		return nil
	}
	return *icon
}
