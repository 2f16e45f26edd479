// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sheet manages the documentation tree above canvas elements: sheets
and their numbered pages.

A sheet is one translation of a document, identified by (business_id,
language). Pages are numbered from 1 within a sheet. Deleting a page can
shift the following pages down so the numbering stays gapless.

Sheets are located through the asset and planning hierarchy (boat, gamme,
variante, cabine on one side, ligne and poste on the other) via the
poste_variante_documentation link table, which this package only reads.
*/
package sheet

import (
	"time"
)

// # Domain Types

// Sheet is one language version of a documentation sheet.
type Sheet struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	BusinessID    string    `json:"business_id"`
	Language      string    `json:"language"`
	CreatedBy     *int64    `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PagesCount    int       `json:"pages_count"`

	// Pages is only loaded on detail reads.
	Pages []*Page `json:"pages,omitempty"`
}

// Filter narrows sheet listings.
//
// On the boat side only the most specific key is applied, in the order
// cabine, variante_gamme, gamme_cabine, boat. On the line side poste wins
// over ligne.
type Filter struct {
	Boat          *int64
	GammeCabine   *int64
	VarianteGamme *int64
	Cabine        *int64
	Ligne         *int64
	Poste         *int64
	LigneSens     string
	BusinessID    string
	Query         string
}

// HasHierarchy reports whether any asset or planning key is set.
func (filter Filter) HasHierarchy() bool {
	return filter.Boat != nil || filter.GammeCabine != nil || filter.VarianteGamme != nil ||
		filter.Cabine != nil || filter.Ligne != nil || filter.Poste != nil || filter.LigneSens != ""
}

// # Inputs

// CreateInput is the body of POST /sheets. An empty language defaults to en.
type CreateInput struct {
	Name       string `json:"name"`
	BusinessID string `json:"business_id"`
	Language   string `json:"language"`
}

// UpdateInput is the body of PATCH /sheets/{id}. Nil members are unchanged.
type UpdateInput struct {
	Name       *string `json:"name"`
	BusinessID *string `json:"business_id"`
	Language   *string `json:"language"`
}

// Field identifiers used in validation errors.
const (
	FieldName        = "name"
	FieldBusinessID  = "business_id"
	FieldLanguage    = "language"
	FieldLigneSens   = "ligne_sens"
	FieldSheet       = "sheet"
	FieldNumber      = "number"
	FieldDescription = "description"
)

const (
	defaultLanguage  = "en"
	maxNameLen       = 200
	maxBusinessIDLen = 100
)

// ligneSensValues are the accepted line directions: right, left, none.
var ligneSensValues = []string{"D", "G", "-"}
