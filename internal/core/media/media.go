// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media exposes the read-only media library.

Media records are maintained by an external ingestion pipeline. This package
resolves identifiers submitted in field values and image elements, and turns
storage keys into client-facing URLs through an [objectstore.URLResolver].
*/
package media

import "time"

// # Domain Types

// Type distinguishes still images from videos.
type Type string

const (
	TypeImage Type = "image"
	TypeVideo Type = "video"
)

// Media is a single file of the library.
type Media struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	MediaType    Type      `json:"media_type"`
	StorageKey   string    `json:"-"`
	ThumbnailKey *string   `json:"-"`
	Language     *string   `json:"language,omitempty"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	Duration     *float64  `json:"duration,omitempty"`
	FileSize     *int64    `json:"file_size,omitempty"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Filter narrows the library listing.
type Filter struct {
	MediaType string
	Language  string
	Query     string
}
