// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer builds pointers to literals for optional (PATCH style) inputs.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}
