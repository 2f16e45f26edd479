// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shipdoc/pkg/slice"
)

/*
TestMap projects owner IDs and keeps nil input nil.
*/
func TestMap(t *testing.T) {
	type owner struct{ id int64 }

	ids := slice.Map([]owner{{id: 4}, {id: 9}}, func(o owner) int64 { return o.id })
	assert.Equal(t, []int64{4, 9}, ids)

	assert.Nil(t, slice.Map[owner, int64](nil, func(o owner) int64 { return o.id }))
	assert.Empty(t, slice.Map([]owner{}, func(o owner) int64 { return o.id }))
}
