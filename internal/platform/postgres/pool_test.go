// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shipdoc/internal/platform/postgres"
)

/*
TestEscapeLike_Metacharacters verifies wildcards in user input match literally.
*/
func TestEscapeLike_Metacharacters(t *testing.T) {
	assert.Equal(t, "M6x20", postgres.EscapeLike("M6x20"))
	assert.Equal(t, `100\%`, postgres.EscapeLike("100%"))
	assert.Equal(t, `a\_b`, postgres.EscapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, postgres.EscapeLike(`c:\dir`))
}
