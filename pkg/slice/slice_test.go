// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joycdecor/joycdecor/pkg/slice"
)

func TestFilter(t *testing.T) {
	kept := slice.Filter([]string{"Wedding", "Birthday", "Wedding"}, func(value string) bool { return value == "Wedding" })
	assert.Equal(t, []string{"Wedding", "Wedding"}, kept)

	none := slice.Filter(nil, func(string) bool { return true })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, slice.Map([]string{"a", "b"}, strings.ToUpper))
	assert.Empty(t, slice.Map(nil, strings.ToUpper))
}
