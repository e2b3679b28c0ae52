// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joycdecor/joycdecor/pkg/pointer"
)

func TestPointer(t *testing.T) {
	var missing *float64
	assert.Equal(t, 0.0, pointer.Val(missing))
	assert.Equal(t, 5.0, pointer.Fallback(missing, 5.0))
	assert.Equal(t, 3.5, pointer.Fallback(pointer.To(3.5), 5.0))
	assert.Equal(t, 12, pointer.Val(pointer.To(12)))
}
