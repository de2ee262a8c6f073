// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/temple/pkg/pointer"
)

/*
TestPointerHelpers covers To, Val and NonEmpty.
*/
func TestPointerHelpers(t *testing.T) {
	assert.Equal(t, "Vishnu", *pointer.To("Vishnu"))
	assert.Equal(t, "", pointer.Val[string](nil))
	assert.Equal(t, 3, pointer.Val(pointer.To(3)))

	assert.Nil(t, pointer.NonEmpty(""))
	assert.Equal(t, "x", *pointer.NonEmpty("x"))
}
