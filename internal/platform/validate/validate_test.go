// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/temple/internal/platform/apperr"
	"github.com/taibuivan/temple/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Shiva", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_UUID checks canonical UUID acceptance.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"v7", "01928c6e-7d3a-7b2e-9f4c-2a1b3c4d5e6f", true},
		{"upper", "01928C6E-7D3A-7B2E-9F4C-2A1B3C4D5E6F", true},
		{"braced", "{01928c6e-7d3a-7b2e-9f4c-2a1b3c4d5e6f}", false},
		{"mongo_object_id", "64b7f0c2e4b0a1a2b3c4d5e6", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("categoryId", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OptionalUUID skips absent values.
*/
func TestValidator_OptionalUUID(t *testing.T) {
	bad := "nope"

	assert.False(t, (&validate.Validator{}).OptionalUUID("subCategoryId", nil).HasErrors())
	assert.True(t, (&validate.Validator{}).OptionalUUID("subCategoryId", &bad).HasErrors())
}

/*
TestValidator_AbsoluteURL requires both scheme and host.
*/
func TestValidator_AbsoluteURL(t *testing.T) {
	assert.False(t, (&validate.Validator{}).AbsoluteURL("iconImage", "https://cdn.example.com/a.png").HasErrors())
	assert.True(t, (&validate.Validator{}).AbsoluteURL("iconImage", "/a.png").HasErrors())
	assert.True(t, (&validate.Validator{}).AbsoluteURL("iconImage", "http://[::1").HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").
		MaxLen("language", "abcdefghijk", 10).
		OneOf("direction", "sideways", "asc", "desc").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Len(t, ae.Details, 3)
}
