// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "time"

// Category is a top-level taxonomy node referenced by Deities and Subcategories.
type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	HiName        *string   `json:"hi_name,omitempty"`
	HiDescription *string   `json:"hi_description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Filter holds the allow-listed predicates of a category list request.
type Filter struct {
	Name string // case-insensitive substring of name
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	HiName        *string `json:"hi_name"`
	HiDescription *string `json:"hi_description"`
}

// Empty reports whether the patch sets no field.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.HiName == nil && p.HiDescription == nil
}

// Apply overwrites the fields set in p onto c.
func (p Patch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = p.Description
	}
	if p.HiName != nil {
		c.HiName = p.HiName
	}
	if p.HiDescription != nil {
		c.HiDescription = p.HiDescription
	}
}

// Global field names for validation
const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldHiName        = "hi_name"
	FieldHiDescription = "hi_description"
)
