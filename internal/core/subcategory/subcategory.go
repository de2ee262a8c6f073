package subcategory

import "time"

// Subcategory belongs to exactly one Category.
type Subcategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Language    *string   `json:"language,omitempty"`
	CategoryID  string    `json:"categoryId"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter holds the allow-listed predicates of a subcategory list request.
type Filter struct {
	Name       string // case-insensitive substring
	Language   string // exact
	CategoryID string // exact
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Name        *string `json:"name"`
	Language    *string `json:"language"`
	CategoryID  *string `json:"categoryId"`
	Description *string `json:"description"`
}

// Empty reports whether the patch sets no field.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Language == nil && p.CategoryID == nil && p.Description == nil
}

// Apply overwrites the fields set in p onto s.
func (p Patch) Apply(s *Subcategory) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Language != nil {
		s.Language = p.Language
	}
	if p.CategoryID != nil {
		s.CategoryID = *p.CategoryID
	}
	if p.Description != nil {
		s.Description = p.Description
	}
}

const (
	FieldName       = "name"
	FieldLanguage   = "language"
	FieldCategoryID = "categoryId"
)
