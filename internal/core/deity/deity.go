// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deity

import "time"

// Deity is a bilingual content record. Every content field is optional.
//
// Fields prefixed EN hold the English variant and HD the Hindi variant; their
// JSON names ("en_name", "hd_name", ...) are also the CSV column names.
type Deity struct {
	ID string `json:"id"`

	CoverImage  *string `json:"coverImage,omitempty"`
	IconImage   *string `json:"iconImage,omitempty"`
	CoverImage1 *string `json:"coverImage1,omitempty"`
	IconImage1  *string `json:"iconImage1,omitempty"`

	ENName              *string `json:"en_name,omitempty"`
	ENDescription       *string `json:"en_description,omitempty"`
	ENCategoryID        *string `json:"en_categoryId,omitempty"`
	ENSubCategoryID     *string `json:"en_subCategoryId,omitempty"`
	ENIntroduction      *string `json:"en_introduction,omitempty"`
	ENMythologicalStory *string `json:"en_mythologicalStory,omitempty"`
	ENSymbols           *string `json:"en_symbols,omitempty"`
	ENRoleSignificance  *string `json:"en_roleSignificance,omitempty"`
	ENFestivalsRituals  *string `json:"en_festivalsRituals,omitempty"`
	ENTemplesSites      *string `json:"en_templesSites,omitempty"`
	ENSignificance      *string `json:"en_significance,omitempty"`
	ENConclusion        *string `json:"en_conclusion,omitempty"`

	HDName              *string `json:"hd_name,omitempty"`
	HDDescription       *string `json:"hd_description,omitempty"`
	HDCategoryID        *string `json:"hd_categoryId,omitempty"`
	HDSubCategoryID     *string `json:"hd_subCategoryId,omitempty"`
	HDIntroduction      *string `json:"hd_introduction,omitempty"`
	HDMythologicalStory *string `json:"hd_mythologicalStory,omitempty"`
	HDSymbols           *string `json:"hd_symbols,omitempty"`
	HDRoleSignificance  *string `json:"hd_roleSignificance,omitempty"`
	HDFestivalsRituals  *string `json:"hd_festivalsRituals,omitempty"`
	HDTemplesSites      *string `json:"hd_templesSites,omitempty"`
	HDSignificance      *string `json:"hd_significance,omitempty"`
	HDConclusion        *string `json:"hd_conclusion,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filter holds the allow-listed predicates of a deity list request.
type Filter struct {
	Name          string // substring of en_name or hd_name
	Role          string // substring of en_roleSignificance
	CategoryID    string // en or hd category
	SubCategoryID string // en or hd subcategory
}

// API field names. They double as CSV column and multipart field names.
const (
	FieldCoverImage  = "coverImage"
	FieldIconImage   = "iconImage"
	FieldCoverImage1 = "coverImage1"
	FieldIconImage1  = "iconImage1"

	FieldENName          = "en_name"
	FieldENCategoryID    = "en_categoryId"
	FieldENSubCategoryID = "en_subCategoryId"
	FieldHDName          = "hd_name"
	FieldHDCategoryID    = "hd_categoryId"
	FieldHDSubCategoryID = "hd_subCategoryId"
)
