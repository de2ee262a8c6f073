package schema

// CoreSubcategoryTable represents the 'core.subcategory' table
type CoreSubcategoryTable struct {
	Table       string
	ID          string
	Name        string
	Language    string
	CategoryID  string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// CoreSubcategory is the schema definition for core.subcategory
var CoreSubcategory = CoreSubcategoryTable{
	Table:       "core.subcategory",
	ID:          "id",
	Name:        "name",
	Language:    "language",
	CategoryID:  "categoryid",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreSubcategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Language, t.CategoryID, t.Description, t.CreatedAt, t.UpdatedAt}
}
