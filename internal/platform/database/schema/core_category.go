package schema

// CoreCategoryTable represents the 'core.category' table
type CoreCategoryTable struct {
	Table         string
	ID            string
	Name          string
	Description   string
	HiName        string
	HiDescription string
	CreatedAt     string
	UpdatedAt     string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CoreCategoryTable{
	Table:         "core.category",
	ID:            "id",
	Name:          "name",
	Description:   "description",
	HiName:        "hi_name",
	HiDescription: "hi_description",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CoreCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.HiName, t.HiDescription, t.CreatedAt, t.UpdatedAt}
}
