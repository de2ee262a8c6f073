package schema

// DeityContentColumns are the per-language content columns of core.deity.
type DeityContentColumns struct {
	Name              string
	Description       string
	CategoryID        string
	SubCategoryID     string
	Introduction      string
	MythologicalStory string
	Symbols           string
	RoleSignificance  string
	FestivalsRituals  string
	TemplesSites      string
	Significance      string
	Conclusion        string
}

// List returns the columns in declaration order.
func (c DeityContentColumns) List() []string {
	return []string{
		c.Name, c.Description, c.CategoryID, c.SubCategoryID, c.Introduction, c.MythologicalStory,
		c.Symbols, c.RoleSignificance, c.FestivalsRituals, c.TemplesSites, c.Significance, c.Conclusion,
	}
}

func deityContent(prefix string) DeityContentColumns {
	return DeityContentColumns{
		Name:              prefix + "name",
		Description:       prefix + "description",
		CategoryID:        prefix + "categoryid",
		SubCategoryID:     prefix + "subcategoryid",
		Introduction:      prefix + "introduction",
		MythologicalStory: prefix + "mythologicalstory",
		Symbols:           prefix + "symbols",
		RoleSignificance:  prefix + "rolesignificance",
		FestivalsRituals:  prefix + "festivalsrituals",
		TemplesSites:      prefix + "templessites",
		Significance:      prefix + "significance",
		Conclusion:        prefix + "conclusion",
	}
}

// CoreDeityTable represents the 'core.deity' table
type CoreDeityTable struct {
	Table       string
	ID          string
	CoverImage  string
	IconImage   string
	CoverImage1 string
	IconImage1  string
	EN          DeityContentColumns
	HD          DeityContentColumns
	CreatedAt   string
	UpdatedAt   string
}

// CoreDeity is the schema definition for core.deity
var CoreDeity = CoreDeityTable{
	Table:       "core.deity",
	ID:          "id",
	CoverImage:  "coverimage",
	IconImage:   "iconimage",
	CoverImage1: "coverimage1",
	IconImage1:  "iconimage1",
	EN:          deityContent("en_"),
	HD:          deityContent("hd_"),
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns every column in scan order.
func (t CoreDeityTable) Columns() []string {
	columns := []string{t.ID, t.CoverImage, t.IconImage, t.CoverImage1, t.IconImage1}
	columns = append(columns, t.EN.List()...)
	columns = append(columns, t.HD.List()...)
	return append(columns, t.CreatedAt, t.UpdatedAt)
}

// WritableColumns returns the columns set by INSERT and UPDATE, in scan order.
func (t CoreDeityTable) WritableColumns() []string {
	columns := t.Columns()
	return columns[1 : len(columns)-2]
}
