package deity

import (
	"github.com/taibuivan/temple/internal/platform/database/schema"
	"github.com/taibuivan/temple/internal/platform/validate"
	"github.com/taibuivan/temple/pkg/pointer"
)

const maxNameLen = 255

// fieldSpec binds one writable attribute to its API name and column.
type fieldSpec struct {
	name   string
	column string
	ref    func(d *Deity) **string
}

// fieldSpecs lists every writable attribute in column order.
var fieldSpecs = []fieldSpec{
	{FieldCoverImage, schema.CoreDeity.CoverImage, func(d *Deity) **string { return &d.CoverImage }},
	{FieldIconImage, schema.CoreDeity.IconImage, func(d *Deity) **string { return &d.IconImage }},
	{FieldCoverImage1, schema.CoreDeity.CoverImage1, func(d *Deity) **string { return &d.CoverImage1 }},
	{FieldIconImage1, schema.CoreDeity.IconImage1, func(d *Deity) **string { return &d.IconImage1 }},

	{FieldENName, schema.CoreDeity.EN.Name, func(d *Deity) **string { return &d.ENName }},
	{"en_description", schema.CoreDeity.EN.Description, func(d *Deity) **string { return &d.ENDescription }},
	{FieldENCategoryID, schema.CoreDeity.EN.CategoryID, func(d *Deity) **string { return &d.ENCategoryID }},
	{FieldENSubCategoryID, schema.CoreDeity.EN.SubCategoryID, func(d *Deity) **string { return &d.ENSubCategoryID }},
	{"en_introduction", schema.CoreDeity.EN.Introduction, func(d *Deity) **string { return &d.ENIntroduction }},
	{"en_mythologicalStory", schema.CoreDeity.EN.MythologicalStory, func(d *Deity) **string { return &d.ENMythologicalStory }},
	{"en_symbols", schema.CoreDeity.EN.Symbols, func(d *Deity) **string { return &d.ENSymbols }},
	{"en_roleSignificance", schema.CoreDeity.EN.RoleSignificance, func(d *Deity) **string { return &d.ENRoleSignificance }},
	{"en_festivalsRituals", schema.CoreDeity.EN.FestivalsRituals, func(d *Deity) **string { return &d.ENFestivalsRituals }},
	{"en_templesSites", schema.CoreDeity.EN.TemplesSites, func(d *Deity) **string { return &d.ENTemplesSites }},
	{"en_significance", schema.CoreDeity.EN.Significance, func(d *Deity) **string { return &d.ENSignificance }},
	{"en_conclusion", schema.CoreDeity.EN.Conclusion, func(d *Deity) **string { return &d.ENConclusion }},

	{FieldHDName, schema.CoreDeity.HD.Name, func(d *Deity) **string { return &d.HDName }},
	{"hd_description", schema.CoreDeity.HD.Description, func(d *Deity) **string { return &d.HDDescription }},
	{FieldHDCategoryID, schema.CoreDeity.HD.CategoryID, func(d *Deity) **string { return &d.HDCategoryID }},
	{FieldHDSubCategoryID, schema.CoreDeity.HD.SubCategoryID, func(d *Deity) **string { return &d.HDSubCategoryID }},
	{"hd_introduction", schema.CoreDeity.HD.Introduction, func(d *Deity) **string { return &d.HDIntroduction }},
	{"hd_mythologicalStory", schema.CoreDeity.HD.MythologicalStory, func(d *Deity) **string { return &d.HDMythologicalStory }},
	{"hd_symbols", schema.CoreDeity.HD.Symbols, func(d *Deity) **string { return &d.HDSymbols }},
	{"hd_roleSignificance", schema.CoreDeity.HD.RoleSignificance, func(d *Deity) **string { return &d.HDRoleSignificance }},
	{"hd_festivalsRituals", schema.CoreDeity.HD.FestivalsRituals, func(d *Deity) **string { return &d.HDFestivalsRituals }},
	{"hd_templesSites", schema.CoreDeity.HD.TemplesSites, func(d *Deity) **string { return &d.HDTemplesSites }},
	{"hd_significance", schema.CoreDeity.HD.Significance, func(d *Deity) **string { return &d.HDSignificance }},
	{"hd_conclusion", schema.CoreDeity.HD.Conclusion, func(d *Deity) **string { return &d.HDConclusion }},
}

var specsByName = func() map[string]fieldSpec {
	byName := make(map[string]fieldSpec, len(fieldSpecs))
	for _, spec := range fieldSpecs {
		byName[spec.name] = spec
	}
	return byName
}()

// referenceFields hold category or subcategory ids.
var referenceFields = []string{FieldENCategoryID, FieldENSubCategoryID, FieldHDCategoryID, FieldHDSubCategoryID}

// Patch is a set of field overwrites keyed by API field name.
//
// An empty value clears the field. Names outside the writable set are
// dropped by [NewPatch].
type Patch map[string]string

// NewPatch keeps the known fields of values, taking the first value of each.
func NewPatch(values map[string][]string) Patch {
	patch := Patch{}
	for name, list := range values {
		if _, ok := specsByName[name]; ok && len(list) > 0 {
			patch[name] = list[0]
		}
	}
	return patch
}

// PatchFromRow converts one CSV row. Unknown columns are ignored and empty cells stay null.
func PatchFromRow(row map[string]string) Patch {
	patch := Patch{}
	for name, value := range row {
		if _, ok := specsByName[name]; ok && value != "" {
			patch[name] = value
		}
	}
	return patch
}

// values lists the set fields among names in form-value shape.
func (p Patch) values(names []string) map[string][]string {
	values := make(map[string][]string, len(names))
	for _, name := range names {
		if value, ok := p[name]; ok {
			values[name] = []string{value}
		}
	}
	return values
}

// Apply overwrites the fields set in p onto d.
func (p Patch) Apply(d *Deity) {
	for name, value := range p {
		if spec, ok := specsByName[name]; ok {
			*spec.ref(d) = pointer.NonEmpty(value)
		}
	}
}

// Validate checks name lengths and reference id formats.
func (p Patch) Validate() error {
	validator := &validate.Validator{}
	for _, name := range []string{FieldENName, FieldHDName} {
		if value, ok := p[name]; ok {
			validator.MaxLen(name, value, maxNameLen)
		}
	}
	for _, name := range referenceFields {
		if value, ok := p[name]; ok && value != "" {
			validator.UUID(name, value)
		}
	}
	return validator.Err()
}

// media returns the stored media paths of d keyed by field name.
func media(d *Deity) map[string]string {
	paths := make(map[string]string, len(MediaFields))
	for _, name := range MediaFields {
		if value := *specsByName[name].ref(d); value != nil {
			paths[name] = *value
		}
	}
	return paths
}
