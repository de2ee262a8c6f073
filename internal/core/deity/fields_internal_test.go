package deity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/temple/internal/platform/database/schema"
)

/*
TestFieldSpecs_ColumnOrder keeps the field registry aligned with the table layout.
*/
func TestFieldSpecs_ColumnOrder(t *testing.T) {
	columns := make([]string, len(fieldSpecs))
	for i, spec := range fieldSpecs {
		columns[i] = spec.column
	}
	assert.Equal(t, schema.CoreDeity.WritableColumns(), columns)
	assert.Len(t, specsByName, len(fieldSpecs))
}
