package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_String(t *testing.T) {
	tbl := NewTable("FROM", "TO", "OWNER").
		Row("org.bstats", "org.example.shadow.bstats", "core").
		Row("org.yaml", "org.example.shadow.yaml", "api")

	out := tbl.String()

	assert.Equal(t, 2, tbl.Len())
	assert.Contains(t, out, "FROM")
	assert.Contains(t, out, "org.example.shadow.bstats")
	assert.Contains(t, out, "api")
}

func TestTable_Empty(t *testing.T) {
	tbl := NewTable("MODULE")
	assert.Equal(t, 0, tbl.Len())
	assert.Contains(t, tbl.String(), "MODULE")
}
