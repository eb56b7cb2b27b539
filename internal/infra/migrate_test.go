package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSQL(t *testing.T) {
	sql := `-- plans
CREATE TABLE IF NOT EXISTS a (id TEXT);

-- index
CREATE INDEX IF NOT EXISTS a_idx ON a (id);
`
	got := SplitSQL(sql)
	assert.Equal(t, []string{
		"CREATE TABLE IF NOT EXISTS a (id TEXT)",
		"CREATE INDEX IF NOT EXISTS a_idx ON a (id)",
	}, got)
}

func TestSplitSQLEmpty(t *testing.T) {
	assert.Empty(t, SplitSQL("-- nothing here\n\n"))
}
