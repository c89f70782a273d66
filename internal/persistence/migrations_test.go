package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderMigrations(t *testing.T) {
	names := []string{
		"002_seed_types.sql",
		"README.md",
		"001_init.sql",
		"notes.txt",
	}

	assert.Equal(t, []string{"001_init.sql", "002_seed_types.sql"}, orderMigrations(names))
}

func TestOrderMigrationsEmpty(t *testing.T) {
	assert.Empty(t, orderMigrations(nil))
	assert.Empty(t, orderMigrations([]string{"schema.bak"}))
}
