package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/absencehub"))
	assert.True(t, IsPostgres("postgresql://localhost/absencehub_dev"))
	assert.True(t, IsPostgres("host=localhost user=postgres dbname=absencehub"))
	assert.False(t, IsPostgres("absencehub.db"))
	assert.False(t, IsPostgres(":memory:"))
}

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := Open(":memory:", false)
	require.NoError(t, err)
	defer Close(db)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
