package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "scribe.db")

	db, err := Initialize(dbPath, false)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck())
}

func TestHealthCheckAfterClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scribe.db")

	db, err := Initialize(dbPath, false)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Error(t, db.HealthCheck())
}

func TestAutoMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scribe.db")

	db, err := Initialize(dbPath, false)
	require.NoError(t, err)
	defer db.Close()

	type widget struct {
		ID   uint `gorm:"primarykey"`
		Name string
	}

	require.NoError(t, db.AutoMigrate(&widget{}))
	assert.True(t, db.Migrator().HasTable(&widget{}))
}
