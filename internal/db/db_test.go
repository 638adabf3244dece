package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatop/chatop-api/internal/config"
	"github.com/chatop/chatop-api/internal/db/models"
)

func TestDialector(t *testing.T) {
	testCases := []struct {
		engine   string
		expected string
	}{
		{engine: "", expected: "mysql"},
		{engine: "mysql", expected: "mysql"},
		{engine: "Postgres", expected: "postgres"},
		{engine: "sqlite", expected: "sqlite"},
	}

	for _, tc := range testCases {
		t.Run(tc.engine, func(t *testing.T) {
			d, err := Dialector(&config.Config{DB: config.DB{GormEngine: tc.engine, Name: "x.db"}})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d.Name())
		})
	}

	_, err := Dialector(&config.Config{DB: config.DB{GormEngine: "oracle"}})
	assert.ErrorIs(t, err, config.ErrUnknownGormEngine)
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	_, err := Open(nil)
	assert.ErrorIs(t, err, ErrConfigNil)

	cfg := &config.Config{DB: config.DB{
		GormEngine: "sqlite",
		Name:       filepath.Join(t.TempDir(), "chatop.db"),
		LogLevel:   "silent",
	}}

	db, err := Open(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))

	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model))
	}
}
