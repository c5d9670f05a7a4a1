package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostock/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, dir, cfg.Data.Dir)
	assert.Equal(t, "stock_data.xlsx", cfg.Data.DefaultFile)
	assert.Equal(t, 2, cfg.Data.DefaultColumns)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "Stock Management", cfg.UI.Title)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_COLUMNS", "4")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("DEFAULT_FILE", "inventory.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Data.DefaultColumns)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "inventory.xlsx", cfg.Data.DefaultFile)
}

func TestLoadIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("DEFAULT_COLUMNS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Data.DefaultColumns)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("zero columns", func(t *testing.T) {
		t.Setenv("DATA_DIR", t.TempDir())
		t.Setenv("DEFAULT_COLUMNS", "0")
		_, err := Load()
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	})

	t.Run("missing data dir", func(t *testing.T) {
		t.Setenv("DATA_DIR", filepath.Join(t.TempDir(), "nope"))
		_, err := Load()
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	})
}
