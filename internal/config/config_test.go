package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, LoaderCSV, cfg.Data.Loader)
	assert.Equal(t, 80.0, cfg.Economics.MonthlyFee)
	assert.Equal(t, 0.1, cfg.Economics.SalesCut)
	assert.Equal(t, 100.0, cfg.Economics.ReviewCosts[1])
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Minute, cfg.Server.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadFile_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "olist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  dir: /srv/olist
  workers: 2
economics:
  monthly_fee: 100
  review_costs:
    1: 120
    2: 60
server:
  port: 9000
`), 0o600))

	t.Setenv("OLIST_SERVER_PORT", "9100")
	t.Setenv("OLIST_ECONOMICS_SALES_CUT", "0.2")
	t.Setenv("OLIST_REDIS_ADDR", "localhost:6379")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/olist", cfg.Data.Dir)
	assert.Equal(t, 2, cfg.Data.Workers)
	assert.Equal(t, 100.0, cfg.Economics.MonthlyFee)
	assert.Equal(t, 0.2, cfg.Economics.SalesCut)
	assert.Equal(t, 120.0, cfg.Economics.ReviewCosts[1])
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "olist:exports:", cfg.Redis.Prefix)
}

func TestLoadFile_RejectsInvalidValues(t *testing.T) {
	t.Run("loader", func(t *testing.T) {
		t.Setenv("OLIST_DATA_LOADER", "s3")
		_, err := LoadFile("")
		assert.ErrorContains(t, err, "unknown loader")
	})
	t.Run("sales cut", func(t *testing.T) {
		t.Setenv("OLIST_ECONOMICS_SALES_CUT", "1.5")
		_, err := LoadFile("")
		assert.ErrorContains(t, err, "sales cut")
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := Default().Database
	assert.Equal(t, "host=localhost port=5432 user=olist password=olist dbname=olist sslmode=disable", db.DSN())
}
