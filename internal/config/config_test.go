package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
env: "dev"
db:
  db_user: "svc"
  db_name: "templates"
funding:
  decimal_places: 4
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "localhost:4001", cfg.Address)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, "svc", cfg.DB.User)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, uint8(4), cfg.DecimalPlaces)
	assert.Equal(t, 4, cfg.ValidationWorkers)
}

func TestLoad_MissingRequired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`env: "local"`), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
