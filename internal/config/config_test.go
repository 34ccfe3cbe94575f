package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
application:
  name: merchant-dashboard
  version: 1.0.0
server:
  port: "9090"
database:
  - name: replica
    host: replica.local
    port: "5432"
  - name: primary
    host: ${GRID_DB_HOST}
    port: "5432"
    user: grid
    password: ${GRID_DB_PASSWORD}
    database: payments
    schema: billing
    default: true
catalog:
  path: testdata/payments_catalog.json
records:
  file: testdata/payments.json
sessions:
  max: 10
  idle_timeout: 15m
`

func TestParse(t *testing.T) {
	t.Setenv("GRID_DB_HOST", "db.internal")
	t.Setenv("GRID_DB_PASSWORD", "s3cret")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "merchant-dashboard", cfg.Application.Name)
	assert.Equal(t, "en", cfg.Application.Language)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "testdata/payments_catalog.json", cfg.Catalog.Path)
	assert.Equal(t, "testdata/payments.json", cfg.Records.File)
	assert.Equal(t, 10, cfg.Sessions.Max)
	assert.Equal(t, 15*time.Minute, cfg.Sessions.IdleTimeout)
	assert.Equal(t, 8*time.Hour, cfg.Sessions.AbsTimeout)

	db, ok := cfg.DefaultDatabase()
	require.True(t, ok)
	assert.Equal(t, "primary", db.Name)
	assert.Equal(t, "db.internal", db.Host)
	assert.Equal(t,
		"host=db.internal port=5432 user=grid password=s3cret dbname=payments sslmode=disable search_path=billing,public",
		db.ConnString())
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("application:\n  name: bare\n"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Sessions.Max)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTimeout)

	_, ok := cfg.DefaultDatabase()
	assert.False(t, ok)
}

func TestDefaultDatabaseFallsBackToFirst(t *testing.T) {
	cfg := &Config{Database: []Database{{Name: "a"}, {Name: "b"}}}
	db, ok := cfg.DefaultDatabase()
	require.True(t, ok)
	assert.Equal(t, "a", db.Name)
	assert.Contains(t, db.ConnString(), "search_path=public,public")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"7000\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config: read")

	_, err = Parse([]byte("server: ["))
	assert.ErrorContains(t, err, "config: parse")
}
