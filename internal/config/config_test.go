package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no config file present

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Input.Format)
	assert.Equal(t, "file", cfg.Sink.Kind)
	assert.Equal(t, "processed/aggregated_sales.json", cfg.Sink.Key)
	assert.Equal(t, "aggregated_sales.json", cfg.Sink.LocalCopy)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
input:
  path: /data/sales.csv
  format: xlsx
  sheet: Orders
sink:
  kind: http
  url: https://hooks.example.com/report
store:
  driver: postgres
  database_url: postgres://localhost/sales
server:
  port: 9090
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/sales.csv", cfg.Input.Path)
	assert.Equal(t, "xlsx", cfg.Input.Format)
	assert.Equal(t, "Orders", cfg.Input.Sheet)
	assert.Equal(t, "http", cfg.Sink.Kind)
	assert.Equal(t, "https://hooks.example.com/report", cfg.Sink.URL)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SALES_LOG_LEVEL", "debug")
	t.Setenv("SALES_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
}

func TestInitLogger_BadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "loud", Format: "json"}))
}
