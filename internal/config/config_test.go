package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: plants.yaml
report:
  enabled: true
  output_dir: out
server:
  rest_port: 9000
logging:
  level: debug
eventbus:
  url: nats://127.0.0.1:4222
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "plants.yaml", cfg.Catalog.Path)
	assert.True(t, cfg.Report.Enabled)
	assert.Equal(t, "out", cfg.Report.OutputDir)
	assert.Equal(t, 9000, cfg.Server.GetRESTPort())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.EventBus.URL)
	assert.Equal(t, "NETHEO_EVENTS", cfg.EventBus.Stream)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Catalog.Path)
	assert.Equal(t, "docs/plants", cfg.Report.OutputDir)
	assert.Equal(t, 8088, cfg.Server.GetRESTPort())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "netheopoiesis", cfg.Telemetry.ServiceName)
	assert.Equal(t, 24, cfg.EventBus.Retention)
	assert.Equal(t, 256, cfg.EventBus.BufferSize)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  rest_port: 9000\n")
	t.Setenv("NETHEO_REST_PORT", "9100")
	t.Setenv("NETHEO_REPORT_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.RESTPort)
	assert.True(t, cfg.Report.Enabled)
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := writeConfig(t, "catalog:\n  path: from-env.yaml\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env.yaml", cfg.Catalog.Path)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config: read")

	_, err = Load(writeConfig(t, "server: [\n"))
	assert.ErrorContains(t, err, "config: parse")

	t.Setenv("NETHEO_REST_PORT", "not-a-port")
	_, err = Load(writeConfig(t, ""))
	assert.ErrorContains(t, err, "config: parse env")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.Server.RESTPort = 70000

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "rest_port")
}
