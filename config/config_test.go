package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
backend:
  server: http://grobid.example.org:8072
  prefix: /service
  url_mapping:
    processPDF: /process/pdf?disableLinking=true
viewer:
  missing_link_policy: keep
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://grobid.example.org:8072", cfg.Backend.Server)
	processPath, ok := cfg.Backend.Path(ActionProcessPDF)
	require.True(t, ok)
	assert.Equal(t, "/process/pdf?disableLinking=true", processPath)
	// actions missing from the file come from the defaults
	annotationPath, ok := cfg.Backend.Path(ActionAnnotations)
	require.True(t, ok)
	assert.Equal(t, "/annotation/{hash}", annotationPath)
	assert.Len(t, cfg.Backend.URLMapping, 4)
	assert.Equal(t, MissingLinkKeep, cfg.Viewer.MissingLinkPolicy)
	assert.Equal(t, 1.5, cfg.Viewer.RenderScale)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfigExplicitZero(t *testing.T) {
	t.Run("zero is kept", func(t *testing.T) {
		path := writeConfig(t, "backend:\n  sleep_time: 0\n  busy_retries: 0\n  retry_max: 0\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Backend.SleepTime)
		assert.Equal(t, 0, cfg.Backend.BusyRetries)
		assert.Equal(t, 0, cfg.Backend.RetryMax)
	})

	t.Run("missing keys get the defaults", func(t *testing.T) {
		path := writeConfig(t, "log:\n  level: info\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Backend.SleepTime)
		assert.Equal(t, 3, cfg.Backend.BusyRetries)
		assert.Equal(t, 2, cfg.Backend.RetryMax)
	})
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")
	t.Setenv("SUPERCON_SERVER_PORT", "9191")
	t.Setenv("SUPERCON_BACKEND_SERVER", "http://other:1234")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "http://other:1234", cfg.Backend.Server)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfig(t, "viewer:\n  missing_link_policy: explode\n")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	out, err := Dump(Default())
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, Default().Backend.URLMapping, decoded.Backend.URLMapping)
}

func TestJSONSchema(t *testing.T) {
	schemaJSON, err := JSONSchema()
	assert.NoError(t, err)
	assert.NotNil(t, schemaJSON)

	unmarshalledSchema := &jsonschema.Schema{}
	err = unmarshalledSchema.UnmarshalJSON(schemaJSON)
	assert.NoError(t, err)
	assert.Contains(t, string(schemaJSON), "url_mapping")
}
