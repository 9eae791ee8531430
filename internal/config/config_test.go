package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 0\n"))
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "generated_reports.xlsx", cfg.Log.Path)
	require.Equal(t, "openai", cfg.Generator.Backend)
	require.Equal(t, 128, cfg.Generator.MaxNewTokens)
	require.InDelta(t, 0.7, cfg.Generator.Temperature, 0.001)
}

func TestLoadFull(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9090
log:
  path: /var/lib/maintreport/reports.xlsx
generator:
  backend: hf
  endpoint: https://api-inference.example.com/models/flan-t5
  maxNewTokens: 80
  temperature: 0.4
  returnFullText: false
archive:
  enabled: true
  endpoint: minio:9000
  bucketName: report-snapshots
`))
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/var/lib/maintreport/reports.xlsx", cfg.Log.Path)
	require.Equal(t, "hf", cfg.Generator.Backend)
	require.Equal(t, 80, cfg.Generator.MaxNewTokens)
	require.True(t, cfg.Archive.Enabled)
	require.Equal(t, "report-snapshots", cfg.Archive.BucketName)
}

func TestGeneratorToken(t *testing.T) {
	cfg, err := Load(writeConfig(t, "generator:\n  backend: hf\n"))
	require.NoError(t, err)

	t.Setenv("HF_API_TOKEN", "")
	_, err = cfg.GeneratorToken()
	require.Error(t, err)

	t.Setenv("HF_API_TOKEN", "hf_abc")
	token, err := cfg.GeneratorToken()
	require.NoError(t, err)
	require.Equal(t, "hf_abc", token)

	cfg.Generator.Backend = "bogus"
	_, err = cfg.GeneratorToken()
	require.Error(t, err)
}
