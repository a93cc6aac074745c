package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"data_dir":                    "/var/lib/greenkeeper",
		"backend":                     "s3",
		"encrypt":                     true,
		"service_not_active_cooldown": "12h",
		"s3": map[string]any{
			"bucket":        "profiles",
			"key":           "devices/42",
			"base_endpoint": "http://127.0.0.1:9000",
			"access_key":    "minioadmin",
			"secret_key":    "minioadmin",
		},
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "/var/lib/greenkeeper", cfg.DataDir)
		assert.Equal(t, BackendS3, cfg.Backend)
		assert.True(t, cfg.Encrypt)
		assert.Equal(t, 12*time.Hour, cfg.ServiceNotActiveCooldown)
		assert.Equal(t, "profiles", cfg.S3Bucket)
		assert.Equal(t, "devices/42", cfg.S3Key)
		assert.Equal(t, "http://127.0.0.1:9000", cfg.S3BaseEndpoint)
		assert.Equal(t, "minioadmin", cfg.S3AccessKey)
		assert.Equal(t, "minioadmin", cfg.S3SecretKey)
	})

	t.Run("absent fields keep previous values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "error"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, BackendSQLite, cfg.Backend)
		assert.Equal(t, "eu-south-1", cfg.S3Region)
		assert.Equal(t, 24*time.Hour, cfg.ServiceNotActiveCooldown)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			DataDir:                  "somewhere",
			ServiceNotActiveCooldown: 42 * time.Second,
		}
		parseJson(cfg)

		assert.Equal(t, "somewhere", cfg.DataDir)
		assert.Equal(t, 42*time.Second, cfg.ServiceNotActiveCooldown)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "absent.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
