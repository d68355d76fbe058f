package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/etchmory/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"), noEnv)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nformat: mermaid\naddr: \":9000\"\n"), 0o644))

	env := map[string]string{"ETCH_HIDE_VALUES": "true", "ETCH_ADDR": ":7000"}
	cfg, err := config.LoadWithEnv(path, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.FormatMermaid, cfg.Format)
	assert.Equal(t, ":7000", cfg.Addr, "environment wins over the file")
	assert.True(t, cfg.HideValues)
	assert.Equal(t, "gm", cfg.Backend)
}

func TestLoad_Rejects(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown key":    "colour: red\n",
		"bad format":     "format: svg\n",
		"bad backend":    "backend: sql\n",
		"malformed yaml": "format: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := config.LoadWithEnv(path, noEnv)
			assert.Error(t, err)
		})
	}
}
