package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	API struct {
		Port int `yaml:"port" validate:"required,min=1,max=65535"`
	} `yaml:"api"`
	Delay  time.Duration `yaml:"delay"`
	Driver string        `yaml:"driver" validate:"oneof=mysql memory"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	var cfg testConfig
	err := Load(writeFile(t, "api:\n  port: 8081\ndelay: 1500ms\ndriver: memory\n"), &cfg)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.API.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.Delay)
}

func TestLoadInvalid(t *testing.T) {
	var cfg testConfig
	err := Load(writeFile(t, "api:\n  port: 0\ndriver: postgres\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "testConfig.API.Port")
	assert.Contains(t, err.Error(), "testConfig.Driver")

	err = Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSecretAndPath(t *testing.T) {
	t.Setenv("TEST_SECRET", " s3cret ")
	assert.Equal(t, "s3cret", Secret("TEST_SECRET", "fallback"))
	assert.Equal(t, "fallback", Secret("TEST_SECRET_UNSET", "fallback"))

	t.Setenv(EnvPath, "/etc/cinecircle.yaml")
	assert.Equal(t, "/etc/cinecircle.yaml", Path("defaults.yaml"))
}
