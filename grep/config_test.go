package grep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "auto", cfg.Color)
	require.Equal(t, "error", cfg.LogLevel)
	require.False(t, cfg.Hidden)
	require.Zero(t, cfg.MaxDepth)
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := "color: never\nhidden: true\nmax_depth: 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "linegrep.yaml"), []byte(yaml), 0o644))
	t.Chdir(dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "never", cfg.Color)
	require.True(t, cfg.Hidden)
	require.Equal(t, 3, cfg.MaxDepth)
	require.Equal(t, "error", cfg.LogLevel) // untouched default
}

func TestLoadConfig_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LINEGREP_COLOR", "always")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "always", cfg.Color)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Color = "sometimes"
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxDepth = -1
	require.Error(t, cfg.Validate())
}
