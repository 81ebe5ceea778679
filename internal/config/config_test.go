package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "ros2", cfg.Ros2Path)
	assert.Equal(t, "1s", cfg.Timeouts.AttemptWait)
	assert.Equal(t, "30s", cfg.Timeouts.MaxWait)
	assert.Equal(t, "2s", cfg.Timeouts.Call)
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		tmpDir := t.TempDir()
		origDir, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmpDir))
		t.Cleanup(func() {
			require.NoError(t, os.Chdir(origDir))
		})

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "text", cfg.Format)
		assert.Equal(t, "ros2", cfg.Ros2Path)
	})

	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()

		configContent := `
format: ndjson
quiet: true
ros2_path: /opt/ros/rolling/bin/ros2
timeouts:
  attempt_wait: 500ms
  max_wait: 10s
  call: 3s
`
		configPath := filepath.Join(tmpDir, "rlc.yaml")
		err := os.WriteFile(configPath, []byte(configContent), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "ndjson", cfg.Format)
		assert.True(t, cfg.Quiet)
		assert.Equal(t, "/opt/ros/rolling/bin/ros2", cfg.Ros2Path)
		assert.Equal(t, 500*time.Millisecond, cfg.AttemptWait())
		assert.Equal(t, 10*time.Second, cfg.MaxWait())
		assert.Equal(t, 3*time.Second, cfg.CallTimeout())
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "bad.yaml")
		err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestTimeoutFallbacks(t *testing.T) {
	cfg := Default()
	cfg.Timeouts.Call = "not-a-duration"
	cfg.Timeouts.MaxWait = "-5s"
	cfg.Timeouts.AttemptWait = ""

	assert.Equal(t, 2*time.Second, cfg.CallTimeout())
	assert.Equal(t, 30*time.Second, cfg.MaxWait())
	assert.Equal(t, time.Second, cfg.AttemptWait())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RLC_FORMAT", "ndjson")
	t.Setenv("RLC_ROS2_PATH", "/usr/local/bin/ros2")
	t.Setenv("RLC_QUIET", "1")
	t.Setenv("RLC_CALL_TIMEOUT", "5s")

	cfg := Default()
	applyEnvOverrides(cfg)

	assert.Equal(t, "ndjson", cfg.Format)
	assert.Equal(t, "/usr/local/bin/ros2", cfg.Ros2Path)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout())
}
