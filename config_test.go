package dreamtalk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 4, config.Generation.Indent)
	assert.True(t, config.Generation.StrokeFallback)
	assert.True(t, config.Generation.Helpers)
	assert.Empty(t, config.StrategyFile)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dreamtalk.yaml")
	content := `generation:
  indent: 2
  stroke_fallback: false
  helpers: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, config.Generation.Indent)
	assert.False(t, config.Generation.StrokeFallback)
	assert.True(t, config.Generation.Helpers)
}

func TestLoadConfigExpandsStrategyFile(t *testing.T) {
	t.Setenv("DREAMTALK_STRATEGIES", "/tmp/strategies.yaml")

	path := filepath.Join(t.TempDir(), "dreamtalk.yaml")
	content := `generation:
  indent: 4
  stroke_fallback: true
  helpers: true
strategy_file: ${DREAMTALK_STRATEGIES}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/strategies.yaml", config.StrategyFile)
}

func TestLoadConfigRejectsBadIndent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dreamtalk.yaml")
	content := `generation:
  indent: 0
  stroke_fallback: true
  helpers: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrConfigValidation)
}
