package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribedev/scribe/cmd/scribe/cli/paths"
)

// chdirTemp moves the test into a fresh directory outside any repository so
// settings paths resolve against it.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	paths.ClearRepoRootCache()
	t.Cleanup(paths.ClearRepoRootCache)
	return dir
}

func writeSettings(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, paths.ScribeDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, paths.ScribeDir, name), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.False(t, cfg.Emoji)
	assert.Zero(t, cfg.Budget)
	assert.Nil(t, cfg.Telemetry)
}

func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)
	writeSettings(t, dir, "settings.json", `{"model":"gemini-2.5-pro","emoji":true,"budget":600}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.True(t, cfg.Emoji)
	assert.Equal(t, 600, cfg.Budget)
}

func TestLoadLocalOverrides(t *testing.T) {
	dir := chdirTemp(t)
	writeSettings(t, dir, "settings.json", `{"model":"gemini-2.5-pro","emoji":true}`)
	writeSettings(t, dir, "settings.local.json", `{"model":"gemini-2.0-flash","telemetry":false}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model, "local file wins")
	assert.True(t, cfg.Emoji, "fields absent from local file are kept")
	require.NotNil(t, cfg.Telemetry)
	assert.False(t, *cfg.Telemetry)
}

func TestLoadLocalEmptyModelIgnored(t *testing.T) {
	dir := chdirTemp(t)
	writeSettings(t, dir, "settings.json", `{"model":"gemini-2.5-pro"}`)
	writeSettings(t, dir, "settings.local.json", `{"model":""}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := chdirTemp(t)
	writeSettings(t, dir, "settings.json", `{not json`)

	_, err := Load()
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	chdirTemp(t)

	enabled := true
	in := &Settings{Model: "gemini-2.5-pro", Emoji: true, Budget: 500, Telemetry: &enabled}
	require.NoError(t, Save(in))

	out, err := Load()
	require.NoError(t, err)
	assert.Equal(t, in.Model, out.Model)
	assert.Equal(t, in.Emoji, out.Emoji)
	assert.Equal(t, in.Budget, out.Budget)
	require.NotNil(t, out.Telemetry)
	assert.True(t, *out.Telemetry)
}

func TestAPIKeyFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv(APIKeyEnvVar, "test-key-123")

	assert.Equal(t, "test-key-123", APIKey())
}

func TestAPIKeyEmpty(t *testing.T) {
	chdirTemp(t)
	t.Setenv(APIKeyEnvVar, "")

	assert.Empty(t, APIKey())
}
