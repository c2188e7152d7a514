package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault verifies the built-in defaults.
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "pushup", cfg.Exercise)
	assert.Equal(t, "left", cfg.AxisHand)
	assert.Empty(t, cfg.TemplateProfile)
	assert.False(t, cfg.Verbose)
	assert.True(t, filepath.IsAbs(cfg.HistoryDB) || cfg.HistoryDB == filepath.Join(".repstream", "history.db"))
}

// TestLoad_ExplicitFile reads an explicit config file over the defaults.
func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
exercise = "squat"
axis_hand = "right"
history_db = "/tmp/repstream-test/history.db"
template_profile = "profile.yaml"
verbose = true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "squat", cfg.Exercise)
	assert.Equal(t, "right", cfg.AxisHand)
	assert.Equal(t, "/tmp/repstream-test/history.db", cfg.HistoryDB)
	assert.Equal(t, "profile.yaml", cfg.TemplateProfile)
	assert.True(t, cfg.Verbose)
	// Fields the file omits keep their defaults.
	assert.Equal(t, Default().WatchDir, cfg.WatchDir)
}

// TestLoad_PartialFile keeps defaults for every omitted field.
func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`exercise = "axis"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "axis", cfg.Exercise)
	assert.Equal(t, "left", cfg.AxisHand)
	assert.Equal(t, Default().HistoryDB, cfg.HistoryDB)
}

// TestLoad_ExplicitMissingFile errors when a requested file does not exist.
func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

// TestLoad_InvalidValues rejects unknown enum values.
func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown exercise", body: `exercise = "burpee"`},
		{name: "unknown axis hand", body: `axis_hand = "both"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

// TestLoad_MalformedTOML fails on unparseable input.
func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`exercise = [broken`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
