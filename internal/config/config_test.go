package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redtoridefire/smart-autofill/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Jane Q. Public",
		"email": "jane@example.com",
		"fill_speed_ms": 250,
		"auto_fill": false,
		"allowed_sites": ["jobs.internal.example"]
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Public", cfg.Name)
	assert.Equal(t, 250, cfg.FillSpeedMS)
	require.NotNil(t, cfg.AutoFill)
	assert.False(t, *cfg.AutoFill)
	assert.Equal(t, []string{"jobs.internal.example"}, cfg.AllowedSites)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `{not json`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())

	assert.Error(t, (&Config{FillSpeedMS: -1}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
	assert.Error(t, (&Config{AutoFillMode: "sometimes"}).Validate())
	assert.Error(t, (&Config{ResumePath: "/nonexistent/resume.txt"}).Validate())

	resume := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(resume, []byte("Jane Q. Public"), 0o644))
	assert.NoError(t, (&Config{AutoFillMode: types.ModeAutomatic, ResumePath: resume, Port: 8080}).Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	yes := true
	no := false
	defaults := Config{
		Name:        "Jane Q. Public",
		FillSpeedMS: 250,
		AutoFill:    &no,
		Verbose:     true,
	}

	merged := (&Config{Email: "jane@example.com", AutoFill: &yes}).MergeWithDefaults(defaults)

	assert.Equal(t, "Jane Q. Public", merged.Name, "empty fields take the default")
	assert.Equal(t, "jane@example.com", merged.Email, "set fields win")
	assert.Equal(t, 250, merged.FillSpeedMS)
	require.NotNil(t, merged.AutoFill)
	assert.True(t, *merged.AutoFill, "an explicit pointer beats the default")
	assert.True(t, merged.Verbose, "true wins for plain booleans")
}

func TestSettings(t *testing.T) {
	no := false
	cfg := &Config{
		FillSpeedMS:  100,
		AutoFill:     &no,
		AutoFillMode: types.ModeAutomatic,
		AllowedSites: []string{"jobs.internal.example"},
	}

	s := cfg.Settings()
	assert.Equal(t, 100, s.FillSpeedMS)
	assert.False(t, s.AutoFillEnabled)
	assert.Equal(t, types.ModeAutomatic, s.AutoFillMode)
	assert.True(t, s.LearnMode, "unset switches keep the defaults")
	assert.Equal(t, []string{"jobs.internal.example"}, s.AllowedSites)
}

func TestProfile(t *testing.T) {
	cfg := &Config{Name: "Jane Q. Public", Email: "jane@example.com", Location: "Austin, TX"}
	p := cfg.Profile()
	assert.Equal(t, "Jane Q. Public", p.FullName)
	assert.Equal(t, "jane@example.com", p.Email)
	assert.Equal(t, "Austin, TX", p.Location)
}
