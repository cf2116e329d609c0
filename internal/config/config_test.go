package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "005010X215", cfg.TR3Version)
	assert.True(t, cfg.ValidationRules.ValidateEnvelopes)
	assert.True(t, cfg.QRERequirements.MinimalDataPrinciple)
	assert.False(t, cfg.ErrorHandling.FailOnWarnings)
	assert.Equal(t,
		[]string{"ISA", "GS", "ST", "BHT", "HL", "SE", "GE", "IEA"},
		cfg.QRERequirements.RequiredSegments)
}

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg := FromViper(v)

	assert.Equal(t, Default().TR3Version, cfg.TR3Version)
	assert.Equal(t, Default().QRERequirements.RequiredSegments, cfg.QRERequirements.RequiredSegments)
	assert.True(t, cfg.ValidationRules.ValidateEnvelopes)
}

func TestFromViperFile(t *testing.T) {
	configYAML := `
tr3_version: 005010X217
validation_rules:
  validate_envelopes: false
qre_requirements:
  required_segments:
    - ISA
    - ST
  minimal_data_principle: false
error_handling:
  fail_on_warnings: true
output:
  path: /tmp/report.json
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg := FromViper(v)

	assert.Equal(t, "005010X217", cfg.TR3Version)
	assert.False(t, cfg.ValidationRules.ValidateEnvelopes)
	assert.Equal(t, []string{"ISA", "ST"}, cfg.QRERequirements.RequiredSegments)
	assert.False(t, cfg.QRERequirements.MinimalDataPrinciple)
	assert.True(t, cfg.ErrorHandling.FailOnWarnings)
	assert.Equal(t, "/tmp/report.json", cfg.Output.Path)
	// Keys the file does not name keep their defaults.
	assert.Equal(t, ExpandPath(Default().Storage.Path), cfg.Storage.Path)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "empty", path: "", expected: ""},
		{name: "plain path", path: "/var/data/history.db", expected: "/var/data/history.db"},
		{name: "tilde prefix", path: "~/reports/out.json", expected: filepath.Join(home, "reports/out.json")},
		{name: "bare tilde", path: "~", expected: home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.path))
		})
	}
}

func TestExpandPathEnvironment(t *testing.T) {
	t.Setenv("QRE_TEST_DIR", "/srv/qre")

	expanded := ExpandPath("$QRE_TEST_DIR/history.db")

	assert.True(t, strings.HasPrefix(expanded, "/srv/qre/"))
}
