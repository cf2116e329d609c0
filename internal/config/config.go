// Package config provides the analyzer configuration and loading helpers.
package config

import "github.com/spf13/viper"

// DefaultTR3Version is the implementation guide version the analyzer
// checks against.
const DefaultTR3Version = "005010X215"

// ValidationRules controls which structural validation passes run.
type ValidationRules struct {
	ValidateEnvelopes bool
}

// QRERequirements captures the partner's inquiry profile: which segments
// must be present and whether the minimal data best-practice checks run.
type QRERequirements struct {
	RequiredSegments     []string
	MinimalDataPrinciple bool
}

// ErrorHandling controls how findings roll up into the overall verdict.
type ErrorHandling struct {
	FailOnWarnings bool
}

// Output controls optional JSON report export.
type Output struct {
	Path string
}

// Storage controls the local analysis history database.
type Storage struct {
	Path string
}

// Config is the full analyzer configuration. It is loaded once before the
// first analysis and treated as read-only for the duration of a run; the
// same value may be shared across concurrent runs.
type Config struct {
	TR3Version      string
	ValidationRules ValidationRules
	QRERequirements QRERequirements
	ErrorHandling   ErrorHandling
	Output          Output
	Storage         Storage
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		TR3Version: DefaultTR3Version,
		ValidationRules: ValidationRules{
			ValidateEnvelopes: true,
		},
		QRERequirements: QRERequirements{
			RequiredSegments:     []string{"ISA", "GS", "ST", "BHT", "HL", "SE", "GE", "IEA"},
			MinimalDataPrinciple: true,
		},
		ErrorHandling: ErrorHandling{
			FailOnWarnings: false,
		},
		Storage: Storage{
			Path: "~/.local/share/qre/history.db",
		},
	}
}

// SetDefaults registers the default values on a viper instance so partial
// config files only override what they name.
func SetDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("tr3_version", defaults.TR3Version)
	v.SetDefault("validation_rules.validate_envelopes", defaults.ValidationRules.ValidateEnvelopes)
	v.SetDefault("qre_requirements.required_segments", defaults.QRERequirements.RequiredSegments)
	v.SetDefault("qre_requirements.minimal_data_principle", defaults.QRERequirements.MinimalDataPrinciple)
	v.SetDefault("error_handling.fail_on_warnings", defaults.ErrorHandling.FailOnWarnings)
	v.SetDefault("output.path", defaults.Output.Path)
	v.SetDefault("storage.path", defaults.Storage.Path)
}

// FromViper materializes an immutable Config from a viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		TR3Version: v.GetString("tr3_version"),
		ValidationRules: ValidationRules{
			ValidateEnvelopes: v.GetBool("validation_rules.validate_envelopes"),
		},
		QRERequirements: QRERequirements{
			RequiredSegments:     v.GetStringSlice("qre_requirements.required_segments"),
			MinimalDataPrinciple: v.GetBool("qre_requirements.minimal_data_principle"),
		},
		ErrorHandling: ErrorHandling{
			FailOnWarnings: v.GetBool("error_handling.fail_on_warnings"),
		},
		Output: Output{
			Path: ExpandPath(v.GetString("output.path")),
		},
		Storage: Storage{
			Path: ExpandPath(v.GetString("storage.path")),
		},
	}
}
