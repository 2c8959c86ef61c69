package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/untoldecay/easyowl/internal/debug"
)

var v *viper.Viper

// EnvPrefix prefixes every environment variable read by Initialize.
const EnvPrefix = "OWL"

// Initialize sets up the viper configuration singleton
// Should be called once at application startup
func Initialize() error {
	v = viper.New()
	v.SetConfigType("yaml")

	// Precedence: project .easyowl/config.yaml > $XDG_CONFIG_HOME/easyowl/config.yaml > ~/.easyowl/config.yaml
	configFileSet := false

	// 1. Walk up from CWD so commands work from subdirectories
	if cwd, err := os.Getwd(); err == nil {
		for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			configPath := filepath.Join(dir, ".easyowl", "config.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
				break
			}
		}
	}

	// 2. User config directory
	if !configFileSet {
		if configDir, err := os.UserConfigDir(); err == nil {
			configPath := filepath.Join(configDir, "easyowl", "config.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
			}
		}
	}

	// 3. Home directory
	if !configFileSet {
		if homeDir, err := os.UserHomeDir(); err == nil {
			configPath := filepath.Join(homeDir, ".easyowl", "config.yaml")
			if _, err := os.Stat(configPath); err == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
			}
		}
	}

	// Environment variables take precedence over the config file,
	// e.g. OWL_JSON, OWL_SIMILARITY_EAGER, OWL_HIERARCHY_MAX_TRAVERSAL_DEPTH
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFileSet {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		debug.Logf("loaded config from %s", v.ConfigFileUsed())
	} else {
		debug.Logf("no config.yaml found; using defaults and environment variables")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	// Output
	v.SetDefault("json", false)
	v.SetDefault("format", "text") // text | json | yaml

	// Hierarchy traversal ceiling, see types.MaxTraversalDepth
	v.SetDefault("hierarchy.max-traversal-depth", 1000)

	// Similarity
	v.SetDefault("similarity.eager", false)
	v.SetDefault("similarity.suggestions", 5)
	v.SetDefault("similarity.max-distance", 3)

	// Download collaborator
	v.SetDefault("download.dir", "data")
	v.SetDefault("download.timeout", "300s")
	v.SetDefault("download.lock-timeout", "30s")

	// Debug log file; empty disables it
	v.SetDefault("log.file", "")
	v.SetDefault("log.max-size-mb", 10)
	v.SetDefault("log.max-backups", 3)
	v.SetDefault("log.max-age-days", 28)
}

// ConfigFileUsed returns the config file that was read, if any.
func ConfigFileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault    ConfigSource = "default"
	SourceConfigFile ConfigSource = "config_file"
	SourceEnvVar     ConfigSource = "env_var"
	SourceFlag       ConfigSource = "flag"
)

// ConfigOverride represents a detected configuration override
type ConfigOverride struct {
	Key            string
	EffectiveValue interface{}
	OverriddenBy   ConfigSource
	OriginalSource ConfigSource
	OriginalValue  interface{}
}

// EnvKey returns the environment variable consulted for key.
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))
}

// GetValueSource returns the source of a configuration value.
// Priority (highest to lowest): env var > config file > default
// Flag overrides are handled by the CLI since viper doesn't know about cobra flags.
func GetValueSource(key string) ConfigSource {
	if v == nil {
		return SourceDefault
	}
	if os.Getenv(EnvKey(key)) != "" {
		return SourceEnvVar
	}
	if v.InConfig(key) {
		return SourceConfigFile
	}
	return SourceDefault
}

// FlagOverride is a flag value and whether the user set it explicitly.
type FlagOverride struct {
	Value  interface{}
	WasSet bool
}

// CheckOverrides reports flags that override a config file or env var
// value, and env vars that override the config file.
func CheckOverrides(flagOverrides map[string]FlagOverride) []ConfigOverride {
	var overrides []ConfigOverride

	for key, flagInfo := range flagOverrides {
		if !flagInfo.WasSet {
			continue
		}

		source := GetValueSource(key)
		if source != SourceConfigFile && source != SourceEnvVar {
			continue
		}
		var originalValue interface{}
		switch val := flagInfo.Value.(type) {
		case bool:
			originalValue = GetBool(key)
		case string:
			originalValue = GetString(key)
		case int:
			originalValue = GetInt(key)
		default:
			originalValue = val
		}

		overrides = append(overrides, ConfigOverride{
			Key:            key,
			EffectiveValue: flagInfo.Value,
			OverriddenBy:   SourceFlag,
			OriginalSource: source,
			OriginalValue:  originalValue,
		})
	}

	if v != nil {
		for _, key := range v.AllKeys() {
			if _, isFlag := flagOverrides[key]; isFlag && flagOverrides[key].WasSet {
				continue
			}
			if GetValueSource(key) == SourceEnvVar && v.InConfig(key) {
				overrides = append(overrides, ConfigOverride{
					Key:            key,
					EffectiveValue: v.Get(key),
					OverriddenBy:   SourceEnvVar,
					OriginalSource: SourceConfigFile,
				})
			}
		}
	}

	return overrides
}

// LogOverride logs a message about a configuration override in verbose mode.
func LogOverride(override ConfigOverride) {
	var sourceDesc string
	switch override.OriginalSource {
	case SourceConfigFile:
		sourceDesc = "config file"
	case SourceEnvVar:
		sourceDesc = "environment variable"
	case SourceDefault:
		sourceDesc = "default"
	default:
		sourceDesc = string(override.OriginalSource)
	}

	var overrideDesc string
	switch override.OverriddenBy {
	case SourceFlag:
		overrideDesc = "command-line flag"
	case SourceEnvVar:
		overrideDesc = "environment variable"
	default:
		overrideDesc = string(override.OverriddenBy)
	}

	debug.Logf("config: %s overridden by %s (was: %v from %s, now: %v)",
		override.Key, overrideDesc, override.OriginalValue, sourceDesc, override.EffectiveValue)
}

// GetString retrieves a string configuration value
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt retrieves an integer configuration value
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetDuration retrieves a duration configuration value
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// AllSettings returns all configuration settings as a map
func AllSettings() map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	return v.AllSettings()
}

// LogFile returns the debug log file settings.
func LogFile() debug.FileOptions {
	return debug.FileOptions{
		Path:       GetString("log.file"),
		MaxSizeMB:  GetInt("log.max-size-mb"),
		MaxBackups: GetInt("log.max-backups"),
		MaxAgeDays: GetInt("log.max-age-days"),
	}
}
