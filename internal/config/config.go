// Package config provides configuration management for the kernel CLI.
// Configuration is loaded from (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (IGK_*)
// 3. Project config (.orchestration/config.yaml in cwd)
// 4. Home config (~/.igk/config.yaml)
// 5. Defaults
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all kernel configuration.
type Config struct {
	// Output controls the default CLI output format (table, json, yaml).
	Output string `yaml:"output" json:"output"`

	// Verbose enables verbose logging.
	Verbose bool `yaml:"verbose" json:"verbose"`

	// OrchestrationDir is the directory, relative to the workspace root,
	// holding active_intents.yaml, agent_trace.jsonl, and .intentignore.
	// Default: .orchestration
	OrchestrationDir string `yaml:"orchestration_dir" json:"orchestration_dir"`

	// Hooks holds hook-policy settings.
	Hooks HooksConfig `yaml:"hooks" json:"hooks"`
}

// HooksConfig holds Hook Engine policy settings.
type HooksConfig struct {
	// UnknownToolsPolicy controls whether the Authorization Hook treats a
	// tool name absent from both the SAFE and DESTRUCTIVE sets as
	// DESTRUCTIVE. Values: "safe" (default, current documented behavior —
	// unknown tools bypass authorization) or "destructive" (stricter
	// policy; see spec's open question on UNKNOWN tools).
	UnknownToolsPolicy string `yaml:"unknown_tools_policy" json:"unknown_tools_policy"`

	// UnknownToolsPolicySet tracks whether UnknownToolsPolicy was
	// explicitly configured, distinguishing "not set" from "explicitly
	// set to the default value."
	UnknownToolsPolicySet bool `yaml:"-" json:"-"`
}

// Default config values (used in resolution and validation).
const (
	defaultOutput             = "table"
	defaultOrchestrationDir   = ".orchestration"
	defaultUnknownToolsPolicy = "safe"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output:           defaultOutput,
		Verbose:          false,
		OrchestrationDir: defaultOrchestrationDir,
		Hooks: HooksConfig{
			UnknownToolsPolicy: defaultUnknownToolsPolicy,
		},
	}
}

// Load loads configuration with proper precedence.
// Priority: flags > env > project > home > defaults.
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	if homeConfig, _ := loadFromPath(homeConfigPath()); homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	if projectConfig, _ := loadFromPath(projectConfigPath()); projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	cfg = applyEnv(cfg)

	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	return cfg, nil
}

// homeConfigPath returns the home config path.
func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".igk", "config.yaml")
}

// projectConfigPath returns the project config path, honoring IGK_CONFIG
// as an override.
func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("IGK_CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, defaultOrchestrationDir, "config.yaml")
}

// loadFromPath loads config from a YAML file.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv applies IGK_* environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("IGK_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("IGK_ORCHESTRATION_DIR"); v != "" {
		cfg.OrchestrationDir = v
	}
	if v := os.Getenv("IGK_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("IGK_UNKNOWN_TOOLS_POLICY"); v != "" {
		cfg.Hooks.UnknownToolsPolicy = v
		cfg.Hooks.UnknownToolsPolicySet = true
	}
	return cfg
}

// merge merges src into dst, with src values taking precedence.
func merge(dst, src *Config) *Config {
	if src.Output != "" {
		dst.Output = src.Output
	}
	if src.OrchestrationDir != "" {
		dst.OrchestrationDir = src.OrchestrationDir
	}
	if src.Verbose {
		dst.Verbose = true
	}
	if src.Hooks.UnknownToolsPolicySet || src.Hooks.UnknownToolsPolicy != "" {
		dst.Hooks.UnknownToolsPolicy = src.Hooks.UnknownToolsPolicy
		dst.Hooks.UnknownToolsPolicySet = true
	}
	return dst
}

// Source represents where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceHome    Source = "~/.igk/config.yaml"
	SourceProject Source = ".orchestration/config.yaml"
	SourceEnv     Source = "environment"
	SourceFlag    Source = "flag"
)

// getEnvString returns the value and whether the env var was set.
func getEnvString(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

// getEnvBool returns the boolean value and whether it was truthy.
func getEnvBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "true" || v == "1" {
		return true, true
	}
	return false, false
}

// resolveStringField resolves a string through the precedence chain.
func resolveStringField(home, project, env, flag, def string) resolved {
	result := resolved{Value: def, Source: SourceDefault}
	if home != "" {
		result = resolved{Value: home, Source: SourceHome}
	}
	if project != "" {
		result = resolved{Value: project, Source: SourceProject}
	}
	if env != "" {
		result = resolved{Value: env, Source: SourceEnv}
	}
	if flag != "" {
		result = resolved{Value: flag, Source: SourceFlag}
	}
	return result
}

// ResolvedConfig shows config values with their sources, for `igk doctor`
// and `igk config show`.
type ResolvedConfig struct {
	Output             resolved `json:"output"`
	Verbose            resolved `json:"verbose"`
	OrchestrationDir   resolved `json:"orchestration_dir"`
	UnknownToolsPolicy resolved `json:"unknown_tools_policy"`
}

type resolved struct {
	Value  interface{} `json:"value"`
	Source Source      `json:"source"`
}

// Resolve returns configuration with source tracking.
// Uses precedence chain: flags > env > project > home > defaults.
func Resolve(flagOutput string, flagVerbose bool, flagOrchestrationDir string) *ResolvedConfig {
	homeConfig, _ := loadFromPath(homeConfigPath())
	projectConfig, _ := loadFromPath(projectConfigPath())

	var homeOutput, homeOrchestrationDir, homeUnknownPolicy string
	var homeVerbose bool
	if homeConfig != nil {
		homeOutput = homeConfig.Output
		homeOrchestrationDir = homeConfig.OrchestrationDir
		homeVerbose = homeConfig.Verbose
		homeUnknownPolicy = homeConfig.Hooks.UnknownToolsPolicy
	}

	var projectOutput, projectOrchestrationDir, projectUnknownPolicy string
	var projectVerbose bool
	if projectConfig != nil {
		projectOutput = projectConfig.Output
		projectOrchestrationDir = projectConfig.OrchestrationDir
		projectVerbose = projectConfig.Verbose
		projectUnknownPolicy = projectConfig.Hooks.UnknownToolsPolicy
	}

	envOutput, _ := getEnvString("IGK_OUTPUT")
	envOrchestrationDir, _ := getEnvString("IGK_ORCHESTRATION_DIR")
	envVerbose, envVerboseSet := getEnvBool("IGK_VERBOSE")
	envUnknownPolicy, _ := getEnvString("IGK_UNKNOWN_TOOLS_POLICY")

	rc := &ResolvedConfig{
		Output:             resolveStringField(homeOutput, projectOutput, envOutput, flagOutput, defaultOutput),
		Verbose:            resolved{Value: false, Source: SourceDefault},
		OrchestrationDir:   resolveStringField(homeOrchestrationDir, projectOrchestrationDir, envOrchestrationDir, flagOrchestrationDir, defaultOrchestrationDir),
		UnknownToolsPolicy: resolveStringField(homeUnknownPolicy, projectUnknownPolicy, envUnknownPolicy, "", defaultUnknownToolsPolicy),
	}

	if homeVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceHome}
	}
	if projectVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceProject}
	}
	if envVerboseSet && envVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceEnv}
	}
	if flagVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceFlag}
	}

	return rc
}
