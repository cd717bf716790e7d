// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redtoridefire/smart-autofill/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Candidate Info
	Name       string `json:"name,omitempty"`        // Candidate full name
	Email      string `json:"email,omitempty"`       // Candidate email
	Phone      string `json:"phone,omitempty"`       // Candidate phone
	LinkedIn   string `json:"linkedin,omitempty"`    // LinkedIn profile URL
	Location   string `json:"location,omitempty"`    // "City, State"
	WorkAuth   string `json:"work_auth,omitempty"`   // Work authorization answer
	ResumePath string `json:"resume_path,omitempty"` // Path to plain-text resume

	// Fill Behavior
	FillSpeedMS  int    `json:"fill_speed_ms,omitempty"`  // Delay between fields in milliseconds
	AutoFill     *bool  `json:"auto_fill,omitempty"`      // Master auto-fill switch
	AutoFillMode string `json:"auto_fill_mode,omitempty"` // "manual" or "automatic"
	LearnMode    *bool  `json:"learn_mode,omitempty"`     // Capture user-entered answers
	AutoNavigate bool   `json:"auto_navigate,omitempty"`  // Click continue/next after a successful fill

	// Sites
	AllowedSites         []string `json:"allowed_sites,omitempty"`          // Extra allowlist patterns
	DisabledDefaultSites []string `json:"disabled_default_sites,omitempty"` // Built-in patterns to turn off

	// Infrastructure
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty means in-memory
	APIKey      string `json:"api_key,omitempty"`      // API key required by the HTTP server
	Port        int    `json:"port,omitempty"`         // HTTP server port
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Drive a headless browser instead of static HTML
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.FillSpeedMS < 0 {
		return fmt.Errorf("config error: 'fill_speed_ms' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	if c.AutoFillMode != "" && c.AutoFillMode != types.ModeManual && c.AutoFillMode != types.ModeAutomatic {
		return fmt.Errorf("config error: 'auto_fill_mode' must be %q or %q", types.ModeManual, types.ModeAutomatic)
	}
	if c.ResumePath != "" {
		if _, err := os.Stat(c.ResumePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.ResumePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Name == "" {
		result.Name = defaults.Name
	}
	if result.Email == "" {
		result.Email = defaults.Email
	}
	if result.Phone == "" {
		result.Phone = defaults.Phone
	}
	if result.LinkedIn == "" {
		result.LinkedIn = defaults.LinkedIn
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.WorkAuth == "" {
		result.WorkAuth = defaults.WorkAuth
	}
	if result.ResumePath == "" {
		result.ResumePath = defaults.ResumePath
	}
	if result.AutoFillMode == "" {
		result.AutoFillMode = defaults.AutoFillMode
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	if result.FillSpeedMS == 0 {
		result.FillSpeedMS = defaults.FillSpeedMS
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.AutoFill == nil {
		result.AutoFill = defaults.AutoFill
	}
	if result.LearnMode == nil {
		result.LearnMode = defaults.LearnMode
	}

	if len(result.AllowedSites) == 0 {
		result.AllowedSites = defaults.AllowedSites
	}
	if len(result.DisabledDefaultSites) == 0 {
		result.DisabledDefaultSites = defaults.DisabledDefaultSites
	}

	// Booleans: true wins, matching CLI flag semantics
	result.AutoNavigate = result.AutoNavigate || defaults.AutoNavigate
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Profile builds the candidate profile from the config fields.
func (c *Config) Profile() *types.Profile {
	return &types.Profile{
		FullName: c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		LinkedIn: c.LinkedIn,
		Location: c.Location,
		WorkAuth: c.WorkAuth,
	}
}

// Settings builds the engine settings from the config fields, starting
// from the defaults.
func (c *Config) Settings() *types.Settings {
	s := types.DefaultSettings()
	if c.FillSpeedMS > 0 {
		s.FillSpeedMS = c.FillSpeedMS
	}
	if c.AutoFill != nil {
		s.AutoFillEnabled = *c.AutoFill
	}
	if c.AutoFillMode != "" {
		s.AutoFillMode = c.AutoFillMode
	}
	if c.LearnMode != nil {
		s.LearnMode = *c.LearnMode
	}
	s.AutoNavigate = c.AutoNavigate
	s.AllowedSites = append([]string(nil), c.AllowedSites...)
	s.DisabledDefaultSites = append([]string(nil), c.DisabledDefaultSites...)
	return s
}
