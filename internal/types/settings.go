package types

// Fill trigger modes. Manual triggers always bypass the allowlist gate;
// automatic triggers are additionally gated by the site allowlist.
const (
	ModeManual    = "manual"
	ModeAutomatic = "automatic"
)

// DefaultFillSpeedMS is the default inter-field delay in milliseconds.
const DefaultFillSpeedMS = 500

// Settings holds the behavior switches persisted in the store.
type Settings struct {
	FillSpeedMS     int    `json:"fill_speed_ms"`
	AutoFillEnabled bool   `json:"auto_fill_enabled"`
	AutoFillMode    string `json:"auto_fill_mode" validate:"omitempty,oneof=manual automatic"`
	LearnMode       bool   `json:"learn_mode"`
	// AutoNavigate clicks continue/next controls after a successful
	// automatic fill. Off by default for safety.
	AutoNavigate bool `json:"auto_navigate"`
	// AllowedSites are custom allowlist patterns added to the defaults.
	AllowedSites []string `json:"allowed_sites,omitempty"`
	// DisabledDefaultSites removes patterns from the default allowlist.
	DisabledDefaultSites []string `json:"disabled_default_sites,omitempty"`
}

// DefaultSettings returns the settings used when nothing has been saved.
func DefaultSettings() *Settings {
	return &Settings{
		FillSpeedMS:     DefaultFillSpeedMS,
		AutoFillEnabled: true,
		AutoFillMode:    ModeManual,
		LearnMode:       true,
		AutoNavigate:    false,
	}
}
