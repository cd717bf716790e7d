// Package types provides type definitions for structured data used throughout the autofill agent.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Profile holds the user data that smart matching draws answers from.
// It is owned by the configuration surface and read-only to the engine.
type Profile struct {
	FullName string `json:"full_name,omitempty" validate:"omitempty,max=120"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=32"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,max=256"`
	// Location uses the "City, State" convention.
	Location string `json:"location,omitempty" validate:"omitempty,max=128"`
	WorkAuth string `json:"work_auth,omitempty" validate:"omitempty,max=64"`
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// IsEmpty reports whether no profile attribute is populated.
func (p *Profile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.FullName == "" && p.Email == "" && p.Phone == "" &&
		p.LinkedIn == "" && p.Location == "" && p.WorkAuth == ""
}

// FirstName returns the first space-separated token of the full name.
func (p *Profile) FirstName() string {
	parts := strings.Fields(p.FullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// LastName returns the last space-separated token of the full name.
func (p *Profile) LastName() string {
	parts := strings.Fields(p.FullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// City returns the portion of Location before the first comma.
func (p *Profile) City() string {
	city, _, _ := strings.Cut(p.Location, ",")
	return strings.TrimSpace(city)
}

// State returns the portion of Location after the first comma, if any.
func (p *Profile) State() string {
	_, state, ok := strings.Cut(p.Location, ",")
	if !ok {
		return ""
	}
	return strings.TrimSpace(state)
}
