// Package store provides the key-value-shaped persistence boundary:
// profile, settings, resume data, learned responses, and application
// history. The store is the only shared mutable resource; reads and
// writes are not transactional across keys.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/redtoridefire/smart-autofill/internal/types"
)

// ApplicationRecord is one history entry, appended when a fill pass
// commits at least one field.
type ApplicationRecord struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	Host         string    `json:"host"`
	FieldsFilled int       `json:"fields_filled"`
	FieldsTotal  int       `json:"fields_total"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is the persistence boundary consumed by the engine and the
// external surfaces. Missing entries return zero values, not errors.
type Store interface {
	Profile(ctx context.Context) (*types.Profile, error)
	SaveProfile(ctx context.Context, p *types.Profile) error

	Settings(ctx context.Context) (*types.Settings, error)
	SaveSettings(ctx context.Context, s *types.Settings) error

	Resume(ctx context.Context) (*types.ResumeData, error)
	SaveResume(ctx context.Context, r *types.ResumeData) error

	LearnedResponses(ctx context.Context) (map[string]string, error)
	// MergeLearned overwrites existing keys; last write wins.
	MergeLearned(ctx context.Context, responses map[string]string) error
	ClearLearned(ctx context.Context) error

	AppendApplication(ctx context.Context, rec *ApplicationRecord) error
	RecentApplications(ctx context.Context, limit int) ([]ApplicationRecord, error)
	// FilledToday counts applications recorded since local midnight.
	FilledToday(ctx context.Context) (int, error)

	Close()
}
