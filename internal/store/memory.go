package store

import (
	"context"
	"sync"
	"time"

	"github.com/redtoridefire/smart-autofill/internal/types"
)

// Memory is the in-process Store used by tests and by CLI runs without
// a database. Contents do not survive the process.
type Memory struct {
	mu           sync.RWMutex
	profile      *types.Profile
	settings     *types.Settings
	resume       *types.ResumeData
	learned      map[string]string
	applications []ApplicationRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{learned: make(map[string]string)}
}

// Profile returns the saved profile, or an empty one.
func (m *Memory) Profile(_ context.Context) (*types.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return &types.Profile{}, nil
	}
	p := *m.profile
	return &p, nil
}

// SaveProfile stores the profile.
func (m *Memory) SaveProfile(_ context.Context, p *types.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.profile = &cp
	return nil
}

// Settings returns the saved settings, or the defaults.
func (m *Memory) Settings(_ context.Context) (*types.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return types.DefaultSettings(), nil
	}
	s := *m.settings
	return &s, nil
}

// SaveSettings stores the settings.
func (m *Memory) SaveSettings(_ context.Context, s *types.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.settings = &cp
	return nil
}

// Resume returns the saved resume data, or nil when none was saved.
func (m *Memory) Resume(_ context.Context) (*types.ResumeData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.resume == nil {
		return nil, nil
	}
	r := *m.resume
	return &r, nil
}

// SaveResume stores the resume data.
func (m *Memory) SaveResume(_ context.Context, r *types.ResumeData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.resume = &cp
	return nil
}

// LearnedResponses returns a copy of the learned map.
func (m *Memory) LearnedResponses(_ context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.learned))
	for k, v := range m.learned {
		out[k] = v
	}
	return out, nil
}

// MergeLearned overwrites existing keys with the new values.
func (m *Memory) MergeLearned(_ context.Context, responses map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range responses {
		m.learned[k] = v
	}
	return nil
}

// ClearLearned removes every learned entry.
func (m *Memory) ClearLearned(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.learned = make(map[string]string)
	return nil
}

// AppendApplication records one history entry.
func (m *Memory) AppendApplication(_ context.Context, rec *ApplicationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applications = append(m.applications, *rec)
	return nil
}

// RecentApplications returns up to limit entries, newest first.
func (m *Memory) RecentApplications(_ context.Context, limit int) ([]ApplicationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ApplicationRecord
	for i := len(m.applications) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, m.applications[i])
	}
	return out, nil
}

// FilledToday counts applications recorded since local midnight.
func (m *Memory) FilledToday(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count := 0
	for _, rec := range m.applications {
		if !rec.CreatedAt.Before(midnight) {
			count++
		}
	}
	return count, nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() {}
