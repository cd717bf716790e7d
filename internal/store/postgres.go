package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redtoridefire/smart-autofill/internal/types"
)

// Postgres is the pgx-backed Store. Profile, settings, and resume live
// as JSON documents in a small key-value table; learned responses and
// application history get their own tables.
type Postgres struct {
	pool *pgxpool.Pool
}

// Document keys in the kv_documents table.
const (
	docProfile  = "profile"
	docSettings = "settings"
	docResume   = "resume"
)

// ConnectPostgres establishes a connection pool and ensures the schema.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS kv_documents (
			key TEXT PRIMARY KEY,
			content JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS learned_responses (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS applications (
			id UUID PRIMARY KEY,
			url TEXT NOT NULL,
			host TEXT NOT NULL,
			fields_filled INT NOT NULL,
			fields_total INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Postgres) loadDocument(ctx context.Context, key string, out any) (bool, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM kv_documents WHERE key = $1`, key,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(content, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (p *Postgres) saveDocument(ctx context.Context, key string, doc any) error {
	content, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO kv_documents (key, content) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET content = $2, updated_at = NOW()`,
		key, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Profile loads the saved profile, or an empty one.
func (p *Postgres) Profile(ctx context.Context) (*types.Profile, error) {
	var profile types.Profile
	if _, err := p.loadDocument(ctx, docProfile, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile stores the profile document.
func (p *Postgres) SaveProfile(ctx context.Context, profile *types.Profile) error {
	return p.saveDocument(ctx, docProfile, profile)
}

// Settings loads the saved settings, or the defaults.
func (p *Postgres) Settings(ctx context.Context) (*types.Settings, error) {
	var settings types.Settings
	found, err := p.loadDocument(ctx, docSettings, &settings)
	if err != nil {
		return nil, err
	}
	if !found {
		return types.DefaultSettings(), nil
	}
	return &settings, nil
}

// SaveSettings stores the settings document.
func (p *Postgres) SaveSettings(ctx context.Context, settings *types.Settings) error {
	return p.saveDocument(ctx, docSettings, settings)
}

// Resume loads the saved resume data, or nil when none was saved.
func (p *Postgres) Resume(ctx context.Context) (*types.ResumeData, error) {
	var resume types.ResumeData
	found, err := p.loadDocument(ctx, docResume, &resume)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &resume, nil
}

// SaveResume stores the resume document.
func (p *Postgres) SaveResume(ctx context.Context, resume *types.ResumeData) error {
	return p.saveDocument(ctx, docResume, resume)
}

// LearnedResponses loads the whole learned map.
func (p *Postgres) LearnedResponses(ctx context.Context) (map[string]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT key, value FROM learned_responses`)
	if err != nil {
		return nil, fmt.Errorf("failed to load learned responses: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan learned response: %w", err)
		}
		out[key] = value
	}
	return out, nil
}

// MergeLearned upserts each entry; last write wins per key.
func (p *Postgres) MergeLearned(ctx context.Context, responses map[string]string) error {
	for key, value := range responses {
		_, err := p.pool.Exec(ctx,
			`INSERT INTO learned_responses (key, value) VALUES ($1, $2)
			 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
			key, value,
		)
		if err != nil {
			return fmt.Errorf("failed to save learned response %q: %w", key, err)
		}
	}
	return nil
}

// ClearLearned removes every learned entry.
func (p *Postgres) ClearLearned(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM learned_responses`); err != nil {
		return fmt.Errorf("failed to clear learned responses: %w", err)
	}
	return nil
}

// AppendApplication records one history entry.
func (p *Postgres) AppendApplication(ctx context.Context, rec *ApplicationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO applications (id, url, host, fields_filled, fields_total, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.URL, rec.Host, rec.FieldsFilled, rec.FieldsTotal, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append application: %w", err)
	}
	return nil
}

// RecentApplications returns up to limit entries, newest first.
func (p *Postgres) RecentApplications(ctx context.Context, limit int) ([]ApplicationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.pool.Query(ctx,
		`SELECT id, url, host, fields_filled, fields_total, created_at
		 FROM applications ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var out []ApplicationRecord
	for rows.Next() {
		var rec ApplicationRecord
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Host, &rec.FieldsFilled, &rec.FieldsTotal, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// FilledToday counts applications recorded since local midnight.
func (p *Postgres) FilledToday(ctx context.Context) (int, error) {
	var count int
	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE created_at >= date_trunc('day', NOW())`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}
