package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redtoridefire/smart-autofill/internal/types"
)

func TestMemory_ProfileRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	empty, err := m.Profile(ctx)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	saved := &types.Profile{FullName: "Jane Q. Public", Email: "jane@example.com"}
	require.NoError(t, m.SaveProfile(ctx, saved))

	got, err := m.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Public", got.FullName)

	got.FullName = "mutated"
	again, err := m.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Public", again.FullName, "callers get copies")
}

func TestMemory_SettingsDefault(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	s, err := m.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultSettings(), s)

	s.AutoFillEnabled = false
	require.NoError(t, m.SaveSettings(ctx, s))

	got, err := m.Settings(ctx)
	require.NoError(t, err)
	assert.False(t, got.AutoFillEnabled)
}

func TestMemory_ResumeNilUntilSaved(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	r, err := m.Resume(ctx)
	require.NoError(t, err)
	assert.Nil(t, r)

	require.NoError(t, m.SaveResume(ctx, &types.ResumeData{Name: "Jane Q. Public"}))
	r, err = m.Resume(ctx)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "Jane Q. Public", r.Name)
}

func TestMemory_Learned(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.MergeLearned(ctx, map[string]string{"salary": "$100,000", "referral": "Hacker News"}))
	require.NoError(t, m.MergeLearned(ctx, map[string]string{"salary": "$150,000"}))

	learned, err := m.LearnedResponses(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$150,000", learned["salary"], "last write wins")
	assert.Equal(t, "Hacker News", learned["referral"])

	learned["salary"] = "mutated"
	fresh, err := m.LearnedResponses(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$150,000", fresh["salary"], "callers get copies")

	require.NoError(t, m.ClearLearned(ctx))
	cleared, err := m.LearnedResponses(ctx)
	require.NoError(t, err)
	assert.Empty(t, cleared)
}

func TestMemory_Applications(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, host := range []string{"a.example", "b.example", "c.example"} {
		require.NoError(t, m.AppendApplication(ctx, &ApplicationRecord{
			ID:        uuid.New(),
			Host:      host,
			CreatedAt: time.Now(),
		}))
	}

	recent, err := m.RecentApplications(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c.example", recent[0].Host, "newest first")
	assert.Equal(t, "b.example", recent[1].Host)

	all, err := m.RecentApplications(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3, "non-positive limit returns everything")
}

func TestMemory_FilledToday(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.AppendApplication(ctx, &ApplicationRecord{CreatedAt: time.Now()}))
	require.NoError(t, m.AppendApplication(ctx, &ApplicationRecord{CreatedAt: time.Now().Add(-48 * time.Hour)}))

	n, err := m.FilledToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
