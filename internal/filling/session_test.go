package filling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/store"
	"github.com/redtoridefire/smart-autofill/internal/types"
)

const applicationPage = `
<html><body><form>
  <div><label for="fn">First Name</label><input id="fn" name="first_name"></div>
  <div><label for="ln">Last Name</label><input id="ln" name="last_name"></div>
  <div><label for="em">Email</label><input id="em" name="email" type="email"></div>
  <div><label for="ph">Phone</label><input id="ph" name="phone" type="tel"></div>
</form></body></html>`

func zeroDelay() *time.Duration {
	d := time.Duration(0)
	return &d
}

func storeWithProfile(t *testing.T) *store.Memory {
	t.Helper()
	st := store.NewMemory()
	err := st.SaveProfile(context.Background(), &types.Profile{
		FullName: "Jane Q. Public",
		Email:    "jane@example.com",
		Phone:    "555-0100",
	})
	require.NoError(t, err)
	return st
}

func automaticSettings() *types.Settings {
	settings := types.DefaultSettings()
	settings.AutoFillMode = types.ModeAutomatic
	return settings
}

func documentOf(t *testing.T, html, url string) *dom.Document {
	t.Helper()
	doc, err := dom.NewDocument(html, url)
	require.NoError(t, err)
	return doc
}

func TestFill_Basic(t *testing.T) {
	st := storeWithProfile(t)
	doc := documentOf(t, applicationPage, "https://jobs.example.com/apply")
	s := NewSession(doc, st, Options{Manual: true, Delay: zeroDelay()})
	ctx := context.Background()

	result, err := s.Fill(ctx)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 4, result.FieldsFilled)
	assert.Equal(t, 4, result.FieldsTotal)
	assert.Equal(t, "Filled 4 of 4 fields", result.Message)

	snap, err := doc.Snapshot(ctx)
	require.NoError(t, err)
	values := make(map[string]string)
	for _, f := range snap.Fields {
		values[f.Name] = f.Value
	}
	assert.Equal(t, "Jane", values["first_name"])
	assert.Equal(t, "Public", values["last_name"])
	assert.Equal(t, "jane@example.com", values["email"])
	assert.Equal(t, "555-0100", values["phone"])

	recs, err := st.RecentApplications(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1, "a successful pass records a history entry")
	assert.Equal(t, "jobs.example.com", recs[0].Host)
	assert.Equal(t, 4, recs[0].FieldsFilled)
}

func TestFill_PreservesExistingValues(t *testing.T) {
	page := `
<html><body><form>
  <div><label for="fn">First Name</label><input id="fn" name="first_name"></div>
  <div><label for="em">Email</label><input id="em" name="email" type="email" value="typed@byhand.example"></div>
</form></body></html>`

	st := storeWithProfile(t)
	doc := documentOf(t, page, "https://jobs.example.com/apply")
	s := NewSession(doc, st, Options{Manual: true, Delay: zeroDelay()})
	ctx := context.Background()

	result, err := s.Fill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FieldsFilled)

	snap, err := doc.Snapshot(ctx)
	require.NoError(t, err)
	for _, f := range snap.Fields {
		if f.Name == "email" {
			assert.Equal(t, "typed@byhand.example", f.Value, "existing values are never overwritten")
		}
	}
}

func TestFill_SecondPassReportsAlreadyFilled(t *testing.T) {
	st := storeWithProfile(t)
	doc := documentOf(t, applicationPage, "https://jobs.example.com/apply")
	s := NewSession(doc, st, Options{Manual: true, Delay: zeroDelay()})
	ctx := context.Background()

	first, err := s.Fill(ctx)
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := s.Fill(ctx)
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Equal(t, types.MsgAlreadyFilled, second.Message)
}

func TestFill_AutomaticModeGates(t *testing.T) {
	ctx := context.Background()

	t.Run("Disabled switch", func(t *testing.T) {
		st := storeWithProfile(t)
		settings := types.DefaultSettings()
		settings.AutoFillEnabled = false
		require.NoError(t, st.SaveSettings(ctx, settings))

		doc := documentOf(t, applicationPage, "https://boards.greenhouse.io/acme/jobs/1")
		result, err := NewSession(doc, st, Options{Delay: zeroDelay()}).Fill(ctx)
		require.NoError(t, err)
		assert.Equal(t, types.MsgDisabled, result.Message)
	})

	t.Run("Manual mode blocks automatic triggers", func(t *testing.T) {
		st := storeWithProfile(t)

		doc := documentOf(t, applicationPage, "https://jobs.lever.co/acme/123")
		result, err := NewSession(doc, st, Options{Delay: zeroDelay()}).Fill(ctx)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, types.MsgManualMode, result.Message, "the default mode only fills on explicit triggers")
		assert.Zero(t, result.FieldsFilled)
	})

	t.Run("Host off the allowlist", func(t *testing.T) {
		st := storeWithProfile(t)
		require.NoError(t, st.SaveSettings(ctx, automaticSettings()))

		doc := documentOf(t, applicationPage, "https://news.example.com/article")
		result, err := NewSession(doc, st, Options{Delay: zeroDelay()}).Fill(ctx)
		require.NoError(t, err)
		assert.Equal(t, types.MsgNotAllowed, result.Message)
	})

	t.Run("Allowlisted host fills", func(t *testing.T) {
		st := storeWithProfile(t)
		require.NoError(t, st.SaveSettings(ctx, automaticSettings()))

		doc := documentOf(t, applicationPage, "https://boards.greenhouse.io/acme/jobs/1")
		result, err := NewSession(doc, st, Options{Delay: zeroDelay()}).Fill(ctx)
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("Manual trigger bypasses both gates", func(t *testing.T) {
		st := storeWithProfile(t)
		settings := types.DefaultSettings()
		settings.AutoFillEnabled = false
		require.NoError(t, st.SaveSettings(ctx, settings))

		doc := documentOf(t, applicationPage, "https://news.example.com/article")
		result, err := NewSession(doc, st, Options{Manual: true, Delay: zeroDelay()}).Fill(ctx)
		require.NoError(t, err)
		assert.True(t, result.Success)
	})
}

func TestFill_NoProfile(t *testing.T) {
	doc := documentOf(t, applicationPage, "https://jobs.example.com/apply")
	result, err := NewSession(doc, store.NewMemory(), Options{Manual: true, Delay: zeroDelay()}).Fill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.MsgNoProfile, result.Message)
}

func TestFill_NoFields(t *testing.T) {
	doc := documentOf(t, `<html><body><p>Thanks for applying!</p></body></html>`, "https://jobs.example.com/done")
	result, err := NewSession(doc, storeWithProfile(t), Options{Manual: true, Delay: zeroDelay()}).Fill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.MsgNoFields, result.Message)
}

func TestFill_SectionCorrectionCountsAsSuccess(t *testing.T) {
	page := `
<html><body><form>
  <div class="experience-entry">
    <div><label for="jt1">Job Title</label><input id="jt1" name="job_title_1" value="Developer"></div>
    <div><label for="co1">Company</label><input id="co1" name="company_1" value="Acme"></div>
  </div>
</form></body></html>`

	st := storeWithProfile(t)
	ctx := context.Background()
	require.NoError(t, st.SaveResume(ctx, &types.ResumeData{
		Experience: []types.Experience{{Title: "Software Engineer", Company: "Acme"}},
	}))

	doc := documentOf(t, page, "https://jobs.example.com/apply")
	result, err := NewSession(doc, st, Options{Manual: true, Delay: zeroDelay()}).Fill(ctx)
	require.NoError(t, err)
	assert.True(t, result.Success, "a corrected section alone makes the pass successful")
	assert.Equal(t, 0, result.FieldsFilled)
	assert.Equal(t, 1, result.WorkExperienceCorrected)
	assert.Equal(t, 1, result.WorkExperienceValidated)

	recs, err := st.RecentApplications(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recs, "corrections alone do not record an application")
}

func TestFill_AutoNavigate(t *testing.T) {
	page := `
<html><body><form>
  <div><label for="fn">First Name</label><input id="fn" name="first_name"></div>
  <button type="button">Back</button>
  <button type="submit">Next</button>
</form></body></html>`

	ctx := context.Background()
	st := storeWithProfile(t)
	settings := automaticSettings()
	settings.AutoNavigate = true
	require.NoError(t, st.SaveSettings(ctx, settings))

	doc := documentOf(t, page, "https://boards.greenhouse.io/acme/jobs/1")
	result, err := NewSession(doc, st, Options{Delay: zeroDelay()}).Fill(ctx)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Len(t, doc.Clicked, 1, "the next control is clicked, the back control is not")
}
