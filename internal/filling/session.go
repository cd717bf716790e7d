// Package filling orchestrates one page's fill lifecycle: enumerate,
// resolve, write, validate, and watch for dynamic content.
package filling

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/fields"
	"github.com/redtoridefire/smart-autofill/internal/learning"
	"github.com/redtoridefire/smart-autofill/internal/matching"
	"github.com/redtoridefire/smart-autofill/internal/resolving"
	"github.com/redtoridefire/smart-autofill/internal/sections"
	"github.com/redtoridefire/smart-autofill/internal/sites"
	"github.com/redtoridefire/smart-autofill/internal/store"
	"github.com/redtoridefire/smart-autofill/internal/types"
	"github.com/redtoridefire/smart-autofill/internal/writing"
)

// Options configures a fill session.
type Options struct {
	// Manual marks a user-initiated trigger. Manual intent always wins:
	// it bypasses the enabled switch, the mode setting, and the site
	// allowlist.
	Manual  bool
	Verbose bool
	// Delay overrides the stored fill speed when non-nil. Tests use a
	// zero override.
	Delay *time.Duration
}

// Session owns the per-page fill state: which elements this session has
// already filled, and how many dynamic-content re-fills have run. It is
// created at pass start and discarded on page unload; nothing lives at
// package scope.
type Session struct {
	ID       uuid.UUID
	page     dom.Page
	store    store.Store
	resolver *resolving.Resolver
	writer   *writing.Writer
	learner  *learning.Learner
	opts     Options

	// filled tracks per-session element identity so repeated
	// dynamic-content passes never revisit an element we already wrote.
	filled map[dom.Ref]bool
}

// NewSession creates a session for one page.
func NewSession(page dom.Page, st store.Store, opts Options) *Session {
	writer := writing.New(page)
	writer.Verbose = opts.Verbose
	return &Session{
		ID:       uuid.New(),
		page:     page,
		store:    st,
		resolver: resolving.New(),
		writer:   writer,
		learner:  learning.NewLearner(st),
		opts:     opts,
		filled:   make(map[dom.Ref]bool),
	}
}

// Learner exposes the session's learning subsystem for change feeds.
func (s *Session) Learner() *learning.Learner {
	return s.learner
}

// delay returns the inter-field pacing: the configured fill speed,
// intentionally throttling writes to look human-paced and to let
// reactive frameworks process each change before the next.
func (s *Session) delay(settings *types.Settings) time.Duration {
	if s.opts.Delay != nil {
		return *s.opts.Delay
	}
	speed := settings.FillSpeedMS
	if speed <= 0 {
		speed = types.DefaultFillSpeedMS
	}
	return time.Duration(speed) * time.Millisecond
}

// empty reports whether a field is fillable-empty for its kind: no
// value for text and selects, unchecked for radios and checkboxes.
func empty(f dom.Field) bool {
	switch f.Kind {
	case dom.KindRadio, dom.KindCheckbox:
		return !f.Checked
	default:
		return strings.TrimSpace(f.Value) == ""
	}
}

// Fill runs one pass over the page. Configuration failures abort before
// any DOM mutation; discovery and write failures complete the pass with
// diagnostic counts. The returned error covers only store/page access.
func (s *Session) Fill(ctx context.Context) (*types.FillResult, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if !s.opts.Manual {
		if !settings.AutoFillEnabled {
			return types.Failure(types.MsgDisabled), nil
		}
		if settings.AutoFillMode != types.ModeAutomatic {
			return types.Failure(types.MsgManualMode), nil
		}
		gate := sites.NewGate(settings.AllowedSites, settings.DisabledDefaultSites)
		if !gate.Allowed(s.pageURL(ctx)) {
			return types.Failure(types.MsgNotAllowed), nil
		}
	}

	profile, err := s.store.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	resume, err := s.store.Resume(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if profile.IsEmpty() && resume.IsEmpty() {
		return types.Failure(types.MsgNoProfile), nil
	}
	learned, err := s.store.LearnedResponses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load learned responses: %w", err)
	}

	snap, err := s.page.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(snap.Fields) == 0 {
		return types.Failure(types.MsgNoFields), nil
	}

	delay := s.delay(settings)
	result := &types.FillResult{FieldsTotal: len(snap.Fields)}
	skippedOurs := 0

	for _, f := range snap.Fields {
		if s.filled[f.Ref] {
			skippedOurs++
			continue
		}
		// Never overwrite a value the user (or the page) already put
		// there. Only the section corrector may do that, deliberately.
		if !empty(f) {
			continue
		}

		if !pause(ctx, delay) {
			break
		}

		d := fields.Describe(f)
		value, source := s.resolver.Resolve(d, profile, resume, learned)
		if value == "" {
			if s.opts.Verbose {
				log.Printf("[FILL] no match for field %q (search: %.60q)", f.Ref, d.SearchString)
			}
			continue
		}

		if s.writer.Apply(ctx, f, value, source == resolving.SourceLearned) {
			result.FieldsFilled++
			s.filled[f.Ref] = true
			if s.opts.Verbose {
				log.Printf("[FILL] %s <- %q (%s)", f.Ref, value, source)
			}
		}
	}

	// Cross-validate structured sections against the resume, using the
	// post-fill state of the page.
	if resume != nil {
		if postSnap, snapErr := s.page.Snapshot(ctx); snapErr == nil {
			corrector := sections.NewCorrector(s.writer, delay)
			corrector.Verbose = s.opts.Verbose
			outcome := corrector.Run(ctx, postSnap, resume)
			result.WorkExperienceValidated = outcome.WorkValidated
			result.WorkExperienceCorrected = outcome.WorkCorrected
			result.EducationValidated = outcome.EducationValidated
			result.EducationCorrected = outcome.EducationCorrected
		}
	}

	if result.FieldsFilled == 0 && result.WorkExperienceCorrected == 0 && result.EducationCorrected == 0 {
		if skippedOurs == len(snap.Fields) {
			result.Message = types.MsgAlreadyFilled
		} else {
			result.Message = types.MsgNoMatches
		}
		return result, nil
	}

	result.Success = true
	result.Message = fmt.Sprintf("Filled %d of %d fields", result.FieldsFilled, result.FieldsTotal)

	if result.FieldsFilled > 0 {
		s.recordApplication(ctx, snap.URL, result)
	}

	if settings.AutoNavigate && !s.opts.Manual {
		s.navigate(ctx, snap, settings.LearnMode)
	}

	return result, nil
}

// pageURL fetches the page URL cheaply for the allowlist gate.
func (s *Session) pageURL(ctx context.Context) string {
	type urler interface{ URL() string }
	if u, ok := s.page.(urler); ok {
		return u.URL()
	}
	snap, err := s.page.Snapshot(ctx)
	if err != nil {
		return ""
	}
	return snap.URL
}

// recordApplication appends a history entry; history is bookkeeping and
// never fails a pass.
func (s *Session) recordApplication(ctx context.Context, pageURL string, result *types.FillResult) {
	host := ""
	if parsed, err := url.Parse(pageURL); err == nil {
		host = parsed.Hostname()
	}
	rec := &store.ApplicationRecord{
		ID:           uuid.New(),
		URL:          pageURL,
		Host:         host,
		FieldsFilled: result.FieldsFilled,
		FieldsTotal:  result.FieldsTotal,
		CreatedAt:    time.Now(),
	}
	if err := s.store.AppendApplication(ctx, rec); err != nil && s.opts.Verbose {
		log.Printf("[FILL] failed to record application: %v", err)
	}
}

// navigate finds and clicks a continue/next control, skipping cancel
// and back buttons. Off unless explicitly enabled. Advancing commits
// the step, so the final form state is captured for learning first.
func (s *Session) navigate(ctx context.Context, snap *dom.Snapshot, learn bool) {
	for _, ctl := range snap.Controls {
		text := strings.ToLower(ctl.Text)
		if !matching.MatchesAny(text, matching.NavigationPatterns) {
			continue
		}
		if matching.MatchesAny(text, matching.NavigationExcludes) {
			continue
		}
		if learn {
			if cur, err := s.page.Snapshot(ctx); err == nil {
				if n, err := s.learner.CaptureForm(ctx, cur); err == nil && n > 0 && s.opts.Verbose {
					log.Printf("[LEARN] captured %d entries before navigating", n)
				}
			}
		}
		if s.opts.Verbose {
			log.Printf("[FILL] navigating via control %q", ctl.Text)
		}
		_ = s.page.Highlight(ctx, ctl.Ref)
		if err := s.page.Click(ctx, ctl.Ref); err != nil && s.opts.Verbose {
			log.Printf("[FILL] navigation click failed: %v", err)
		}
		return
	}
}

// pause waits the inter-field delay, reporting false on cancellation.
func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
