package filling

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/redtoridefire/smart-autofill/internal/dom"
)

// Dynamic-content bounds: multi-step wizards inject fields after load,
// but unbounded re-fills on a hostile page must not loop forever.
const (
	DefaultWatchInterval = time.Second
	MaxWatchAttempts     = 3
)

// Subscription is a running watch. Stop cancels it; Wait blocks until
// the watch loop has exited and returns its error, if any.
type Subscription struct {
	stop   context.CancelFunc
	wait   func() error
	paused atomic.Bool
}

// Stop cancels the watch.
func (s *Subscription) Stop() { s.stop() }

// Wait blocks until the watch loop exits.
func (s *Subscription) Wait() error { return s.wait() }

// Pause suspends re-fill passes without tearing the watch down, for
// when the page is not visible.
func (s *Subscription) Pause() { s.paused.Store(true) }

// Resume re-enables re-fill passes.
func (s *Subscription) Resume() { s.paused.Store(false) }

// Watch polls the page for newly appeared empty fields and re-runs the
// fill pass when it finds any, at most MaxWatchAttempts times. The
// session's filled set carries across passes, so elements filled earlier
// are never revisited.
func (s *Session) Watch(ctx context.Context, interval time.Duration) *Subscription {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	sub := &Subscription{stop: cancel, wait: g.Wait}

	learn := s.learnEnabled(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer func() {
			if err := s.learner.Close(context.Background()); err != nil {
				log.Printf("[LEARN] final flush failed: %v", err)
			}
		}()

		attempts := 0
		lastCandidates := -1
		seen := make(map[dom.Ref]string)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
			}
			if sub.paused.Load() {
				continue
			}

			snap, err := s.page.Snapshot(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				continue
			}
			if learn {
				s.observeUserEdits(snap, seen)
			}
			candidates := s.countCandidates(snap)
			// Only a change in the candidate count signals injected
			// content; a static page never triggers a pass.
			if candidates == 0 || candidates == lastCandidates {
				lastCandidates = candidates
				continue
			}
			lastCandidates = candidates

			if attempts >= MaxWatchAttempts {
				if s.opts.Verbose {
					log.Printf("[WATCH] attempt limit reached, ignoring further changes")
				}
				return nil
			}
			attempts++
			if s.opts.Verbose {
				log.Printf("[WATCH] %d new empty field(s), re-fill attempt %d/%d", candidates, attempts, MaxWatchAttempts)
			}
			if _, err := s.Fill(gctx); err != nil {
				if gctx.Err() != nil {
					return nil
				}
				log.Printf("[WATCH] re-fill failed: %v", err)
			}
		}
	})

	return sub
}

// learnEnabled reads the learn-mode switch; store failures disable
// learning for the watch rather than failing it.
func (s *Session) learnEnabled(ctx context.Context) bool {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return false
	}
	return settings.LearnMode
}

// observeUserEdits feeds fields the user changed into the learner.
// Fields this session wrote are excluded; only genuine user input is
// worth remembering.
func (s *Session) observeUserEdits(snap *dom.Snapshot, seen map[dom.Ref]string) {
	for _, f := range snap.Fields {
		if s.filled[f.Ref] {
			continue
		}
		last, known := seen[f.Ref]
		seen[f.Ref] = f.Value
		if !known || last == f.Value {
			continue
		}
		s.learner.ObserveChange(f)
	}
}

// countCandidates counts empty fields this session has not yet filled.
func (s *Session) countCandidates(snap *dom.Snapshot) int {
	count := 0
	for _, f := range snap.Fields {
		if s.filled[f.Ref] {
			continue
		}
		if empty(f) {
			count++
		}
	}
	return count
}
