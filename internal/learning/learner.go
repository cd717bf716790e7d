// Package learning captures user-entered values from submitted or
// changed fields so later fills can reuse them.
package learning

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/fields"
	"github.com/redtoridefire/smart-autofill/internal/store"
)

// Minimum key lengths keep noise identifiers out of the learned map.
const (
	minNameKeyLen  = 3
	minLabelKeyLen = 4
)

// DefaultQuietPeriod is how long the user must stop interacting before
// a changed field is persisted, so every keystroke is not stored.
const DefaultQuietPeriod = 2 * time.Second

// Keys derives the storage keys for a field: its name, id, and label
// text, each only when long enough to be meaningful. A value is stored
// under every derived key.
func Keys(d fields.Descriptor) []string {
	var keys []string
	if len(d.Name) >= minNameKeyLen {
		keys = append(keys, d.Name)
	}
	if len(d.ID) >= minNameKeyLen {
		keys = append(keys, d.ID)
	}
	if label := strings.TrimSpace(d.Label); len(label) >= minLabelKeyLen {
		keys = append(keys, label)
	}
	return keys
}

// Learner persists observed answers. Last write wins per key; there is
// no deduplication beyond key identity and no expiry.
type Learner struct {
	Store   store.Store
	Quiet   time.Duration
	Verbose bool

	mu      sync.Mutex
	pending map[string]string
	timer   *time.Timer
}

// NewLearner returns a Learner with the default quiet period.
func NewLearner(st store.Store) *Learner {
	return &Learner{Store: st, Quiet: DefaultQuietPeriod}
}

// CaptureForm learns from every non-empty field of a submitted form
// snapshot and returns how many entries were stored.
func (l *Learner) CaptureForm(ctx context.Context, snap *dom.Snapshot) (int, error) {
	learned := make(map[string]string)
	for _, f := range snap.Fields {
		value := strings.TrimSpace(f.Value)
		if value == "" {
			continue
		}
		for _, key := range Keys(fields.Describe(f)) {
			learned[key] = value
		}
	}
	if len(learned) == 0 {
		return 0, nil
	}
	if err := l.Store.MergeLearned(ctx, learned); err != nil {
		return 0, err
	}
	if l.Verbose {
		log.Printf("[LEARN] captured %d entries from form submission", len(learned))
	}
	return len(learned), nil
}

// ObserveChange records a changed field and schedules persistence after
// the quiet period. Repeated changes reset the timer.
func (l *Learner) ObserveChange(f dom.Field) {
	value := strings.TrimSpace(f.Value)
	if value == "" {
		return
	}
	keys := Keys(fields.Describe(f))
	if len(keys) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending == nil {
		l.pending = make(map[string]string)
	}
	for _, key := range keys {
		l.pending[key] = value
	}

	quiet := l.Quiet
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(quiet, func() {
		if err := l.Flush(context.Background()); err != nil {
			log.Printf("[LEARN] flush failed: %v", err)
		}
	})
}

// Flush persists pending observations immediately.
func (l *Learner) Flush(ctx context.Context) error {
	l.mu.Lock()
	pending := l.pending
	l.pending = nil
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	if err := l.Store.MergeLearned(ctx, pending); err != nil {
		return err
	}
	if l.Verbose {
		log.Printf("[LEARN] persisted %d changed field(s)", len(pending))
	}
	return nil
}

// Close stops the debounce timer and flushes anything pending.
func (l *Learner) Close(ctx context.Context) error {
	return l.Flush(ctx)
}
