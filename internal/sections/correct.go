package sections

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/fields"
	"github.com/redtoridefire/smart-autofill/internal/matching"
	"github.com/redtoridefire/smart-autofill/internal/types"
	"github.com/redtoridefire/smart-autofill/internal/writing"
)

// Outcome aggregates the validation counts for one pass.
type Outcome struct {
	WorkValidated      int
	WorkCorrected      int
	EducationValidated int
	EducationCorrected int
}

// Corrector cross-validates detected sections against resume records
// and overwrites mismatches.
type Corrector struct {
	Writer  *writing.Writer
	Matcher matching.Matcher
	// Delay is the inter-field delay, the same pacing the filler uses.
	Delay   time.Duration
	Verbose bool
}

// NewCorrector returns a Corrector writing through the given writer.
func NewCorrector(w *writing.Writer, delay time.Duration) *Corrector {
	return &Corrector{Writer: w, Matcher: matching.Default, Delay: delay}
}

// Run validates and corrects work-experience and education sections.
// Sections zip positionally against the resume sequences: section i
// validates against record i, and whichever side is longer has its
// extras ignored.
func (c *Corrector) Run(ctx context.Context, snap *dom.Snapshot, resume *types.ResumeData) Outcome {
	var out Outcome
	if resume == nil || snap == nil {
		return out
	}

	for i, section := range Detect(snap, Work, c.Matcher) {
		if i >= len(resume.Experience) {
			break
		}
		rec := resume.Experience[i]
		validated, corrected := c.reconcile(ctx, section, Work, func(cat Category) string {
			return expectedWorkValue(rec, cat)
		})
		out.WorkValidated += validated
		out.WorkCorrected += corrected
	}

	for i, section := range Detect(snap, Education, c.Matcher) {
		if i >= len(resume.Education) {
			break
		}
		rec := resume.Education[i]
		validated, corrected := c.reconcile(ctx, section, Education, func(cat Category) string {
			return expectedEducationValue(rec, cat)
		})
		out.EducationValidated += validated
		out.EducationCorrected += corrected
	}

	if c.Verbose {
		log.Printf("[SECTIONS] work: %d validated, %d corrected; education: %d validated, %d corrected",
			out.WorkValidated, out.WorkCorrected, out.EducationValidated, out.EducationCorrected)
	}
	return out
}

// reconcile compares every classifiable field of a section against the
// expected record attribute. A disagreement is not an error but a
// correction opportunity: the field is overwritten and counted.
func (c *Corrector) reconcile(ctx context.Context, section Section, kind Kind, expected func(Category) string) (validated, corrected int) {
	for _, f := range section.Fields {
		cat, ok := Classify(fields.Describe(f), kind, c.Matcher)
		if !ok {
			continue
		}
		want := expected(cat)
		if want == "" {
			continue
		}

		current := strings.TrimSpace(f.Value)
		if current != "" && Matches(current, want) {
			validated++
			continue
		}

		if !c.pause(ctx) {
			return validated, corrected
		}
		if c.Writer.Apply(ctx, f, want, false) {
			corrected++
			if c.Verbose {
				log.Printf("[SECTIONS] corrected %s %s: %q -> %q", kind, cat, current, want)
			}
		}
	}
	return validated, corrected
}

// pause waits the inter-field delay, reporting false on cancellation.
func (c *Corrector) pause(ctx context.Context) bool {
	if c.Delay <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.Delay):
		return true
	}
}
