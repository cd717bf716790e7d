package resolving

import (
	"time"

	"github.com/redtoridefire/smart-autofill/internal/fields"
)

// availabilityNotice is how far out a start date is suggested.
const availabilityNotice = 14 * 24 * time.Hour

// availability answers start-date/availability fields: a date two weeks
// from today for date-typed fields, the literal "Immediately" otherwise.
func (r *Resolver) availability(d fields.Descriptor) string {
	if d.Type == "date" {
		now := time.Now
		if r.Now != nil {
			now = r.Now
		}
		return now().Add(availabilityNotice).Format("2006-01-02")
	}
	return "Immediately"
}
