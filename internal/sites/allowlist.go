// Package sites decides whether automatic filling is permitted on a
// page. Manual triggers bypass this gate entirely.
package sites

import (
	"net/url"
	"strings"
)

// DefaultPatterns is the built-in allowlist: major applicant tracking
// systems, job boards, and common career-page path patterns. A leading
// slash marks a path-prefix pattern; everything else matches against
// the hostname.
var DefaultPatterns = []string{
	// Major ATS (Applicant Tracking Systems)
	"workday.com",
	"myworkdayjobs.com",
	"greenhouse.io",
	"greenhouse.com",
	"lever.co",
	"icims.com",
	"smartrecruiters.com",
	"taleo.net",
	"successfactors.com",
	"ultipro.com",
	"jobvite.com",
	"bamboohr.com",
	"workable.com",
	"breezy.hr",
	"recruitee.com",
	"ashbyhq.com",
	"applytojob.com",

	// Job boards
	"indeed.com",
	"linkedin.com",
	"monster.com",
	"glassdoor.com",
	"dice.com",
	"careerbuilder.com",
	"ziprecruiter.com",
	"simplyhired.com",
	"snagajob.com",
	"craigslist.org",

	// Tech-specific
	"angel.co",
	"wellfound.com",
	"stackoverflow.com/jobs",
	"hired.com",
	"otta.com",
	"cord.co",

	// Company career pages (common patterns)
	"/careers",
	"/jobs",
	"/apply",
	"/application",
	"/positions",
	"/opportunities",
}

// Gate evaluates URLs against the effective allowlist: defaults plus
// custom patterns, minus explicitly disabled defaults.
type Gate struct {
	Custom           []string
	DisabledDefaults []string
}

// NewGate builds a gate from the stored custom and disabled lists.
func NewGate(custom, disabledDefaults []string) *Gate {
	return &Gate{Custom: custom, DisabledDefaults: disabledDefaults}
}

// Patterns returns the effective pattern set.
func (g *Gate) Patterns() []string {
	disabled := make(map[string]bool, len(g.DisabledDefaults))
	for _, p := range g.DisabledDefaults {
		disabled[strings.ToLower(p)] = true
	}
	var out []string
	for _, p := range DefaultPatterns {
		if !disabled[strings.ToLower(p)] {
			out = append(out, p)
		}
	}
	out = append(out, g.Custom...)
	return out
}

// Allowed reports whether the URL matches the effective allowlist.
func (g *Gate) Allowed(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	full := strings.ToLower(rawURL)
	hostname := strings.ToLower(parsed.Hostname())

	for _, pattern := range g.Patterns() {
		p := strings.ToLower(pattern)
		if strings.HasPrefix(p, "/") {
			// Path-based pattern.
			if strings.Contains(full, p) {
				return true
			}
		} else if strings.Contains(hostname, p) {
			return true
		}
	}
	return false
}
