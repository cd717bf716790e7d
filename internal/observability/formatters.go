// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/redtoridefire/smart-autofill/internal/store"
	"github.com/redtoridefire/smart-autofill/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFillResult outputs a human-readable summary of one fill pass.
func (p *Printer) PrintFillResult(result *types.FillResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	status := "FAILED"
	if result.Success {
		status = "OK"
	}
	sb.WriteString(fmt.Sprintf("Status:   %s\n", status))
	sb.WriteString(fmt.Sprintf("Fields:   %d of %d filled\n", result.FieldsFilled, result.FieldsTotal))

	if result.WorkExperienceValidated > 0 || result.WorkExperienceCorrected > 0 {
		sb.WriteString(fmt.Sprintf("Work:     %d validated, %d corrected\n",
			result.WorkExperienceValidated, result.WorkExperienceCorrected))
	}
	if result.EducationValidated > 0 || result.EducationCorrected > 0 {
		sb.WriteString(fmt.Sprintf("School:   %d validated, %d corrected\n",
			result.EducationValidated, result.EducationCorrected))
	}
	if result.Message != "" {
		sb.WriteString(fmt.Sprintf("\n%s", result.Message))
	}

	p.printBox("FILL RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs the stored candidate profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil || profile.IsEmpty() {
		p.printBox("PROFILE", "(empty)")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", profile.FullName))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", profile.Email))
	sb.WriteString(fmt.Sprintf("Phone:     %s\n", profile.Phone))
	if profile.LinkedIn != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn:  %s\n", profile.LinkedIn))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", profile.Location))
	}
	if profile.WorkAuth != "" {
		sb.WriteString(fmt.Sprintf("Work auth: %s\n", profile.WorkAuth))
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLearned outputs the learned responses, keys sorted, values
// truncated for display.
func (p *Printer) PrintLearned(learned map[string]string) {
	if len(learned) == 0 {
		p.printBox("LEARNED RESPONSES", "(none)")
		return
	}

	keys := make([]string, 0, len(learned))
	for k := range learned {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total entries: %d\n\n", len(keys)))

	count := min(len(keys), maxItemsToShow)
	for i := 0; i < count; i++ {
		value := learned[keys[i]]
		if len(value) > 30 {
			value = value[:27] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s: %s\n", keys[i], value))
	}
	if len(keys) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(keys)-maxItemsToShow))
	}

	p.printBox("LEARNED RESPONSES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintApplications outputs recent application history with today's count.
func (p *Printer) PrintApplications(records []store.ApplicationRecord, today int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Filled today: %d\n", today))

	if len(records) > 0 {
		sb.WriteString("\n")
		count := min(len(records), maxItemsToShow)
		for i := 0; i < count; i++ {
			rec := records[i]
			sb.WriteString(fmt.Sprintf("• %s  %d/%d  %s\n",
				rec.CreatedAt.Format("Jan 02 15:04"), rec.FieldsFilled, rec.FieldsTotal, rec.Host))
		}
		if len(records) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(records)-maxItemsToShow))
		}
	}

	p.printBox("APPLICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSitePatterns outputs the effective allowlist patterns.
func (p *Printer) PrintSitePatterns(patterns []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Active patterns: %d\n\n", len(patterns)))

	count := min(len(patterns), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", patterns[i]))
	}
	if len(patterns) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(patterns)-maxItemsToShow))
	}

	p.printBox("SITE ALLOWLIST", strings.TrimSuffix(sb.String(), "\n"))
}
