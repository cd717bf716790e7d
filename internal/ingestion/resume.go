// Package ingestion loads resume data from disk: a regex sweep over
// plain text, or a structured JSON document for section validation.
package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/redtoridefire/smart-autofill/internal/types"
)

var (
	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRegex    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRegex = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
)

// maxNameLineLen bounds the first-line name heuristic; longer first
// lines are headers or prose, not a name.
const maxNameLineLen = 50

// ParseText sweeps plain resume text for contact data. The full text is
// always kept; extraction failures leave fields empty rather than error.
func ParseText(text string) *types.ResumeData {
	data := &types.ResumeData{FullText: text}

	if m := emailRegex.FindString(text); m != "" {
		data.Email = m
	}
	if m := phoneRegex.FindString(text); m != "" {
		data.Phone = m
	}
	if m := linkedinRegex.FindString(text); m != "" {
		data.LinkedIn = "https://" + m
	}

	// The name is assumed to be the first non-empty line, when it looks
	// like one.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) < maxNameLineLen && !strings.Contains(line, "@") {
			data.Name = line
		}
		break
	}

	return data
}

// LoadFile reads a resume from disk. JSON files are decoded as full
// structured resume data; anything else is treated as plain text.
func LoadFile(path string) (*types.ResumeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var data types.ResumeData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
		}
		if data.FullText == "" {
			data.FullText = string(raw)
		}
		return &data, nil
	}

	return ParseText(string(raw)), nil
}
