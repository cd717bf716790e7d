package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redtoridefire/smart-autofill/internal/store"
	"github.com/redtoridefire/smart-autofill/internal/types"
)

func TestPrintFillResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFillResult(&types.FillResult{
		Success:                 true,
		FieldsFilled:            4,
		FieldsTotal:             6,
		WorkExperienceValidated: 2,
		WorkExperienceCorrected: 1,
		Message:                 "Filled 4 of 6 fields",
	})

	out := buf.String()
	assert.Contains(t, out, "FILL RESULT")
	assert.Contains(t, out, "Status:   OK")
	assert.Contains(t, out, "4 of 6 filled")
	assert.Contains(t, out, "Work:     2 validated, 1 corrected")
	assert.NotContains(t, out, "School:", "absent sections are omitted")
}

func TestPrintFillResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFillResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.Profile{FullName: "Jane Q. Public", Email: "jane@example.com"})
	assert.Contains(t, buf.String(), "Jane Q. Public")

	buf.Reset()
	p.PrintProfile(&types.Profile{})
	assert.Contains(t, buf.String(), "(empty)")
}

func TestPrintLearned(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	learned := make(map[string]string)
	for i := 0; i < 15; i++ {
		learned[fmt.Sprintf("question_%02d", i)] = "answer"
	}
	learned["question_00"] = strings.Repeat("v", 60)

	p.PrintLearned(learned)
	out := buf.String()
	assert.Contains(t, out, "Total entries: 15")
	assert.Contains(t, out, "... and 5 more")
	assert.Contains(t, out, "vvv...", "long values are truncated")

	buf.Reset()
	p.PrintLearned(nil)
	assert.Contains(t, buf.String(), "(none)")
}

func TestPrintApplications(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintApplications([]store.ApplicationRecord{
		{Host: "boards.greenhouse.io", FieldsFilled: 4, FieldsTotal: 6},
	}, 2)

	out := buf.String()
	assert.Contains(t, out, "Filled today: 2")
	assert.Contains(t, out, "boards.greenhouse.io")
}

func TestBoxGeometry(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", "short\n"+strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "every box line has the same width")
	}
}
