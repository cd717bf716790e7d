package sections

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/types"
	"github.com/redtoridefire/smart-autofill/internal/writing"
)

const historyPage = `
<html><body><form>
  <div class="experience-entry">
    <div><label for="jt1">Job Title</label><input id="jt1" name="job_title_1" value="Developer"></div>
    <div><label for="co1">Company</label><input id="co1" name="company_1" value="Acme"></div>
  </div>
  <div class="experience-entry">
    <div><label for="jt2">Job Title</label><input id="jt2" name="job_title_2" value="Senior Engineer"></div>
    <div><label for="co2">Company</label><input id="co2" name="company_2" value="Globex"></div>
  </div>
  <div class="experience-entry">
    <div><label for="jt3">Job Title</label><input id="jt3" name="job_title_3" value="Intern"></div>
    <div><label for="co3">Company</label><input id="co3" name="company_3" value="Initech"></div>
  </div>
  <div class="education-entry">
    <div><label for="sc1">School</label><input id="sc1" name="school_1" value="State University"></div>
    <div><label for="dg1">Degree</label><input id="dg1" name="degree_1" value=""></div>
  </div>
</form></body></html>`

func historyResume() *types.ResumeData {
	return &types.ResumeData{
		Experience: []types.Experience{
			{Title: "Software Engineer", Company: "Acme"},
			{Title: "Senior Engineer", Company: "Globex"},
		},
		Education: []types.Education{
			{School: "State University", Degree: "BS"},
		},
	}
}

func TestCorrector_Run(t *testing.T) {
	doc, err := dom.NewDocument(historyPage, "https://jobs.example.com/apply")
	require.NoError(t, err)
	ctx := context.Background()
	snap, err := doc.Snapshot(ctx)
	require.NoError(t, err)

	c := NewCorrector(writing.New(doc), 0)
	out := c.Run(ctx, snap, historyResume())

	assert.Equal(t, 3, out.WorkValidated, "matching company and second-job fields validate")
	assert.Equal(t, 1, out.WorkCorrected, "mismatched first-job title is overwritten")
	assert.Equal(t, 1, out.EducationValidated)
	assert.Equal(t, 1, out.EducationCorrected, "empty degree field is filled from the record")

	after, err := doc.Snapshot(ctx)
	require.NoError(t, err)
	values := make(map[string]string)
	for _, f := range after.Fields {
		values[f.Name] = f.Value
	}
	assert.Equal(t, "Software Engineer", values["job_title_1"])
	assert.Equal(t, "Acme", values["company_1"])
	assert.Equal(t, "BS", values["degree_1"])
	assert.Equal(t, "Intern", values["job_title_3"],
		"sections beyond the record list are left alone")
}

func TestCorrector_NilInputs(t *testing.T) {
	c := NewCorrector(nil, 0)
	assert.Zero(t, c.Run(context.Background(), nil, historyResume()))
	assert.Zero(t, c.Run(context.Background(), &dom.Snapshot{}, nil))
}

func TestCorrector_CancelledContext(t *testing.T) {
	doc, err := dom.NewDocument(historyPage, "https://jobs.example.com/apply")
	require.NoError(t, err)
	snap, err := doc.Snapshot(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCorrector(writing.New(doc), 0)
	out := c.Run(ctx, snap, historyResume())
	assert.Zero(t, out.WorkCorrected, "no writes happen after cancellation")
	assert.Zero(t, out.EducationCorrected)
}
