package resolving

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/fields"
	"github.com/redtoridefire/smart-autofill/internal/types"
)

func descriptorFor(f dom.Field) fields.Descriptor {
	return fields.Describe(f)
}

func testProfile() *types.Profile {
	return &types.Profile{
		FullName: "Jane Q. Public",
		Email:    "jane@example.com",
		Phone:    "555-0100",
		LinkedIn: "https://linkedin.com/in/janepublic",
		Location: "Austin, TX",
	}
}

func TestResolve_NameFamily(t *testing.T) {
	r := New()
	p := testProfile()

	tests := []struct {
		name  string
		field dom.Field
		want  string
	}{
		{"First name", dom.Field{Name: "first_name", Label: "First Name"}, "Jane"},
		{"Last name", dom.Field{Name: "last_name", Label: "Last Name"}, "Public"},
		{"Full name", dom.Field{Name: "applicant_name", Label: "Full Name"}, "Jane Q. Public"},
		{"Middle name is never guessed", dom.Field{Name: "middle_name", Label: "Middle Name"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, source := r.Resolve(descriptorFor(tt.field), p, nil, nil)
			assert.Equal(t, tt.want, value)
			if tt.want != "" {
				assert.Equal(t, SourceProfile, source)
			}
		})
	}
}

func TestResolve_ContactFields(t *testing.T) {
	r := New()
	p := testProfile()

	email, _ := r.Resolve(descriptorFor(dom.Field{Name: "contact", Type: "email"}), p, nil, nil)
	assert.Equal(t, "jane@example.com", email, "type=email resolves even without keywords")

	phone, _ := r.Resolve(descriptorFor(dom.Field{Label: "Phone Number"}), p, nil, nil)
	assert.Equal(t, "555-0100", phone)

	linkedin, _ := r.Resolve(descriptorFor(dom.Field{Name: "linkedin_url"}), p, nil, nil)
	assert.Equal(t, "https://linkedin.com/in/janepublic", linkedin)
}

func TestResolve_LocationFamily(t *testing.T) {
	r := New()
	p := testProfile()

	tests := []struct {
		name  string
		field dom.Field
		want  string
	}{
		{"City", dom.Field{Name: "city", Label: "City"}, "Austin"},
		{"State", dom.Field{Name: "location_state", Label: "State"}, "TX"},
		{"Combined location", dom.Field{Name: "location", Label: "Location"}, "Austin, TX"},
		{"Country", dom.Field{Name: "location_country", Label: "Country"}, "United States"},
		{"Street address refuses", dom.Field{Name: "address_line_1", Label: "Address Line 1"}, ""},
		{"Apartment refuses", dom.Field{Label: "Apt / Suite", Name: "home_address_apt"}, ""},
		{"Zip refuses", dom.Field{Name: "address_zip", Label: "Zip Code"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, _ := r.Resolve(descriptorFor(tt.field), p, nil, nil)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestResolve_StreetAddressFallsThroughToLearned(t *testing.T) {
	r := New()
	learned := map[string]string{
		"address_line_1": "12 Main St",
		"address_zip":    "78701",
	}

	// The profile never guesses street lines or zips, but a previously
	// learned answer still fills them.
	value, source := r.Resolve(descriptorFor(dom.Field{Name: "address_line_1", Label: "Address Line 1"}), testProfile(), nil, learned)
	assert.Equal(t, "12 Main St", value)
	assert.Equal(t, SourceLearned, source)

	value, source = r.Resolve(descriptorFor(dom.Field{Name: "address_zip", Label: "Zip Code"}), testProfile(), nil, learned)
	assert.Equal(t, "78701", value)
	assert.Equal(t, SourceLearned, source)
}

func TestResolve_WorkAuth(t *testing.T) {
	r := New()

	value, _ := r.Resolve(descriptorFor(dom.Field{Label: "Are you authorized to work in the United States?"}), testProfile(), nil, nil)
	assert.Equal(t, "Yes", value, "defaults to Yes when the profile has no explicit answer")

	p := testProfile()
	p.WorkAuth = "Yes, no sponsorship required"
	value, _ = r.Resolve(descriptorFor(dom.Field{Label: "Work authorization status"}), p, nil, nil)
	assert.Equal(t, "Yes, no sponsorship required", value)
}

func TestResolve_StartDate(t *testing.T) {
	r := New()
	r.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	dated, _ := r.Resolve(descriptorFor(dom.Field{Label: "Earliest start date", Type: "date"}), testProfile(), nil, nil)
	assert.Equal(t, "2026-03-15", dated, "date inputs get a start date two weeks out")

	text, _ := r.Resolve(descriptorFor(dom.Field{Label: "When can you start?", Name: "start_date"}), testProfile(), nil, nil)
	assert.Equal(t, "Immediately", text)
}

func TestResolve_LearnedFallback(t *testing.T) {
	r := New()
	learned := map[string]string{
		"custom_question_7": "Hacker News",
		"Desired salary":    "$150,000",
	}

	// Exact key on name.
	value, source := r.Resolve(descriptorFor(dom.Field{Name: "custom_question_7", Label: "How did you hear about us?"}), testProfile(), nil, learned)
	assert.Equal(t, "Hacker News", value)
	assert.Equal(t, SourceLearned, source)

	// Fuzzy label containment.
	value, source = r.Resolve(descriptorFor(dom.Field{Label: "Desired salary (USD)"}), testProfile(), nil, learned)
	assert.Equal(t, "$150,000", value)
	assert.Equal(t, SourceLearned, source)
}

func TestResolve_SmartMatchBeatsLearned(t *testing.T) {
	r := New()
	learned := map[string]string{"email": "old@stale.example"}

	value, source := r.Resolve(descriptorFor(dom.Field{Name: "email", Label: "Email"}), testProfile(), nil, learned)
	assert.Equal(t, "jane@example.com", value, "profile data always beats learned answers")
	assert.Equal(t, SourceProfile, source)
}

func TestResolve_ResumeOverlay(t *testing.T) {
	r := New()
	profile := &types.Profile{FullName: "Jane Q. Public"}
	resume := &types.ResumeData{Email: "jane@resume.example", Phone: "555-0199"}

	email, _ := r.Resolve(descriptorFor(dom.Field{Name: "email"}), profile, resume, nil)
	assert.Equal(t, "jane@resume.example", email, "resume contact data fills profile gaps")
}

func TestResolve_ChoiceHeuristics(t *testing.T) {
	r := New()

	age, _ := r.Resolve(descriptorFor(dom.Field{Kind: dom.KindRadio, Label: "Are you at least 18 years of age?"}), testProfile(), nil, nil)
	assert.Equal(t, "yes", age)

	criminal, _ := r.Resolve(descriptorFor(dom.Field{Kind: dom.KindSelect, Label: "Have you ever been convicted of a felony?"}), testProfile(), nil, nil)
	assert.Equal(t, "no", criminal)

	textual, _ := r.Resolve(descriptorFor(dom.Field{Kind: dom.KindText, Label: "Are you at least 18 years of age?"}), testProfile(), nil, nil)
	assert.Empty(t, textual, "yes/no heuristics only apply to choice controls")
}

func TestResolve_NoMatch(t *testing.T) {
	r := New()
	value, source := r.Resolve(descriptorFor(dom.Field{Name: "favorite_color", Label: "Favorite color"}), testProfile(), nil, nil)
	assert.Empty(t, value)
	assert.Equal(t, SourceNone, source)
}
