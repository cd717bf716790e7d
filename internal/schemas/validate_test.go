package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile([]byte(`{
		"full_name": "Jane Q. Public",
		"email": "jane@example.com",
		"location": "Austin, TX"
	}`)))

	assert.NoError(t, ValidateProfile([]byte(`{}`)), "every field is optional")
	assert.NoError(t, ValidateProfile([]byte(`{"email": ""}`)), "an empty email is allowed")
}

func TestValidateProfile_Invalid(t *testing.T) {
	err := ValidateProfile([]byte(`{"email": "not-an-email"}`))
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.NotEmpty(t, ve.Errors)
	assert.Equal(t, "email", ve.Errors[0].Field)

	assert.Error(t, ValidateProfile([]byte(`{"unknown_field": "x"}`)), "unknown fields are rejected")
	assert.Error(t, ValidateProfile([]byte(`{"full_name": 42}`)))
}

func TestValidateResume(t *testing.T) {
	assert.NoError(t, ValidateResume([]byte(`{
		"name": "Jane Q. Public",
		"skills": ["Go", "SQL"],
		"experience": [{"title": "Software Engineer", "company": "Acme", "start_date": "March 2020"}],
		"education": [{"school": "State University", "degree": "BS"}]
	}`)))
}

func TestValidateResume_Invalid(t *testing.T) {
	assert.Error(t, ValidateResume([]byte(`{"skills": "Go"}`)), "skills must be an array")
	assert.Error(t, ValidateResume([]byte(`{"experience": [{"employer": "Acme"}]}`)),
		"unknown record fields are rejected")

	err := ValidateResume([]byte(`not json`))
	require.Error(t, err)
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le, "malformed JSON fails at load, not validation")
}
