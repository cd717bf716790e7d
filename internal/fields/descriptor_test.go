package fields

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redtoridefire/smart-autofill/internal/dom"
)

func TestDescribe_SearchString(t *testing.T) {
	f := dom.Field{
		Kind:        dom.KindText,
		Type:        "text",
		ID:          "applicant_First",
		Name:        "first_name",
		Placeholder: "First Name",
		AriaLabel:   "Given name",
		Label:       "First Name",
		ParentText:  "First Name",
	}

	d := Describe(f)
	assert.Equal(t, "applicant_first first_name first name given name first name first name", d.SearchString,
		"search string is the lowercased join of every semantic attribute")
	assert.Equal(t, dom.KindText, d.Kind)
	assert.Equal(t, "text", d.Type)
}

func TestDescribe_NearbyTextCap(t *testing.T) {
	short := dom.Field{ParentText: "  Phone number  "}
	assert.Equal(t, "Phone number", Describe(short).NearbyText)

	long := dom.Field{ParentText: strings.Repeat("x", 400)}
	assert.Empty(t, Describe(long).NearbyText,
		"parent prose at or above the cap is dropped entirely")
	assert.NotContains(t, Describe(long).SearchString, "xxxx")
}

func TestDescribe_EmptyField(t *testing.T) {
	d := Describe(dom.Field{})
	assert.Equal(t, "", d.SearchString)
}
