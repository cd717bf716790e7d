package matching

// Curated keyword lists for field classification. All entries are
// lowercase; the matcher treats them as plain substrings.
var (
	// NamePatterns gate the whole name category.
	NamePatterns = []string{
		"full name", "your name", "first name", "last name", "legal name",
		"candidate name", "applicant name", "given name", "family name",
		"fname", "lname", "firstname", "lastname", "name",
	}

	// FirstNamePatterns identify first-name fields within the name category.
	FirstNamePatterns = []string{
		"first name", "first_name", "firstname", "fname", "given name", "given_name",
	}
	// FirstNameExcludes disambiguate against sibling name fields.
	FirstNameExcludes = []string{"last", "full", "family"}

	LastNamePatterns = []string{
		"last name", "last_name", "lastname", "lname", "surname", "family name", "family_name",
	}
	LastNameExcludes = []string{"first", "full", "given"}

	MiddleNamePatterns = []string{
		"middle name", "middle_name", "middlename", "middle initial",
	}

	EmailPatterns = []string{
		"email", "e-mail", "mail", "email address", "e-mail address",
		"contact email", "your email", "applicant email",
	}

	PhonePatterns = []string{
		"phone", "mobile", "telephone", "cell", "phone number",
		"mobile number", "cell phone", "contact number", "tel",
		"primary phone", "home phone", "work phone",
	}

	LinkedInPatterns = []string{
		"linkedin", "linked-in", "linkedin profile", "linkedin url",
		"linkedin.com", "social profile", "professional profile",
	}

	// LocationPatterns gate the address family.
	LocationPatterns = []string{
		"city", "location", "address", "where are you", "where do you live",
		"current location", "residence", "living in", "based in",
		"home address", "street address", "mailing address",
	}
	// StreetAddressPatterns mark fields the resolver refuses to fill from
	// the "City, State" profile string. They defer to learned data or
	// manual entry.
	StreetAddressPatterns = []string{
		"address line", "address1", "address 1", "address_line",
		"street address", "street_address", "apt", "apartment", "suite", "unit number",
	}
	ZipPatterns     = []string{"zip", "postal", "postcode", "zip code"}
	StatePatterns   = []string{"state", "province", "region"}
	CityPatterns    = []string{"city"}
	CountryPatterns = []string{"country"}

	WorkAuthPatterns = []string{
		"work authorization", "authorized to work", "work permit",
		"visa", "sponsorship", "legally authorized", "eligible to work",
		"require sponsorship", "work eligibility", "employment authorization",
		"right to work", "authorized in",
	}

	JobTitlePatterns = []string{
		"job title", "position", "role", "position title",
		"desired position", "applying for", "job role",
	}

	ExperienceYearsPatterns = []string{
		"years of experience", "experience", "years experience",
		"total experience", "professional experience",
	}
	// ExperienceProseExcludes keep free-text "describe your experience"
	// prompts out of the numeric years category.
	ExperienceProseExcludes = []string{"describe", "detail", "tell us"}

	SalaryPatterns = []string{
		"salary", "compensation", "expected salary", "salary expectation",
		"desired salary", "pay rate", "hourly rate", "annual salary",
	}

	StartDatePatterns = []string{
		"start date", "available to start", "availability",
		"when can you start", "earliest start date", "notice period",
	}

	AgePatterns      = []string{"18", "age", "years old", "over 18", "at least 18"}
	CriminalPatterns = []string{"criminal", "convicted", "felony"}
	DriverPatterns   = []string{"driver", "license", "drive"}

	// AgreementPatterns mark checkboxes the writer must never auto-check.
	AgreementPatterns = []string{"agree", "terms", "condition", "privacy policy", "consent"}

	// NavigationPatterns identify continue/next controls for auto-navigation.
	NavigationPatterns = []string{
		"continue", "next", "save and continue", "save & continue",
		"submit", "proceed", "move forward", "go to next",
		"save and next", "save & next",
	}
	// NavigationExcludes keep backward or dismissive controls unclicked.
	NavigationExcludes = []string{"cancel", "back", "previous", "skip"}
)
