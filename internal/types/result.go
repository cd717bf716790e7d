package types

// Diagnostic messages for the failure branches of a fill pass.
const (
	MsgDisabled      = "Auto-fill is disabled"
	MsgManualMode    = "Auto-fill mode is set to manual"
	MsgNotAllowed    = "Site is not on the allowlist"
	MsgNoProfile     = "No profile data saved"
	MsgNoFields      = "No form fields found"
	MsgNoMatches     = "No matching fields found"
	MsgAlreadyFilled = "Fields already filled"
)

// FillResult is the aggregate outcome of one fill invocation, returned
// across the engine boundary. Operations resolve to a result object;
// they never panic across the boundary.
type FillResult struct {
	Success                 bool   `json:"success"`
	FieldsFilled            int    `json:"fields_filled"`
	FieldsTotal             int    `json:"fields_total"`
	WorkExperienceValidated int    `json:"work_experience_validated"`
	WorkExperienceCorrected int    `json:"work_experience_corrected"`
	EducationValidated      int    `json:"education_validated"`
	EducationCorrected      int    `json:"education_corrected"`
	Message                 string `json:"message,omitempty"`
}

// Failure builds an unsuccessful result with a diagnostic message.
func Failure(message string) *FillResult {
	return &FillResult{Success: false, Message: message}
}
