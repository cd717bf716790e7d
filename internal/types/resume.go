package types

// Experience represents one work-history entry parsed from a resume.
// Entry order corresponds positionally to repeated work-experience
// sections on a page; there is no identity matching by company or title.
type Experience struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education represents one education entry parsed from a resume.
type Education struct {
	School    string `json:"school,omitempty"`
	Degree    string `json:"degree,omitempty"`
	Major     string `json:"major,omitempty"`
	Minor     string `json:"minor,omitempty"`
	GPA       string `json:"gpa,omitempty"`
	Honors    string `json:"honors,omitempty"`
	Location  string `json:"location,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// ResumeData is the aggregate produced by the resume sweep and consumed
// read-only by value resolution and section validation.
type ResumeData struct {
	FullText   string       `json:"full_text,omitempty"`
	Name       string       `json:"name,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	LinkedIn   string       `json:"linkedin,omitempty"`
	Location   string       `json:"location,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
}

// IsEmpty reports whether the resume carries no usable data.
func (r *ResumeData) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Name == "" && r.Email == "" && r.Phone == "" && r.LinkedIn == "" &&
		len(r.Experience) == 0 && len(r.Education) == 0
}
