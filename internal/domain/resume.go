package domain

// ResumeProfile is the parsed resume handed to the engine by the upstream
// resume parser. The engine reads these fields defensively: missing data is
// represented by zero values, never by absent map keys.
type ResumeProfile struct {
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Role           string           `json:"role,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
	Experience     ExperienceDetail `json:"experience"`
	Education      []Education      `json:"education,omitempty"`
	Projects       []Project        `json:"projects,omitempty"`
	WorkExperience []WorkItem       `json:"work_experience,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	RawText        string           `json:"raw_text,omitempty"`
}

// ExperienceDetail summarizes total experience across employers.
type ExperienceDetail struct {
	TotalYears float64  `json:"total_years"`
	Companies  []string `json:"companies,omitempty"`
}

// Education is a single degree entry.
type Education struct {
	Degree      string `json:"degree"`
	CollegeName string `json:"college_name"`
	Year        string `json:"year,omitempty"`
}

// Project is a resume project used to anchor contextual questions.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// WorkItem is one employment entry.
type WorkItem struct {
	Company string `json:"company"`
	Role    string `json:"role"`
}

// NameOrDefault returns the candidate name, or a generic placeholder for
// prompts.
func (r ResumeProfile) NameOrDefault() string {
	if r.Name == "" {
		return "Candidate"
	}
	return r.Name
}
