package domain

// Defaults applied when a job specification omits policy fields.
const (
	DefaultMaxQuestions           = 10
	DefaultMaxFollowupPerQuestion = 2

	DefaultCorrectnessWeight   = 0.5
	DefaultDepthWeight         = 0.3
	DefaultCommunicationWeight = 0.2

	DefaultMinimumOverallScore = 0.6
)

// JobLevel is the seniority the role is hiring for.
type JobLevel string

const (
	LevelFresher JobLevel = "FRESHER"
	LevelJunior  JobLevel = "JUNIOR"
	LevelSenior  JobLevel = "SENIOR"
)

// QuestionPolicy bounds how many questions and follow-ups an interview may use.
type QuestionPolicy struct {
	MaxQuestions           int `json:"max_questions" koanf:"max_questions"`
	MaxFollowupPerQuestion int `json:"max_followup_per_question" koanf:"max_followup_per_question"`
	TimeLimit              int `json:"time_limit" koanf:"time_limit"` // minutes
}

// Normalized returns the policy with defaults filled for unset bounds.
func (p QuestionPolicy) Normalized() QuestionPolicy {
	out := p
	if out.MaxQuestions <= 0 {
		out.MaxQuestions = DefaultMaxQuestions
	}
	if out.MaxFollowupPerQuestion <= 0 {
		out.MaxFollowupPerQuestion = DefaultMaxFollowupPerQuestion
	}
	return out
}

// EvaluationRubric weights the three evaluation dimensions when computing a
// weighted score.
type EvaluationRubric struct {
	Correctness   float64 `json:"correctness"`
	Depth         float64 `json:"depth"`
	Communication float64 `json:"communication"`
}

// Normalized returns the rubric, substituting the default 0.5/0.3/0.2 weights
// when the rubric is absent (all weights zero).
func (r EvaluationRubric) Normalized() EvaluationRubric {
	if r.Correctness == 0 && r.Depth == 0 && r.Communication == 0 {
		return EvaluationRubric{
			Correctness:   DefaultCorrectnessWeight,
			Depth:         DefaultDepthWeight,
			Communication: DefaultCommunicationWeight,
		}
	}
	return r
}

// Weighted combines the three scores of an evaluation under this rubric.
func (r EvaluationRubric) Weighted(e Evaluation) float64 {
	w := r.Normalized()
	return e.CorrectnessScore*w.Correctness +
		e.DepthScore*w.Depth +
		e.CommunicationScore*w.Communication
}

// DifficultyPolicy shapes how question difficulty evolves over the interview.
type DifficultyPolicy struct {
	StartLevel           Difficulty `json:"start_level"`
	MaxLevel             Difficulty `json:"max_level"`
	IncreaseOnGoodAnswer bool       `json:"increase_on_good_answer"`
	DecreaseOnStruggle   bool       `json:"decrease_on_struggle"`
}

// PassCriteria defines the bar for a passing interview.
type PassCriteria struct {
	MinimumOverallScore float64  `json:"minimum_overall_score"`
	MandatorySkills     []string `json:"mandatory_skills,omitempty"`
}

// JobSpec is the job description driving the interview: what to assess, how
// hard, and how to score it. It arrives from the caller as JSON; every field
// the engine reads has a usable zero value or is normalized on access.
type JobSpec struct {
	Title            string             `json:"title"`
	CompanyName      string             `json:"company_name"`
	Description      string             `json:"description"`
	Experience       string             `json:"expirence"` // field name kept for caller compatibility
	Level            JobLevel           `json:"level"`
	Responsibilities []string           `json:"responsibilities,omitempty"`
	PrimarySkills    []string           `json:"primary_skills,omitempty"`
	SecondarySkills  []string           `json:"secondary_have,omitempty"`
	SoftSkills       []string           `json:"soft_skills,omitempty"`
	SkillWeights     map[string]float64 `json:"skill_weights,omitempty"`
	DifficultyPolicy DifficultyPolicy   `json:"difficulty_policy"`
	QuestionPolicy   QuestionPolicy     `json:"question_policy"`
	EvaluationRubric EvaluationRubric   `json:"evaluation_rubric"`
	PassCriteria     PassCriteria       `json:"pass_criteria"`
}

// TitleOrDefault returns the job title, or a generic placeholder for prompts.
func (j JobSpec) TitleOrDefault() string {
	if j.Title == "" {
		return "the position"
	}
	return j.Title
}

// CompanyOrDefault returns the company name, or a generic placeholder.
func (j JobSpec) CompanyOrDefault() string {
	if j.CompanyName == "" {
		return "our company"
	}
	return j.CompanyName
}
