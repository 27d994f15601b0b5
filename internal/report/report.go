// Package report aggregates a completed interview session into per-skill
// statistics and a pass/fail summary, with optional LLM-written narrative
// sections.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/hirevox/interview-engine/internal/domain"
)

// SkillAssessment is the aggregate result for one assessed skill.
type SkillAssessment struct {
	Skill                string            `json:"skill"`
	QuestionsAsked       int               `json:"questions_asked"`
	AverageCorrectness   float64           `json:"average_correctness"`
	AverageDepth         float64           `json:"average_depth"`
	AverageCommunication float64           `json:"average_communication"`
	OverallScore         float64           `json:"overall_score"`
	DifficultyReached    domain.Difficulty `json:"difficulty_reached"`
	Strengths            []string          `json:"strengths"`
	Weaknesses           []string          `json:"weaknesses"`
}

// Summary is the high-level interview outcome.
type Summary struct {
	TotalQuestions  int      `json:"total_questions"`
	TotalFollowups  int      `json:"total_followups"`
	DurationMinutes float64  `json:"duration_minutes"`
	TopicsCovered   []string `json:"topics_covered"`
	OverallScore    float64  `json:"overall_score"`
	PassStatus      bool     `json:"pass_status"`
	Recommendation  string   `json:"recommendation"`
}

// Report is the complete interview report for one session.
type Report struct {
	ReportID       string `json:"report_id"`
	SessionID      string `json:"session_id"`
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	JobTitle       string `json:"job_title"`
	CompanyName    string `json:"company_name"`

	InterviewDate time.Time `json:"interview_date"`
	GeneratedAt   time.Time `json:"generated_at"`

	SkillAssessments []SkillAssessment `json:"skill_assessments"`
	Summary          Summary           `json:"summary"`

	ConversationHistory []domain.ChatMessage `json:"conversation_history"`
	AllEvaluations      []domain.Evaluation  `json:"all_evaluations"`

	StrengthsSummary     string `json:"strengths_summary"`
	AreasForImprovement  string `json:"areas_for_improvement"`
	HiringRecommendation string `json:"hiring_recommendation"`
	DetailedFeedback     string `json:"detailed_feedback,omitempty"`
}

// newReportID allocates a report identity.
func newReportID() string {
	return uuid.New().String()
}
