package report

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hirevox/interview-engine/internal/domain"
	"github.com/hirevox/interview-engine/internal/llm"
)

// Recommendation ladder thresholds over the overall score.
const (
	strongHireScore = 0.85
	hireScore       = 0.7
	maybeScore      = 0.5
)

// Generator builds reports from terminal sessions. The LLM client is
// optional: without one (or when its output cannot be parsed) the narrative
// sections fall back to deterministic text. The generator never mutates the
// session.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a report generator. client may be nil.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate computes the full report for a session.
func (g *Generator) Generate(ctx context.Context, session *domain.Session) *Report {
	assessments := skillAssessments(session)
	summary := buildSummary(session, assessments)
	insights := g.generateInsights(ctx, session, assessments, summary)

	return &Report{
		ReportID:       newReportID(),
		SessionID:      session.ID,
		CandidateName:  orDefault(session.Resume.Name, "Unknown"),
		CandidateEmail: session.Resume.Email,
		JobTitle:       orDefault(session.Job.Title, "Unknown Position"),
		CompanyName:    orDefault(session.Job.CompanyName, "Unknown Company"),

		InterviewDate: interviewDate(session),
		GeneratedAt:   time.Now().UTC(),

		SkillAssessments: assessments,
		Summary:          summary,

		ConversationHistory: session.Messages,
		AllEvaluations:      session.Evaluations,

		StrengthsSummary:     insights.StrengthsSummary,
		AreasForImprovement:  insights.AreasForImprovement,
		HiringRecommendation: insights.HiringRecommendation,
		DetailedFeedback:     insights.DetailedFeedback,
	}
}

func interviewDate(session *domain.Session) time.Time {
	if session.StartedAt != nil {
		return *session.StartedAt
	}
	return session.CreatedAt
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// skillAssessments groups evaluations by skill and averages each dimension.
func skillAssessments(session *domain.Session) []SkillAssessment {
	// Preserve first-seen skill order for stable output.
	var order []string
	grouped := make(map[string][]domain.Evaluation)
	for _, eval := range session.Evaluations {
		skill := orDefault(eval.Skill, "General")
		if _, ok := grouped[skill]; !ok {
			order = append(order, skill)
		}
		grouped[skill] = append(grouped[skill], eval)
	}

	difficulty := topicDifficulties(session)

	var out []SkillAssessment
	for _, skill := range order {
		evals := grouped[skill]

		var correctness, depth, communication float64
		observed := map[string]bool{}
		missing := map[string]bool{}
		for _, e := range evals {
			correctness += e.CorrectnessScore
			depth += e.DepthScore
			communication += e.CommunicationScore
			for _, c := range e.ObservedConcepts {
				observed[c] = true
			}
			for _, c := range e.MissingConcepts {
				missing[c] = true
			}
		}
		n := float64(len(evals))
		correctness /= n
		depth /= n
		communication /= n

		rubric := session.Job.EvaluationRubric.Normalized()
		overall := correctness*rubric.Correctness + depth*rubric.Depth + communication*rubric.Communication

		reached := domain.DifficultyEasy
		if d, ok := difficulty[skill]; ok {
			reached = d
		}

		out = append(out, SkillAssessment{
			Skill:                skill,
			QuestionsAsked:       len(evals),
			AverageCorrectness:   round2(correctness),
			AverageDepth:         round2(depth),
			AverageCommunication: round2(communication),
			OverallScore:         round2(overall),
			DifficultyReached:    reached,
			Strengths:            setToList(observed, 5),
			Weaknesses:           setToList(missing, 5),
		})
	}
	return out
}

// topicDifficulties maps each planned skill to the highest difficulty planned
// for it.
func topicDifficulties(session *domain.Session) map[string]domain.Difficulty {
	out := make(map[string]domain.Difficulty)
	for _, t := range session.PreplannedTopics {
		if existing, ok := out[t.Skill]; ok {
			out[t.Skill] = existing.Max(t.Difficulty)
		} else {
			out[t.Skill] = t.Difficulty
		}
	}
	return out
}

func buildSummary(session *domain.Session, assessments []SkillAssessment) Summary {
	duration := session.Duration().Minutes()

	followups := 0
	for _, msg := range session.Messages {
		if msg.Metadata["question_type"] == string(domain.QuestionFollowup) {
			followups++
		}
	}

	var overall float64
	topics := make([]string, 0, len(assessments))
	for _, a := range assessments {
		overall += a.OverallScore
		topics = append(topics, a.Skill)
	}
	if len(assessments) > 0 {
		overall /= float64(len(assessments))
	}

	criteria := session.Job.PassCriteria
	minScore := criteria.MinimumOverallScore
	if minScore == 0 {
		minScore = domain.DefaultMinimumOverallScore
	}

	mandatoryPassed := true
	if len(criteria.MandatorySkills) > 0 {
		mandatory := make(map[string]bool, len(criteria.MandatorySkills))
		for _, s := range criteria.MandatorySkills {
			mandatory[s] = true
		}
		for _, a := range assessments {
			if mandatory[a.Skill] && a.OverallScore < minScore {
				mandatoryPassed = false
				break
			}
		}
	}

	pass := overall >= minScore && mandatoryPassed

	var recommendation string
	switch {
	case overall >= strongHireScore && mandatoryPassed:
		recommendation = "Strong Hire"
	case overall >= hireScore && mandatoryPassed:
		recommendation = "Hire"
	case overall >= maybeScore:
		recommendation = "Maybe"
	default:
		recommendation = "No Hire"
	}

	return Summary{
		TotalQuestions:  session.QuestionsAsked,
		TotalFollowups:  followups,
		DurationMinutes: round1(duration),
		TopicsCovered:   topics,
		OverallScore:    round2(overall),
		PassStatus:      pass,
		Recommendation:  recommendation,
	}
}

// insights holds the narrative report sections.
type insights struct {
	StrengthsSummary     string `json:"strengths_summary"`
	AreasForImprovement  string `json:"areas_for_improvement"`
	HiringRecommendation string `json:"hiring_recommendation"`
	DetailedFeedback     string `json:"detailed_feedback"`
}

// generateInsights asks the model for narrative sections, degrading to
// deterministic text when unavailable or unparseable.
func (g *Generator) generateInsights(ctx context.Context, session *domain.Session, assessments []SkillAssessment, summary Summary) insights {
	fallback := insights{
		StrengthsSummary:     "Candidate demonstrated skills in: " + strings.Join(summary.TopicsCovered, ", "),
		AreasForImprovement:  "Review detailed evaluations for specific feedback.",
		HiringRecommendation: summary.Recommendation,
	}
	if len(summary.TopicsCovered) == 0 {
		fallback.StrengthsSummary = "No skills were assessed."
	}
	if g.client == nil {
		return fallback
	}

	var lines []string
	for _, a := range assessments {
		lines = append(lines, fmt.Sprintf(
			"- %s: score %.0f%%, correctness %.0f%%, depth %.0f%%, communication %.0f%%",
			a.Skill, a.OverallScore*100, a.AverageCorrectness*100, a.AverageDepth*100, a.AverageCommunication*100,
		))
	}

	criteria := session.Job.PassCriteria
	minScore := criteria.MinimumOverallScore
	if minScore == 0 {
		minScore = domain.DefaultMinimumOverallScore
	}
	mandatory := strings.Join(criteria.MandatorySkills, ", ")
	if mandatory == "" {
		mandatory = "None specified"
	}

	prompt := fmt.Sprintf(llm.ReportInsightsPrompt,
		session.Resume.NameOrDefault(),
		session.Job.TitleOrDefault(),
		session.Job.CompanyOrDefault(),
		summary.DurationMinutes,
		summary.TotalQuestions,
		strings.Join(lines, "\n"),
		fmt.Sprintf("%.0f%%", summary.OverallScore*100),
		fmt.Sprintf("%.0f%%", minScore*100),
		mandatory,
	)

	messages := []llm.Message{
		{Role: "system", Content: "You are an HR expert generating interview feedback."},
		{Role: "user", Content: prompt},
	}

	response, _, err := g.client.GenerateWithUsage(ctx, messages)
	if err != nil {
		return fallback
	}

	var parsed insights
	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &parsed); err != nil {
		return fallback
	}
	if parsed.HiringRecommendation == "" {
		parsed.HiringRecommendation = summary.Recommendation
	}
	if parsed.StrengthsSummary == "" {
		parsed.StrengthsSummary = fallback.StrengthsSummary
	}
	if parsed.AreasForImprovement == "" {
		parsed.AreasForImprovement = fallback.AreasForImprovement
	}
	return parsed
}

func setToList(set map[string]bool, max int) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
		if len(out) == max {
			break
		}
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
