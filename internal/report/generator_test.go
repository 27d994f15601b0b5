package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hirevox/interview-engine/internal/domain"
	"github.com/hirevox/interview-engine/internal/llm/llmtest"
)

func eval(skill string, correctness, depth, communication float64) domain.Evaluation {
	return domain.Evaluation{
		Skill:              skill,
		CorrectnessScore:   correctness,
		DepthScore:         depth,
		CommunicationScore: communication,
		ConfidenceLevel:    domain.ConfidenceMedium,
	}
}

func completedSession() *domain.Session {
	s := domain.NewSession(
		domain.ResumeProfile{Name: "Ada", Email: "ada@example.com"},
		domain.JobSpec{Title: "Backend Engineer", CompanyName: "Acme"},
	)
	s.State = domain.StateCompleted
	s.PreplannedTopics = []domain.Topic{
		{Serial: 1, Skill: "Go", Difficulty: domain.DifficultyMedium},
		{Serial: 2, Skill: "SQL", Difficulty: domain.DifficultyEasy},
	}
	s.QuestionsAsked = 4

	start := time.Now().UTC().Add(-30 * time.Minute)
	end := time.Now().UTC()
	s.StartedAt = &start
	s.EndedAt = &end
	return s
}

func TestGenerateAggregatesBySkill(t *testing.T) {
	s := completedSession()
	s.AddEvaluation(eval("Go", 0.8, 0.6, 1.0))
	s.AddEvaluation(eval("Go", 0.6, 0.8, 0.8))
	s.AddEvaluation(eval("SQL", 0.9, 0.9, 0.9))

	r := NewGenerator(nil).Generate(context.Background(), s)

	if r.CandidateName != "Ada" || r.JobTitle != "Backend Engineer" || r.CompanyName != "Acme" {
		t.Errorf("report header = %s / %s / %s", r.CandidateName, r.JobTitle, r.CompanyName)
	}
	if len(r.SkillAssessments) != 2 {
		t.Fatalf("len(SkillAssessments) = %d, want 2", len(r.SkillAssessments))
	}

	goStats := r.SkillAssessments[0]
	if goStats.Skill != "Go" {
		t.Fatalf("first skill = %q, want Go (first seen)", goStats.Skill)
	}
	if goStats.QuestionsAsked != 2 {
		t.Errorf("Go QuestionsAsked = %d, want 2", goStats.QuestionsAsked)
	}
	if goStats.AverageCorrectness != 0.7 {
		t.Errorf("Go AverageCorrectness = %v, want 0.7", goStats.AverageCorrectness)
	}
	// 0.7*0.5 + 0.7*0.3 + 0.9*0.2 = 0.74
	if goStats.OverallScore != 0.74 {
		t.Errorf("Go OverallScore = %v, want 0.74", goStats.OverallScore)
	}
	if goStats.DifficultyReached != domain.DifficultyMedium {
		t.Errorf("Go DifficultyReached = %s, want MEDIUM", goStats.DifficultyReached)
	}

	if r.Summary.TotalQuestions != 4 {
		t.Errorf("TotalQuestions = %d, want 4", r.Summary.TotalQuestions)
	}
	if r.Summary.DurationMinutes != 30 {
		t.Errorf("DurationMinutes = %v, want 30", r.Summary.DurationMinutes)
	}
	if len(r.Summary.TopicsCovered) != 2 {
		t.Errorf("TopicsCovered = %v", r.Summary.TopicsCovered)
	}
}

func TestRecommendationLadder(t *testing.T) {
	tests := []struct {
		score float64
		want  string
		pass  bool
	}{
		{0.9, "Strong Hire", true},
		{0.85, "Strong Hire", true},
		{0.75, "Hire", true},
		{0.6, "Maybe", true},
		{0.55, "Maybe", false},
		{0.3, "No Hire", false},
	}

	for _, tt := range tests {
		s := completedSession()
		s.AddEvaluation(eval("Go", tt.score, tt.score, tt.score))

		r := NewGenerator(nil).Generate(context.Background(), s)
		if r.Summary.Recommendation != tt.want {
			t.Errorf("score %v: Recommendation = %q, want %q", tt.score, r.Summary.Recommendation, tt.want)
		}
		if r.Summary.PassStatus != tt.pass {
			t.Errorf("score %v: PassStatus = %v, want %v", tt.score, r.Summary.PassStatus, tt.pass)
		}
	}
}

func TestMandatorySkillGating(t *testing.T) {
	s := completedSession()
	s.Job.PassCriteria = domain.PassCriteria{
		MinimumOverallScore: 0.6,
		MandatorySkills:     []string{"SQL"},
	}
	s.AddEvaluation(eval("Go", 0.95, 0.95, 0.95))
	s.AddEvaluation(eval("SQL", 0.4, 0.4, 0.4))

	r := NewGenerator(nil).Generate(context.Background(), s)

	// Average clears the bar but the mandatory skill does not.
	if r.Summary.PassStatus {
		t.Error("PassStatus = true with failing mandatory skill, want false")
	}
	if r.Summary.Recommendation == "Strong Hire" || r.Summary.Recommendation == "Hire" {
		t.Errorf("Recommendation = %q with failing mandatory skill", r.Summary.Recommendation)
	}
}

func TestFollowupCounting(t *testing.T) {
	s := completedSession()
	s.AddMessage(domain.RoleInterviewer, "main q", map[string]string{"question_type": "main"})
	s.AddMessage(domain.RoleCandidate, "answer", nil)
	s.AddMessage(domain.RoleInterviewer, "probe", map[string]string{"question_type": "followup"})
	s.AddMessage(domain.RoleInterviewer, "probe again", map[string]string{"question_type": "followup"})
	s.AddEvaluation(eval("Go", 0.7, 0.7, 0.7))

	r := NewGenerator(nil).Generate(context.Background(), s)
	if r.Summary.TotalFollowups != 2 {
		t.Errorf("TotalFollowups = %d, want 2", r.Summary.TotalFollowups)
	}
}

func TestGenerateNoEvaluations(t *testing.T) {
	s := completedSession()

	r := NewGenerator(nil).Generate(context.Background(), s)
	if len(r.SkillAssessments) != 0 {
		t.Errorf("SkillAssessments = %v, want empty", r.SkillAssessments)
	}
	if r.Summary.OverallScore != 0 {
		t.Errorf("OverallScore = %v, want 0", r.Summary.OverallScore)
	}
	if r.Summary.PassStatus {
		t.Error("PassStatus = true with no evaluations")
	}
	if r.StrengthsSummary != "No skills were assessed." {
		t.Errorf("StrengthsSummary = %q", r.StrengthsSummary)
	}
}

func TestGenerateInsightsFromModel(t *testing.T) {
	s := completedSession()
	s.AddEvaluation(eval("Go", 0.8, 0.8, 0.8))

	fake := llmtest.New(`{
		"strengths_summary": "Solid grasp of concurrency.",
		"areas_for_improvement": "Could go deeper on query planning.",
		"hiring_recommendation": "Hire",
		"detailed_feedback": "Overall a strong conversation."
	}`)

	r := NewGenerator(fake).Generate(context.Background(), s)
	if r.StrengthsSummary != "Solid grasp of concurrency." {
		t.Errorf("StrengthsSummary = %q", r.StrengthsSummary)
	}
	if r.HiringRecommendation != "Hire" {
		t.Errorf("HiringRecommendation = %q", r.HiringRecommendation)
	}
	if r.DetailedFeedback != "Overall a strong conversation." {
		t.Errorf("DetailedFeedback = %q", r.DetailedFeedback)
	}
}

func TestGenerateInsightsFallbackOnError(t *testing.T) {
	s := completedSession()
	s.AddEvaluation(eval("Go", 0.9, 0.9, 0.9))

	r := NewGenerator(llmtest.NewFailing(errors.New("model down"))).Generate(context.Background(), s)
	if r.HiringRecommendation != r.Summary.Recommendation {
		t.Errorf("fallback HiringRecommendation = %q, want %q", r.HiringRecommendation, r.Summary.Recommendation)
	}
	if r.StrengthsSummary == "" {
		t.Error("fallback StrengthsSummary is empty")
	}
}
