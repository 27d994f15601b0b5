package interview

import (
	"testing"

	"github.com/hirevox/interview-engine/internal/domain"
)

// fixedRand always returns the same value, pinning the stochastic rules.
type fixedRand struct{ v int }

func (r fixedRand) Intn(n int) int {
	if r.v >= n {
		return n - 1
	}
	return r.v
}

func policySession(maxQuestions, maxFollowups int, topics int) *domain.Session {
	job := domain.JobSpec{
		QuestionPolicy: domain.QuestionPolicy{
			MaxQuestions:           maxQuestions,
			MaxFollowupPerQuestion: maxFollowups,
		},
	}
	session := domain.NewSession(domain.ResumeProfile{Name: "Ada"}, job)
	for i := 0; i < topics; i++ {
		session.PreplannedTopics = append(session.PreplannedTopics, domain.Topic{
			Serial: i + 1,
			Skill:  "Skill" + string(rune('A'+i)),
		})
	}
	session.State = domain.StateQuestioning
	return session
}

func midEval() domain.Evaluation {
	return domain.Evaluation{
		CorrectnessScore:   0.6,
		DepthScore:         0.6,
		CommunicationScore: 0.6,
		ConfidenceLevel:    domain.ConfidenceMedium,
	}
}

const longAnswer = "I have worked extensively with this and can describe several production systems in detail."

func TestNextActionQuestionLimit(t *testing.T) {
	session := policySession(5, 2, 3)
	session.QuestionsAsked = 5

	action, reason, _ := nextAction(session, longAnswer, midEval(), fixedRand{0})
	if action != domain.ActionEndInterview {
		t.Fatalf("action = %s, want END_INTERVIEW", action)
	}
	if reason != "question limit reached" {
		t.Errorf("reason = %q", reason)
	}
}

func TestNextActionAllTopicsCovered(t *testing.T) {
	session := policySession(10, 2, 3)
	session.QuestionsAsked = 4
	session.CurrentTopicIndex = 2 // last topic
	session.FollowupsForCurrent = 2

	action, reason, _ := nextAction(session, longAnswer, midEval(), fixedRand{0})
	if action != domain.ActionEndInterview {
		t.Fatalf("action = %s, want END_INTERVIEW", action)
	}
	if reason != "all topics covered" {
		t.Errorf("reason = %q", reason)
	}
}

func TestNextActionSkipRequest(t *testing.T) {
	session := policySession(10, 2, 3)
	session.QuestionsAsked = 2

	for _, phrase := range []string{"let's skip this one", "NEXT QUESTION please", "can we move on?"} {
		action, reason, _ := nextAction(session, phrase, midEval(), fixedRand{0})
		if action != domain.ActionMoveToNext {
			t.Errorf("nextAction(%q) action = %s, want MOVE_TO_NEXT", phrase, action)
		}
		if reason != "candidate requested to move on" {
			t.Errorf("nextAction(%q) reason = %q", phrase, reason)
		}
	}
}

func TestNextActionFollowupLimit(t *testing.T) {
	session := policySession(10, 2, 3)
	session.QuestionsAsked = 3
	session.FollowupsForCurrent = 2

	action, reason, _ := nextAction(session, longAnswer, midEval(), fixedRand{0})
	if action != domain.ActionMoveToNext {
		t.Fatalf("action = %s, want MOVE_TO_NEXT", action)
	}
	if reason != "follow-up limit reached" {
		t.Errorf("reason = %q", reason)
	}
}

func TestNextActionBriefResponse(t *testing.T) {
	session := policySession(10, 2, 3)
	session.QuestionsAsked = 2

	action, reason, _ := nextAction(session, "yes", midEval(), fixedRand{0})
	if action != domain.ActionMoveToNext {
		t.Fatalf("action = %s, want MOVE_TO_NEXT", action)
	}
	if reason != "response too brief or unclear" {
		t.Errorf("reason = %q", reason)
	}
}

func TestNextActionLowConfidence(t *testing.T) {
	session := policySession(10, 2, 3)
	session.QuestionsAsked = 2

	eval := midEval()
	eval.ConfidenceLevel = domain.ConfidenceLow

	action, reason, _ := nextAction(session, longAnswer, eval, fixedRand{0})
	if action != domain.ActionMoveToNext {
		t.Fatalf("action = %s, want MOVE_TO_NEXT", action)
	}
	if reason != "response too brief or unclear" {
		t.Errorf("reason = %q", reason)
	}
}

func TestNextActionStrongAnswer(t *testing.T) {
	session := policySession(10, 2, 3)
	session.QuestionsAsked = 2

	eval := domain.Evaluation{
		CorrectnessScore:   0.9,
		DepthScore:         0.9,
		CommunicationScore: 0.9,
		ConfidenceLevel:    domain.ConfidenceHigh,
	}

	action, reason, _ := nextAction(session, longAnswer, eval, fixedRand{0})
	if action != domain.ActionMoveToNext {
		t.Fatalf("action = %s, want MOVE_TO_NEXT", action)
	}
	if reason != "skill sufficiently demonstrated" {
		t.Errorf("reason = %q", reason)
	}
}

func TestNextActionBorderlineFollowupDraw(t *testing.T) {
	session := policySession(10, 2, 3)
	session.QuestionsAsked = 2

	// Draw below the threshold: follow up.
	action, reason, want := nextAction(session, longAnswer, midEval(), fixedRand{34})
	if action != domain.ActionAskFollowup || !want {
		t.Fatalf("draw 34: action = %s wantFollowup = %v, want ASK_FOLLOWUP true", action, want)
	}
	if reason != "exploring response further" {
		t.Errorf("reason = %q", reason)
	}

	// Draw at or above the threshold: default to moving on.
	action, reason, want = nextAction(session, longAnswer, midEval(), fixedRand{35})
	if action != domain.ActionMoveToNext || want {
		t.Fatalf("draw 35: action = %s wantFollowup = %v, want MOVE_TO_NEXT false", action, want)
	}
	if reason != "moving to next topic" {
		t.Errorf("reason = %q", reason)
	}
}

func TestNextActionWeakAnswerNeverFollowedUp(t *testing.T) {
	session := policySession(10, 2, 3)
	session.QuestionsAsked = 2

	eval := domain.Evaluation{
		CorrectnessScore:   0.2,
		DepthScore:         0.2,
		CommunicationScore: 0.2,
		ConfidenceLevel:    domain.ConfidenceMedium,
	}

	// Even a guaranteed draw cannot trigger a follow-up below the floor.
	action, _, want := nextAction(session, longAnswer, eval, fixedRand{0})
	if action != domain.ActionMoveToNext || want {
		t.Fatalf("action = %s wantFollowup = %v, want MOVE_TO_NEXT false", action, want)
	}
}

func TestIsEndRequest(t *testing.T) {
	for _, phrase := range []string{"please END the interview", "I want to stop the interview now"} {
		if !isEndRequest(phrase) {
			t.Errorf("isEndRequest(%q) = false, want true", phrase)
		}
	}
	if isEndRequest("the endpoint returns JSON") {
		t.Error("isEndRequest(unrelated answer mentioning endpoints) = true, want false")
	}
	if isEndRequest("I deployed it to production") {
		t.Error("isEndRequest(normal answer) = true, want false")
	}
}
