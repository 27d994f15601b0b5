package interview

import (
	"strings"

	"github.com/hirevox/interview-engine/internal/domain"
)

// Policy thresholds for the next-action decision. Action selection is
// code-based and reproducible; the model only ever supplies evaluations.
const (
	// followupChancePct is the probability (percent) of probing deeper on a
	// borderline answer. Keeps pacing varied while policy limits bound depth.
	followupChancePct = 35

	// codingChancePct is the probability (percent) that a main question is a
	// coding exercise. Follow-ups are always conceptual.
	codingChancePct = 15

	// minResponseLength is the minimum answer length worth following up on.
	minResponseLength = 30

	// strongScore is the weighted score at which a skill counts as
	// sufficiently demonstrated.
	strongScore = 0.85

	// followupFloor is the weighted score below which an answer is too weak
	// to be worth probing.
	followupFloor = 0.3
)

var skipPhrases = []string{"skip", "next", "move on", "next question"}

var endPhrases = []string{
	"end interview",
	"stop interview",
	"end the interview",
	"stop the interview",
	"please end",
}

// Rand is the injected randomness source for the stochastic policy rules.
// Production uses a seeded math/rand source; tests inject a deterministic one.
type Rand interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// Decision is the outcome of the next-action policy. NextQuestion is set only
// for ASK_FOLLOWUP, where the follow-up has already been generated.
type Decision struct {
	Action       domain.Action
	Reason       string
	NextQuestion *domain.Question
}

// containsAny reports whether the lowercased text contains any phrase.
func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// isSkipRequest reports whether the candidate asked to move on.
func isSkipRequest(response string) bool {
	return containsAny(response, skipPhrases)
}

// isEndRequest reports whether the candidate explicitly asked to stop.
func isEndRequest(response string) bool {
	return containsAny(response, endPhrases)
}

// nextAction runs the deterministic policy rules in strict order over the
// session counters and the latest evaluation. The first matching rule wins.
// wantFollowup signals the caller to generate a follow-up question; the
// policy itself never touches the LLM.
func nextAction(
	session *domain.Session,
	response string,
	eval domain.Evaluation,
	rng Rand,
) (action domain.Action, reason string, wantFollowup bool) {
	policy := session.Job.QuestionPolicy.Normalized()

	// 1. Question budget exhausted.
	if session.QuestionsAsked >= policy.MaxQuestions {
		return domain.ActionEndInterview, "question limit reached", false
	}

	// 2. On the last topic with its follow-ups spent, nothing is left to ask.
	if session.CurrentTopicIndex >= len(session.PreplannedTopics)-1 &&
		session.FollowupsForCurrent >= policy.MaxFollowupPerQuestion {
		return domain.ActionEndInterview, "all topics covered", false
	}

	// 3. Candidate asked to move on.
	if isSkipRequest(response) {
		return domain.ActionMoveToNext, "candidate requested to move on", false
	}

	// 4. Follow-up budget for this topic spent.
	if session.FollowupsForCurrent >= policy.MaxFollowupPerQuestion {
		return domain.ActionMoveToNext, "follow-up limit reached", false
	}

	weighted := session.Job.EvaluationRubric.Weighted(eval)

	// 5. Nothing substantive to probe.
	if len(strings.TrimSpace(response)) < minResponseLength ||
		eval.ConfidenceLevel == domain.ConfidenceLow {
		return domain.ActionMoveToNext, "response too brief or unclear", false
	}

	// 6. Skill already demonstrated.
	if weighted >= strongScore {
		return domain.ActionMoveToNext, "skill sufficiently demonstrated", false
	}

	// 7. Borderline answer: probe deeper with bounded probability.
	if session.FollowupsForCurrent < policy.MaxFollowupPerQuestion &&
		session.QuestionsAsked < policy.MaxQuestions &&
		weighted >= followupFloor && weighted < strongScore {
		if rng.Intn(100) < followupChancePct {
			return domain.ActionAskFollowup, "exploring response further", true
		}
	}

	// 8. Default.
	return domain.ActionMoveToNext, "moving to next topic", false
}
