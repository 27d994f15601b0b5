// Package domain holds the typed data model shared by the interview engine:
// session state, conversation transcript entries, questions, evaluations, and
// the canonical error types surfaced at the API boundary.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// InterviewState is the lifecycle state of an interview session.
type InterviewState string

const (
	StateNotStarted    InterviewState = "NOT_STARTED"
	StateGreeting      InterviewState = "GREETING"
	StatePreplanning   InterviewState = "PREPLANNING"
	StateQuestioning   InterviewState = "QUESTIONING"
	StateFollowUp      InterviewState = "FOLLOW_UP"
	StateTransitioning InterviewState = "TRANSITIONING"
	StateConcluding    InterviewState = "CONCLUDING"
	StateCompleted     InterviewState = "COMPLETED"
	StateCancelled     InterviewState = "CANCELLED"
)

// ChatRole identifies the sender of a transcript message.
type ChatRole string

const (
	RoleSystem      ChatRole = "system"
	RoleInterviewer ChatRole = "interviewer"
	RoleCandidate   ChatRole = "candidate"
)

// Difficulty is the canonical difficulty level for topics and questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ParseDifficulty normalizes an externally sourced difficulty value into the
// canonical enum. LLM output sometimes carries lowercase values or stringified
// enum artifacts like "DifficultyLevel.EASY"; anything unrecognized maps to
// EASY so downstream logic never sees an ambiguous representation.
func ParseDifficulty(raw string) Difficulty {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if i := strings.LastIndex(v, "."); i >= 0 {
		v = v[i+1:]
	}
	switch Difficulty(v) {
	case DifficultyMedium:
		return DifficultyMedium
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

func (d Difficulty) rank() int {
	switch d {
	case DifficultyHard:
		return 2
	case DifficultyMedium:
		return 1
	default:
		return 0
	}
}

// Max returns the higher of two difficulties.
func (d Difficulty) Max(other Difficulty) Difficulty {
	if other.rank() > d.rank() {
		return other
	}
	return d
}

// ConfidenceLevel is the evaluator's confidence in its own scoring.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "LOW"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceHigh   ConfidenceLevel = "HIGH"
)

// ParseConfidence normalizes an externally sourced confidence value,
// defaulting to LOW when unrecognized.
func ParseConfidence(raw string) ConfidenceLevel {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if i := strings.LastIndex(v, "."); i >= 0 {
		v = v[i+1:]
	}
	switch ConfidenceLevel(v) {
	case ConfidenceMedium:
		return ConfidenceMedium
	case ConfidenceHigh:
		return ConfidenceHigh
	default:
		return ConfidenceLow
	}
}

// Action is the next-step decision after evaluating a candidate answer.
type Action string

const (
	ActionAskFollowup  Action = "ASK_FOLLOWUP"
	ActionMoveToNext   Action = "MOVE_TO_NEXT_QUESTION"
	ActionEndInterview Action = "END_INTERVIEW"
)

// QuestionType distinguishes topic-anchored main questions from probing
// follow-ups.
type QuestionType string

const (
	QuestionMain     QuestionType = "main"
	QuestionFollowup QuestionType = "followup"
)

// Topic is one unit of assessment produced by preplanning.
type Topic struct {
	Serial     int        `json:"serial"`
	Skill      string     `json:"skill"`
	Difficulty Difficulty `json:"difficulty"`
}

// Question is a single interview question, main or follow-up.
type Question struct {
	ID               string       `json:"id"`
	Text             string       `json:"text"`
	Type             QuestionType `json:"type"`
	ExpectedConcepts []string     `json:"expected_concepts"`
	Skill            string       `json:"skill"`
	Difficulty       Difficulty   `json:"difficulty"`
	IsCoding         bool         `json:"is_coding"`
	ProblemStatement string       `json:"problem_statement,omitempty"`
}

// QuestionRef ties an evaluation back to the question it scored.
type QuestionRef struct {
	QuestionID       string       `json:"question_id"`
	ParentQuestionID string       `json:"parent_question_id,omitempty"`
	QuestionType     QuestionType `json:"question_type"`
}

// Evaluation is the structured scoring of one candidate answer.
// All three scores are in [0,1].
type Evaluation struct {
	QuestionRef        QuestionRef     `json:"question_ref"`
	Skill              string          `json:"skill"`
	CorrectnessScore   float64         `json:"correctness_score"`
	DepthScore         float64         `json:"depth_score"`
	CommunicationScore float64         `json:"communication_score"`
	ObservedConcepts   []string        `json:"observed_concepts"`
	MissingConcepts    []string        `json:"missing_concepts"`
	ConfidenceLevel    ConfidenceLevel `json:"confidence_level"`
	Notes              string          `json:"notes,omitempty"`
}

// ChatMessage is a single entry in the interview transcript.
type ChatMessage struct {
	ID        string            `json:"id"`
	Role      ChatRole          `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewChatMessage allocates a transcript entry with a fresh id and timestamp.
func NewChatMessage(role ChatRole, content string, metadata map[string]string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}
}

// CallLog is the audit record for one LLM round trip.
type CallLog struct {
	CallType     string    `json:"call_type"` // preplan, greeting, question, evaluate, conclusion, report
	Timestamp    time.Time `json:"timestamp"`
	Model        string    `json:"model"`
	Prompt       string    `json:"prompt"`
	Response     string    `json:"response"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	TotalTokens  int       `json:"total_tokens"`
	LatencyMS    int64     `json:"latency_ms"`
}
