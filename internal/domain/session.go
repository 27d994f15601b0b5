package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the central mutable aggregate for one interview. It is created
// by the session store, mutated exclusively by the flow controller while the
// interview runs, and becomes immutable once it reaches a terminal state.
//
// Sessions are not internally synchronized: the store's lock protects the
// session map, and callers are expected to serialize operations per session.
type Session struct {
	ID    string         `json:"session_id"`
	State InterviewState `json:"state"`

	// Inputs, set once at creation and read-only afterwards.
	Resume ResumeProfile `json:"resume_data"`
	Job    JobSpec       `json:"job_data"`

	// Topic plan, set once after preplanning and then only indexed.
	PreplannedTopics  []Topic `json:"preplanned_topics"`
	CurrentTopicIndex int     `json:"current_topic_index"`

	// Question tracking.
	CurrentQuestion     *Question `json:"current_question,omitempty"`
	QuestionsAsked      int       `json:"questions_asked"`
	FollowupsForCurrent int       `json:"followups_for_current"`

	// Append-only transcript, evaluations, and LLM call audit trail.
	Messages    []ChatMessage `json:"messages"`
	Evaluations []Evaluation  `json:"evaluations"`
	CallLogs    []CallLog     `json:"llm_logs"`

	CreatedAt time.Time  `json:"created_at"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// NewSession allocates a fresh NOT_STARTED session around the given inputs.
func NewSession(resume ResumeProfile, job JobSpec) *Session {
	return &Session{
		ID:        uuid.New().String(),
		State:     StateNotStarted,
		Resume:    resume,
		Job:       job,
		CreatedAt: time.Now().UTC(),
	}
}

// AddMessage appends a transcript entry and returns it.
func (s *Session) AddMessage(role ChatRole, content string, metadata map[string]string) ChatMessage {
	msg := NewChatMessage(role, content, metadata)
	s.Messages = append(s.Messages, msg)
	return msg
}

// AddEvaluation appends an answer evaluation.
func (s *Session) AddEvaluation(e Evaluation) {
	s.Evaluations = append(s.Evaluations, e)
}

// AddCallLog appends an LLM call audit record.
func (s *Session) AddCallLog(l CallLog) {
	s.CallLogs = append(s.CallLogs, l)
}

// CurrentTopic returns the topic under assessment, or false when the topic
// index has run past the plan.
func (s *Session) CurrentTopic() (Topic, bool) {
	if s.CurrentTopicIndex < 0 || s.CurrentTopicIndex >= len(s.PreplannedTopics) {
		return Topic{}, false
	}
	return s.PreplannedTopics[s.CurrentTopicIndex], true
}

// Duration reports elapsed interview time, zero until both endpoints are set.
func (s *Session) Duration() time.Duration {
	if s.StartedAt == nil || s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(*s.StartedAt)
}

// Progress is a point-in-time snapshot of interview advancement, returned to
// API callers alongside each interviewer message.
type Progress struct {
	QuestionsAsked    int    `json:"questions_asked"`
	MaxQuestions      int    `json:"max_questions"`
	TopicsCompleted   int    `json:"topics_completed"`
	TotalTopics       int    `json:"total_topics"`
	CurrentTopicIndex int    `json:"current_topic_index"`
	CurrentSkill      string `json:"current_skill,omitempty"`
}

// Progress computes the current snapshot.
func (s *Session) Progress() Progress {
	p := Progress{
		QuestionsAsked:    s.QuestionsAsked,
		MaxQuestions:      s.Job.QuestionPolicy.Normalized().MaxQuestions,
		TopicsCompleted:   s.CurrentTopicIndex,
		TotalTopics:       len(s.PreplannedTopics),
		CurrentTopicIndex: s.CurrentTopicIndex,
	}
	if topic, ok := s.CurrentTopic(); ok {
		p.CurrentSkill = topic.Skill
	}
	return p
}
