package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hirevox/interview-engine/internal/domain"
	"github.com/hirevox/interview-engine/internal/llm"
)

var tracer = otel.Tracer("interview-engine/interview")

// Archiver receives sessions that have reached a terminal state. Archiving is
// best effort: failures are logged and never affect the interview path.
type Archiver interface {
	ArchiveSession(ctx context.Context, session *domain.Session) error
}

// lockedRand is the production randomness source: a seeded math/rand guarded
// for use across concurrent sessions.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithRand injects the randomness source for the stochastic policy rules.
func WithRand(rng Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithArchiver registers a terminal-session observer.
func WithArchiver(a Archiver) Option {
	return func(c *Controller) { c.archiver = a }
}

// Controller orchestrates the interview flow: it sequences LLM calls, applies
// state transitions, runs the next-action policy, and mutates the session.
// Callers are expected to serialize operations per session.
type Controller struct {
	client   llm.Client
	logger   *slog.Logger
	rng      Rand
	archiver Archiver
}

// NewController creates a flow controller around the given completion client.
func NewController(client llm.Client, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		logger: slog.Default(),
		rng:    &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// complete performs one LLM round trip, recording the call in the session's
// audit log with latency and token usage.
func (c *Controller) complete(ctx context.Context, session *domain.Session, callType string, messages []llm.Message) (string, error) {
	ctx, span := tracer.Start(ctx, "llm."+callType)
	defer span.End()
	span.SetAttributes(
		attribute.String("interview.session_id", session.ID),
		attribute.String("llm.call_type", callType),
	)

	start := time.Now()
	response, usage, err := c.client.GenerateWithUsage(ctx, messages)
	latency := time.Since(start)

	var promptText strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&promptText, "[%s] %s\n", m.Role, m.Content)
	}

	session.AddCallLog(domain.CallLog{
		CallType:     callType,
		Timestamp:    time.Now().UTC(),
		Model:        c.client.Model(),
		Prompt:       promptText.String(),
		Response:     response,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		TotalTokens:  usage.TotalTokens,
		LatencyMS:    latency.Milliseconds(),
	})

	if err != nil {
		c.logger.Warn("llm call failed, degrading to fallback",
			slog.String("session_id", session.ID),
			slog.String("call_type", callType),
			slog.String("error", err.Error()),
		)
		return "", err
	}
	return response, nil
}

// StartInterview drives NOT_STARTED through greeting, topic preplanning, and
// the first question, returning the combined opening message. It fails with
// an InvalidTransitionError when the session has already started.
func (c *Controller) StartInterview(ctx context.Context, session *domain.Session) (domain.ChatMessage, error) {
	if err := Transition(session, domain.StateGreeting); err != nil {
		return domain.ChatMessage{}, err
	}
	now := time.Now().UTC()
	session.StartedAt = &now

	greeting := c.generateGreeting(ctx, session)
	session.AddMessage(domain.RoleInterviewer, greeting, nil)

	if err := Transition(session, domain.StatePreplanning); err != nil {
		return domain.ChatMessage{}, err
	}
	session.PreplannedTopics = c.generatePreplan(ctx, session)

	if err := Transition(session, domain.StateQuestioning); err != nil {
		return domain.ChatMessage{}, err
	}

	first := c.generateFirstQuestion(ctx, session)
	session.CurrentQuestion = &first
	session.QuestionsAsked = 1

	msg := session.AddMessage(
		domain.RoleInterviewer,
		greeting+"\n\n"+first.Text,
		map[string]string{"question_id": first.ID, "skill": first.Skill},
	)
	return msg, nil
}

// ProcessResponse evaluates the candidate's answer, decides the next action,
// and returns the next interviewer message. Structured LLM failures degrade
// to deterministic fallbacks; only invalid state transitions escape as errors.
func (c *Controller) ProcessResponse(ctx context.Context, session *domain.Session, candidateResponse string) (domain.ChatMessage, error) {
	session.AddMessage(domain.RoleCandidate, candidateResponse, nil)

	if isEndRequest(candidateResponse) {
		return c.conclude(ctx, session)
	}

	policy := session.Job.QuestionPolicy.Normalized()

	// Pre-check the question budget before spending an evaluation round trip.
	if session.QuestionsAsked >= policy.MaxQuestions {
		return c.conclude(ctx, session)
	}

	eval := c.evaluateResponse(ctx, session, candidateResponse)
	session.AddEvaluation(eval)

	decision := c.decide(ctx, session, candidateResponse, eval)

	switch decision.Action {
	case domain.ActionEndInterview:
		return c.conclude(ctx, session)

	case domain.ActionAskFollowup:
		if err := Transition(session, domain.StateFollowUp); err != nil {
			return domain.ChatMessage{}, err
		}
		session.FollowupsForCurrent++

	case domain.ActionMoveToNext:
		session.CurrentTopicIndex++
		session.FollowupsForCurrent = 0

		if session.CurrentTopicIndex >= len(session.PreplannedTopics) {
			return c.conclude(ctx, session)
		}
		if err := Transition(session, domain.StateTransitioning); err != nil {
			return domain.ChatMessage{}, err
		}
		if err := Transition(session, domain.StateQuestioning); err != nil {
			return domain.ChatMessage{}, err
		}
	}

	if decision.NextQuestion != nil {
		return c.issueQuestion(ctx, session, *decision.NextQuestion)
	}

	next := c.generateNextQuestion(ctx, session)
	return c.issueQuestion(ctx, session, next)
}

// issueQuestion installs a generated question and appends it to the
// transcript. The question budget is re-checked here, after generation and
// before the transcript append, so a late-arriving completion can never push
// questions_asked past the limit.
func (c *Controller) issueQuestion(ctx context.Context, session *domain.Session, q domain.Question) (domain.ChatMessage, error) {
	policy := session.Job.QuestionPolicy.Normalized()
	if session.QuestionsAsked >= policy.MaxQuestions {
		return c.conclude(ctx, session)
	}

	session.CurrentQuestion = &q
	session.QuestionsAsked++

	msg := session.AddMessage(
		domain.RoleInterviewer,
		q.Text,
		map[string]string{
			"question_id":   q.ID,
			"skill":         q.Skill,
			"question_type": string(q.Type),
		},
	)
	return msg, nil
}

// EndInterviewEarly cancels the interview, appending a closing message that
// references the optional reason.
func (c *Controller) EndInterviewEarly(ctx context.Context, session *domain.Session, reason string) (domain.ChatMessage, error) {
	if err := Transition(session, domain.StateCancelled); err != nil {
		return domain.ChatMessage{}, err
	}
	now := time.Now().UTC()
	session.EndedAt = &now

	closing := "The interview has been ended. Thank you for your time."
	if reason != "" {
		closing = fmt.Sprintf("The interview has been ended. Reason: %s. Thank you for your time.", reason)
	}

	msg := session.AddMessage(domain.RoleInterviewer, closing, nil)
	c.archive(ctx, session)
	return msg, nil
}

// conclude is the only path to COMPLETED, shared by every exit point.
func (c *Controller) conclude(ctx context.Context, session *domain.Session) (domain.ChatMessage, error) {
	if session.State != domain.StateConcluding {
		if err := Transition(session, domain.StateConcluding); err != nil {
			return domain.ChatMessage{}, err
		}
	}

	var covered []string
	for i, t := range session.PreplannedTopics {
		if i > session.CurrentTopicIndex {
			break
		}
		covered = append(covered, t.Skill)
	}
	topicsText := "various topics"
	if len(covered) > 0 {
		topicsText = strings.Join(covered, ", ")
	}

	prompt := fmt.Sprintf(llm.ConclusionPrompt,
		session.Resume.NameOrDefault(),
		session.Job.TitleOrDefault(),
		topicsText,
		session.QuestionsAsked,
	)

	conclusion, err := c.complete(ctx, session, "conclusion", []llm.Message{{Role: "user", Content: prompt}})
	if err != nil || strings.TrimSpace(conclusion) == "" {
		conclusion = fmt.Sprintf(
			"Thank you for your time, %s. That concludes the interview; the team will follow up with next steps.",
			session.Resume.NameOrDefault(),
		)
	}

	if err := Transition(session, domain.StateCompleted); err != nil {
		return domain.ChatMessage{}, err
	}
	now := time.Now().UTC()
	session.EndedAt = &now

	msg := session.AddMessage(domain.RoleInterviewer, conclusion, nil)
	c.archive(ctx, session)
	return msg, nil
}

// archive hands a terminal session to the configured archiver, best effort.
func (c *Controller) archive(ctx context.Context, session *domain.Session) {
	if c.archiver == nil {
		return
	}
	if err := c.archiver.ArchiveSession(ctx, session); err != nil {
		c.logger.Error("session archive failed",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}
}

// decide runs the next-action policy and, when it asks for a follow-up,
// generates the (always conceptual) follow-up question for the current topic.
func (c *Controller) decide(ctx context.Context, session *domain.Session, response string, eval domain.Evaluation) Decision {
	action, reason, wantFollowup := nextAction(session, response, eval, c.rng)

	d := Decision{Action: action, Reason: reason}
	if wantFollowup {
		topic, ok := session.CurrentTopic()
		if !ok {
			// No topic to probe; fall back to advancing.
			return Decision{Action: domain.ActionMoveToNext, Reason: "moving to next topic"}
		}
		q := c.generateQuestionForTopic(ctx, session, topic, domain.QuestionFollowup)
		d.NextQuestion = &q
	}

	c.logger.Info("next action decided",
		slog.String("session_id", session.ID),
		slog.String("action", string(d.Action)),
		slog.String("reason", d.Reason),
	)
	return d
}

// generateGreeting returns the opening line, degrading to a canned greeting
// when the model call fails.
func (c *Controller) generateGreeting(ctx context.Context, session *domain.Session) string {
	prompt := fmt.Sprintf(llm.GreetingPrompt,
		session.Resume.NameOrDefault(),
		session.Job.TitleOrDefault(),
		session.Job.CompanyOrDefault(),
	)

	greeting, err := c.complete(ctx, session, "greeting", []llm.Message{{Role: "user", Content: prompt}})
	if err != nil || strings.TrimSpace(greeting) == "" {
		return fmt.Sprintf(
			"Hi %s, welcome! Thanks for taking the time to talk about the %s role today. Let's get started.",
			session.Resume.NameOrDefault(),
			session.Job.TitleOrDefault(),
		)
	}
	return greeting
}

// generatePreplan asks the model for the topic plan, falling back to a plan
// derived from the job's primary skills when the output cannot be parsed.
func (c *Controller) generatePreplan(ctx context.Context, session *domain.Session) []domain.Topic {
	policy := session.Job.QuestionPolicy.Normalized()

	prompt := fmt.Sprintf(llm.PreplanPrompt,
		buildResumeSummary(session.Resume),
		session.Job.TitleOrDefault(),
		session.Job.CompanyOrDefault(),
		session.Job.Description,
		string(session.Job.Level),
		strings.Join(session.Job.PrimarySkills, ", "),
		strings.Join(session.Job.SecondarySkills, ", "),
		session.Job.Experience,
		policy.MaxQuestions,
	)

	messages := []llm.Message{
		{Role: "system", Content: "You are an expert technical interviewer."},
		{Role: "user", Content: prompt},
	}

	response, err := c.complete(ctx, session, "preplan", messages)
	if err == nil {
		if topics, ok := parseTopics(response); ok {
			return topics
		}
	}

	return fallbackPreplan(session.Job)
}

// parseTopics decodes a topic plan from raw model output, normalizing
// difficulty values on ingestion.
func parseTopics(response string) ([]domain.Topic, bool) {
	var raw []struct {
		Serial     int    `json:"serial"`
		Skill      string `json:"skill"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &raw); err != nil {
		return nil, false
	}
	if len(raw) == 0 {
		return nil, false
	}

	topics := make([]domain.Topic, 0, len(raw))
	for i, r := range raw {
		if strings.TrimSpace(r.Skill) == "" {
			continue
		}
		serial := r.Serial
		if serial == 0 {
			serial = i + 1
		}
		topics = append(topics, domain.Topic{
			Serial:     serial,
			Skill:      r.Skill,
			Difficulty: domain.ParseDifficulty(r.Difficulty),
		})
	}
	if len(topics) == 0 {
		return nil, false
	}
	return topics, true
}

// fallbackPreplan derives a default plan from the job's primary skills,
// capped at 5 topics, all EASY.
func fallbackPreplan(job domain.JobSpec) []domain.Topic {
	skills := job.PrimarySkills
	if len(skills) == 0 {
		skills = []string{"General"}
	}
	if len(skills) > 5 {
		skills = skills[:5]
	}

	topics := make([]domain.Topic, len(skills))
	for i, skill := range skills {
		topics[i] = domain.Topic{Serial: i + 1, Skill: skill, Difficulty: domain.DifficultyEasy}
	}
	return topics
}

// generateFirstQuestion produces the question for topic 0, or a generic
// opener when the plan is empty.
func (c *Controller) generateFirstQuestion(ctx context.Context, session *domain.Session) domain.Question {
	if len(session.PreplannedTopics) == 0 {
		return domain.Question{
			ID:               uuid.New().String(),
			Text:             "Tell me about your experience and what interests you about this role.",
			Type:             domain.QuestionMain,
			ExpectedConcepts: []string{"experience", "motivation", "role_fit"},
			Skill:            "General",
			Difficulty:       domain.DifficultyEasy,
		}
	}
	return c.generateQuestionForTopic(ctx, session, session.PreplannedTopics[0], domain.QuestionMain)
}

// generateNextQuestion produces the main question for the current topic.
func (c *Controller) generateNextQuestion(ctx context.Context, session *domain.Session) domain.Question {
	topic, ok := session.CurrentTopic()
	if !ok {
		// Past the plan; normally unreachable because the caller concludes
		// first.
		return domain.Question{
			ID:               uuid.New().String(),
			Text:             "Is there anything else you'd like to share about your experience?",
			Type:             domain.QuestionMain,
			ExpectedConcepts: []string{"closing"},
			Skill:            "General",
			Difficulty:       domain.DifficultyEasy,
		}
	}

	qType := domain.QuestionMain
	if session.State == domain.StateFollowUp {
		qType = domain.QuestionFollowup
	}
	return c.generateQuestionForTopic(ctx, session, topic, qType)
}

// generateQuestionForTopic builds and sends the question prompt for a topic,
// degrading to a contextual fallback question when the output cannot be
// parsed. Main questions are coding exercises with bounded probability;
// follow-ups are always conceptual.
func (c *Controller) generateQuestionForTopic(ctx context.Context, session *domain.Session, topic domain.Topic, qType domain.QuestionType) domain.Question {
	isCoding := false
	if qType == domain.QuestionMain {
		isCoding = c.rng.Intn(100) < codingChancePct
	}

	formatName := "CONCEPTUAL"
	formatInstructions := llm.ConceptualFormatInstructions
	outputFormat := fmt.Sprintf(llm.ConceptualOutputFormat, qType, topic.Skill, topic.Difficulty)
	if isCoding {
		formatName = "CODING"
		formatInstructions = llm.CodingFormatInstructions
		outputFormat = fmt.Sprintf(llm.CodingOutputFormat, qType, topic.Skill, topic.Difficulty)
	}

	prompt := fmt.Sprintf(llm.QuestionPrompt,
		session.Job.TitleOrDefault(),
		string(session.Job.Level),
		buildJobRequirements(session.Job),
		topic.Skill,
		string(topic.Difficulty),
		string(qType),
		formatName,
		formatInstructions,
		outputFormat,
		buildResumeSummary(session.Resume),
		recentHistory(session, 4),
	)

	messages := []llm.Message{
		{Role: "system", Content: "You are a technical interviewer."},
		{Role: "user", Content: prompt},
	}

	response, err := c.complete(ctx, session, "question", messages)
	if err == nil {
		if q, ok := parseQuestion(response, topic, qType); ok {
			return q
		}
	}

	return fallbackQuestion(session.Resume, topic, qType)
}

// parseQuestion decodes a question from raw model output, normalizing enums
// and filling absent fields from the topic.
func parseQuestion(response string, topic domain.Topic, qType domain.QuestionType) (domain.Question, bool) {
	var raw struct {
		ID               string   `json:"id"`
		Text             string   `json:"text"`
		Type             string   `json:"type"`
		ExpectedConcepts []string `json:"expected_concepts"`
		Skill            string   `json:"skill"`
		Difficulty       string   `json:"difficulty"`
		IsCoding         bool     `json:"is_coding"`
		ProblemStatement string   `json:"problem_statement"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &raw); err != nil {
		return domain.Question{}, false
	}
	if strings.TrimSpace(raw.Text) == "" {
		return domain.Question{}, false
	}

	q := domain.Question{
		ID:               raw.ID,
		Text:             raw.Text,
		Type:             qType,
		ExpectedConcepts: raw.ExpectedConcepts,
		Skill:            raw.Skill,
		Difficulty:       domain.ParseDifficulty(raw.Difficulty),
		IsCoding:         raw.IsCoding,
		ProblemStatement: raw.ProblemStatement,
	}
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.Skill == "" {
		q.Skill = topic.Skill
	}
	if qType == domain.QuestionFollowup {
		// Follow-ups are conceptual regardless of what the model claims.
		q.IsCoding = false
		q.ProblemStatement = ""
	}
	return q, true
}

// fallbackQuestion produces a deterministic conceptual question, anchored on
// a resume project when one is available.
func fallbackQuestion(resume domain.ResumeProfile, topic domain.Topic, qType domain.QuestionType) domain.Question {
	skill := topic.Skill
	if skill == "" {
		skill = "this technology"
	}

	text := fmt.Sprintf(
		"Let's talk about %s. What's been your hands-on experience with it? Any interesting problems you've solved?",
		skill,
	)
	if len(resume.Projects) > 0 && resume.Projects[0].Name != "" {
		text = fmt.Sprintf(
			"I noticed you worked on %s. How did %s concepts come into play in that project? What approach did you take?",
			resume.Projects[0].Name, skill,
		)
	}

	return domain.Question{
		ID:               uuid.New().String(),
		Text:             text,
		Type:             qType,
		ExpectedConcepts: []string{"experience", "practical_knowledge"},
		Skill:            topic.Skill,
		Difficulty:       topic.Difficulty,
	}
}

// evaluateResponse asks the model to score the answer to the current
// question, synthesizing a neutral fallback evaluation when the output cannot
// be parsed so the turn never fails.
func (c *Controller) evaluateResponse(ctx context.Context, session *domain.Session, candidateResponse string) domain.Evaluation {
	question := session.CurrentQuestion
	if question == nil {
		question = &domain.Question{ID: uuid.New().String(), Type: domain.QuestionMain, Skill: "General"}
	}

	prompt := fmt.Sprintf(llm.EvaluatePrompt,
		question.Text,
		question.Skill,
		strings.Join(question.ExpectedConcepts, ", "),
		candidateResponse,
		question.ID,
		string(question.Type),
	)

	messages := []llm.Message{
		{Role: "system", Content: "You are an expert technical interviewer evaluating candidate responses."},
		{Role: "user", Content: prompt},
	}

	response, err := c.complete(ctx, session, "evaluate", messages)
	if err == nil {
		if eval, ok := parseEvaluation(response, question); ok {
			return eval
		}
	}

	return fallbackEvaluation(question)
}

// parseEvaluation decodes an evaluation from raw model output, clamping
// scores into [0,1] and normalizing the confidence enum.
func parseEvaluation(response string, question *domain.Question) (domain.Evaluation, bool) {
	var raw struct {
		QuestionRef struct {
			QuestionID       string `json:"question_id"`
			ParentQuestionID string `json:"parent_question_id"`
			QuestionType     string `json:"question_type"`
		} `json:"question_ref"`
		Skill              string   `json:"skill"`
		CorrectnessScore   float64  `json:"correctness_score"`
		DepthScore         float64  `json:"depth_score"`
		CommunicationScore float64  `json:"communication_score"`
		ObservedConcepts   []string `json:"observed_concepts"`
		MissingConcepts    []string `json:"missing_concepts"`
		ConfidenceLevel    string   `json:"confidence_level"`
		Notes              string   `json:"notes"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &raw); err != nil {
		return domain.Evaluation{}, false
	}

	eval := domain.Evaluation{
		QuestionRef: domain.QuestionRef{
			QuestionID:       raw.QuestionRef.QuestionID,
			ParentQuestionID: raw.QuestionRef.ParentQuestionID,
			QuestionType:     question.Type,
		},
		Skill:              raw.Skill,
		CorrectnessScore:   clamp01(raw.CorrectnessScore),
		DepthScore:         clamp01(raw.DepthScore),
		CommunicationScore: clamp01(raw.CommunicationScore),
		ObservedConcepts:   raw.ObservedConcepts,
		MissingConcepts:    raw.MissingConcepts,
		ConfidenceLevel:    domain.ParseConfidence(raw.ConfidenceLevel),
		Notes:              raw.Notes,
	}
	if eval.QuestionRef.QuestionID == "" {
		eval.QuestionRef.QuestionID = question.ID
	}
	if eval.Skill == "" {
		eval.Skill = question.Skill
	}
	return eval, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fallbackEvaluation is the neutral substitute used when scoring fails:
// all scores 0.5, LOW confidence, empty concept lists.
func fallbackEvaluation(question *domain.Question) domain.Evaluation {
	skill := question.Skill
	if skill == "" {
		skill = "General"
	}
	return domain.Evaluation{
		QuestionRef: domain.QuestionRef{
			QuestionID:   question.ID,
			QuestionType: question.Type,
		},
		Skill:              skill,
		CorrectnessScore:   0.5,
		DepthScore:         0.5,
		CommunicationScore: 0.5,
		ObservedConcepts:   []string{},
		MissingConcepts:    []string{},
		ConfidenceLevel:    domain.ConfidenceLow,
		Notes:              "fallback evaluation due to parsing error",
	}
}

// recentHistory renders the last n transcript entries for prompt context.
func recentHistory(session *domain.Session, n int) string {
	msgs := session.Messages
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	if len(msgs) == 0 {
		return "No previous conversation."
	}

	var b strings.Builder
	for _, m := range msgs {
		role := "Candidate"
		if m.Role == domain.RoleInterviewer {
			role = "Interviewer"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
	}
	return b.String()
}

// buildJobRequirements condenses the job spec into one prompt line.
func buildJobRequirements(job domain.JobSpec) string {
	var parts []string
	if job.Description != "" {
		desc := job.Description
		if len(desc) > 300 {
			desc = desc[:300]
		}
		parts = append(parts, "Role: "+desc)
	}
	if len(job.PrimarySkills) > 0 {
		parts = append(parts, "Primary skills: "+strings.Join(truncateList(job.PrimarySkills, 5), ", "))
	}
	if len(job.SecondarySkills) > 0 {
		parts = append(parts, "Secondary skills: "+strings.Join(truncateList(job.SecondarySkills, 3), ", "))
	}
	if job.Experience != "" {
		parts = append(parts, "Experience: "+job.Experience)
	}
	if len(parts) == 0 {
		return "General software engineering role"
	}
	return strings.Join(parts, " | ")
}

// buildResumeSummary condenses the candidate profile for prompt context.
func buildResumeSummary(resume domain.ResumeProfile) string {
	var parts []string

	if resume.Name != "" {
		parts = append(parts, "Name: "+resume.Name)
	}
	if resume.Role != "" {
		parts = append(parts, "Current role: "+resume.Role)
	}
	if resume.Experience.TotalYears > 0 {
		parts = append(parts, fmt.Sprintf("Experience: %.1f years", resume.Experience.TotalYears))
		if len(resume.Experience.Companies) > 0 {
			parts = append(parts, "Companies: "+strings.Join(truncateList(resume.Experience.Companies, 3), ", "))
		}
	}
	if len(resume.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(truncateList(resume.Skills, 15), ", "))
	}
	if len(resume.Education) > 0 {
		edu := resume.Education[0]
		parts = append(parts, fmt.Sprintf("Education: %s from %s", edu.Degree, edu.CollegeName))
	}

	for i, p := range resume.Projects {
		if i >= 5 {
			break
		}
		line := "Project: " + p.Name
		if p.Description != "" {
			desc := p.Description
			if len(desc) > 300 {
				desc = desc[:300]
			}
			line += ": " + desc
		}
		if len(p.Technologies) > 0 {
			line += " [" + strings.Join(truncateList(p.Technologies, 10), ", ") + "]"
		}
		parts = append(parts, line)
	}

	for i, w := range resume.WorkExperience {
		if i >= 3 {
			break
		}
		parts = append(parts, fmt.Sprintf("Work: %s at %s", w.Role, w.Company))
	}

	if resume.Summary != "" {
		summary := resume.Summary
		if len(summary) > 500 {
			summary = summary[:500]
		}
		parts = append(parts, "Summary: "+summary)
	}

	if len(parts) == 0 {
		return "No resume data available"
	}
	return strings.Join(parts, "\n")
}

func truncateList(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}
