package llm

// Prompt templates for the interview engine. They are fmt.Sprintf format
// strings; the flow controller fills them from typed session data. Structured
// outputs are requested as bare JSON so ExtractJSON can recover them even
// when the model adds fences or prose.

// GreetingPrompt asks for a short spoken-style opening.
// Args: candidate name, job title, company name.
const GreetingPrompt = `Generate a warm, natural interview greeting.

Candidate: %s
Role: %s at %s

Requirements:
- Use the first name naturally
- Mention the role briefly
- Set a relaxed, conversational tone
- 2-3 sentences max
- Plain text only (no markdown, no emojis)`

// PreplanPrompt asks for the topic plan as a JSON array.
// Args: resume summary, job title, company, description, level,
// primary skills, secondary skills, experience required, max questions.
const PreplanPrompt = `Plan interview topics matching job requirements to candidate background.

## Candidate Resume:
%s

## Job Requirements:
Title: %s at %s
Description: %s
Level: %s
Primary Skills (MUST assess): %s
Secondary Skills (if time permits): %s
Experience Required: %s

## Constraints:
- Max %d main questions
- Follow-ups are handled separately, do not plan them
- Each topic covers exactly one skill

## Planning Rules:
1. Prioritize PRIMARY skills that match the candidate's experience
2. Anchor each skill to relevant candidate projects where possible
3. Skip skills the candidate has zero background in unless mandatory
4. Order strongest matches first

## Difficulty by Level:
- FRESHER: start EASY, max MEDIUM
- JUNIOR: EASY or MEDIUM based on experience match
- SENIOR: start MEDIUM, can reach HARD

## Output (JSON array only):
[{"serial": 1, "skill": "SkillName", "difficulty": "EASY|MEDIUM|HARD"}, ...]`

// QuestionPrompt asks for one question as a JSON object.
// Args: job title, level, job requirements, skill, difficulty, question type,
// format name, format instructions, output format, candidate context,
// conversation history.
const QuestionPrompt = `Generate one interview question.

## Role Context:
Title: %s (level %s)
Requirements: %s

## Target:
Skill: %s
Difficulty: %s
Question type: %s
Format: %s

%s

%s

## Candidate Context:
%s

## Recent Conversation:
%s`

// ConceptualFormatInstructions constrain conceptual questions to a spoken
// register.
const ConceptualFormatInstructions = `## Format Instructions:
- Conversational, as if spoken aloud
- One focused question, not a list
- Reference the candidate's background when natural
- No code snippets in the question text`

// CodingFormatInstructions request a separate written problem statement.
const CodingFormatInstructions = `## Format Instructions:
- A short spoken lead-in in "text"
- The full written problem in "problem_statement"
- Keep the problem solvable in 10-15 minutes
- State input/output expectations explicitly`

// ConceptualOutputFormat is the JSON shape for conceptual questions.
// Args: question type, skill, difficulty.
const ConceptualOutputFormat = `## Output (JSON object only):
{"id": "uuid", "text": "...", "type": "%s", "expected_concepts": ["..."], "skill": "%s", "difficulty": "%s", "is_coding": false}`

// CodingOutputFormat is the JSON shape for coding questions.
// Args: question type, skill, difficulty.
const CodingOutputFormat = `## Output (JSON object only):
{"id": "uuid", "text": "...", "type": "%s", "expected_concepts": ["..."], "skill": "%s", "difficulty": "%s", "is_coding": true, "problem_statement": "..."}`

// EvaluatePrompt asks for a structured scoring of the last answer.
// Args: question text, skill, expected concepts, candidate response,
// question id, question type.
const EvaluatePrompt = `Evaluate the candidate's answer.

## Question:
%s
Skill: %s
Expected concepts: %s

## Candidate Answer:
%s

## Scoring:
- correctness_score, depth_score, communication_score: each in [0,1]
- observed_concepts / missing_concepts: from the expected concepts
- confidence_level: LOW | MEDIUM | HIGH (your confidence in this scoring)

## Output (JSON object only):
{"question_ref": {"question_id": "%s", "question_type": "%s"}, "skill": "...", "correctness_score": 0.0, "depth_score": 0.0, "communication_score": 0.0, "observed_concepts": [], "missing_concepts": [], "confidence_level": "MEDIUM", "notes": "..."}`

// ConclusionPrompt asks for the closing message.
// Args: candidate name, job title, topics covered, question count.
const ConclusionPrompt = `Generate a short interview closing message.

Candidate: %s
Role: %s
Topics covered: %s
Questions asked: %d

Requirements:
- Thank the candidate by first name
- Mention next steps generically (team will follow up)
- Do NOT reveal any assessment or scores
- 2-3 sentences, plain text only`

// ReportInsightsPrompt asks for report narrative sections as JSON.
// Args: candidate name, job title, company, duration minutes, total
// questions, per-skill assessment lines, overall score, minimum score,
// mandatory skills.
const ReportInsightsPrompt = `Write hiring feedback from these interview results.

Candidate: %s
Role: %s at %s
Duration: %.1f minutes, %d questions

## Per-Skill Results:
%s

Overall score: %s (pass bar %s)
Mandatory skills: %s

## Output (JSON object only):
{"strengths_summary": "...", "areas_for_improvement": "...", "hiring_recommendation": "...", "detailed_feedback": "..."}`
