package llm

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "raw object",
			input: `{"skill": "Go"}`,
			want:  `{"skill": "Go"}`,
		},
		{
			name:  "raw array",
			input: `[{"serial": 1}]`,
			want:  `[{"serial": 1}]`,
		},
		{
			name:  "json fence",
			input: "Here you go:\n```json\n{\"skill\": \"Go\"}\n```\nLet me know if you need more.",
			want:  `{"skill": "Go"}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"skill\": \"Go\"}\n```",
			want:  `{"skill": "Go"}`,
		},
		{
			name:  "object embedded in prose",
			input: `Sure! The evaluation is {"score": 0.8, "notes": "good"} based on the answer.`,
			want:  `{"score": 0.8, "notes": "good"}`,
		},
		{
			name:  "nested braces",
			input: `Result: {"ref": {"id": "q1"}, "score": 1} done.`,
			want:  `{"ref": {"id": "q1"}, "score": 1}`,
		},
		{
			name:  "array embedded in prose",
			input: `Topics: [{"serial": 1, "skill": "Go"}] end.`,
			want:  `[{"serial": 1, "skill": "Go"}]`,
		},
		{
			name:  "no json returns input unchanged",
			input: "I cannot produce structured output.",
			want:  "I cannot produce structured output.",
		},
		{
			name:  "empty input",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONDecodable(t *testing.T) {
	input := "Of course! Here is the evaluation:\n```json\n{\n  \"correctness_score\": 0.75,\n  \"observed_concepts\": [\"indexing\", \"joins\"]\n}\n```"

	var out struct {
		CorrectnessScore float64  `json:"correctness_score"`
		ObservedConcepts []string `json:"observed_concepts"`
	}
	if err := json.Unmarshal([]byte(ExtractJSON(input)), &out); err != nil {
		t.Fatalf("Unmarshal(ExtractJSON()) error = %v", err)
	}
	if out.CorrectnessScore != 0.75 || len(out.ObservedConcepts) != 2 {
		t.Errorf("decoded = %+v", out)
	}
}
