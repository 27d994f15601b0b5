package tokens

import (
	"testing"

	"github.com/hirevox/interview-engine/internal/llm"
)

func TestCountText(t *testing.T) {
	e := NewEstimator()

	n := e.CountText("gpt-4o", "How does a goroutine differ from an OS thread?")
	if n == 0 {
		t.Fatal("CountText() = 0, want > 0")
	}

	if e.CountText("gpt-4o", "") != 0 {
		t.Error("CountText(empty) != 0")
	}

	// Unknown model names fall back to a default encoding rather than zero.
	if e.CountText("some-custom-model", "hello world") == 0 {
		t.Error("CountText(unknown model) = 0, want > 0")
	}
}

func TestEstimateUsage(t *testing.T) {
	e := NewEstimator()

	prompt := []llm.Message{
		{Role: "system", Content: "You are a technical interviewer."},
		{Role: "user", Content: "Ask a question about Go."},
	}
	usage := e.EstimateUsage("gpt-4o", prompt, "What is a channel used for?")

	if usage.InputTokens <= 2*perMessageOverhead {
		t.Errorf("InputTokens = %d, want more than framing overhead", usage.InputTokens)
	}
	if usage.OutputTokens == 0 {
		t.Error("OutputTokens = 0, want > 0")
	}
	if usage.TotalTokens != usage.InputTokens+usage.OutputTokens {
		t.Errorf("TotalTokens = %d, want %d", usage.TotalTokens, usage.InputTokens+usage.OutputTokens)
	}
}

func TestCodecCaching(t *testing.T) {
	e := NewEstimator()

	a := e.CountText("unknown-model-a", "same text")
	b := e.CountText("unknown-model-b", "same text")
	if a != b {
		t.Errorf("counts differ for same encoding: %d vs %d", a, b)
	}
}
