// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/hirevox/interview-engine/internal/llm"
)

// Call records one GenerateWithUsage invocation.
type Call struct {
	Messages []llm.Message
}

// Fake is a scripted llm.Client. Responses are consumed in order; when the
// script runs out the last response repeats. A nil script yields empty
// completions, which exercises the engine's fallback paths.
type Fake struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []Call
}

// New creates a fake that replies with the given responses in order.
func New(responses ...string) *Fake {
	return &Fake{responses: responses}
}

// NewFailing creates a fake whose every call returns err.
func NewFailing(err error) *Fake {
	return &Fake{err: err}
}

func (f *Fake) GenerateWithUsage(ctx context.Context, messages []llm.Message) (string, llm.Usage, error) {
	if err := ctx.Err(); err != nil {
		return "", llm.Usage{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Messages: messages})
	if f.err != nil {
		return "", llm.Usage{}, f.err
	}

	var resp string
	switch {
	case len(f.responses) == 0:
		resp = ""
	case len(f.responses) == 1:
		resp = f.responses[0]
	default:
		resp = f.responses[0]
		f.responses = f.responses[1:]
	}

	usage := llm.Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30}
	return resp, usage, nil
}

func (f *Fake) Model() string { return "fake-model" }

// Calls returns a copy of the recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}
