package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hirevox/interview-engine/internal/llm"
)

func chatCompletionServer(t *testing.T, handler func(r *http.Request) interface{}) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(handler(r)); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestGenerateWithUsage(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	ts := chatCompletionServer(t, func(r *http.Request) interface{} {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		return map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Hello Ada!"}},
			},
			"usage": map[string]int{
				"prompt_tokens":     12,
				"completion_tokens": 3,
				"total_tokens":      15,
			},
		}
	})

	c := NewClient("secret", WithBaseURL(ts.URL), WithModel("gpt-4o-mini"), WithTemperature(0.2))

	text, usage, err := c.GenerateWithUsage(context.Background(), []llm.Message{
		{Role: "system", Content: "You are an interviewer."},
		{Role: "user", Content: "Greet the candidate."},
	})
	if err != nil {
		t.Fatalf("GenerateWithUsage() error = %v", err)
	}

	if text != "Hello Ada!" {
		t.Errorf("text = %q", text)
	}
	if usage.InputTokens != 12 || usage.OutputTokens != 3 || usage.TotalTokens != 15 {
		t.Errorf("usage = %+v", usage)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
	if gotReq.Temperature == nil || *gotReq.Temperature != 0.2 {
		t.Errorf("request temperature = %v", gotReq.Temperature)
	}
}

func TestGenerateWithUsageEstimatesWhenAbsent(t *testing.T) {
	ts := chatCompletionServer(t, func(r *http.Request) interface{} {
		return map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Some completion text."}},
			},
		}
	})

	c := NewClient("secret", WithBaseURL(ts.URL))

	_, usage, err := c.GenerateWithUsage(context.Background(), []llm.Message{
		{Role: "user", Content: "Count my tokens please."},
	})
	if err != nil {
		t.Fatalf("GenerateWithUsage() error = %v", err)
	}
	if usage.InputTokens == 0 || usage.OutputTokens == 0 {
		t.Errorf("estimated usage = %+v, want non-zero counts", usage)
	}
	if usage.TotalTokens != usage.InputTokens+usage.OutputTokens {
		t.Errorf("TotalTokens = %d, want %d", usage.TotalTokens, usage.InputTokens+usage.OutputTokens)
	}
}

func TestGenerateAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(ts.Close)

	c := NewClient("secret", WithBaseURL(ts.URL))
	_, _, err := c.GenerateWithUsage(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("GenerateWithUsage() error = nil, want API error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v, want status code in message", err)
	}
}

func TestGenerateNoChoices(t *testing.T) {
	ts := chatCompletionServer(t, func(r *http.Request) interface{} {
		return map[string]interface{}{"choices": []interface{}{}}
	})

	c := NewClient("secret", WithBaseURL(ts.URL))
	_, _, err := c.GenerateWithUsage(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("GenerateWithUsage() error = nil, want empty-completion error")
	}
}
