// Package tokens estimates token counts locally with tiktoken. The engine
// uses it to keep per-call audit records populated when an upstream response
// does not carry a usage block.
package tokens

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"github.com/hirevox/interview-engine/internal/llm"
)

// perMessageOverhead approximates the chat-format framing tokens the API
// adds around each message.
const perMessageOverhead = 4

// Estimator counts tokens for a model family, caching codecs per encoding.
type Estimator struct {
	mu     sync.RWMutex
	codecs map[tokenizer.Encoding]tokenizer.Codec
}

// NewEstimator creates an empty estimator.
func NewEstimator() *Estimator {
	return &Estimator{codecs: make(map[tokenizer.Encoding]tokenizer.Codec)}
}

func (e *Estimator) codec(model string) (tokenizer.Codec, error) {
	if c, err := tokenizer.ForModel(tokenizer.Model(model)); err == nil {
		return c, nil
	}

	enc := encodingFor(model)

	e.mu.RLock()
	if c, ok := e.codecs[enc]; ok {
		e.mu.RUnlock()
		return c, nil
	}
	e.mu.RUnlock()

	c, err := tokenizer.Get(enc)
	if err != nil {
		return nil, fmt.Errorf("get tokenizer encoding %q: %w", enc, err)
	}

	e.mu.Lock()
	e.codecs[enc] = c
	e.mu.Unlock()
	return c, nil
}

// encodingFor picks a tokenizer encoding from the model name prefix.
func encodingFor(model string) tokenizer.Encoding {
	m := strings.ToLower(model)
	switch {
	case strings.HasPrefix(m, "gpt-4o"), strings.HasPrefix(m, "gpt-5"), strings.HasPrefix(m, "o"):
		return tokenizer.O200kBase
	default:
		return tokenizer.Cl100kBase
	}
}

// CountText returns the token count of a single string, or 0 on tokenizer
// failure (estimation is best effort by contract).
func (e *Estimator) CountText(model, text string) int {
	c, err := e.codec(model)
	if err != nil {
		return 0
	}
	n, err := c.Count(text)
	if err != nil {
		return 0
	}
	return n
}

// EstimateUsage fills a usage block for a prompt/completion pair.
func (e *Estimator) EstimateUsage(model string, prompt []llm.Message, completion string) llm.Usage {
	var in int
	for _, m := range prompt {
		in += e.CountText(model, m.Content) + e.CountText(model, m.Role) + perMessageOverhead
	}
	out := e.CountText(model, completion)
	return llm.Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}
