package services

import (
	"context"
	"sync"
)

// MockLLM is a TextGenerator for tests. Behavior is overridable per method;
// every call is recorded so tests can assert on prompts and call counts.
type MockLLM struct {
	GenerateNarrativeFunc  func(ctx context.Context, prompt string) (string, error)
	GenerateCommentaryFunc func(ctx context.Context, prompt string) (string, error)
	GenerateStructuredFunc func(ctx context.Context, prompt string) (string, error)

	// Track calls for testing
	NarrativeCalls  []string
	CommentaryCalls []string
	StructuredCalls []string

	mu sync.Mutex // protects all fields above
}

// NewMockLLM creates a new mock text generator.
func NewMockLLM() *MockLLM {
	return &MockLLM{
		NarrativeCalls:  make([]string, 0),
		CommentaryCalls: make([]string, 0),
		StructuredCalls: make([]string, 0),
	}
}

func (m *MockLLM) GenerateNarrative(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.NarrativeCalls = append(m.NarrativeCalls, prompt)
	if m.GenerateNarrativeFunc != nil {
		return m.GenerateNarrativeFunc(ctx, prompt)
	}
	return "Mock narrative", nil
}

func (m *MockLLM) GenerateCommentary(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CommentaryCalls = append(m.CommentaryCalls, prompt)
	if m.GenerateCommentaryFunc != nil {
		return m.GenerateCommentaryFunc(ctx, prompt)
	}
	return "Mock commentary", nil
}

func (m *MockLLM) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StructuredCalls = append(m.StructuredCalls, prompt)
	if m.GenerateStructuredFunc != nil {
		return m.GenerateStructuredFunc(ctx, prompt)
	}
	return `{"predictions":[],"confidence_level":"medium"}`, nil
}

// CallCount returns the total number of generation calls across all modes.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.NarrativeCalls) + len(m.CommentaryCalls) + len(m.StructuredCalls)
}

// SetNarrativeError sets up the mock to fail narrative generation.
func (m *MockLLM) SetNarrativeError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateNarrativeFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", err
	}
}

// Reset clears all call tracking.
func (m *MockLLM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NarrativeCalls = make([]string, 0)
	m.CommentaryCalls = make([]string, 0)
	m.StructuredCalls = make([]string, 0)
}
