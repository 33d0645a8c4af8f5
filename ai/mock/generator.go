package mock

import (
	"context"
)

// defaultGeneratorResponse is a well-formed synthesis payload so pipeline
// tests work without injecting a custom function.
const defaultGeneratorResponse = `{"answer":"mock answer","confidence":0.8,"knowledge_gaps":[]}`

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateJSONFunc is called by GenerateJSON if set.
	// If nil, returns a fixed well-formed response.
	GenerateJSONFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	callCount  int
	lastSystem string
	lastUser   string
}

// NewMockGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateJSON records the prompts and returns the configured response.
func (m *MockGenerator) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.callCount++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt

	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, systemPrompt, userPrompt)
	}

	return defaultGeneratorResponse, nil
}

// CallCount returns the number of times GenerateJSON was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// LastSystemPrompt returns the system prompt from the most recent call.
func (m *MockGenerator) LastSystemPrompt() string {
	return m.lastSystem
}

// LastUserPrompt returns the user prompt from the most recent call.
func (m *MockGenerator) LastUserPrompt() string {
	return m.lastUser
}

// Reset clears the call count, recorded prompts, and custom functions.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.lastSystem = ""
	m.lastUser = ""
	m.GenerateJSONFunc = nil
}
