package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// JSONResponse marshals v into a canned response. It panics if v cannot
// be marshaled, which only happens with a broken test fixture.
func JSONResponse(v any) MockResponse {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("llm: mock response: %v", err))
	}
	return MockResponse{Content: data}
}

// MockProvider is a deterministic Provider for tests. It answers in FIFO
// order and records each request together with the purpose and learner
// found on its context.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse

	Calls        []Request
	CallPurposes []Purpose
	CallUsers    []string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response. An empty queue answers
// ErrProviderUnavailable. A done context is returned as is, after the
// call has been recorded.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.CallPurposes = append(m.CallPurposes, PurposeFrom(ctx))
	m.CallUsers = append(m.CallUsers, UserFrom(ctx))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("mock: no response queued")}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Pending returns how many canned responses are still queued.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
