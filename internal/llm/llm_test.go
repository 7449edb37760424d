package llm

import (
	"context"
	"sync"
	"testing"
	"time"
)

// MockProvider is a configurable test double for Provider.
type MockProvider struct {
	mu       sync.Mutex
	Calls    []CompletionRequest
	Response *CompletionResponse
	Err      error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response != nil {
		return m.Response, nil
	}
	return &CompletionResponse{Content: "mock response", Model: "mock-model"}, nil
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func TestMockProviderRecordsCalls(t *testing.T) {
	mock := &MockProvider{Response: &CompletionResponse{Content: "hello"}}

	resp, err := mock.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "hello" {
		t.Errorf("Content = %q, want %q", resp.Content, "hello")
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
	if got := mock.Calls[0].Messages[0].Content; got != "hi" {
		t.Errorf("recorded message = %q, want %q", got, "hi")
	}
}

func TestNewProviderUnsupported(t *testing.T) {
	_, err := NewProvider("carrier-pigeon", "some-model")
	if err == nil {
		t.Fatal("NewProvider() with unsupported type should return an error")
	}
}

func TestNewProviderMissingKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	if _, err := NewProvider("google", "gemini-2.0-flash"); err == nil {
		t.Error("NewProvider(google) without GOOGLE_API_KEY should fail")
	}

	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewProvider("openai", "gpt-4o-mini"); err == nil {
		t.Error("NewProvider(openai) without OPENAI_API_KEY should fail")
	}
}

func TestNewProviderOllamaDefaultHost(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	p, err := NewProvider("ollama", "llama3")
	if err != nil {
		t.Fatalf("NewProvider(ollama) error = %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Name() = %q, want %q", p.Name(), "ollama")
	}
}

func TestRateLimitedPassThrough(t *testing.T) {
	mock := &MockProvider{Response: &CompletionResponse{Content: "ok"}}
	limited := NewRateLimited(mock, 0)

	resp, err := limited.Complete(context.Background(), CompletionRequest{})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("Content = %q, want %q", resp.Content, "ok")
	}
	if limited.Name() != "mock" {
		t.Errorf("Name() = %q, want %q", limited.Name(), "mock")
	}
}

func TestRateLimitedThrottles(t *testing.T) {
	mock := &MockProvider{Response: &CompletionResponse{Content: "ok"}}
	limited := NewRateLimited(mock, 600) // one token per 100ms

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := limited.Complete(ctx, CompletionRequest{}); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
	}
	// Bucket starts full, so the first 3 calls should not block for long.
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("burst within bucket capacity took %v", elapsed)
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", mock.CallCount())
	}
}

func TestRateLimitedRespectsContext(t *testing.T) {
	mock := &MockProvider{}
	limited := NewRateLimited(mock, 1)
	limited.tokens = 0 // force a wait

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := limited.Complete(ctx, CompletionRequest{})
	if err == nil {
		t.Fatal("Complete() with drained bucket and expired context should fail")
	}
	if mock.CallCount() != 0 {
		t.Errorf("inner provider was called %d times, want 0", mock.CallCount())
	}
}
