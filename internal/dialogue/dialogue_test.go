package dialogue

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hrmate-ai/hrmate/internal/llm"
	"github.com/hrmate-ai/hrmate/pkg/logger"
)

// testToday anchors every date-sensitive test to a fixed day.
var testToday = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

const (
	todayStr    = "2026-03-10"
	tomorrowStr = "2026-03-11"
)

// scriptedProvider dispatches completions through a test-supplied function
// and records every request it sees.
type scriptedProvider struct {
	mu    sync.Mutex
	calls []llm.CompletionRequest
	fn    func(req llm.CompletionRequest) (*llm.CompletionResponse, error)
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.calls = append(p.calls, req)
	p.mu.Unlock()
	if p.fn == nil {
		return &llm.CompletionResponse{Content: ""}, nil
	}
	return p.fn(req)
}

func (p *scriptedProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// promptKind sniffs which prompt a request carries so scripted responses
// can branch on it.
func promptKind(req llm.CompletionRequest) string {
	prompt := req.Messages[len(req.Messages)-1].Content
	switch {
	case strings.Contains(prompt, "intent classifier"):
		return "intent"
	case strings.Contains(prompt, "Extract the leave type"):
		return "leave_type"
	case strings.Contains(prompt, "Extract start and end dates"):
		return "dates"
	case strings.Contains(prompt, "Extract the reason"):
		return "reason"
	case strings.Contains(prompt, "Context from HR Policies"):
		return "policy"
	default:
		return "unknown"
	}
}

// respond builds a canned scripted function from kind to reply content.
func respond(replies map[string]string) func(llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
		kind := promptKind(req)
		content, ok := replies[kind]
		if !ok {
			return nil, fmt.Errorf("unexpected prompt kind %q", kind)
		}
		return &llm.CompletionResponse{Content: content}, nil
	}
}

func datesJSON(start, end string) string {
	return fmt.Sprintf(`{"start_date": %q, "end_date": %q}`, start, end)
}

// fakeRetriever returns fixed passages or a fixed error and records queries.
type fakeRetriever struct {
	mu       sync.Mutex
	passages []Passage
	err      error
	queries  []string
	topKs    []int
}

func (r *fakeRetriever) Search(_ context.Context, query string, topK int) ([]Passage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, query)
	r.topKs = append(r.topKs, topK)
	if r.err != nil {
		return nil, r.err
	}
	return r.passages, nil
}

// fakeSink records submissions and can be forced to fail.
type fakeSink struct {
	mu          sync.Mutex
	submissions []LeaveSubmission
	err         error
	nextID      int64
}

func (s *fakeSink) Submit(_ context.Context, sub LeaveSubmission) (*SubmissionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.submissions = append(s.submissions, sub)
	s.nextID++
	return &SubmissionResult{RequestID: s.nextID, Status: "pending"}, nil
}

func (s *fakeSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submissions)
}

// newTestEngine builds an engine pinned to testToday.
func newTestEngine(provider *scriptedProvider, retriever Retriever, sink RequestSink) *Engine {
	if retriever == nil {
		retriever = &fakeRetriever{}
	}
	if sink == nil {
		sink = &fakeSink{}
	}
	e := NewEngine(EngineConfig{
		Provider:  provider,
		Model:     "test-model",
		Retriever: retriever,
		Sink:      sink,
		Logger:    logger.Nop(),
	})
	e.now = func() time.Time { return testToday }
	return e
}
