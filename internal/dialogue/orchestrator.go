package dialogue

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hrmate-ai/hrmate/internal/llm"
)

const panicMessage = "I'm sorry, something went wrong while processing your message. Please try again."

// defaultTopK is how many policy chunks back a policy answer.
const defaultTopK = 3

// Engine runs one conversation turn end to end: intent routing, then either
// the leave-request flow or a grounded policy answer.
type Engine struct {
	provider  llm.Provider
	model     string
	retriever Retriever
	sink      RequestSink
	logger    *zap.SugaredLogger
	topK      int
	now       func() time.Time
}

// EngineConfig wires an Engine's collaborators.
type EngineConfig struct {
	Provider  llm.Provider
	Model     string
	Retriever Retriever
	Sink      RequestSink
	Logger    *zap.SugaredLogger
	// TopK bounds retrieval for policy answers. Zero means the default.
	TopK int
}

// NewEngine creates an engine from cfg.
func NewEngine(cfg EngineConfig) *Engine {
	topK := cfg.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Engine{
		provider:  cfg.Provider,
		model:     cfg.Model,
		retriever: cfg.Retriever,
		sink:      cfg.Sink,
		logger:    cfg.Logger,
		topK:      topK,
		now:       time.Now,
	}
}

// Process handles one user turn. It never panics: any failure yields an
// apology and leaves the incoming snapshot untouched so the conversation
// can resume where it was.
func (e *Engine) Process(ctx context.Context, in TurnInput) (out TurnOutput) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorw("recovered panic during turn", "panic", r, "user_id", in.UserID)
			out = TurnOutput{
				Intent:   out.Intent,
				Response: panicMessage,
				Snapshot: in.Snapshot,
			}
		}
	}()

	intent := e.classifyIntent(ctx, in)
	e.logger.Infow("turn routed", "intent", intent, "user_id", in.UserID)

	out.Intent = intent
	if intent == IntentLeaveRequest {
		return e.handleLeave(ctx, in)
	}
	return e.answerPolicy(ctx, in)
}
