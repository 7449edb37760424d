package dialogue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hrmate-ai/hrmate/internal/llm"
)

const intentPromptTemplate = `You are an intent classifier for an HR assistant. Classify the following user message into one of two categories:
1. "policy_question" - User is asking about HR policies (e.g., "What is the work from home policy?", "How many sick days do I get?")
2. "leave_request" - User wants to create a leave request (e.g., "I need to take leave", "Apply for annual leave", "I need a sick day")

User message: %s

Respond with ONLY a JSON object in this exact format:
{"intent": "policy_question" or "leave_request"}

Do not include any other text or explanation.`

// classifyIntent routes the message. An active leave flow always wins so a
// mid-flow message like "tomorrow" is never misread as a policy question.
// Any classification failure falls back to policy_question.
func (e *Engine) classifyIntent(ctx context.Context, in TurnInput) string {
	if in.Snapshot.Active() {
		e.logger.Debugw("continuing active leave flow", "stage", in.Snapshot.Stage)
		return IntentLeaveRequest
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:    e.model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: fmt.Sprintf(intentPromptTemplate, in.Message)}},
		JSONMode: true,
	})
	if err != nil {
		e.logger.Warnw("intent classification failed, defaulting to policy_question", "error", err)
		return IntentPolicyQuestion
	}

	var parsed struct {
		Intent string `json:"intent"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Content)), &parsed); err != nil {
		e.logger.Warnw("could not parse intent response, defaulting to policy_question", "error", err)
		return IntentPolicyQuestion
	}

	switch parsed.Intent {
	case IntentPolicyQuestion, IntentLeaveRequest:
		return parsed.Intent
	default:
		e.logger.Warnw("invalid intent from model, defaulting to policy_question", "intent", parsed.Intent)
		return IntentPolicyQuestion
	}
}
