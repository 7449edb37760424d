package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrmate-ai/hrmate/internal/llm"
)

const policyPromptTemplate = `You are a helpful HR assistant. Answer the user's question about company HR policies based on the following context from policy documents.

Context from HR Policies:
%s

User Question: %s

Provide a clear, helpful answer based on the context. If the context doesn't contain enough information, say so politely. Be conversational and friendly.`

const policyErrorMessage = "I'm sorry, I couldn't process your question right now. Please try again in a moment."

// answerPolicy answers a policy question grounded on retrieved chunks. A
// retrieval failure degrades to an empty context so the model can still
// respond honestly that it has nothing to go on.
func (e *Engine) answerPolicy(ctx context.Context, in TurnInput) TurnOutput {
	passages, err := e.retriever.Search(ctx, in.Message, e.topK)
	if err != nil {
		e.logger.Warnw("policy retrieval failed, answering without context", "error", err)
		passages = nil
	}

	context := formatContext(passages)
	e.logger.Debugw("policy context assembled", "passages", len(passages), "chars", len(context))

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:    e.model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: fmt.Sprintf(policyPromptTemplate, context, in.Message)}},
	})
	if err != nil {
		e.logger.Errorw("policy answer generation failed", "error", err)
		return TurnOutput{Intent: IntentPolicyQuestion, Response: policyErrorMessage, Snapshot: in.Snapshot}
	}

	return TurnOutput{
		Intent:   IntentPolicyQuestion,
		Response: strings.TrimSpace(resp.Content),
		Snapshot: in.Snapshot,
		Context:  context,
	}
}

// AnswerPolicyQuestion answers a standalone policy question, bypassing
// intent routing. Used by surfaces that are not conversational, like the
// MCP tools and the ask command.
func (e *Engine) AnswerPolicyQuestion(ctx context.Context, question string) (string, error) {
	out := e.answerPolicy(ctx, TurnInput{Message: question})
	if out.Response == policyErrorMessage {
		return "", fmt.Errorf("answer generation failed")
	}
	return out.Response, nil
}

// formatContext labels each passage with its source policy.
func formatContext(passages []Passage) string {
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, fmt.Sprintf("[From %s]\n%s\n", p.Source, p.Text))
	}
	return strings.Join(parts, "\n")
}
