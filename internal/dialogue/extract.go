package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hrmate-ai/hrmate/internal/llm"
)

const dateLayout = "2006-01-02"

// unknownValue is the sentinel the extraction prompts use for "could not
// determine".
const unknownValue = "unknown"

const leaveTypePromptTemplate = `Extract the leave type from the user's message.

Valid leave types are:
- "sick" (for sick leave, medical leave, illness)
- "annual" (for vacation, annual leave, holiday)
- "parental" (for parental leave, maternity, paternity)

User message: %s

If you can identify the leave type, respond with ONLY one word: "sick", "annual", or "parental"
If you cannot determine the leave type, respond with "unknown"

Respond with ONLY the leave type, no other text.`

const datesPromptTemplate = `Extract start and end dates from the user's message.

TODAY'S DATE: %s
TOMORROW'S DATE: %s

User message: %s

Return ONLY a JSON object with this structure:
{"start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD"}

Rules:
- If only one date is mentioned, use it for both start_date and end_date (single day)
- If "today" is mentioned, use %s
- If "tomorrow" is mentioned, use %s
- If "next week Monday" is mentioned, calculate from %s
- All dates MUST be in YYYY-MM-DD format
- If you cannot determine dates, respond with: {"start_date": "unknown", "end_date": "unknown"}

Respond with ONLY the JSON object, no other text.`

const reasonPromptTemplate = `Extract the reason for leave from the user's message.

User message: %s

Provide a brief, clear reason (1-2 sentences). If the user provided a reason, use it. If not clear, respond with "Personal reasons".

Respond with ONLY the reason text, no other formatting.`

// extractLeaveType resolves the leave type from a message. Numeric menu
// picks and plain keywords short-circuit before the model is consulted.
// Returns "sick", "annual", "parental", or "unknown".
func (e *Engine) extractLeaveType(ctx context.Context, message string) string {
	stripped := strings.ToLower(strings.TrimSpace(message))

	switch stripped {
	case "1", "1.":
		return "sick"
	case "2", "2.":
		return "annual"
	case "3", "3.":
		return "parental"
	}

	switch {
	case strings.Contains(stripped, "sick"):
		return "sick"
	case strings.Contains(stripped, "annual"), strings.Contains(stripped, "vacation"), strings.Contains(stripped, "holiday"):
		return "annual"
	case strings.Contains(stripped, "parental"), strings.Contains(stripped, "maternity"), strings.Contains(stripped, "paternity"):
		return "parental"
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:    e.model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: fmt.Sprintf(leaveTypePromptTemplate, message)}},
	})
	if err != nil {
		e.logger.Warnw("leave type extraction failed", "error", err)
		return unknownValue
	}

	answer := strings.ToLower(stripCodeFence(resp.Content))
	switch answer {
	case "sick", "annual", "parental":
		return answer
	default:
		return unknownValue
	}
}

// extractDates asks the model for a start/end date pair anchored to today's
// date. Either or both values may be the "unknown" sentinel.
func (e *Engine) extractDates(ctx context.Context, message string) (startDate, endDate string, err error) {
	today := e.now().Format(dateLayout)
	tomorrow := e.now().AddDate(0, 0, 1).Format(dateLayout)

	prompt := fmt.Sprintf(datesPromptTemplate, today, tomorrow, message, today, tomorrow, today)
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:    e.model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		JSONMode: true,
	})
	if err != nil {
		return "", "", fmt.Errorf("date extraction: %w", err)
	}

	var parsed struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Content)), &parsed); err != nil {
		return "", "", fmt.Errorf("parse date extraction response: %w", err)
	}
	return parsed.StartDate, parsed.EndDate, nil
}

// extractReason asks the model to summarize the user's reason for leave.
// An empty answer from a successful call falls back to "Personal reasons";
// a provider failure is returned so the caller can re-prompt.
func (e *Engine) extractReason(ctx context.Context, message string) (string, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:    e.model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: fmt.Sprintf(reasonPromptTemplate, message)}},
	})
	if err != nil {
		return "", fmt.Errorf("reason extraction: %w", err)
	}

	reason := stripCodeFence(resp.Content)
	if reason == "" {
		return "Personal reasons", nil
	}
	return reason, nil
}

// Outcomes of validating an extracted date pair.
const (
	datesOK       = ""
	datesMissing  = "missing"  // model returned the unknown sentinel
	datesInvalid  = "invalid"  // not parseable as YYYY-MM-DD
	datesPast     = "past"     // start before today
	datesInverted = "inverted" // end before start
)

// parseDatePair validates extracted date strings against today.
func (e *Engine) parseDatePair(startStr, endStr string) (start, end time.Time, problem string) {
	if startStr == unknownValue || endStr == unknownValue || startStr == "" || endStr == "" {
		return start, end, datesMissing
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return start, end, datesInvalid
	}
	end, err = time.Parse(dateLayout, endStr)
	if err != nil {
		return start, end, datesInvalid
	}

	today, _ := time.Parse(dateLayout, e.now().Format(dateLayout))
	if start.Before(today) {
		return start, end, datesPast
	}
	if end.Before(start) {
		return start, end, datesInverted
	}
	return start, end, datesOK
}

// durationDays is inclusive of both endpoints.
func durationDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
