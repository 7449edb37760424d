// Package dialogue orchestrates the conversational turn loop: intent
// routing, the multi-turn leave-request flow, and grounded policy answers.
package dialogue

import "context"

// Intents the router can produce.
const (
	IntentPolicyQuestion = "policy_question"
	IntentLeaveRequest   = "leave_request"
)

// leaveFlow marks a snapshot as belonging to an in-flight leave request.
const leaveFlow = "leave_request"

// Stage identifies where an in-flight leave request is in its flow.
type Stage string

const (
	// StageAskType is the entry stage for a fresh leave request. The
	// triggering message itself is mined for type and dates.
	StageAskType Stage = "ask_type"
	// StageCollectType waits for the user to pick a leave type after
	// the entry message yielded none.
	StageCollectType Stage = "collect_type"
	StageAskDates    Stage = "ask_dates"
	StageAskReason   Stage = "ask_reason"
	StageConfirm     Stage = "confirm"
)

// LeaveData holds the fields collected so far for a leave request.
type LeaveData struct {
	LeaveType    string `json:"leave_type,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	DurationDays int    `json:"duration_days,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// Snapshot is the conversation state carried between turns. A zero
// Snapshot means no flow is active.
type Snapshot struct {
	Flow  string    `json:"flow,omitempty"`
	Stage Stage     `json:"stage,omitempty"`
	Data  LeaveData `json:"data"`
}

// Active reports whether a leave-request flow is in progress.
func (s Snapshot) Active() bool {
	return s.Flow == leaveFlow
}

// TurnInput is one user message plus the state carried from the last turn.
type TurnInput struct {
	Message  string
	UserID   int64
	Snapshot Snapshot
}

// TurnOutput is the assistant's reply for one turn.
type TurnOutput struct {
	Intent   string
	Response string
	// Submission is set only on the turn that commits a leave request.
	Submission *SubmissionResult
	// Snapshot is the state to carry into the next turn.
	Snapshot Snapshot
	// Context holds the retrieved policy text used for a policy answer.
	Context string
}

// Passage is one retrieved policy chunk.
type Passage struct {
	Text   string
	Source string
	Score  float32
}

// Retriever serves similarity search over ingested policies.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]Passage, error)
}

// LeaveSubmission is a completed leave request ready to be persisted.
type LeaveSubmission struct {
	UserID       int64
	LeaveType    string
	StartDate    string
	EndDate      string
	DurationDays int
	Reason       string
}

// SubmissionResult describes a persisted leave request.
type SubmissionResult struct {
	RequestID int64  `json:"request_id"`
	Status    string `json:"status"`
}

// RequestSink persists confirmed leave requests.
type RequestSink interface {
	Submit(ctx context.Context, sub LeaveSubmission) (*SubmissionResult, error)
}
