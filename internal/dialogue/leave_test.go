package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hrmate-ai/hrmate/internal/llm"
)

func TestLeaveFlowOpportunisticStart(t *testing.T) {
	// "I need sick leave tomorrow" carries both type and dates, so the flow
	// should jump straight to asking for a reason.
	provider := &scriptedProvider{fn: respond(map[string]string{
		"intent": `{"intent": "leave_request"}`,
		"dates":  datesJSON(tomorrowStr, tomorrowStr),
	})}
	e := newTestEngine(provider, nil, nil)

	out := e.Process(context.Background(), TurnInput{Message: "I need sick leave tomorrow", UserID: 7})

	if out.Intent != IntentLeaveRequest {
		t.Errorf("Intent = %q, want %q", out.Intent, IntentLeaveRequest)
	}
	if out.Snapshot.Stage != StageAskReason {
		t.Errorf("Stage = %q, want %q", out.Snapshot.Stage, StageAskReason)
	}
	if out.Snapshot.Data.LeaveType != "sick" {
		t.Errorf("LeaveType = %q, want %q", out.Snapshot.Data.LeaveType, "sick")
	}
	if out.Snapshot.Data.StartDate != tomorrowStr || out.Snapshot.Data.EndDate != tomorrowStr {
		t.Errorf("dates = %q..%q, want %q..%q",
			out.Snapshot.Data.StartDate, out.Snapshot.Data.EndDate, tomorrowStr, tomorrowStr)
	}
	if out.Snapshot.Data.DurationDays != 1 {
		t.Errorf("DurationDays = %d, want 1", out.Snapshot.Data.DurationDays)
	}
	if !strings.Contains(out.Response, "reason") {
		t.Errorf("response should ask for a reason, got %q", out.Response)
	}
}

func TestLeaveFlowNoTypeShowsMenu(t *testing.T) {
	provider := &scriptedProvider{fn: respond(map[string]string{
		"intent":     `{"intent": "leave_request"}`,
		"leave_type": "unknown",
	})}
	e := newTestEngine(provider, nil, nil)

	out := e.Process(context.Background(), TurnInput{Message: "I need some time off", UserID: 7})

	if out.Snapshot.Stage != StageCollectType {
		t.Errorf("Stage = %q, want %q", out.Snapshot.Stage, StageCollectType)
	}
	for _, opt := range []string{"1. Sick Leave", "2. Annual Leave", "3. Parental Leave"} {
		if !strings.Contains(out.Response, opt) {
			t.Errorf("menu response missing %q: %q", opt, out.Response)
		}
	}
}

func TestLeaveFlowMenuPick(t *testing.T) {
	// At collect_type a bare "1" resolves to sick without a model call for
	// the type; dates still come back unknown so the flow asks for them.
	provider := &scriptedProvider{fn: respond(map[string]string{
		"dates": datesJSON(unknownValue, unknownValue),
	})}
	e := newTestEngine(provider, nil, nil)

	out := e.Process(context.Background(), TurnInput{
		Message:  "1",
		UserID:   7,
		Snapshot: Snapshot{Flow: leaveFlow, Stage: StageCollectType},
	})

	if out.Snapshot.Stage != StageAskDates {
		t.Errorf("Stage = %q, want %q", out.Snapshot.Stage, StageAskDates)
	}
	if out.Snapshot.Data.LeaveType != "sick" {
		t.Errorf("LeaveType = %q, want %q", out.Snapshot.Data.LeaveType, "sick")
	}
	if !strings.Contains(out.Response, "sick leave") {
		t.Errorf("response should mention sick leave: %q", out.Response)
	}
}

func TestLeaveFlowMenuRetry(t *testing.T) {
	provider := &scriptedProvider{fn: respond(map[string]string{
		"leave_type": "unknown",
	})}
	e := newTestEngine(provider, nil, nil)

	snap := Snapshot{Flow: leaveFlow, Stage: StageCollectType}
	out := e.Process(context.Background(), TurnInput{Message: "the usual kind", UserID: 7, Snapshot: snap})

	if out.Snapshot.Stage != StageCollectType {
		t.Errorf("Stage = %q, want %q (unchanged)", out.Snapshot.Stage, StageCollectType)
	}
	if !strings.Contains(out.Response, "didn't quite catch") {
		t.Errorf("response = %q, want a retry prompt", out.Response)
	}
}

func TestLeaveFlowRejectsPastStart(t *testing.T) {
	provider := &scriptedProvider{fn: respond(map[string]string{
		"dates": datesJSON("2026-03-08", "2026-03-09"),
	})}
	e := newTestEngine(provider, nil, nil)

	snap := Snapshot{Flow: leaveFlow, Stage: StageAskDates, Data: LeaveData{LeaveType: "annual"}}
	out := e.Process(context.Background(), TurnInput{Message: "march 8 to 9", UserID: 7, Snapshot: snap})

	if out.Snapshot.Stage != StageAskDates {
		t.Errorf("Stage = %q, want %q (unchanged)", out.Snapshot.Stage, StageAskDates)
	}
	if !strings.Contains(out.Response, "cannot be in the past") {
		t.Errorf("response = %q, want past-date rejection", out.Response)
	}
	if out.Snapshot.Data.StartDate != "" {
		t.Errorf("StartDate = %q, want empty after rejection", out.Snapshot.Data.StartDate)
	}
}

func TestLeaveFlowRejectsInvertedRange(t *testing.T) {
	provider := &scriptedProvider{fn: respond(map[string]string{
		"dates": datesJSON("2026-03-14", "2026-03-12"),
	})}
	e := newTestEngine(provider, nil, nil)

	snap := Snapshot{Flow: leaveFlow, Stage: StageAskDates, Data: LeaveData{LeaveType: "annual"}}
	out := e.Process(context.Background(), TurnInput{Message: "14th to 12th", UserID: 7, Snapshot: snap})

	if out.Snapshot.Stage != StageAskDates {
		t.Errorf("Stage = %q, want %q (unchanged)", out.Snapshot.Stage, StageAskDates)
	}
	if !strings.Contains(out.Response, "end date cannot be before the start date") {
		t.Errorf("response = %q, want inverted-range rejection", out.Response)
	}
}

func TestLeaveFlowDatesAccepted(t *testing.T) {
	provider := &scriptedProvider{fn: respond(map[string]string{
		"dates": datesJSON("2026-03-12", "2026-03-14"),
	})}
	e := newTestEngine(provider, nil, nil)

	snap := Snapshot{Flow: leaveFlow, Stage: StageAskDates, Data: LeaveData{LeaveType: "annual"}}
	out := e.Process(context.Background(), TurnInput{Message: "march 12 to 14", UserID: 7, Snapshot: snap})

	if out.Snapshot.Stage != StageAskReason {
		t.Errorf("Stage = %q, want %q", out.Snapshot.Stage, StageAskReason)
	}
	if out.Snapshot.Data.DurationDays != 3 {
		t.Errorf("DurationDays = %d, want 3", out.Snapshot.Data.DurationDays)
	}
}

func TestLeaveFlowReasonAndSummary(t *testing.T) {
	provider := &scriptedProvider{fn: respond(map[string]string{
		"reason": "Family vacation.",
	})}
	e := newTestEngine(provider, nil, nil)

	snap := Snapshot{
		Flow:  leaveFlow,
		Stage: StageAskReason,
		Data:  LeaveData{LeaveType: "annual", StartDate: "2026-03-12", EndDate: "2026-03-14", DurationDays: 3},
	}
	out := e.Process(context.Background(), TurnInput{Message: "family vacation", UserID: 7, Snapshot: snap})

	if out.Snapshot.Stage != StageConfirm {
		t.Errorf("Stage = %q, want %q", out.Snapshot.Stage, StageConfirm)
	}
	if out.Snapshot.Data.Reason != "Family vacation." {
		t.Errorf("Reason = %q, want %q", out.Snapshot.Data.Reason, "Family vacation.")
	}
	for _, want := range []string{"Annual Leave", "2026-03-12", "2026-03-14", "3 day(s)", "Family vacation."} {
		if !strings.Contains(out.Response, want) {
			t.Errorf("summary missing %q: %q", want, out.Response)
		}
	}
}

func TestLeaveFlowReasonFailureHoldsStage(t *testing.T) {
	provider := &scriptedProvider{fn: func(llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return nil, errors.New("provider down")
	}}
	e := newTestEngine(provider, nil, nil)

	snap := Snapshot{
		Flow:  leaveFlow,
		Stage: StageAskReason,
		Data:  LeaveData{LeaveType: "annual", StartDate: "2026-03-12", EndDate: "2026-03-14", DurationDays: 3},
	}
	out := e.Process(context.Background(), TurnInput{Message: "family vacation", UserID: 7, Snapshot: snap})

	if out.Snapshot != snap {
		t.Errorf("snapshot changed on reason extraction failure: %+v", out.Snapshot)
	}
	if out.Snapshot.Data.Reason != "" {
		t.Errorf("Reason = %q, want empty after failed extraction", out.Snapshot.Data.Reason)
	}
	if !strings.Contains(out.Response, "provide a reason") {
		t.Errorf("response = %q, want reason re-prompt", out.Response)
	}
}

func TestLeaveFlowConfirmSubmits(t *testing.T) {
	provider := &scriptedProvider{}
	sink := &fakeSink{}
	e := newTestEngine(provider, nil, sink)

	snap := Snapshot{
		Flow:  leaveFlow,
		Stage: StageConfirm,
		Data: LeaveData{
			LeaveType: "sick", StartDate: tomorrowStr, EndDate: tomorrowStr,
			DurationDays: 1, Reason: "Flu.",
		},
	}
	out := e.Process(context.Background(), TurnInput{Message: "yes", UserID: 42, Snapshot: snap})

	if sink.count() != 1 {
		t.Fatalf("sink received %d submissions, want 1", sink.count())
	}
	sub := sink.submissions[0]
	if sub.UserID != 42 || sub.LeaveType != "sick" || sub.StartDate != tomorrowStr ||
		sub.EndDate != tomorrowStr || sub.DurationDays != 1 || sub.Reason != "Flu." {
		t.Errorf("submission = %+v", sub)
	}

	if out.Snapshot.Active() {
		t.Error("snapshot still active after submission, want cleared")
	}
	if out.Submission == nil || out.Submission.RequestID != 1 {
		t.Errorf("Submission = %+v, want request id 1", out.Submission)
	}
	if !strings.Contains(out.Response, "submitted successfully") {
		t.Errorf("response = %q, want success confirmation", out.Response)
	}
	if !strings.Contains(out.Response, "Pending HR Approval") {
		t.Errorf("response = %q, want pending status", out.Response)
	}
}

func TestLeaveFlowConfirmVariants(t *testing.T) {
	for _, word := range []string{"yes", "y", "confirm", "correct", "submit", "ok", "okay", "sure", "  YES  "} {
		t.Run(word, func(t *testing.T) {
			sink := &fakeSink{}
			e := newTestEngine(&scriptedProvider{}, nil, sink)

			snap := Snapshot{Flow: leaveFlow, Stage: StageConfirm, Data: LeaveData{LeaveType: "sick", StartDate: tomorrowStr, EndDate: tomorrowStr, DurationDays: 1, Reason: "Flu."}}
			e.Process(context.Background(), TurnInput{Message: word, UserID: 1, Snapshot: snap})

			if sink.count() != 1 {
				t.Errorf("%q did not submit", word)
			}
		})
	}
}

func TestLeaveFlowCancel(t *testing.T) {
	for _, word := range []string{"no", "n", "cancel", "nevermind", "nope"} {
		t.Run(word, func(t *testing.T) {
			sink := &fakeSink{}
			e := newTestEngine(&scriptedProvider{}, nil, sink)

			snap := Snapshot{Flow: leaveFlow, Stage: StageConfirm, Data: LeaveData{LeaveType: "sick", StartDate: tomorrowStr, EndDate: tomorrowStr, DurationDays: 1}}
			out := e.Process(context.Background(), TurnInput{Message: word, UserID: 1, Snapshot: snap})

			if sink.count() != 0 {
				t.Errorf("%q submitted a request, want none", word)
			}
			if out.Snapshot.Active() {
				t.Error("snapshot still active after cancel")
			}
			if !strings.Contains(out.Response, "cancelled") {
				t.Errorf("response = %q, want cancellation notice", out.Response)
			}
		})
	}
}

func TestLeaveFlowConfirmPolitePhraseReprompts(t *testing.T) {
	// Cancellation takes an exact keyword; "no thanks" is not in the set and
	// must re-prompt rather than cancel or submit.
	sink := &fakeSink{}
	e := newTestEngine(&scriptedProvider{}, nil, sink)

	snap := Snapshot{Flow: leaveFlow, Stage: StageConfirm, Data: LeaveData{LeaveType: "sick", StartDate: tomorrowStr, EndDate: tomorrowStr, DurationDays: 1}}
	out := e.Process(context.Background(), TurnInput{Message: "no thanks", UserID: 1, Snapshot: snap})

	if sink.count() != 0 {
		t.Errorf("sink received %d submissions, want 0", sink.count())
	}
	if out.Snapshot != snap {
		t.Errorf("snapshot changed: %+v", out.Snapshot)
	}
	if !strings.Contains(out.Response, "'yes' to submit") {
		t.Errorf("response = %q, want confirm re-prompt", out.Response)
	}
}

func TestLeaveFlowConfirmUnclearIsIdempotent(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(&scriptedProvider{}, nil, sink)

	snap := Snapshot{
		Flow:  leaveFlow,
		Stage: StageConfirm,
		Data:  LeaveData{LeaveType: "annual", StartDate: "2026-03-12", EndDate: "2026-03-14", DurationDays: 3, Reason: "Trip."},
	}

	// Several unclear answers in a row must not move the flow or mutate data.
	for _, msg := range []string{"maybe", "hmm", "maybe"} {
		out := e.Process(context.Background(), TurnInput{Message: msg, UserID: 1, Snapshot: snap})
		if out.Snapshot != snap {
			t.Errorf("snapshot changed on %q: %+v", msg, out.Snapshot)
		}
		if !strings.Contains(out.Response, "'yes' to submit") {
			t.Errorf("response = %q, want confirm re-prompt", out.Response)
		}
		snap = out.Snapshot
	}
	if sink.count() != 0 {
		t.Errorf("sink received %d submissions, want 0", sink.count())
	}
}

func TestLeaveFlowSubmitFailureClearsFlow(t *testing.T) {
	sink := &fakeSink{err: errors.New("db down")}
	e := newTestEngine(&scriptedProvider{}, nil, sink)

	snap := Snapshot{Flow: leaveFlow, Stage: StageConfirm, Data: LeaveData{LeaveType: "sick", StartDate: tomorrowStr, EndDate: tomorrowStr, DurationDays: 1}}
	out := e.Process(context.Background(), TurnInput{Message: "yes", UserID: 1, Snapshot: snap})

	if out.Snapshot.Active() {
		t.Error("snapshot still active after failed submission, want cleared")
	}
	if out.Submission != nil {
		t.Errorf("Submission = %+v, want nil", out.Submission)
	}
	if !strings.Contains(out.Response, "error submitting") {
		t.Errorf("response = %q, want submission failure notice", out.Response)
	}
}

func TestLeaveFlowUnknownStageResets(t *testing.T) {
	e := newTestEngine(&scriptedProvider{}, nil, nil)

	snap := Snapshot{Flow: leaveFlow, Stage: Stage("wat")}
	out := e.Process(context.Background(), TurnInput{Message: "hello", UserID: 1, Snapshot: snap})

	if out.Snapshot.Active() {
		t.Error("snapshot still active after reset")
	}
	if !strings.Contains(out.Response, "start over") {
		t.Errorf("response = %q, want reset notice", out.Response)
	}
}

func TestLeaveFlowPastDateAtEntry(t *testing.T) {
	// Type plus past dates in the opening message: keep the type, advance to
	// ask_dates, and explain the problem in one reply.
	provider := &scriptedProvider{fn: respond(map[string]string{
		"intent": `{"intent": "leave_request"}`,
		"dates":  datesJSON("2026-03-01", "2026-03-02"),
	})}
	e := newTestEngine(provider, nil, nil)

	out := e.Process(context.Background(), TurnInput{Message: "sick leave march 1 to 2", UserID: 7})

	if out.Snapshot.Stage != StageAskDates {
		t.Errorf("Stage = %q, want %q", out.Snapshot.Stage, StageAskDates)
	}
	if out.Snapshot.Data.LeaveType != "sick" {
		t.Errorf("LeaveType = %q, want %q", out.Snapshot.Data.LeaveType, "sick")
	}
	if !strings.Contains(out.Response, "cannot be in the past") {
		t.Errorf("response = %q, want past-date explanation", out.Response)
	}
}
