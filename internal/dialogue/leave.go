package dialogue

import (
	"context"
	"fmt"
	"strings"
)

const (
	typeMenuMessage = "I'd be happy to help you request leave! What type of leave would you like to request?\n\n" +
		"1. Sick Leave\n2. Annual Leave\n3. Parental Leave\n\nPlease let me know which type."

	typeRetryMessage = "I didn't quite catch that. Please choose one of:\n\n1. Sick Leave\n2. Annual Leave\n3. Parental Leave"

	datesMissingMessage = "I couldn't understand the dates. Please provide them in a clear format, for example:\n" +
		"- 'January 15 to January 20'\n- 'Tomorrow'\n- '2025-01-15 to 2025-01-20'"

	datesRetryMessage = "I had trouble understanding those dates. Could you please provide them again? " +
		"For example: 'January 15 to January 20' or 'tomorrow for 3 days'"

	datesPastMessage = "The start date cannot be in the past. Please provide a date that is today or in the future."

	datesInvertedMessage = "The end date cannot be before the start date. Please provide valid dates."

	reasonRetryMessage = "Could you please provide a reason for your leave?"

	confirmRetryMessage = "I didn't quite understand that. Please reply 'yes' to submit your leave request or 'no' to cancel."

	cancelMessage = "No problem! Your leave request has been cancelled. Let me know if you need anything else."

	submitErrorMessage = "I'm sorry, there was an error submitting your leave request. Please try again or contact HR directly."

	resetMessage = "I'm sorry, something went wrong with the conversation. Let's start over. Would you like to request leave?"
)

var affirmatives = map[string]bool{
	"yes": true, "y": true, "confirm": true, "correct": true,
	"submit": true, "ok": true, "okay": true, "sure": true,
}

var negatives = map[string]bool{
	"no": true, "n": true, "cancel": true, "nevermind": true, "nope": true,
}

// handleLeave advances the leave-request flow by one turn.
func (e *Engine) handleLeave(ctx context.Context, in TurnInput) TurnOutput {
	snap := in.Snapshot
	if !snap.Active() {
		e.logger.Debugw("starting new leave request flow", "user_id", in.UserID)
		snap = Snapshot{Flow: leaveFlow, Stage: StageAskType}
	}

	e.logger.Debugw("leave flow turn", "stage", snap.Stage, "user_id", in.UserID)

	switch snap.Stage {
	case StageAskType:
		return e.stageAskType(ctx, in, snap)
	case StageCollectType:
		return e.stageCollectType(ctx, in, snap)
	case StageAskDates:
		return e.stageAskDates(ctx, in, snap)
	case StageAskReason:
		return e.stageAskReason(ctx, in, snap)
	case StageConfirm:
		return e.stageConfirm(ctx, in, snap)
	default:
		e.logger.Warnw("unknown leave flow stage, resetting", "stage", snap.Stage)
		return TurnOutput{Intent: IntentLeaveRequest, Response: resetMessage}
	}
}

// stageAskType mines the triggering message for as much as possible: a
// recognized type plus valid dates skips straight to the reason.
func (e *Engine) stageAskType(ctx context.Context, in TurnInput, snap Snapshot) TurnOutput {
	leaveType := e.extractLeaveType(ctx, in.Message)
	if leaveType == unknownValue {
		snap.Stage = StageCollectType
		return TurnOutput{Intent: IntentLeaveRequest, Response: typeMenuMessage, Snapshot: snap}
	}
	snap.Data.LeaveType = leaveType

	startStr, endStr, err := e.extractDates(ctx, in.Message)
	if err == nil {
		start, end, problem := e.parseDatePair(startStr, endStr)
		switch problem {
		case datesOK:
			snap.Data.StartDate = startStr
			snap.Data.EndDate = endStr
			snap.Data.DurationDays = durationDays(start, end)
			snap.Stage = StageAskReason
			return TurnOutput{
				Intent: IntentLeaveRequest,
				Response: fmt.Sprintf(
					"Perfect! I've got your %s leave request from %s to %s (%d day(s)). Could you please provide a brief reason for your leave?",
					leaveType, startStr, endStr, snap.Data.DurationDays),
				Snapshot: snap,
			}
		case datesPast:
			snap.Stage = StageAskDates
			return TurnOutput{
				Intent: IntentLeaveRequest,
				Response: fmt.Sprintf(
					"Got it! You'd like to request %s leave. However, the start date cannot be in the past. Please provide a date that is today or in the future.",
					leaveType),
				Snapshot: snap,
			}
		case datesInverted:
			snap.Stage = StageAskDates
			return TurnOutput{
				Intent: IntentLeaveRequest,
				Response: fmt.Sprintf(
					"Got it! You'd like to request %s leave. However, the end date cannot be before the start date. Please provide valid dates.",
					leaveType),
				Snapshot: snap,
			}
		}
	} else {
		e.logger.Debugw("no dates in initial message", "error", err)
	}

	snap.Stage = StageAskDates
	return TurnOutput{
		Intent: IntentLeaveRequest,
		Response: fmt.Sprintf(
			"Got it! You'd like to request %s leave. When would you like to take this leave? Please provide the start date and end date (or just one date if it's a single day).",
			leaveType),
		Snapshot: snap,
	}
}

// stageCollectType handles the user's pick from the type menu. Dates offered
// in the same message are taken too, but only if already valid.
func (e *Engine) stageCollectType(ctx context.Context, in TurnInput, snap Snapshot) TurnOutput {
	leaveType := e.extractLeaveType(ctx, in.Message)
	if leaveType == unknownValue {
		return TurnOutput{Intent: IntentLeaveRequest, Response: typeRetryMessage, Snapshot: snap}
	}
	snap.Data.LeaveType = leaveType

	if startStr, endStr, err := e.extractDates(ctx, in.Message); err == nil {
		if start, end, problem := e.parseDatePair(startStr, endStr); problem == datesOK {
			snap.Data.StartDate = startStr
			snap.Data.EndDate = endStr
			snap.Data.DurationDays = durationDays(start, end)
			snap.Stage = StageAskReason
			return TurnOutput{
				Intent: IntentLeaveRequest,
				Response: fmt.Sprintf(
					"Great! I've got your %s leave from %s to %s (%d day(s)). Could you please provide a brief reason?",
					leaveType, startStr, endStr, snap.Data.DurationDays),
				Snapshot: snap,
			}
		}
	}

	snap.Stage = StageAskDates
	return TurnOutput{
		Intent: IntentLeaveRequest,
		Response: fmt.Sprintf(
			"Perfect! When would you like to take your %s leave? Please provide the start date and end date (or just one date if it's a single day).",
			leaveType),
		Snapshot: snap,
	}
}

func (e *Engine) stageAskDates(ctx context.Context, in TurnInput, snap Snapshot) TurnOutput {
	startStr, endStr, err := e.extractDates(ctx, in.Message)
	if err != nil {
		e.logger.Warnw("date extraction failed", "error", err)
		return TurnOutput{Intent: IntentLeaveRequest, Response: datesRetryMessage, Snapshot: snap}
	}

	start, end, problem := e.parseDatePair(startStr, endStr)
	switch problem {
	case datesMissing:
		return TurnOutput{Intent: IntentLeaveRequest, Response: datesMissingMessage, Snapshot: snap}
	case datesInvalid:
		return TurnOutput{Intent: IntentLeaveRequest, Response: datesRetryMessage, Snapshot: snap}
	case datesPast:
		return TurnOutput{Intent: IntentLeaveRequest, Response: datesPastMessage, Snapshot: snap}
	case datesInverted:
		return TurnOutput{Intent: IntentLeaveRequest, Response: datesInvertedMessage, Snapshot: snap}
	}

	snap.Data.StartDate = startStr
	snap.Data.EndDate = endStr
	snap.Data.DurationDays = durationDays(start, end)
	snap.Stage = StageAskReason
	return TurnOutput{
		Intent: IntentLeaveRequest,
		Response: fmt.Sprintf(
			"Great! I've noted that you need leave from %s to %s (%d day(s)). Could you please provide a brief reason for your leave request?",
			startStr, endStr, snap.Data.DurationDays),
		Snapshot: snap,
	}
}

func (e *Engine) stageAskReason(ctx context.Context, in TurnInput, snap Snapshot) TurnOutput {
	reason, err := e.extractReason(ctx, in.Message)
	if err != nil {
		e.logger.Warnw("reason extraction failed", "error", err)
		return TurnOutput{Intent: IntentLeaveRequest, Response: reasonRetryMessage, Snapshot: snap}
	}
	snap.Data.Reason = reason
	snap.Stage = StageConfirm

	return TurnOutput{
		Intent: IntentLeaveRequest,
		Response: fmt.Sprintf(
			"Perfect! Let me confirm your leave request details:\n\n"+
				"Leave Request Summary\n"+
				"- Type: %s Leave\n"+
				"- Start Date: %s\n"+
				"- End Date: %s\n"+
				"- Duration: %d day(s)\n"+
				"- Reason: %s\n\n"+
				"Is this correct? Please reply 'yes' to submit or 'no' to cancel.",
			titleCase(snap.Data.LeaveType), snap.Data.StartDate, snap.Data.EndDate,
			snap.Data.DurationDays, snap.Data.Reason),
		Snapshot: snap,
	}
}

// stageConfirm commits on a clear yes, cancels on a clear no, and otherwise
// re-prompts without touching the collected data.
func (e *Engine) stageConfirm(ctx context.Context, in TurnInput, snap Snapshot) TurnOutput {
	answer := strings.ToLower(strings.TrimSpace(in.Message))

	switch {
	case affirmatives[answer]:
		result, err := e.sink.Submit(ctx, LeaveSubmission{
			UserID:       in.UserID,
			LeaveType:    snap.Data.LeaveType,
			StartDate:    snap.Data.StartDate,
			EndDate:      snap.Data.EndDate,
			DurationDays: snap.Data.DurationDays,
			Reason:       snap.Data.Reason,
		})
		if err != nil {
			// The flow ends either way so a retry starts clean.
			e.logger.Errorw("leave request submission failed", "error", err, "user_id", in.UserID)
			return TurnOutput{Intent: IntentLeaveRequest, Response: submitErrorMessage}
		}

		e.logger.Infow("leave request submitted", "request_id", result.RequestID, "user_id", in.UserID)
		return TurnOutput{
			Intent: IntentLeaveRequest,
			Response: fmt.Sprintf(
				"Your leave request has been submitted successfully!\n\n"+
					"Request Details:\n"+
					"- Type: %s Leave\n"+
					"- Dates: %s to %s\n"+
					"- Duration: %d day(s)\n"+
					"- Status: Pending HR Approval\n\n"+
					"Your request will be reviewed by HR and you'll be notified of the decision soon. Is there anything else I can help you with?",
				titleCase(snap.Data.LeaveType), snap.Data.StartDate, snap.Data.EndDate, snap.Data.DurationDays),
			Submission: result,
		}

	case negatives[answer]:
		e.logger.Infow("leave request cancelled", "user_id", in.UserID)
		return TurnOutput{Intent: IntentLeaveRequest, Response: cancelMessage}

	default:
		return TurnOutput{Intent: IntentLeaveRequest, Response: confirmRetryMessage, Snapshot: snap}
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
