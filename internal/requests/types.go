// Package requests persists and serves leave requests.
package requests

import "time"

// Statuses a leave request moves through.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// LeaveRequest is a persisted leave request.
type LeaveRequest struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	RequestType  string     `json:"request_type"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	DurationDays int        `json:"duration_days"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	ReviewedBy   *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
