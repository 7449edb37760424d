package requests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hrmate-ai/hrmate/internal/db"
	"github.com/hrmate-ai/hrmate/internal/dialogue"
)

// ErrNotFound is returned when a request id does not exist.
var ErrNotFound = errors.New("leave request not found")

// Store persists leave requests in SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a store backed by database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new pending leave request.
func (s *Store) Create(ctx context.Context, req *LeaveRequest) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_requests (user_id, request_type, start_date, end_date, duration_days, reason)
		VALUES (?, ?, ?, ?, ?, ?)`,
		req.UserID, req.RequestType, req.StartDate, req.EndDate, req.DurationDays, req.Reason)
	if err != nil {
		return fmt.Errorf("insert leave request: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("leave request id: %w", err)
	}
	req.ID = id
	req.Status = StatusPending
	return nil
}

// GetByID returns one request or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*LeaveRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, request_type, start_date, end_date, duration_days, reason,
		       status, reviewed_by, reviewed_at, created_at, updated_at
		FROM leave_requests WHERE id = ?`, id)

	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get leave request: %w", err)
	}
	return req, nil
}

// ListByUser returns a user's requests, newest first.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, request_type, start_date, end_date, duration_days, reason,
		       status, reviewed_by, reviewed_at, created_at, updated_at
		FROM leave_requests WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

// ListAll returns every request, newest first. An empty status matches all.
func (s *Store) ListAll(ctx context.Context, status string) ([]LeaveRequest, error) {
	query := `
		SELECT id, user_id, request_type, start_date, end_date, duration_days, reason,
		       status, reviewed_by, reviewed_at, created_at, updated_at
		FROM leave_requests`
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

// Approve marks a pending request approved by reviewer.
func (s *Store) Approve(ctx context.Context, id int64, reviewerID int64) (*LeaveRequest, error) {
	return s.review(ctx, id, reviewerID, StatusApproved)
}

// Reject marks a pending request rejected by reviewer.
func (s *Store) Reject(ctx context.Context, id int64, reviewerID int64) (*LeaveRequest, error) {
	return s.review(ctx, id, reviewerID, StatusRejected)
}

func (s *Store) review(ctx context.Context, id int64, reviewerID int64, status string) (*LeaveRequest, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE leave_requests
		SET status = ?, reviewed_by = ?, reviewed_at = datetime('now'), updated_at = datetime('now')
		WHERE id = ?`, status, reviewerID, id)
	if err != nil {
		return nil, fmt.Errorf("review leave request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("review leave request: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*LeaveRequest, error) {
	var req LeaveRequest
	var reviewedBy sql.NullInt64
	var reviewedAt sql.NullTime
	err := row.Scan(&req.ID, &req.UserID, &req.RequestType, &req.StartDate, &req.EndDate,
		&req.DurationDays, &req.Reason, &req.Status, &reviewedBy, &reviewedAt,
		&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if reviewedBy.Valid {
		req.ReviewedBy = &reviewedBy.Int64
	}
	if reviewedAt.Valid {
		req.ReviewedAt = &reviewedAt.Time
	}
	return &req, nil
}

func collectRequests(rows *sql.Rows) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

// Sink adapts the store to the dialogue engine's submission interface.
type Sink struct {
	store *Store
}

// NewSink creates a dialogue.RequestSink over store.
func NewSink(store *Store) *Sink {
	return &Sink{store: store}
}

func (s *Sink) Submit(ctx context.Context, sub dialogue.LeaveSubmission) (*dialogue.SubmissionResult, error) {
	req := &LeaveRequest{
		UserID:       sub.UserID,
		RequestType:  sub.LeaveType,
		StartDate:    sub.StartDate,
		EndDate:      sub.EndDate,
		DurationDays: sub.DurationDays,
		Reason:       sub.Reason,
	}
	if err := s.store.Create(ctx, req); err != nil {
		return nil, err
	}
	return &dialogue.SubmissionResult{RequestID: req.ID, Status: req.Status}, nil
}
