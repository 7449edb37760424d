package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hrmate-ai/hrmate/internal/requests"
	"github.com/hrmate-ai/hrmate/internal/vectordb"
)

// handleSearchPolicies performs semantic search over the policy store.
func (s *Server) handleSearchPolicies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 3)
	if limit <= 0 {
		limit = 3
	}

	results, err := s.store.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The policies may not be ingested yet. Run `hrmate ingest` to index them."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleAskPolicy answers a policy question grounded on ingested policies.
func (s *Server) handleAskPolicy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	answer, err := s.engine.AnswerPolicyQuestion(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answer failed: %v", err)), nil
	}

	return mcp.NewToolResultText(answer), nil
}

// handleListLeaveRequests lists stored leave requests.
func (s *Server) handleListLeaveRequests(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := request.GetString("status", "")
	userID := request.GetInt("user_id", 0)

	var (
		reqs []requests.LeaveRequest
		err  error
	)
	if userID > 0 {
		reqs, err = s.requests.ListByUser(ctx, int64(userID))
	} else {
		reqs, err = s.requests.ListAll(ctx, status)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}

	if len(reqs) == 0 {
		return mcp.NewToolResultText("No leave requests found."), nil
	}

	return mcp.NewToolResultText(formatLeaveRequests(reqs)), nil
}

// formatSearchResults renders policy chunks for agent consumption.
func formatSearchResults(results []vectordb.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Policy: %s (%s, chunk %d)\n", r.PolicyName, r.Filename, r.ChunkIndex))
		sb.WriteString(fmt.Sprintf("Similarity: %.4f\n\n", r.Score))
		sb.WriteString(r.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatLeaveRequests renders leave requests as a readable table.
func formatLeaveRequests(reqs []requests.LeaveRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d leave request(s):\n", len(reqs)))

	for _, r := range reqs {
		sb.WriteString(fmt.Sprintf("\n#%d user=%d %s %s to %s (%d day(s)) status=%s",
			r.ID, r.UserID, r.RequestType, r.StartDate, r.EndDate, r.DurationDays, r.Status))
		if r.Reason != "" {
			sb.WriteString(fmt.Sprintf("\n  reason: %s", r.Reason))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
